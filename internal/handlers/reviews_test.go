package handlers

import (
	"net/http"
	"testing"
)

func TestReviewFlowUpdatesAggregate(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)

	name := "handler-test-reviewed-product"
	t.Cleanup(func() { cleanupProduct(env, name) })

	rec, created := env.do(t, "POST", "/products", admin, productBody(name, 80.0))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product: got %d", rec.Code)
	}
	id := dataMap(t, created)["id"].(string)
	t.Cleanup(func() { env.db.Exec("DELETE FROM reviews WHERE product_id = $1", id) })

	// Reviews are anonymous-friendly; no token needed.
	for _, rating := range []int{5, 4, 5} {
		rec, _ := env.do(t, "POST", "/products/"+id+"/reviews", "", map[string]any{
			"rating":   rating,
			"comment":  "great quality",
			"userName": "Reviewer",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create review (%d): got %d: %s", rating, rec.Code, rec.Body.String())
		}
	}

	// (5+4+5)/3 rounds to 4.7; the product row carries the aggregate.
	_, got := env.do(t, "GET", "/products/"+id, "", nil)
	product := dataMap(t, got)
	if product["rating"].(float64) != 4.7 {
		t.Errorf("rating: %v, want 4.7", product["rating"])
	}
	if product["reviewsCount"].(float64) != 3 {
		t.Errorf("reviewsCount: %v, want 3", product["reviewsCount"])
	}

	rec, list := env.do(t, "GET", "/products/"+id+"/reviews", "", nil)
	if rec.Code != http.StatusOK || len(dataList(t, list)) != 3 {
		t.Errorf("review list: status %d, %d reviews", rec.Code, len(dataList(t, list)))
	}
}

func TestReviewFlatRoutes(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)

	name := "handler-test-flat-review-product"
	t.Cleanup(func() { cleanupProduct(env, name) })

	rec, created := env.do(t, "POST", "/products", admin, productBody(name, 40.0))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product: got %d", rec.Code)
	}
	id := dataMap(t, created)["id"].(string)
	t.Cleanup(func() { env.db.Exec("DELETE FROM reviews WHERE product_id = $1", id) })

	// Old clients post to /reviews with the product in the body.
	rec, _ = env.do(t, "POST", "/reviews", "", map[string]any{
		"productId": id,
		"rating":    4,
		"userName":  "Reviewer",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("flat create: got %d: %s", rec.Code, rec.Body.String())
	}

	rec, list := env.do(t, "GET", "/reviews?productId="+id, "", nil)
	if rec.Code != http.StatusOK || len(dataList(t, list)) != 1 {
		t.Errorf("flat list: status %d, %d reviews", rec.Code, len(dataList(t, list)))
	}

	// Without a product reference the flat routes cannot serve.
	rec, _ = env.do(t, "GET", "/reviews", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("flat list without productId: got %d, want 400", rec.Code)
	}
}

func TestReviewRejectsOutOfRangeRatings(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)

	name := "handler-test-review-bounds"
	t.Cleanup(func() { cleanupProduct(env, name) })

	rec, created := env.do(t, "POST", "/products", admin, productBody(name, 10.0))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product: got %d", rec.Code)
	}
	id := dataMap(t, created)["id"].(string)

	for _, rating := range []int{0, 6, -3} {
		rec, env1 := env.do(t, "POST", "/products/"+id+"/reviews", "", map[string]any{
			"rating":   rating,
			"userName": "Reviewer",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("rating %d: got %d, want 400", rating, rec.Code)
		}
		if env1.Success {
			t.Errorf("rating %d: expected error envelope", rating)
		}
	}
}

func TestReviewForMissingProduct(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, "POST", "/products/00000000-0000-0000-0000-000000000001/reviews", "", map[string]any{
		"rating":   5,
		"userName": "Reviewer",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}
