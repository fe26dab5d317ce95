package store

import (
	"testing"

	"github.com/google/uuid"

	"threadbox/internal/models"
)

func TestHomepageStoreOrderingAndScoping(t *testing.T) {
	db := testDB(t)
	s := NewHomepageStore(db)

	var ids []uuid.UUID
	t.Cleanup(func() { cleanHomepage(t, db, ids...) })

	// Insert out of order; listing must come back by position.
	for _, pos := range []int{2, 0, 1} {
		it, err := s.Create(&models.HomepageItem{
			Kind:     models.KindHeroSlides,
			Position: pos,
			IsActive: true,
			Data:     map[string]any{"title": "slide", "image": "s.jpg", "marker": "store-test-order"},
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, it.ID)
	}

	items, err := s.ListByKind(models.KindHeroSlides)
	if err != nil {
		t.Fatalf("ListByKind: %v", err)
	}
	last := -1
	for _, it := range items {
		if it.Position < last {
			t.Fatalf("items not ordered by position: %d after %d", it.Position, last)
		}
		last = it.Position
	}

	// Ids are scoped to their kind.
	wrongKind, err := s.FindByID(models.KindBrands, ids[0])
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if wrongKind != nil {
		t.Error("hero slide must not be addressable as a brand")
	}
}

func TestHomepageStoreUpdateMergesDocument(t *testing.T) {
	db := testDB(t)
	s := NewHomepageStore(db)

	created, err := s.Create(&models.HomepageItem{
		Kind:     models.KindBrands,
		Position: 0,
		IsActive: true,
		Data:     map[string]any{"name": "store-test-brand", "logo": "logo.png"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { cleanHomepage(t, db, created.ID) })

	created.Position = 5
	created.IsActive = false
	created.Data["logo"] = "logo-v2.png"
	updated, err := s.Update(created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Position != 5 || updated.IsActive {
		t.Errorf("common fields: got pos=%d active=%v", updated.Position, updated.IsActive)
	}
	if updated.StringField("logo") != "logo-v2.png" || updated.StringField("name") != "store-test-brand" {
		t.Errorf("data document: got %v", updated.Data)
	}
}

func TestHomepageStoreTrendingTransaction(t *testing.T) {
	db := testDB(t)
	s := NewHomepageStore(db)
	products := NewProductStore(db)

	name := "store-test-trending-product"
	t.Cleanup(func() { cleanProducts(t, db, name) })

	item, product, err := s.CreateWithProduct(
		&models.HomepageItem{
			Kind:     models.KindTrending,
			IsActive: true,
			Data:     map[string]any{"title": name, "image": "t.jpg", "price": 129.99},
		},
		&models.Product{Name: name, Price: 129.99, Category: "Trending", MainImage: "t.jpg", InStock: true},
	)
	if err != nil {
		t.Fatalf("CreateWithProduct: %v", err)
	}
	t.Cleanup(func() { cleanHomepage(t, db, item.ID) })

	if item.ProductID == nil || *item.ProductID != product.ID {
		t.Fatal("trending item must reference the synthesized product")
	}

	// The backing product is a real, resolvable catalog row.
	backing, err := products.FindByID(product.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if backing == nil || backing.Name != name {
		t.Fatal("backing product not found in catalog")
	}

	// Updating the trending item patches the product in the same tx.
	newPrice := 99.99
	item.Data["price"] = newPrice
	updated, err := s.UpdateWithProduct(item, &models.ProductPatch{Price: &newPrice})
	if err != nil {
		t.Fatalf("UpdateWithProduct: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated item")
	}

	backing, err = products.FindByID(product.ID)
	if err != nil {
		t.Fatalf("FindByID after patch: %v", err)
	}
	if backing.Price != newPrice {
		t.Errorf("backing product price: got %.2f, want %.2f", backing.Price, newPrice)
	}
}
