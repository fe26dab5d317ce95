package models

// CartItem is one line in a shopping cart. Price and name are captured
// when the item is added; checkout copies them verbatim into the order.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Image     string  `json:"image,omitempty"`
}

// Cart is a user's server-side shopping cart, stored in Redis keyed by
// user id. It replaces the browser-local cart of the old storefront so
// the same cart follows the user across devices.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Total returns the cart total in currency units.
func (c *Cart) Total() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// Upsert adds the item to the cart, merging quantities when an identical
// product/size/color line already exists.
func (c *Cart) Upsert(item CartItem) {
	for i, existing := range c.Items {
		if existing.ProductID == item.ProductID && existing.Size == item.Size && existing.Color == item.Color {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// SetQuantity updates the quantity of a product line. A quantity of zero
// removes the line. Returns false if the product is not in the cart.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	for i, it := range c.Items {
		if it.ProductID == productID {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			return true
		}
	}
	return false
}

// Remove deletes every line for the given product. Returns false if the
// product is not in the cart.
func (c *Cart) Remove(productID string) bool {
	kept := c.Items[:0]
	found := false
	for _, it := range c.Items {
		if it.ProductID == productID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	c.Items = kept
	return found
}
