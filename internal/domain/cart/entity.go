// internal/domain/cart/entity.go
package cart

// StorageKey is the fixed key the ledger is persisted under
const StorageKey = "cart"

// Item is what a shopper adds: a product snapshot at the time of adding
type Item struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name"`
	Price int64  `json:"price" binding:"min=0"`
	Image string `json:"image,omitempty"`
}

// Line is one product in the cart. A ledger holds at most one line per ID.
type Line struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // Unit price at time of adding
	Image    string `json:"image,omitempty"`
	Quantity int    `json:"quantity"`
}

// Subtotal is the line price times its quantity
func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Totals summarises the cart for the header badge and the cart page
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of distinct lines
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	SubTotal      int64 `json:"sub_total"`
	TotalAmount   int64 `json:"total_amount"`
}

func calculateTotals(lines []Line) Totals {
	var totals Totals
	totals.ItemCount = len(lines)
	for _, line := range lines {
		totals.TotalQuantity += line.Quantity
		totals.SubTotal += line.Subtotal()
	}
	// No shipping or tax is charged by the storefront
	totals.TotalAmount = totals.SubTotal
	return totals
}
