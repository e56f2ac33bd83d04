// Package models defines the domain types exchanged between the API client,
// the session manager and the product store.
package models

// LowStockThreshold is the quantity at or below which a product counts as
// low stock. The server applies the same threshold when computing aggregates.
const LowStockThreshold = 5

// Product is an inventory record as returned by the server. ID is assigned
// server-side and immutable.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Value is the inventory value of this product (price * quantity).
func (p Product) Value() float64 {
	return p.Price * float64(p.Quantity)
}

// LowStock reports whether the product's quantity is at or below the
// low-stock threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= LowStockThreshold
}

// ProductDraft is the client-side input for create and update operations.
// Name and Category are required; Price and Quantity must be non-negative.
// An attached image switches the request encoding to multipart.
type ProductDraft struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Category    string      `json:"category" validate:"required"`
	Price       float64     `json:"price" validate:"min=0"`
	Quantity    int         `json:"quantity" validate:"min=0"`
	Image       *Attachment `json:"-"`
}

// Attachment is an image file attached to a draft.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Stats are the server-computed collection aggregates that accompany a list
// response. They are adopted verbatim, never recomputed locally.
type Stats struct {
	Count         int
	TotalValue    float64
	LowStockCount int
}
