package models

import "time"

// Statuts possibles d'un article. Le passage à "sold" se fait une seule fois,
// dans la transaction d'achat.
const (
	ProductAvailable = "available"
	ProductSold      = "sold"
)

type Product struct {
	ID          int64     `json:"product_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Status      string    `json:"status"`
	CreatedBy   int64     `json:"created_by"`
	Seller      string    `json:"seller,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
