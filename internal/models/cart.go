package models

import "time"

// CartItem est une ligne du panier enrichie des infos article et vendeur,
// telle que renvoyée par GET /api/products/cart.
type CartItem struct {
	CartID      int64     `json:"cart_id"`
	Quantity    int       `json:"quantity"`
	ProductID   int64     `json:"product_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Status      string    `json:"status"`
	Seller      string    `json:"seller"`
	SellerID    int64     `json:"seller_id"`
	AddedAt     time.Time `json:"added_at"`
}
