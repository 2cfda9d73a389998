package models

import "time"

// Statuts possibles d'une commande. Aucune étape de paiement n'existe dans
// cette itération : une commande est toujours créée "unpaid".
const (
	OrderUnpaid = "unpaid"
	OrderPaid   = "paid"
)

type Order struct {
	ID         int64       `json:"order_id"`
	UserID     int64       `json:"user_id"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `json:"order_status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	Products   []OrderLine `json:"products"`
}

// OrderLine est une ligne de commande. Le prix est copié au moment de l'achat :
// un changement de prix ultérieur ne modifie pas l'historique des commandes.
type OrderLine struct {
	OrderID    int64   `json:"order_id"`
	ProductID  int64   `json:"product_id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Name       string  `json:"name"`
	ImageURL   string  `json:"image_url"`
	SellerName string  `json:"seller_name"`
}
