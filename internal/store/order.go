package store

import (
	"context"
	"database/sql"
	"fmt"

	"brocante_back_end/internal/logger"
	"brocante_back_end/internal/models"
)

// ListOrdersByBuyer retourne l'historique de commandes de l'acheteur, de la
// plus récente à la plus ancienne, chaque commande jointe à ses lignes avec
// le prix enregistré au moment de l'achat.
func ListOrdersByBuyer(ctx context.Context, db *sql.DB, buyerID int64) ([]models.Order, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT order_id, user_id, order_status, total_price, created_at, updated_at
		 FROM orders WHERE user_id = ?
		 ORDER BY created_at DESC, order_id DESC`,
		buyerID)
	if err != nil {
		logger.Log.Errorw("échec lecture commandes", "buyer_id", buyerID, "error", err)
		return nil, fmt.Errorf("listOrdersByBuyer %d: %v", buyerID, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("listOrdersByBuyer %d: scan: %v", buyerID, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listOrdersByBuyer %d: %v", buyerID, err)
	}

	for i := range orders {
		lines, err := orderLines(ctx, db, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Products = lines
	}
	return orders, nil
}

func orderLines(ctx context.Context, db *sql.DB, orderID int64) ([]models.OrderLine, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT op.order_id, op.product_id, op.quantity, op.price,
		        p.name, p.image_url, u.username AS seller_name
		 FROM order_products op
		 JOIN products p ON op.product_id = p.product_id
		 JOIN users u ON p.created_by = u.user_id
		 WHERE op.order_id = ?
		 ORDER BY op.id`,
		orderID)
	if err != nil {
		logger.Log.Errorw("échec lecture lignes de commande", "order_id", orderID, "error", err)
		return nil, fmt.Errorf("orderLines %d: %v", orderID, err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.Quantity, &l.Price, &l.Name, &l.ImageURL, &l.SellerName); err != nil {
			return nil, fmt.Errorf("orderLines %d: scan: %v", orderID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orderLines %d: %v", orderID, err)
	}
	return lines, nil
}
