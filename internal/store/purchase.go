package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"brocante_back_end/internal/logger"
	"brocante_back_end/internal/models"
)

// PurchaseItem est une demande d'achat : un article, une quantité, et
// éventuellement la ligne de panier dont elle provient.
type PurchaseItem struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	CartID    *int64 `json:"cart_id,omitempty"`
}

// Purchase convertit une liste de demandes d'achat en exactement une commande
// avec une ligne par demande, le tout dans une seule transaction :
// commande + lignes + passage des articles à "sold" + notifications vendeurs
// + nettoyage du panier, ou rien du tout en cas d'erreur.
func Purchase(ctx context.Context, db *sql.DB, buyerID int64, items []PurchaseItem) (int64, error) {
	if err := validateItems(items); err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("échec ouverture transaction achat", "buyer_id", buyerID, "error", err)
		return 0, fmt.Errorf("purchase: begin: %v", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	orderID, err := purchaseTx(ctx, tx, buyerID, items)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		logger.Log.Errorw("échec commit achat", "buyer_id", buyerID, "error", err)
		return 0, fmt.Errorf("purchase: commit: %v", err)
	}

	logger.Log.Infow("achat validé", "order_id", orderID, "buyer_id", buyerID, "items", len(items))
	return orderID, nil
}

// PurchaseFromCart résout une sélection de lignes du panier de l'acheteur en
// demandes d'achat, puis exécute le même flux que Purchase, dans la même
// transaction.
func PurchaseFromCart(ctx context.Context, db *sql.DB, buyerID int64, cartIDs []int64) (int64, error) {
	if len(cartIDs) == 0 {
		return 0, ErrInvalidPurchase
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("échec ouverture transaction achat panier", "buyer_id", buyerID, "error", err)
		return 0, fmt.Errorf("purchaseFromCart: begin: %v", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	items, err := cartSelection(ctx, tx, buyerID, cartIDs)
	if err != nil {
		return 0, err
	}

	orderID, err := purchaseTx(ctx, tx, buyerID, items)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		logger.Log.Errorw("échec commit achat panier", "buyer_id", buyerID, "error", err)
		return 0, fmt.Errorf("purchaseFromCart: commit: %v", err)
	}

	logger.Log.Infow("achat panier validé", "order_id", orderID, "buyer_id", buyerID, "items", len(items))
	return orderID, nil
}

func validateItems(items []PurchaseItem) error {
	if len(items) == 0 {
		return ErrInvalidPurchase
	}
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity < 1 {
			return ErrInvalidPurchase
		}
	}
	return nil
}

// cartSelection charge les lignes de panier sélectionnées, restreintes à
// l'acheteur. Tout identifiant manquant ou étranger invalide la sélection.
func cartSelection(ctx context.Context, tx *sql.Tx, buyerID int64, cartIDs []int64) ([]PurchaseItem, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cartIDs)), ",")
	args := make([]any, 0, len(cartIDs)+1)
	for _, id := range cartIDs {
		args = append(args, id)
	}
	args = append(args, buyerID)

	rows, err := tx.QueryContext(ctx,
		"SELECT cart_id, product_id, quantity FROM shopping_cart WHERE cart_id IN ("+placeholders+") AND user_id = ?",
		args...)
	if err != nil {
		return nil, fmt.Errorf("cartSelection: %v", err)
	}
	defer rows.Close()

	items := []PurchaseItem{}
	for rows.Next() {
		var it PurchaseItem
		var cartID int64
		if err := rows.Scan(&cartID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("cartSelection: scan: %v", err)
		}
		it.CartID = &cartID
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cartSelection: %v", err)
	}

	if len(items) != len(cartIDs) {
		return nil, ErrNotFound
	}
	return items, nil
}

// article chargé avec son vendeur, pour le calcul du total et les notifications
type purchasedProduct struct {
	id       int64
	name     string
	price    float64
	sellerID int64
	seller   string
}

func purchaseTx(ctx context.Context, tx *sql.Tx, buyerID int64, items []PurchaseItem) (int64, error) {
	// 1. Résolution du nom de l'acheteur
	var buyerName string
	err := tx.QueryRowContext(ctx,
		"SELECT username FROM users WHERE user_id = ?", buyerID).Scan(&buyerName)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrBuyerNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("purchase: buyer lookup: %v", err)
	}

	// 2. Chargement groupé des articles référencés, avec leur vendeur
	products, err := loadProducts(ctx, tx, items)
	if err != nil {
		return 0, err
	}

	// 3. Total calculé côté serveur, jamais depuis le client
	var total float64
	for _, it := range items {
		total += products[it.ProductID].price * float64(it.Quantity)
	}

	// 4. Création de la commande — toujours "unpaid" : aucune étape de
	// paiement n'existe dans cette itération
	res, err := tx.ExecContext(ctx,
		"INSERT INTO orders (user_id, total_price, order_status) VALUES (?, ?, ?)",
		buyerID, total, models.OrderUnpaid)
	if err != nil {
		return 0, fmt.Errorf("purchase: insert order: %v", err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("purchase: order id: %v", err)
	}

	// 5. Lignes de commande, passage à "sold", nettoyage du panier
	sellerOrder := []int64{}
	sellerLines := map[int64][]string{}

	for _, it := range items {
		p := products[it.ProductID]

		// Le prix est copié, pas référencé
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO order_products (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)",
			orderID, it.ProductID, it.Quantity, p.price); err != nil {
			return 0, fmt.Errorf("purchase: insert line: %v", err)
		}

		// Premier committeur gagnant : le passage à "sold" est conditionnel,
		// zéro ligne touchée = l'article est parti entre temps
		upd, err := tx.ExecContext(ctx,
			"UPDATE products SET status = ? WHERE product_id = ? AND status = ?",
			models.ProductSold, it.ProductID, models.ProductAvailable)
		if err != nil {
			return 0, fmt.Errorf("purchase: mark sold: %v", err)
		}
		affected, err := upd.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("purchase: mark sold: %v", err)
		}
		if affected == 0 {
			logger.Log.Warnw("conflit d'achat, article déjà vendu",
				"product_id", it.ProductID, "buyer_id", buyerID)
			return 0, ErrProductSold
		}

		if it.CartID != nil {
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM shopping_cart WHERE cart_id = ? AND user_id = ?",
				*it.CartID, buyerID); err != nil {
				return 0, fmt.Errorf("purchase: clear cart: %v", err)
			}
		}

		if _, seen := sellerLines[p.sellerID]; !seen {
			sellerOrder = append(sellerOrder, p.sellerID)
		}
		sellerLines[p.sellerID] = append(sellerLines[p.sellerID],
			fmt.Sprintf("\"%s\" x%d (%.2f)", p.name, it.Quantity, p.price*float64(it.Quantity)))
	}

	// 6. Une notification par vendeur distinct, articles agrégés
	for _, sellerID := range sellerOrder {
		message := fmt.Sprintf("L'utilisateur %s a acheté : %s — commande #%d",
			buyerName, strings.Join(sellerLines[sellerID], ", "), orderID)
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO notifications (user_id, message) VALUES (?, ?)",
			sellerID, message); err != nil {
			return 0, fmt.Errorf("purchase: insert notification: %v", err)
		}
	}

	return orderID, nil
}

func loadProducts(ctx context.Context, tx *sql.Tx, items []PurchaseItem) (map[int64]purchasedProduct, error) {
	ids := []int64{}
	seen := map[int64]bool{}
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT p.product_id, p.name, p.price, p.created_by, u.username
		 FROM products p
		 JOIN users u ON p.created_by = u.user_id
		 WHERE p.product_id IN (`+placeholders+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("purchase: load products: %v", err)
	}
	defer rows.Close()

	products := map[int64]purchasedProduct{}
	for rows.Next() {
		var p purchasedProduct
		if err := rows.Scan(&p.id, &p.name, &p.price, &p.sellerID, &p.seller); err != nil {
			return nil, fmt.Errorf("purchase: load products: scan: %v", err)
		}
		products[p.id] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("purchase: load products: %v", err)
	}

	// Un décompte qui ne colle pas couvre les identifiants supprimés ou inventés
	if len(products) != len(ids) {
		return nil, ErrProductNotFound
	}
	return products, nil
}
