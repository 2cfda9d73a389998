package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"brocante_back_end/internal/logger"
	"brocante_back_end/internal/models"
)

// AddToCart ajoute un article au panier. Si l'article y figure déjà, les
// quantités sont fusionnées. On ne peut pas mettre son propre article, ni un
// article déjà vendu, dans son panier.
func AddToCart(ctx context.Context, db *sql.DB, userID, productID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("addToCart: begin: %v", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var createdBy int64
	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT created_by, status FROM products WHERE product_id = ?",
		productID).Scan(&createdBy, &status)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return err
	}
	if err != nil {
		return fmt.Errorf("addToCart: lookup: %v", err)
	}
	if createdBy == userID {
		err = ErrOwnProduct
		return err
	}
	if status == models.ProductSold {
		err = ErrProductSold
		return err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE shopping_cart SET quantity = quantity + ? WHERE user_id = ? AND product_id = ?",
		quantity, userID, productID)
	if err != nil {
		return fmt.Errorf("addToCart: merge: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("addToCart: %v", err)
	}
	if affected == 0 {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO shopping_cart (user_id, product_id, quantity) VALUES (?, ?, ?)",
			userID, productID, quantity); err != nil {
			return fmt.Errorf("addToCart: insert: %v", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("addToCart: commit: %v", err)
	}
	return nil
}

// UpdateCartEntry change la quantité d'une ligne du panier de userID
func UpdateCartEntry(ctx context.Context, db *sql.DB, userID, cartID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	res, err := db.ExecContext(ctx,
		"UPDATE shopping_cart SET quantity = ? WHERE cart_id = ? AND user_id = ?",
		quantity, cartID, userID)
	if err != nil {
		logger.Log.Errorw("échec mise à jour panier", "cart_id", cartID, "error", err)
		return fmt.Errorf("updateCartEntry %d: %v", cartID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updateCartEntry %d: %v", cartID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveCartEntry supprime une ligne du panier de userID
func RemoveCartEntry(ctx context.Context, db *sql.DB, userID, cartID int64) error {
	res, err := db.ExecContext(ctx,
		"DELETE FROM shopping_cart WHERE cart_id = ? AND user_id = ?",
		cartID, userID)
	if err != nil {
		logger.Log.Errorw("échec suppression ligne panier", "cart_id", cartID, "error", err)
		return fmt.Errorf("removeCartEntry %d: %v", cartID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("removeCartEntry %d: %v", cartID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCart retourne le panier de userID enrichi des infos article et vendeur,
// de l'ajout le plus récent au plus ancien
func ListCart(ctx context.Context, db *sql.DB, userID int64) ([]models.CartItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT sc.cart_id, sc.quantity, sc.added_at,
		        p.product_id, p.name, p.price, p.description, p.image_url, p.status,
		        u.username AS seller, u.user_id AS seller_id
		 FROM shopping_cart sc
		 JOIN products p ON sc.product_id = p.product_id
		 JOIN users u ON p.created_by = u.user_id
		 WHERE sc.user_id = ?
		 ORDER BY sc.added_at DESC, sc.cart_id DESC`,
		userID)
	if err != nil {
		logger.Log.Errorw("échec lecture panier", "user_id", userID, "error", err)
		return nil, fmt.Errorf("listCart %d: %v", userID, err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var it models.CartItem
		if err := rows.Scan(&it.CartID, &it.Quantity, &it.AddedAt,
			&it.ProductID, &it.Name, &it.Price, &it.Description, &it.ImageURL, &it.Status,
			&it.Seller, &it.SellerID); err != nil {
			return nil, fmt.Errorf("listCart %d: scan: %v", userID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listCart %d: %v", userID, err)
	}
	return items, nil
}
