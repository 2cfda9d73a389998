package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"brocante_back_end/internal/logger"
	"brocante_back_end/internal/models"
)

// CreateProduct insère une annonce (déjà passée par la modération) et
// retourne son identifiant
func CreateProduct(ctx context.Context, db *sql.DB, p models.Product) (int64, error) {
	res, err := db.ExecContext(ctx,
		"INSERT INTO products (name, price, description, image_url, created_by) VALUES (?, ?, ?, ?, ?)",
		p.Name, p.Price, p.Description, p.ImageURL, p.CreatedBy)
	if err != nil {
		logger.Log.Errorw("échec création article", "name", p.Name, "error", err)
		return 0, fmt.Errorf("createProduct: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("createProduct: %v", err)
	}
	return id, nil
}

// GetProduct retourne une annonce par identifiant, ErrNotFound sinon
func GetProduct(ctx context.Context, db *sql.DB, productID int64) (models.Product, error) {
	var p models.Product
	err := db.QueryRowContext(ctx,
		`SELECT product_id, name, price, description, image_url, status, created_by, created_at, updated_at
		 FROM products WHERE product_id = ?`,
		productID).Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ImageURL, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("getProduct %d: %v", productID, err)
	}
	return p, nil
}

// UpdateProduct modifie une annonce, uniquement si elle appartient à ownerID
func UpdateProduct(ctx context.Context, db *sql.DB, ownerID int64, p models.Product) error {
	res, err := db.ExecContext(ctx,
		`UPDATE products SET name = ?, price = ?, description = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE product_id = ? AND created_by = ?`,
		p.Name, p.Price, p.Description, p.ImageURL, p.ID, ownerID)
	if err != nil {
		logger.Log.Errorw("échec mise à jour article", "product_id", p.ID, "error", err)
		return fmt.Errorf("updateProduct %d: %v", p.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updateProduct %d: %v", p.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct supprime physiquement une annonce appartenant à ownerID
func DeleteProduct(ctx context.Context, db *sql.DB, ownerID, productID int64) error {
	res, err := db.ExecContext(ctx,
		"DELETE FROM products WHERE product_id = ? AND created_by = ?",
		productID, ownerID)
	if err != nil {
		logger.Log.Errorw("échec suppression article", "product_id", productID, "error", err)
		return fmt.Errorf("deleteProduct %d: %v", productID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleteProduct %d: %v", productID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByOwner retourne les annonces de l'utilisateur, vendues comprises,
// de la plus récente à la plus ancienne
func ListByOwner(ctx context.Context, db *sql.DB, ownerID int64) ([]models.Product, error) {
	return queryProducts(ctx, db,
		`SELECT product_id, name, price, description, image_url, status, created_by, created_at, updated_at
		 FROM products WHERE created_by = ? ORDER BY product_id DESC`,
		ownerID)
}

// SearchByOwner filtre les annonces de l'utilisateur par sous-chaîne sur le
// nom ou la description
func SearchByOwner(ctx context.Context, db *sql.DB, ownerID int64, query string) ([]models.Product, error) {
	like := "%" + query + "%"
	return queryProducts(ctx, db,
		`SELECT product_id, name, price, description, image_url, status, created_by, created_at, updated_at
		 FROM products
		 WHERE created_by = ? AND (name LIKE ? OR description LIKE ?)
		 ORDER BY product_id DESC`,
		ownerID, like, like)
}

// ListOthers retourne les annonces encore disponibles des autres utilisateurs,
// avec le nom du vendeur
func ListOthers(ctx context.Context, db *sql.DB, userID int64) ([]models.Product, error) {
	return queryProductsWithSeller(ctx, db,
		`SELECT p.product_id, p.name, p.price, p.description, p.image_url, p.status, p.created_by, p.created_at, p.updated_at, u.username AS seller
		 FROM products p
		 JOIN users u ON p.created_by = u.user_id
		 WHERE p.created_by != ? AND p.status = ?
		 ORDER BY p.product_id DESC`,
		userID, models.ProductAvailable)
}

// SearchOthers filtre les annonces disponibles des autres utilisateurs par
// sous-chaîne sur le nom ou la description
func SearchOthers(ctx context.Context, db *sql.DB, userID int64, query string) ([]models.Product, error) {
	like := "%" + query + "%"
	return queryProductsWithSeller(ctx, db,
		`SELECT p.product_id, p.name, p.price, p.description, p.image_url, p.status, p.created_by, p.created_at, p.updated_at, u.username AS seller
		 FROM products p
		 JOIN users u ON p.created_by = u.user_id
		 WHERE p.created_by != ? AND p.status = ? AND (p.name LIKE ? OR p.description LIKE ?)
		 ORDER BY p.product_id DESC`,
		userID, models.ProductAvailable, like, like)
}

func queryProducts(ctx context.Context, db *sql.DB, query string, args ...any) ([]models.Product, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Log.Errorw("échec requête articles", "error", err)
		return nil, fmt.Errorf("queryProducts: %v", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ImageURL, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("queryProducts: scan: %v", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("queryProducts: %v", err)
	}
	return products, nil
}

func queryProductsWithSeller(ctx context.Context, db *sql.DB, query string, args ...any) ([]models.Product, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Log.Errorw("échec requête articles", "error", err)
		return nil, fmt.Errorf("queryProductsWithSeller: %v", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ImageURL, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt, &p.Seller); err != nil {
			return nil, fmt.Errorf("queryProductsWithSeller: scan: %v", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("queryProductsWithSeller: %v", err)
	}
	return products, nil
}
