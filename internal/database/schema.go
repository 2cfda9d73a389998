package database

import (
	"database/sql"
	"fmt"

	"brocante_back_end/internal/logger"
)

// Création des tables au démarrage si elles n'existent pas encore.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		description TEXT,
		image_url VARCHAR(255),
		status ENUM('available','sold') NOT NULL DEFAULT 'available',
		created_by INT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (created_by) REFERENCES users(user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS shopping_cart (
		cart_id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		product_id INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_user_product (user_id, product_id),
		FOREIGN KEY (user_id) REFERENCES users(user_id),
		FOREIGN KEY (product_id) REFERENCES products(product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		total_price DECIMAL(10,2) NOT NULL,
		order_status ENUM('unpaid','paid') NOT NULL DEFAULT 'unpaid',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_products (
		id INT AUTO_INCREMENT PRIMARY KEY,
		order_id INT NOT NULL,
		product_id INT NOT NULL,
		quantity INT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(order_id),
		FOREIGN KEY (product_id) REFERENCES products(product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		notification_id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		message TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(user_id)
	)`,
}

// InitSchema crée le schéma si nécessaire
func InitSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			logger.Log.Errorw("❌ Échec initialisation schéma", "error", err)
			return fmt.Errorf("initSchema: %v", err)
		}
	}
	logger.Log.Info("✅ Schéma MySQL initialisé")
	return nil
}
