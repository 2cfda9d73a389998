package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"brocante_back_end/internal/logger"
	"brocante_back_end/internal/models"
)

// CreateUser insère un nouvel utilisateur et retourne son identifiant.
// L'unicité du nom repose sur la contrainte en base, pas sur une
// vérification préalable : deux inscriptions simultanées du même nom
// donnent un ErrDuplicateUser pour le perdant.
func CreateUser(ctx context.Context, db *sql.DB, username, passwordHash string) (int64, error) {
	res, err := db.ExecContext(ctx,
		"INSERT INTO users (username, password) VALUES (?, ?)",
		username, passwordHash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateUser
		}
		logger.Log.Errorw("échec création utilisateur", "username", username, "error", err)
		return 0, fmt.Errorf("createUser: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("createUser: %v", err)
	}
	return id, nil
}

// GetUserByUsername retourne l'utilisateur correspondant, ErrNotFound sinon
func GetUserByUsername(ctx context.Context, db *sql.DB, username string) (models.User, error) {
	var u models.User
	err := db.QueryRowContext(ctx,
		"SELECT user_id, username, password, created_at FROM users WHERE username = ?",
		username).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("getUserByUsername %s: %v", username, err)
	}
	return u, nil
}

// GetUserByID retourne l'utilisateur correspondant, ErrNotFound sinon
func GetUserByID(ctx context.Context, db *sql.DB, userID int64) (models.User, error) {
	var u models.User
	err := db.QueryRowContext(ctx,
		"SELECT user_id, username, password, created_at FROM users WHERE user_id = ?",
		userID).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("getUserByID %d: %v", userID, err)
	}
	return u, nil
}

// UpdatePassword remplace le hash du mot de passe
func UpdatePassword(ctx context.Context, db *sql.DB, userID int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		"UPDATE users SET password = ? WHERE user_id = ?",
		passwordHash, userID)
	if err != nil {
		logger.Log.Errorw("échec mise à jour mot de passe", "user_id", userID, "error", err)
		return fmt.Errorf("updatePassword %d: %v", userID, err)
	}
	return nil
}
