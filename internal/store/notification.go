package store

import (
	"context"
	"database/sql"
	"fmt"

	"brocante_back_end/internal/logger"
	"brocante_back_end/internal/models"
)

// ListAndMarkRead retourne les notifications du destinataire de la plus
// récente à la plus ancienne, puis marque comme lues toutes celles qui ne
// l'étaient pas encore, dans la même transaction. La réponse porte l'état de
// lecture d'AVANT le marquage : c'est la consultation de la liste qui vaut
// lecture, pas l'ouverture individuelle.
func ListAndMarkRead(ctx context.Context, db *sql.DB, userID int64) ([]models.Notification, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listAndMarkRead: begin: %v", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx,
		`SELECT notification_id, user_id, message, is_read, created_at
		 FROM notifications WHERE user_id = ?
		 ORDER BY created_at DESC, notification_id DESC`,
		userID)
	if err != nil {
		logger.Log.Errorw("échec lecture notifications", "user_id", userID, "error", err)
		return nil, fmt.Errorf("listAndMarkRead %d: %v", userID, err)
	}

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err = rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("listAndMarkRead %d: scan: %v", userID, err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("listAndMarkRead %d: %v", userID, err)
	}
	rows.Close()

	if _, err = tx.ExecContext(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE user_id = ? AND is_read = FALSE",
		userID); err != nil {
		return nil, fmt.Errorf("listAndMarkRead %d: mark read: %v", userID, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("listAndMarkRead %d: commit: %v", userID, err)
	}
	return notifications, nil
}
