package database

import (
	"time"

	"github.com/google/uuid"

	"propmatch/server/internal/models"
)

func (d *Database) CreateNotification(userID string, listingID int64, message string) (string, error) {
	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err := d.db.Exec(`
        INSERT INTO notifications (id, user_id, listing_id, message, read, created_at)
        VALUES (?, ?, ?, ?, 0, ?)`,
		id, userID, listingID, message, createdAt,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (d *Database) GetUserNotifications(userID string) ([]models.Notification, error) {
	rows, err := d.db.Query(`
        SELECT id, user_id, listing_id, message, read, COALESCE(created_at, '') as created_at
        FROM notifications
        WHERE user_id = ?
        ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var createdAt string
		err := rows.Scan(&n.ID, &n.UserID, &n.ListingID, &n.Message, &n.Read, &createdAt)
		if err != nil {
			return nil, err
		}
		if createdAt != "" {
			if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
				n.CreatedAt = t
			}
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (d *Database) MarkNotificationRead(userID, notificationID string) error {
	result, err := d.db.Exec(`
        UPDATE notifications SET read = 1
        WHERE user_id = ? AND id = ?`, userID, notificationID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) DeleteNotification(userID, notificationID string) error {
	result, err := d.db.Exec(`DELETE FROM notifications WHERE user_id = ? AND id = ?`, userID, notificationID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
