package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"propmatch/server/internal/models"
)

// GetAllUsersWithAlerts loads every user together with their saved
// alerts. The whole working set fits in memory at this deployment's
// scale, so no pagination.
func (d *Database) GetAllUsersWithAlerts() ([]models.UserAlerts, error) {
	rows, err := d.db.Query(`
        SELECT
            u.id,
            a.id,
            a.name,
            a.property_type,
            a.zone,
            a.min_price,
            a.max_price,
            a.notify_email,
            a.notify_push,
            COALESCE(a.created_at, '') as created_at
        FROM users u
        LEFT JOIN alerts a ON a.user_id = u.id
        ORDER BY u.id, a.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.UserAlerts
	byID := make(map[string]int)

	for rows.Next() {
		var userID string
		var alertID, name, propertyType, zone, createdAt sql.NullString
		var minPrice, maxPrice sql.NullInt64
		var notifyEmail, notifyPush sql.NullBool

		err := rows.Scan(
			&userID,
			&alertID,
			&name,
			&propertyType,
			&zone,
			&minPrice,
			&maxPrice,
			&notifyEmail,
			&notifyPush,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		idx, ok := byID[userID]
		if !ok {
			users = append(users, models.UserAlerts{UserID: userID})
			idx = len(users) - 1
			byID[userID] = idx
		}

		// LEFT JOIN row for a user without alerts
		if !alertID.Valid {
			continue
		}

		alert := models.Alert{
			ID:          alertID.String,
			Name:        name.String,
			Type:        propertyType.String,
			Zone:        zone.String,
			MinPrice:    minPrice.Int64,
			MaxPrice:    maxPrice.Int64,
			NotifyEmail: notifyEmail.Bool,
			NotifyPush:  notifyPush.Bool,
		}
		if createdAt.Valid && createdAt.String != "" {
			if t, err := time.Parse(time.RFC3339, createdAt.String); err == nil {
				alert.CreatedAt = t
			}
		}
		users[idx].Alerts = append(users[idx].Alerts, alert)
	}

	return users, rows.Err()
}

func (d *Database) GetUserAlerts(userID string) ([]models.Alert, error) {
	rows, err := d.db.Query(`
        SELECT id, name, property_type, zone, min_price, max_price,
               notify_email, notify_push, COALESCE(created_at, '') as created_at
        FROM alerts
        WHERE user_id = ?
        ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		var createdAt string
		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Type,
			&a.Zone,
			&a.MinPrice,
			&a.MaxPrice,
			&a.NotifyEmail,
			&a.NotifyPush,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}
		if createdAt != "" {
			if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
				a.CreatedAt = t
			}
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// AddAlert saves an alert for the user, generating its id when unset.
// The user row is created on demand so the UI can save alerts without
// a separate registration round-trip.
func (d *Database) AddAlert(userID string, alert *models.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}

	_, err := d.db.Exec(`INSERT OR IGNORE INTO users (id) VALUES (?)`, userID)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
        INSERT INTO alerts (
            id, user_id, name, property_type, zone,
            min_price, max_price, notify_email, notify_push, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		alert.ID,
		userID,
		alert.Name,
		alert.Type,
		alert.Zone,
		alert.MinPrice,
		alert.MaxPrice,
		alert.NotifyEmail,
		alert.NotifyPush,
		alert.CreatedAt.Format(time.RFC3339),
	)
	return err
}

func (d *Database) RemoveAlert(userID, alertID string) error {
	result, err := d.db.Exec(`DELETE FROM alerts WHERE user_id = ? AND id = ?`, userID, alertID)
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
