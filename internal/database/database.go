package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"propmatch/server/internal/models"
)

var ErrNotFound = errors.New("record not found")

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// GetDB returns the underlying database connection
func (d *Database) GetDB() *sql.DB {
	return d.db
}

const listingColumns = `
        id,
        title,
        property_type,
        price,
        COALESCE(price_text, '') as price_text,
        location,
        latitude,
        longitude,
        COALESCE(area, 0) as area,
        bedrooms,
        bathrooms,
        COALESCE(amenities, '[]') as amenities,
        COALESCE(created_at, CURRENT_TIMESTAMP) as created_at
`

func (d *Database) GetAllListings() ([]models.Listing, error) {
	rows, err := d.db.Query(`SELECT ` + listingColumns + ` FROM listings ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanListings(rows)
}

func (d *Database) GetListingsByType(propertyType string) ([]models.Listing, error) {
	rows, err := d.db.Query(`SELECT `+listingColumns+` FROM listings WHERE property_type = ? ORDER BY id`, propertyType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanListings(rows)
}

func (d *Database) GetListing(id int64) (*models.Listing, error) {
	rows, err := d.db.Query(`SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, ErrNotFound
	}
	return &listings[0], nil
}

func (d *Database) CreateListing(l *models.Listing) (int64, error) {
	amenities, err := json.Marshal(l.Amenities)
	if err != nil {
		return 0, err
	}

	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	result, err := d.db.Exec(`
        INSERT INTO listings (
            title, property_type, price, price_text, location,
            latitude, longitude, area, bedrooms, bathrooms, amenities, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.Title,
		l.Type,
		l.Price,
		l.PriceText,
		l.Location,
		l.Latitude,
		l.Longitude,
		l.Area,
		l.Bedrooms,
		l.Bathrooms,
		string(amenities),
		l.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	l.ID = id
	return id, nil
}

func (d *Database) UpdateListing(l *models.Listing) error {
	amenities, err := json.Marshal(l.Amenities)
	if err != nil {
		return err
	}

	result, err := d.db.Exec(`
        UPDATE listings SET
            title = ?, property_type = ?, price = ?, price_text = ?, location = ?,
            latitude = ?, longitude = ?, area = ?, bedrooms = ?, bathrooms = ?, amenities = ?
        WHERE id = ?`,
		l.Title,
		l.Type,
		l.Price,
		l.PriceText,
		l.Location,
		l.Latitude,
		l.Longitude,
		l.Area,
		l.Bedrooms,
		l.Bathrooms,
		string(amenities),
		l.ID,
	)
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

func scanListings(rows *sql.Rows) ([]models.Listing, error) {
	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		var title, propertyType, priceText, location, amenities sql.NullString
		var createdAt sql.NullString
		var price, area, bedrooms, bathrooms sql.NullInt64
		var latitude, longitude sql.NullFloat64

		err := rows.Scan(
			&l.ID,
			&title,
			&propertyType,
			&price,
			&priceText,
			&location,
			&latitude,
			&longitude,
			&area,
			&bedrooms,
			&bathrooms,
			&amenities,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if title.Valid {
			l.Title = title.String
		}
		if propertyType.Valid {
			l.Type = propertyType.String
		}
		if priceText.Valid {
			l.PriceText = priceText.String
		}
		if location.Valid {
			l.Location = location.String
		}
		if price.Valid {
			l.Price = price.Int64
		}
		if area.Valid {
			l.Area = int(area.Int64)
		}
		if bedrooms.Valid {
			b := int(bedrooms.Int64)
			l.Bedrooms = &b
		}
		if bathrooms.Valid {
			b := int(bathrooms.Int64)
			l.Bathrooms = &b
		}
		if latitude.Valid {
			lat := latitude.Float64
			l.Latitude = &lat
		}
		if longitude.Valid {
			lng := longitude.Float64
			l.Longitude = &lng
		}
		if amenities.Valid && amenities.String != "" {
			if err := json.Unmarshal([]byte(amenities.String), &l.Amenities); err != nil {
				l.Amenities = nil
			}
		}
		if createdAt.Valid && createdAt.String != "" {
			if t, err := time.Parse(time.RFC3339, createdAt.String); err == nil {
				l.CreatedAt = t
			}
		}

		listings = append(listings, l)
	}
	return listings, rows.Err()
}
