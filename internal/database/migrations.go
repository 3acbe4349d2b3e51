package database

func (d *Database) RunMigrations() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS listings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT,
			property_type TEXT,
			price INTEGER,
			price_text TEXT,
			location TEXT,
			latitude REAL,
			longitude REAL,
			area INTEGER,
			bedrooms INTEGER,
			bathrooms INTEGER,
			amenities TEXT,
			created_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_type ON listings(property_type)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_coordinates ON listings(latitude, longitude)`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT,
			email TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT,
			property_type TEXT,
			zone TEXT,
			min_price INTEGER,
			max_price INTEGER,
			notify_email INTEGER,
			notify_push INTEGER,
			created_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_user ON alerts(user_id)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			listing_id INTEGER NOT NULL,
			message TEXT,
			read INTEGER DEFAULT 0,
			created_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := d.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
