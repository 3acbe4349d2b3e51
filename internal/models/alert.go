package models

import "time"

// Alert is a saved search bound to a user. Only type, zone and price
// bounds participate in matching; an empty field imposes no constraint.
// Alerts are created and deleted whole, never edited in place.
type Alert struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Zone        string    `json:"zone"`
	MinPrice    int64     `json:"min_price"`
	MaxPrice    int64     `json:"max_price"`
	NotifyEmail bool      `json:"notify_email"`
	NotifyPush  bool      `json:"notify_push"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserAlerts is one user's slice of the alert table, the unit the
// matching engine iterates over.
type UserAlerts struct {
	UserID string  `json:"user_id"`
	Alerts []Alert `json:"alerts"`
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ListingID int64     `json:"listing_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchResult ties one alert to one listing for a single matching pass.
// It is never persisted; it exists only to drive notification fan-out.
type MatchResult struct {
	AlertID   string `json:"alert_id"`
	UserID    string `json:"user_id"`
	ListingID int64  `json:"listing_id"`
}

// MatchReport summarizes a matching pass. MatchCount counts matches
// found, not notifications delivered; Failed records how many
// notification creations errored out.
type MatchReport struct {
	ListingID  int64         `json:"listing_id"`
	MatchCount int           `json:"match_count"`
	Matches    []MatchResult `json:"matches"`
	Notified   int           `json:"notified"`
	Failed     int           `json:"failed"`
}
