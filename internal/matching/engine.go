package matching

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"propmatch/server/internal/models"
	"propmatch/server/internal/search"
)

// Trigger tells the engine why a listing is being matched.
type Trigger string

const (
	TriggerCreate Trigger = "create"
	TriggerUpdate Trigger = "update"
)

// UserAlertSource loads the full set of users with their saved alerts.
type UserAlertSource interface {
	GetAllUsersWithAlerts() ([]models.UserAlerts, error)
}

// NotificationCreator persists one notification for a user.
type NotificationCreator interface {
	CreateNotification(userID string, listingID int64, message string) (string, error)
}

// Engine evaluates saved alerts against a single listing and fans out
// one notification per match. It is stateless: every run loads a fresh
// snapshot of users and alerts and keeps no record of earlier passes,
// so matching the same listing twice notifies twice unless
// renotifyOnUpdate is off.
type Engine struct {
	users            UserAlertSource
	notifications    NotificationCreator
	renotifyOnUpdate bool
	logger           *logrus.Logger
}

func NewEngine(users UserAlertSource, notifications NotificationCreator, renotifyOnUpdate bool, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Engine{
		users:            users,
		notifications:    notifications,
		renotifyOnUpdate: renotifyOnUpdate,
		logger:           logger,
	}
}

// RunMatching evaluates every saved alert against the listing and
// creates one notification per match. Notification creations are
// issued concurrently; one failing does not stop the others. The only
// error returned is a failure to load users, which aborts the whole
// pass.
func (e *Engine) RunMatching(listing *models.Listing, trigger Trigger) (*models.MatchReport, error) {
	report := &models.MatchReport{
		ListingID: listing.ID,
		Matches:   []models.MatchResult{},
	}

	if trigger == TriggerUpdate && !e.renotifyOnUpdate {
		e.logger.WithField("listing_id", listing.ID).Debug("Skipping matching on update, re-notification disabled")
		return report, nil
	}

	users, err := e.users.GetAllUsersWithAlerts()
	if err != nil {
		return nil, fmt.Errorf("failed to load users with alerts: %w", err)
	}

	for _, user := range users {
		for i := range user.Alerts {
			alert := user.Alerts[i]
			if search.MatchesAlert(listing, &alert) {
				report.Matches = append(report.Matches, models.MatchResult{
					AlertID:   alert.ID,
					UserID:    user.UserID,
					ListingID: listing.ID,
				})
			}
		}
	}
	report.MatchCount = len(report.Matches)

	if report.MatchCount == 0 {
		e.logger.WithField("listing_id", listing.ID).Debug("No alerts matched listing")
		return report, nil
	}

	e.fanOut(listing, report)

	e.logger.WithFields(logrus.Fields{
		"listing_id":  listing.ID,
		"match_count": report.MatchCount,
		"notified":    report.Notified,
		"failed":      report.Failed,
	}).Info("Completed alert matching pass")

	return report, nil
}

// fanOut creates one notification per match, all concurrently, and
// waits for every outcome. A single creation failure is logged and
// counted without touching its siblings.
func (e *Engine) fanOut(listing *models.Listing, report *models.MatchReport) {
	message := notificationMessage(listing)

	var wg sync.WaitGroup
	outcomes := make(chan error, len(report.Matches))

	for _, match := range report.Matches {
		wg.Add(1)
		go func(match models.MatchResult) {
			defer wg.Done()
			_, err := e.notifications.CreateNotification(match.UserID, match.ListingID, message)
			if err != nil {
				e.logger.WithError(err).WithFields(logrus.Fields{
					"user_id":    match.UserID,
					"alert_id":   match.AlertID,
					"listing_id": match.ListingID,
				}).Error("Failed to create notification")
			}
			outcomes <- err
		}(match)
	}

	wg.Wait()
	close(outcomes)

	for err := range outcomes {
		if err != nil {
			report.Failed++
		} else {
			report.Notified++
		}
	}
}

func notificationMessage(l *models.Listing) string {
	return fmt.Sprintf("New listing matches your alert: %s in %s", l.Title, l.Location)
}
