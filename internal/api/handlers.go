package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propmatch/server/config"
	"propmatch/server/internal/database"
	"propmatch/server/internal/geo"
	"propmatch/server/internal/matching"
	"propmatch/server/internal/models"
	"propmatch/server/internal/queue"
	"propmatch/server/internal/search"
)

type Handler struct {
	db          *database.Database
	logger      *logrus.Logger
	engine      *matching.Engine
	importQueue *queue.ListingQueue
}

func NewHandler(db *database.Database, engine *matching.Engine, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:     db,
		logger: logger,
		engine: engine,
	}
}

// SetImportQueue wires the bulk import endpoint to the ingest
// pipeline.
func (h *Handler) SetImportQueue(q *queue.ListingQueue) {
	h.importQueue = q
}

// ImportListings accepts a batch of listings from an external feed and
// hands them to the ingest pipeline. Storage, retries and alert
// matching all happen asynchronously.
func (h *Handler) ImportListings(c *gin.Context) {
	if h.importQueue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Import pipeline not available"})
		return
	}

	var listings []*models.Listing
	if err := c.ShouldBindJSON(&listings); err != nil {
		h.logger.WithError(err).Error("Failed to parse import batch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid import payload"})
		return
	}
	if len(listings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty import batch"})
		return
	}

	if err := h.importQueue.Push(listings); err != nil {
		h.logger.WithError(err).Error("Failed to enqueue import batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Import pipeline busy"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":   "Import batch accepted",
		"accepted": len(listings),
	})
}

// GetListings returns the listings matching the criteria carried in
// the query string. Predicate filtering runs first; when the query
// also carries a viewport, the filtered set is narrowed to the
// listings visible in it.
func (h *Handler) GetListings(c *gin.Context) {
	criteria := search.DecodeCriteria(c.Request.URL.Query())

	var listings []models.Listing
	var err error
	if criteria.Type != "" {
		listings, err = h.db.GetListingsByType(criteria.Type)
	} else {
		listings, err = h.db.GetAllListings()
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listings"})
		return
	}

	filtered := search.FilterAll(listings, criteria)
	if !criteria.Viewport.IsZero() {
		filtered = geo.Visible(filtered, criteria.Viewport)
	}

	c.JSON(http.StatusOK, filtered)
}

// CreateListing stores a new listing and then runs alert matching for
// it. A matching failure is logged and never surfaces to the caller;
// the listing was already created.
func (h *Handler) CreateListing(c *gin.Context) {
	var listing models.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		h.logger.WithError(err).Error("Failed to parse listing")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing payload"})
		return
	}

	if _, err := h.db.CreateListing(&listing); err != nil {
		h.logger.WithError(err).Error("Failed to create listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	matchCount := h.runMatching(&listing, matching.TriggerCreate)

	c.JSON(http.StatusCreated, gin.H{
		"listing": listing,
		"matches": matchCount,
	})
}

// UpdateListing replaces a stored listing and re-runs alert matching
// under the update trigger, which the renotify policy may skip.
func (h *Handler) UpdateListing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	var listing models.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		h.logger.WithError(err).Error("Failed to parse listing")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing payload"})
		return
	}
	listing.ID = id

	if err := h.db.UpdateListing(&listing); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to update listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}

	matchCount := h.runMatching(&listing, matching.TriggerUpdate)

	c.JSON(http.StatusOK, gin.H{
		"listing": listing,
		"matches": matchCount,
	})
}

// runMatching fires the matching engine as a side effect of a listing
// write. It reports the match count for the response body and swallows
// errors, logging them server-side.
func (h *Handler) runMatching(listing *models.Listing, trigger matching.Trigger) int {
	if h.engine == nil {
		return 0
	}
	report, err := h.engine.RunMatching(listing, trigger)
	if err != nil {
		h.logger.WithError(err).WithField("listing_id", listing.ID).Error("Alert matching failed")
		return 0
	}
	return report.MatchCount
}

// GetCities returns the supported city catalogue for the map view.
func (h *Handler) GetCities(c *gin.Context) {
	c.JSON(http.StatusOK, config.SupportedCities)
}

func (h *Handler) GetAlerts(c *gin.Context) {
	userID := c.Param("user_id")
	alerts, err := h.db.GetUserAlerts(userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get alerts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get alerts"})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *Handler) AddAlert(c *gin.Context) {
	userID := c.Param("user_id")

	var alert models.Alert
	if err := c.ShouldBindJSON(&alert); err != nil {
		h.logger.WithError(err).Error("Failed to parse alert")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert payload"})
		return
	}

	if err := h.db.AddAlert(userID, &alert); err != nil {
		h.logger.WithError(err).Error("Failed to add alert")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add alert"})
		return
	}

	c.JSON(http.StatusCreated, alert)
}

func (h *Handler) RemoveAlert(c *gin.Context) {
	userID := c.Param("user_id")
	alertID := c.Param("alert_id")

	if err := h.db.RemoveAlert(userID, alertID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to remove alert")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove alert"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Alert removed"})
}

func (h *Handler) GetNotifications(c *gin.Context) {
	userID := c.Param("user_id")
	notifications, err := h.db.GetUserNotifications(userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	userID := c.Param("user_id")
	notificationID := c.Param("id")

	if err := h.db.MarkNotificationRead(userID, notificationID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to mark notification read")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Notification marked as read"})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	userID := c.Param("user_id")
	notificationID := c.Param("id")

	if err := h.db.DeleteNotification(userID, notificationID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to delete notification")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Notification deleted"})
}
