package processor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"propmatch/server/config"
	"propmatch/server/internal/database"
	"propmatch/server/internal/matching"
	"propmatch/server/internal/models"
	"propmatch/server/internal/queue"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Setup test database connection
	db, err := database.NewTestDB()
	require.NoError(t, err)

	// Migrate the schema
	err = database.MigrateSchema(db)
	require.NoError(t, err)

	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.BatchProcessing.MaxRetries = 3
	cfg.BatchProcessing.MaxBatchSize = 100
	cfg.BatchProcessing.RetryDelay = 1
	return cfg
}

func TestNewBatchProcessor(t *testing.T) {
	db := setupTestDB(t)
	listingQueue := queue.NewListingQueue(10, logrus.New())
	cfg := testConfig()
	logger := logrus.New()

	p := NewBatchProcessor(db, listingQueue, cfg, logger)

	assert.NotNil(t, p)
	assert.Equal(t, db, p.db)
	assert.Equal(t, listingQueue, p.queue)
	assert.Equal(t, cfg, p.config)
	assert.Equal(t, logger, p.logger)
}

func TestBatchProcessingIntegration(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	logger := logrus.New()

	listingQueue := queue.NewListingQueue(cfg.BatchProcessing.MaxBatchSize, logger)
	p := NewBatchProcessor(db, listingQueue, cfg, logger)

	p.Start()
	defer p.Stop()
	listingQueue.Start()
	defer listingQueue.Close()

	testListings := []*models.Listing{
		{
			Title:    "Ingest Casa 1",
			Type:     models.TypeHouse,
			Price:    400_000_000,
			Location: "Medellin",
		},
		{
			Title:    "Ingest Casa 2",
			Type:     models.TypeHouse,
			Price:    500_000_000,
			Location: "Envigado",
		},
	}

	err := listingQueue.Push(testListings)
	require.NoError(t, err)

	// Allow time for processing
	time.Sleep(500 * time.Millisecond)

	// Verify listings were stored
	for _, expected := range testListings {
		var stored models.Listing
		result := db.Where("title = ?", expected.Title).First(&stored)
		assert.NoError(t, result.Error)
		assert.Equal(t, expected.Price, stored.Price)
	}
}

type recordingUserStore struct {
	users []models.UserAlerts
}

func (s *recordingUserStore) GetAllUsersWithAlerts() ([]models.UserAlerts, error) {
	return s.users, nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	created []string
	fail    bool
}

func (n *recordingNotifier) CreateNotification(userID string, listingID int64, message string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return "", errors.New("notification store down")
	}
	n.created = append(n.created, userID)
	return "notif", nil
}

func TestBatchProcessor_RunsMatchingAfterStore(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	logger := logrus.New()

	userStore := &recordingUserStore{
		users: []models.UserAlerts{
			{UserID: "user-1", Alerts: []models.Alert{{ID: "alert-1", Type: models.TypeFarm}}},
		},
	}
	notifier := &recordingNotifier{}
	engine := matching.NewEngine(userStore, notifier, true, logger)

	listingQueue := queue.NewListingQueue(cfg.BatchProcessing.MaxBatchSize, logger)
	p := NewBatchProcessor(db, listingQueue, cfg, logger)
	p.SetMatchingEngine(engine)

	p.Start()
	defer p.Stop()
	listingQueue.Start()
	defer listingQueue.Close()

	err := listingQueue.Push([]*models.Listing{
		{Title: "Finca cafetera", Type: models.TypeFarm, Location: "Rionegro"},
	})
	require.NoError(t, err)

	time.Sleep(500 * time.Millisecond)

	notifier.mu.Lock()
	assert.Equal(t, []string{"user-1"}, notifier.created)
	notifier.mu.Unlock()
}
