package database

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propmatch/server/internal/models"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	// A named in-memory database so every connection in the pool sees
	// the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := NewDatabase(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())
	return db
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestCreateAndGetListings(t *testing.T) {
	db := newTestDatabase(t)

	listing := &models.Listing{
		Title:     "Lote campestre",
		Type:      models.TypeLot,
		Price:     150_000_000,
		Location:  "Rionegro, Antioquia",
		Latitude:  floatPtr(6.1536),
		Longitude: floatPtr(-75.3743),
		Area:      2400,
		Amenities: []string{"water", "road access"},
	}

	id, err := db.CreateListing(listing)
	require.NoError(t, err)
	assert.Equal(t, id, listing.ID)

	listings, err := db.GetAllListings()
	require.NoError(t, err)
	require.Len(t, listings, 1)

	stored := listings[0]
	assert.Equal(t, "Lote campestre", stored.Title)
	assert.Equal(t, models.TypeLot, stored.Type)
	assert.Equal(t, int64(150_000_000), stored.Price)
	assert.Equal(t, []string{"water", "road access"}, stored.Amenities)
	require.NotNil(t, stored.Latitude)
	assert.InDelta(t, 6.1536, *stored.Latitude, 1e-9)
	assert.Nil(t, stored.Bedrooms)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestGetListingsByType(t *testing.T) {
	db := newTestDatabase(t)

	_, err := db.CreateListing(&models.Listing{Title: "Lote", Type: models.TypeLot})
	require.NoError(t, err)
	_, err = db.CreateListing(&models.Listing{Title: "Apto", Type: models.TypeApartment, Bedrooms: intPtr(3)})
	require.NoError(t, err)

	listings, err := db.GetListingsByType(models.TypeApartment)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Apto", listings[0].Title)
	require.NotNil(t, listings[0].Bedrooms)
	assert.Equal(t, 3, *listings[0].Bedrooms)
}

func TestGetListing(t *testing.T) {
	db := newTestDatabase(t)

	id, err := db.CreateListing(&models.Listing{Title: "Casa", Type: models.TypeHouse})
	require.NoError(t, err)

	listing, err := db.GetListing(id)
	require.NoError(t, err)
	assert.Equal(t, "Casa", listing.Title)

	_, err = db.GetListing(id + 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateListing(t *testing.T) {
	db := newTestDatabase(t)

	listing := &models.Listing{Title: "Casa", Type: models.TypeHouse, Price: 400_000_000}
	_, err := db.CreateListing(listing)
	require.NoError(t, err)

	listing.Price = 380_000_000
	require.NoError(t, db.UpdateListing(listing))

	stored, err := db.GetListing(listing.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(380_000_000), stored.Price)

	missing := &models.Listing{ID: 9999, Title: "Ghost"}
	assert.ErrorIs(t, db.UpdateListing(missing), ErrNotFound)
}

func TestAlertLifecycle(t *testing.T) {
	db := newTestDatabase(t)

	alert := &models.Alert{
		Name:     "Lotes en Rionegro",
		Type:     models.TypeLot,
		Zone:     "Rionegro",
		MinPrice: 100_000_000,
		MaxPrice: 200_000_000,
	}
	require.NoError(t, db.AddAlert("user-1", alert))
	assert.NotEmpty(t, alert.ID)

	alerts, err := db.GetUserAlerts("user-1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, alert.ID, alerts[0].ID)
	assert.Equal(t, "Lotes en Rionegro", alerts[0].Name)
	assert.Equal(t, int64(200_000_000), alerts[0].MaxPrice)

	require.NoError(t, db.RemoveAlert("user-1", alert.ID))
	assert.ErrorIs(t, db.RemoveAlert("user-1", alert.ID), ErrNotFound)

	alerts, err = db.GetUserAlerts("user-1")
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestGetAllUsersWithAlerts(t *testing.T) {
	db := newTestDatabase(t)

	first := &models.Alert{
		Name:      "Lotes",
		Type:      models.TypeLot,
		CreatedAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	second := &models.Alert{
		Name:      "Apartamentos",
		Type:      models.TypeApartment,
		CreatedAt: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.AddAlert("user-1", first))
	require.NoError(t, db.AddAlert("user-1", second))
	require.NoError(t, db.AddAlert("user-2", &models.Alert{Name: "Fincas", Type: models.TypeFarm}))

	users, err := db.GetAllUsersWithAlerts()
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "user-1", users[0].UserID)
	require.Len(t, users[0].Alerts, 2)
	assert.Equal(t, "Lotes", users[0].Alerts[0].Name)
	assert.Equal(t, "Apartamentos", users[0].Alerts[1].Name)

	assert.Equal(t, "user-2", users[1].UserID)
	require.Len(t, users[1].Alerts, 1)
}

func TestNotificationLifecycle(t *testing.T) {
	db := newTestDatabase(t)

	id, err := db.CreateNotification("user-1", 42, "New listing matches your alert")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	notifications, err := db.GetUserNotifications("user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, id, notifications[0].ID)
	assert.Equal(t, int64(42), notifications[0].ListingID)
	assert.False(t, notifications[0].Read)

	require.NoError(t, db.MarkNotificationRead("user-1", id))
	notifications, err = db.GetUserNotifications("user-1")
	require.NoError(t, err)
	assert.True(t, notifications[0].Read)

	// Wrong owner never sees or touches it
	assert.ErrorIs(t, db.MarkNotificationRead("user-2", id), ErrNotFound)

	require.NoError(t, db.DeleteNotification("user-1", id))
	assert.ErrorIs(t, db.DeleteNotification("user-1", id), ErrNotFound)
}
