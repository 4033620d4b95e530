package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/database"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
)

var notificationColumns = []string{
	"id", "ad_id", "kind", "title", "price", "previous_price", "url", "image_url", "created_at",
}

func newNotificationRepo(t *testing.T) (*database.NotificationRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return database.NewNotificationRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

func TestNotificationRepository_Create(t *testing.T) {
	t.Parallel()

	repo, mock := newNotificationRepo(t)
	previous := 1900.0
	n := &domain.Notification{
		AdID:          7,
		Kind:          domain.NotificationPriceDrop,
		Title:         "RTX 3090",
		Price:         1700,
		PreviousPrice: &previous,
		URL:           "https://www.olx.com.br/ad-1",
		CreatedAt:     testNow,
	}

	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(int64(7), "price_drop", "RTX 3090", 1700.0, 1900.0, n.URL, "", testNow).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	require.NoError(t, repo.Create(context.Background(), n))
	assert.Equal(t, int64(3), n.ID)
	expectationsMet(t, mock)
}

func TestNotificationRepository_Create_Error(t *testing.T) {
	t.Parallel()

	repo, mock := newNotificationRepo(t)

	mock.ExpectQuery("INSERT INTO notifications").WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), &domain.Notification{Kind: domain.NotificationNewDeal})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert notification")
	expectationsMet(t, mock)
}

func TestNotificationRepository_List(t *testing.T) {
	t.Parallel()

	repo, mock := newNotificationRepo(t)

	mock.ExpectQuery("SELECT .+ FROM notifications ORDER BY created_at DESC, id DESC LIMIT \\$1").
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows(notificationColumns).
			AddRow(int64(2), int64(7), "price_drop", "RTX 3090", 1700.0, 1900.0, "u", "", testNow).
			AddRow(int64(1), int64(7), "new_deal", "RTX 3090", 1900.0, nil, "u", "", testNow))

	got, err := repo.List(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.NotificationPriceDrop, got[0].Kind)
	require.NotNil(t, got[0].PreviousPrice)
	assert.InDelta(t, 1900, *got[0].PreviousPrice, 1e-9)
	assert.Nil(t, got[1].PreviousPrice)
	expectationsMet(t, mock)
}

func TestNotificationRepository_List_Empty(t *testing.T) {
	t.Parallel()

	repo, mock := newNotificationRepo(t)

	mock.ExpectQuery("SELECT .+ FROM notifications").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(notificationColumns))

	got, err := repo.List(context.Background(), 10)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	expectationsMet(t, mock)
}
