package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
)

const (
	notificationSelectColumns = `id, ad_id, kind, title, price, previous_price, url, image_url, created_at`
	defaultNotificationLimit  = 100
)

// NotificationRepository stores dispatched deal notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create stores n and sets its ID.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (ad_id, kind, title, price, previous_price, url, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		n.AdID, string(n.Kind), n.Title, n.Price, n.PreviousPrice, n.URL, n.ImageURL, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// List returns the most recent notifications first.
func (r *NotificationRepository) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	query := `SELECT ` + notificationSelectColumns + ` FROM notifications ORDER BY created_at DESC, id DESC LIMIT $1`

	var out []domain.Notification
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if out == nil {
		out = []domain.Notification{}
	}
	return out, nil
}
