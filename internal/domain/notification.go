package domain

import "time"

// NotificationKind identifies what triggered a notification.
type NotificationKind string

// Notification kinds.
const (
	NotificationNewDeal   NotificationKind = "new_deal"
	NotificationPriceDrop NotificationKind = "price_drop"
	NotificationTest      NotificationKind = "test"
)

// Notification is a deal alert. PreviousPrice is only set for price drops.
type Notification struct {
	ID            int64            `db:"id"             json:"id"`
	AdID          int64            `db:"ad_id"          json:"adId"`
	Kind          NotificationKind `db:"kind"           json:"kind"`
	Title         string           `db:"title"          json:"title"`
	Price         float64          `db:"price"          json:"price"`
	PreviousPrice *float64         `db:"previous_price" json:"previousPrice,omitempty"`
	URL           string           `db:"url"            json:"url"`
	ImageURL      string           `db:"image_url"      json:"imageUrl"`
	CreatedAt     time.Time        `db:"created_at"     json:"createdAt"`
}
