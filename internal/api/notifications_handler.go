package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/notify"
)

const defaultNotificationLimit = 100

// NotificationStore lists recorded notifications.
type NotificationStore interface {
	List(ctx context.Context, limit int) ([]domain.Notification, error)
}

// TestNotifier sends a manual notification.
type TestNotifier interface {
	Test(ctx context.Context, req notify.TestRequest) (domain.Notification, error)
}

type notificationsHandler struct {
	store    NotificationStore
	notifier TestNotifier
}

func newNotificationsHandler(store NotificationStore, notifier TestNotifier) *notificationsHandler {
	return &notificationsHandler{store: store, notifier: notifier}
}

type testNotificationRequest struct {
	AdID  int64   `binding:"required" json:"adId"`
	Title string  `binding:"required" json:"title"`
	Price float64 `binding:"required" json:"price"`
	URL   string  `binding:"required" json:"url"`
}

// List returns recorded notifications, newest first.
// GET /api/v1/notifications?limit=100
func (h *notificationsHandler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context(), parseLimit(c, defaultNotificationLimit))
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to list notifications", logger.Error(err))
		respondInternalError(c, "failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Test sends a manual notification through the regular channels.
// POST /api/v1/notifications/test
func (h *notificationsHandler) Test(c *gin.Context) {
	var req testNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "adId, title, price and url are required")
		return
	}

	n, err := h.notifier.Test(c.Request.Context(), notify.TestRequest{
		AdID:  req.AdID,
		Title: req.Title,
		Price: req.Price,
		URL:   req.URL,
	})
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("Test notification failed", logger.Error(err))
		respondInternalError(c, "failed to send notification")
		return
	}
	c.JSON(http.StatusOK, n)
}
