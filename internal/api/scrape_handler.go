package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ScrapeTrigger starts a scrape pass without waiting for it.
type ScrapeTrigger interface {
	Trigger()
}

type scrapeHandler struct {
	trigger ScrapeTrigger
}

func newScrapeHandler(trigger ScrapeTrigger) *scrapeHandler {
	return &scrapeHandler{trigger: trigger}
}

// Trigger starts an on-demand pass.
// POST /api/v1/scrape
func (h *scrapeHandler) Trigger(c *gin.Context) {
	h.trigger.Trigger()
	c.JSON(http.StatusAccepted, gin.H{"message": "scrape started"})
}
