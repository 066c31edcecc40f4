package handlers

import (
	"net/http"
	"time"

	"lyhu_portal/internal/services"

	"github.com/gin-gonic/gin"
)

// EventsHandler streams order changes to signed-in clients as server-sent events.
type EventsHandler struct {
	orders    services.OrderService
	keepAlive time.Duration
}

func NewEventsHandler(orders services.OrderService, keepAlive time.Duration) *EventsHandler {
	if keepAlive <= 0 {
		keepAlive = 25 * time.Second
	}
	return &EventsHandler{orders: orders, keepAlive: keepAlive}
}

func (h *EventsHandler) Stream(c *gin.Context) {
	received, cancel := h.orders.Subscribe()
	defer cancel()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.SSEvent("ready", gin.H{"at": time.Now().UTC()})
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-received:
			if !ok {
				return
			}
			c.SSEvent(string(ev.Type), ev)
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			c.Writer.Flush()
		}
	}
}
