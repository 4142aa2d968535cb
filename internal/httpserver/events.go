package httpserver

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"storefront/internal/notify"
)

// cartUpdatedEvent is the event name the browser storefront listens for.
const cartUpdatedEvent = notify.DefaultChannel

// cartEvents streams one cartUpdated event per change notification until the
// client disconnects or the server shuts down. The subscription ends with the
// request.
func (h *handlers) cartEvents(c *gin.Context) {
	changed := make(chan struct{}, 1)
	unsubscribe := h.deps.Events.Subscribe(func(context.Context) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("ready", "")
	c.Writer.Flush()

	done := c.Request.Context().Done()
	c.Stream(func(io.Writer) bool {
		select {
		case <-done:
			return false
		case <-h.deps.closing:
			return false
		case <-changed:
			c.SSEvent(cartUpdatedEvent, "")
			return true
		}
	})
}
