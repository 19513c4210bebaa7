package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/urmzd/dirigera/pkg/hub"
)

const heartbeatInterval = 30 * time.Second

// Subscriber hands out event subscriptions.
type Subscriber interface {
	Subscribe() <-chan hub.Event
	Unsubscribe(ch <-chan hub.Event)
}

// EventsHandler streams hub events to HTTP clients
type EventsHandler struct {
	subscriber Subscriber
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(subscriber Subscriber) *EventsHandler {
	return &EventsHandler{subscriber: subscriber}
}

// Events handles GET /events (SSE stream)
// @Summary      Subscribe to hub events
// @Description  Server-Sent Events stream of device and scene changes reported by the hub. Attribute keys are snake_case.
// @Tags         events
// @Produce      text/event-stream
// @Success      200  {string}  string  "SSE event stream"
// @Router       /events [get]
func (h *EventsHandler) Events(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	events := h.subscriber.Subscribe()
	defer h.subscriber.Unsubscribe(events)

	sendSSEEvent(c.Writer, "connected", map[string]any{"timestamp": time.Now()})
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-clientGone:
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			sendSSEEvent(c.Writer, ev.Type, map[string]any{
				"id":         ev.ID,
				"type":       ev.Type,
				"entity_id":  ev.EntityID(),
				"attributes": ev.Attributes(),
				"time":       ev.Time,
			})
			c.Writer.Flush()

		case <-ticker.C:
			sendSSEEvent(c.Writer, "heartbeat", map[string]any{"timestamp": time.Now()})
			c.Writer.Flush()
		}
	}
}

func sendSSEEvent(w io.Writer, eventType string, data any) {
	jsonData, _ := json.Marshal(data)
	_, _ = io.WriteString(w, "event: "+eventType+"\n")
	_, _ = io.WriteString(w, "data: "+string(jsonData)+"\n\n")
}
