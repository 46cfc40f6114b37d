package http

import (
	"net/http"

	"libraryapi/internal/events"
)

type SubscribeHandler struct {
	hub *events.Hub
}

func NewSubscribeHandler(hub *events.Hub) *SubscribeHandler {
	return &SubscribeHandler{hub: hub}
}

// BookAdded handles GET /subscriptions/book-added as an SSE stream.
// The subscriber only sees books added after this moment; the stream
// runs until the client disconnects.
func (h *SubscribeHandler) BookAdded(w http.ResponseWriter, r *http.Request) {
	sub := h.hub.NewSubscriber()
	h.hub.Subscribe(sub, events.TopicBookAdded)
	defer h.hub.Close(sub)

	h.hub.ServeSSE(w, r, sub)
}
