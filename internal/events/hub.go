package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TopicBookAdded is the only live topic in this slice.
const TopicBookAdded = "bookAdded"

type Message struct {
	Topic string `json:"topic"`
	Data  any    `json:"data,omitempty"`
}

// Subscriber is one connected client. Outbound carries its private
// event sequence; delivery order matches publish order. Closing one
// subscriber never affects others.
type Subscriber struct {
	ID       uuid.UUID
	Topics   map[string]bool
	Outbound chan Message
	done     chan struct{}
}

// Hub fans published messages out to every subscriber currently on a
// topic. Delivery is in-memory, best-effort, and non-persistent: a
// subscriber connecting after a publish never observes it.
type Hub struct {
	mu            sync.RWMutex
	log           *logrus.Logger
	subscriptions map[string]map[*Subscriber]bool
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		log:           log,
		subscriptions: make(map[string]map[*Subscriber]bool),
	}
}

func (h *Hub) NewSubscriber() *Subscriber {
	return &Subscriber{
		ID:       uuid.New(),
		Topics:   make(map[string]bool),
		Outbound: make(chan Message, 16),
		done:     make(chan struct{}),
	}
}

func (h *Hub) Subscribe(sub *Subscriber, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if topic == "" {
		return
	}
	sub.Topics[topic] = true

	subs, exists := h.subscriptions[topic]
	if !exists {
		subs = make(map[*Subscriber]bool)
		h.subscriptions[topic] = subs
	}
	subs[sub] = true

	h.log.WithFields(logrus.Fields{"subscriber": sub.ID, "topic": topic}).Debug("subscribed")
}

func (h *Hub) remove(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for topic := range sub.Topics {
		if subs, ok := h.subscriptions[topic]; ok {
			delete(subs, sub)
			if len(subs) == 0 {
				delete(h.subscriptions, topic)
			}
		}
	}
	sub.Topics = make(map[string]bool)
}

// Broadcast delivers to every subscriber currently on msg.Topic. A
// subscriber whose buffer is full loses the message rather than
// blocking the publisher.
func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.subscriptions[msg.Topic]
	if !ok {
		return
	}
	for s := range subs {
		select {
		case s.Outbound <- msg:
		default:
			h.log.WithField("subscriber", s.ID).Warn("dropping event, outbound buffer full")
		}
	}
}

// Close disconnects one subscriber and releases its topics.
func (h *Hub) Close(sub *Subscriber) {
	close(sub.done)
	h.remove(sub)
	close(sub.Outbound)
}

// SubscriberCount reports how many subscribers a topic currently has.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[topic])
}

// ServeSSE streams the subscriber's events as server-sent events until
// the client goes away.
func (h *Hub) ServeSSE(w http.ResponseWriter, r *http.Request, sub *Subscriber) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ctx := r.Context()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg, ok := <-sub.Outbound:
			if !ok {
				return
			}
			payload, err := json.Marshal(msg.Data)
			if err != nil {
				h.log.WithError(err).Warn("marshal event payload")
				continue
			}
			fmt.Fprintf(w, "event: %s\n", msg.Topic)
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
