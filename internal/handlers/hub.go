package handlers

import (
	"strings"
	"sync"

	"memories-backend/internal/models"
	"memories-backend/internal/utils"

	"github.com/rs/zerolog"
)

// Hub fans new documents out to websocket subscribers by topic.
type Hub struct {
	// topic -> connectionID -> subscriber
	topics map[string]map[string]*subscriber
	mu     sync.RWMutex
	log    zerolog.Logger
}

type subscriber struct {
	mu     sync.Mutex
	conn   utils.JSONWriter
	closed bool
}

// send is a no-op once the subscriber is closed; the connection may already
// be back in the websocket pool.
func (s *subscriber) send(payload interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return utils.SendJSON(s.conn, payload)
}

func (s *subscriber) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[string]*subscriber),
		log:    log,
	}
}

// Subscribe registers conn under connID for each topic.
func (h *Hub) Subscribe(connID string, conn utils.JSONWriter, topics []string) {
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, topic := range topics {
		if _, ok := h.topics[topic]; !ok {
			h.topics[topic] = make(map[string]*subscriber)
		}
		h.topics[topic][connID] = sub
	}
}

// Unsubscribe removes connID from every topic. Once it returns, no Publish
// writes to that connection, including one already in flight.
func (h *Hub) Unsubscribe(connID string) {
	var removed []*subscriber

	h.mu.Lock()
	for topic, subs := range h.topics {
		if sub, ok := subs[connID]; ok {
			removed = append(removed, sub)
			delete(subs, connID)
		}
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	h.mu.Unlock()

	// Blocks until a concurrent send to this connection has finished.
	for _, sub := range removed {
		sub.close()
	}
}

// Publish sends a "created" event to every subscriber of topic. A failed
// write is logged; the read loop of that connection handles the disconnect.
func (h *Hub) Publish(topic string, data interface{}) {
	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.topics[topic]))
	for _, sub := range h.topics[topic] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	event := models.FeedEvent{Event: "created", Topic: topic, Data: data}
	for _, sub := range subs {
		utils.LogError(h.log, sub.send(event), "Publish")
	}
}

// subscribers returns how many connections follow topic.
func (h *Hub) subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// ParseTopics reads a comma separated topic list. Unknown names are dropped;
// an empty result means all topics.
func ParseTopics(raw string) []string {
	var topics []string
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if seen[name] {
			continue
		}
		for _, known := range models.AllTopics {
			if name == known {
				topics = append(topics, name)
				seen[name] = true
			}
		}
	}
	if len(topics) == 0 {
		return append([]string(nil), models.AllTopics...)
	}
	return topics
}
