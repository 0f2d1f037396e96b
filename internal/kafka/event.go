package kafka

import (
	"fmt"
	"strings"
	"time"

	myErr "muskan-shop/internal/types/errors"
)

type EventType string

const (
	EventTypeSearch      EventType = "search"
	EventTypeView        EventType = "view"
	EventTypeAddToCart   EventType = "add_to_cart"
	EventTypeOrderPlaced EventType = "order_placed"
)

// Event действие посетителя магазина, категории товаров нужны для аналитики
type Event struct {
	SessionID  string    `json:"session_id"`
	Type       EventType `json:"type"`
	Categories []string  `json:"categories,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewEvent проставляет время в UTC и убирает пустые и повторные категории
func NewEvent(sessionID string, t EventType, categories []string) Event {
	seen := make(map[string]bool, len(categories))
	unique := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}

	return Event{
		SessionID:  sessionID,
		Type:       t,
		Categories: unique,
		Timestamp:  time.Now().UTC(),
	}
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.SessionID) == "" {
		return fmt.Errorf("%w: empty session id", myErr.ErrInvalidEvent)
	}

	switch e.Type {
	case EventTypeSearch, EventTypeView, EventTypeAddToCart, EventTypeOrderPlaced:
		return nil
	default:
		return fmt.Errorf("%w: unknown type %q", myErr.ErrInvalidEvent, e.Type)
	}
}
