package event

import (
	"sync"

	"github.com/prodstock/backend/internal/domain/shared"
)

// subscriptions tracks which handlers want which event types. Handlers
// registered without any type receive every event.
type subscriptions struct {
	mu       sync.RWMutex
	byType   map[string][]shared.EventHandler
	catchAll []shared.EventHandler
}

func newSubscriptions() *subscriptions {
	return &subscriptions{
		byType: make(map[string][]shared.EventHandler),
	}
}

func (s *subscriptions) add(handler shared.EventHandler, eventTypes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(eventTypes) == 0 {
		s.catchAll = append(s.catchAll, handler)
		return
	}
	for _, eventType := range eventTypes {
		s.byType[eventType] = append(s.byType[eventType], handler)
	}
}

func (s *subscriptions) remove(handler shared.EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catchAll = without(s.catchAll, handler)
	for eventType, handlers := range s.byType {
		if remaining := without(handlers, handler); len(remaining) == 0 {
			delete(s.byType, eventType)
		} else {
			s.byType[eventType] = remaining
		}
	}
}

// forType returns the handlers interested in eventType, catch-all handlers
// included.
func (s *subscriptions) forType(eventType string) []shared.EventHandler {
	s.mu.RLock()
	defer s.mu.RUnlock()

	typed := s.byType[eventType]
	out := make([]shared.EventHandler, 0, len(typed)+len(s.catchAll))
	out = append(out, typed...)
	out = append(out, s.catchAll...)
	return out
}

func without(handlers []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	out := handlers[:0:0]
	for _, h := range handlers {
		if h != target {
			out = append(out, h)
		}
	}
	return out
}
