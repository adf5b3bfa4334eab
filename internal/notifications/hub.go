package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/middleware"
)

// Hub fans domain events out to connected websocket subscribers. Delivery is
// best-effort: a slow subscriber gets dropped rather than backpressuring the
// publishing operation.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

var _ portssvc.Notifier = (*Hub)(nil)

// Publish broadcasts one domain event to every connected subscriber. It never
// blocks and never fails the originating operation.
func (h *Hub) Publish(ctx context.Context, event domain.DomainEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to marshal domain event",
			slog.String("event", event.Name),
			slog.String("error", err.Error()),
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Subscriber too slow, close it out of band.
			go client.close()
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}
