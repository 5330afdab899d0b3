package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/OshimPathan/ShareSathi/internal/config"
	"github.com/OshimPathan/ShareSathi/internal/service"
	"go.uber.org/zap"
)

// Hub fans live market snapshots out to every connected websocket client on
// a fixed interval. Clients that cannot keep up are dropped rather than
// allowed to stall the broadcast.
type Hub struct {
	logger *zap.Logger
	market *service.MarketService

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	maxConnections    int
	broadcastInterval time.Duration
}

func NewHub(market *service.MarketService, conf *config.Config, logger *zap.Logger) *Hub {
	return &Hub{
		logger:            logger,
		market:            market,
		clients:           make(map[*Client]bool),
		register:          make(chan *Client),
		unregister:        make(chan *Client),
		broadcast:         make(chan []byte),
		maxConnections:    conf.Websocket.MaxConnectionsOrDefault(),
		broadcastInterval: time.Duration(conf.Websocket.BroadcastIntervalOrDefault()) * time.Second,
	}
}

// Run is the hub event loop. Launch it as a goroutine; it exits when the
// context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.broadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return

		case client := <-h.register:
			if len(h.clients) >= h.maxConnections {
				h.logger.Warn("websocket connection limit reached",
					zap.Int("max_connections", h.maxConnections))
				close(client.send)
				continue
			}
			h.clients[client] = true
			h.logger.Debug("websocket client connected",
				zap.String("user_id", client.userID),
				zap.Int("clients", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}

		case <-ticker.C:
			if len(h.clients) == 0 {
				continue
			}
			h.pushMarket(ctx)
		}
	}
}

// pushMarket broadcasts the current quote set and summary to all clients.
func (h *Hub) pushMarket(ctx context.Context) {
	market, err := h.market.Live(ctx)
	if err != nil {
		h.logger.Warn("websocket market push skipped", zap.Error(err))
		return
	}

	payload := map[string]interface{}{
		"type": "live_market",
		"data": market,
	}
	if summary, err := h.market.Summary(ctx); err == nil {
		payload["summary"] = summary
	}

	message, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to marshal market push", zap.Error(err))
		return
	}

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
}
