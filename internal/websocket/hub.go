package websocket

import (
	"encoding/json"

	"github.com/ekaraca/mekanbul-backend/pkg/logger"
)

// RatingUpdate is the message pushed to subscribers when a place's review
// aggregate changes.
type RatingUpdate struct {
	PlaceID      uint    `json:"place_id"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
}

type ratingMessage struct {
	placeID uint
	payload []byte
}

// Hub fans rating updates out to clients subscribed per place. All
// subscription state is owned by the Run goroutine; other goroutines talk
// to it only through channels.
type Hub struct {
	subscribers map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan ratingMessage
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uint]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan ratingMessage, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.subscribers[client.placeID] == nil {
				h.subscribers[client.placeID] = make(map[*Client]bool)
			}
			h.subscribers[client.placeID][client] = true
			logger.Debug("WebSocket client subscribed", map[string]interface{}{
				"place_id": client.placeID,
			})

		case client := <-h.unregister:
			if clients, ok := h.subscribers[client.placeID]; ok {
				if clients[client] {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.subscribers, client.placeID)
					}
				}
			}

		case msg := <-h.broadcast:
			for client := range h.subscribers[msg.placeID] {
				select {
				case client.send <- msg.payload:
				default:
					// slow consumer, drop it
					delete(h.subscribers[msg.placeID], client)
					close(client.send)
				}
			}
		}
	}
}

// BroadcastRatingUpdate satisfies the review service's notifier. It never
// blocks the caller; updates are dropped when the hub's queue is full.
func (h *Hub) BroadcastRatingUpdate(placeID uint, rating float64, totalReviews int) {
	payload, err := json.Marshal(RatingUpdate{
		PlaceID:      placeID,
		Rating:       rating,
		TotalReviews: totalReviews,
	})
	if err != nil {
		logger.Error("Failed to marshal rating update", err, nil)
		return
	}

	select {
	case h.broadcast <- ratingMessage{placeID: placeID, payload: payload}:
	default:
		logger.Warn("Rating update dropped, hub queue full", map[string]interface{}{
			"place_id": placeID,
		})
	}
}
