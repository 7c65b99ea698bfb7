package websocket

import (
	"context"
	"time"

	"github.com/cristianortiz/pointAuction/internal/shared/logger"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Hub keeps the client registry grouped by auction item and handles message
// broadcasting to every watcher of an item.
type Hub struct {
	// Registered clients, grouped by item ID.
	clients map[string]map[*Client]bool
	// Outbound messages to an item group.
	broadcast chan *Message
	// Register requests from the clients.
	register chan *Client
	// Unregister requests from clients.
	unregister chan *Client
	// InboundMessages is listened to by module-specific handlers.
	InboundMessages chan *ClientMessage
}

// Client represents an individual ws connection watching one item.
type Client struct {
	Hub *Hub
	// The websocket connection.
	Conn *websocket.Conn
	// Buffered channel of outbound messages.
	Send chan []byte
	// The auction item this client is watching.
	ItemID string
	// Unique identifier for the client.
	ID string
}

type Message struct {
	ItemID string
	Data   []byte
}

// ClientMessage wraps the client and the raw data it sent, so inbound
// messages can be routed to module handlers.
type ClientMessage struct {
	Client *Client
	Data   []byte
}

func NewHub() *Hub {
	return &Hub{
		broadcast:       make(chan *Message, 64),
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		clients:         make(map[string]map[*Client]bool),
		InboundMessages: make(chan *ClientMessage, 64),
	}
}

// Run starts the hub loop; it exits when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	log.Info("Websocket Hub started")
	for {
		select {
		case <-ctx.Done():
			log.Info("WebSocket Hub shutting down")
			return

		case client := <-h.register:
			if _, ok := h.clients[client.ItemID]; !ok {
				h.clients[client.ItemID] = make(map[*Client]bool)
			}
			h.clients[client.ItemID][client] = true
			log.Info("Client registered",
				zap.String("clientID", client.ID),
				zap.String("itemID", client.ItemID),
			)

		case client := <-h.unregister:
			if clients, ok := h.clients[client.ItemID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.clients, client.ItemID)
					}
					log.Info("Client unregistered",
						zap.String("clientID", client.ID),
						zap.String("itemID", client.ItemID),
					)
				}
			}

		case message := <-h.broadcast:
			for client := range h.clients[message.ItemID] {
				select {
				case client.Send <- message.Data:
				default:
					// Client cannot keep up, drop it.
					close(client.Send)
					delete(h.clients[message.ItemID], client)
					log.Warn("Failed to send message to client, unregistering",
						zap.String("clientID", client.ID),
						zap.String("itemID", client.ItemID),
					)
				}
			}
		}
	}
}

// RegisterClient registers a new client in the hub.
func (h *Hub) RegisterClient(client *Client) {
	select {
	case h.register <- client:
	default:
		log.Error("Register channel is full, client registration failed",
			zap.String("clientID", client.ID),
			zap.String("itemID", client.ItemID),
		)
		_ = client.Conn.Close()
	}
}

// UnregisterClient removes a client from the hub.
func (h *Hub) UnregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	default:
		log.Error("Unregister channel is full, client unregistration failed",
			zap.String("clientID", client.ID),
			zap.String("itemID", client.ItemID),
		)
	}
}

// BroadcastToItem sends data to every client watching itemID.
func (h *Hub) BroadcastToItem(itemID string, data []byte) {
	select {
	case h.broadcast <- &Message{ItemID: itemID, Data: data}:
	default:
		log.Error("Broadcast channel is full, message dropped", zap.String("itemID", itemID))
	}
}

// ReadPump reads messages from the client connection and forwards them to
// the hub's inbound channel. Run one goroutine per client.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.Hub.UnregisterClient(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("WebSocket read error",
					zap.String("clientID", c.ID),
					zap.String("itemID", c.ItemID),
					zap.Error(err),
				)
			}
			break
		}

		select {
		case c.Hub.InboundMessages <- &ClientMessage{Client: c, Data: message}:
		default:
			log.Error("Hub InboundMessages channel is full, dropping message",
				zap.String("clientID", c.ID),
				zap.String("itemID", c.ItemID),
			)
		}
	}
}

// WritePump pumps messages from the hub to the websocket connection and keeps
// the connection alive with periodic pings. Run one goroutine per client;
// this is the single writer for the connection.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Hub.UnregisterClient(c)
		c.Conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.Conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return

		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error("Failed to write message to client",
					zap.String("clientID", c.ID),
					zap.String("itemID", c.ItemID),
					zap.Error(err),
				)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
