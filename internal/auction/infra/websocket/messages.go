package websocket

import (
	"time"

	"github.com/google/uuid"
)

// MessageType identifies a websocket message.
type MessageType string

const (
	MessageTypeClientBid          MessageType = "client_bid"           // client places a bid
	MessageTypeServerItemUpdate   MessageType = "server_item_update"   // server pushes a new item state
	MessageTypeServerError        MessageType = "server_error"         // server reports an error to one client
	MessageTypeServerInitialState MessageType = "server_initial_state" // server sends item state on connect
)

// BaseMessage is the envelope shared by all websocket messages.
type BaseMessage struct {
	Type MessageType `json:"type"`
}

// ClientBidMessage is a bid sent by a client over the socket.
type ClientBidMessage struct {
	BaseMessage
	Payload struct {
		ItemID   uuid.UUID `json:"item_id"`
		BidderID uuid.UUID `json:"bidder_id"`
		Amount   int64     `json:"amount"`
	} `json:"payload"`
}

// ItemStatePayload carries the item state pushed to watchers, both on connect
// and on every change.
type ItemStatePayload struct {
	ItemID       uuid.UUID  `json:"item_id"`
	Name         string     `json:"name"`
	CurrentPrice int64      `json:"current_price"`
	Deadline     time.Time  `json:"deadline"`
	State        string     `json:"state"`
	WinnerID     *uuid.UUID `json:"winner_id,omitempty"`
	Purchased    bool       `json:"purchased"`
	LeaderID     *uuid.UUID `json:"leader_id,omitempty"`
	LeadingBid   int64      `json:"leading_bid,omitempty"`
}

// ServerItemUpdateMessage pushes a state change to every watcher of an item.
type ServerItemUpdateMessage struct {
	BaseMessage
	Payload ItemStatePayload `json:"payload"`
}

// ServerInitialStateMessage sends the current item state to a client on connect.
type ServerInitialStateMessage struct {
	BaseMessage
	Payload ItemStatePayload `json:"payload"`
}

type ServerErrorMessage struct {
	BaseMessage
	Payload struct {
		Error string `json:"error"`
	} `json:"payload"`
}
