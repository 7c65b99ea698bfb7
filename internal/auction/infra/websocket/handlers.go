package websocket

import (
	"context"
	"encoding/json"

	"github.com/cristianortiz/pointAuction/internal/auction/application"
	"github.com/cristianortiz/pointAuction/internal/shared/logger"
	"github.com/cristianortiz/pointAuction/internal/shared/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AuctionWSHandler routes the hub's inbound messages into the auction module
// and pushes item state back out to watchers.
type AuctionWSHandler struct {
	auctionService application.AuctionService
	hub            *websocket.Hub
}

func NewAuctionWSHandler(auctionService application.AuctionService, hub *websocket.Hub) *AuctionWSHandler {
	return &AuctionWSHandler{
		auctionService: auctionService,
		hub:            hub,
	}
}

// ListenForMessages consumes the hub inbound channel until ctx is cancelled.
func (h *AuctionWSHandler) ListenForMessages(ctx context.Context) {
	log.Info("Auction websocket handler listening for inbound messages")
	for {
		select {
		case <-ctx.Done():
			log.Info("Auction websocket handler stopped")
			return
		case msg := <-h.hub.InboundMessages:
			go h.processMessage(ctx, msg.Client, msg.Data)
		}
	}
}

func (h *AuctionWSHandler) processMessage(ctx context.Context, client *websocket.Client, data []byte) {
	var baseMsg BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		h.sendErrorToClient(client, "invalid message format")
		return
	}
	switch baseMsg.Type {
	case MessageTypeClientBid:
		h.handleClientBidMessage(ctx, client, data)
	default:
		h.sendErrorToClient(client, "unknown message type")
	}
}

func (h *AuctionWSHandler) handleClientBidMessage(ctx context.Context, client *websocket.Client, data []byte) {
	var bidMsg ClientBidMessage
	if err := json.Unmarshal(data, &bidMsg); err != nil {
		h.sendErrorToClient(client, "invalid bid message format")
		return
	}

	if bidMsg.Payload.ItemID.String() != client.ItemID {
		h.sendErrorToClient(client, "item ID mismatch")
		return
	}

	cmd := application.PlaceBidDTO{
		ItemID:   bidMsg.Payload.ItemID,
		BidderID: bidMsg.Payload.BidderID,
		Amount:   bidMsg.Payload.Amount,
	}
	if _, err := h.auctionService.PlaceBid(ctx, cmd); err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}

	h.BroadcastItemState(ctx, cmd.ItemID)
}

// SendInitialState pushes the current item state to a freshly connected client.
func (h *AuctionWSHandler) SendInitialState(ctx context.Context, client *websocket.Client, itemID uuid.UUID) {
	state, err := h.auctionService.GetItemState(ctx, itemID)
	if err != nil {
		h.sendErrorToClient(client, "item not found")
		return
	}

	msg := ServerInitialStateMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerInitialState},
		Payload:     toItemStatePayload(state),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("Failed to marshal initial state message", zap.Error(err))
		return
	}
	select {
	case client.Send <- data:
	default:
		log.Warn("Client send channel full, initial state dropped",
			zap.String("clientID", client.ID),
		)
	}
}

// BroadcastItemState fetches the item's current state and pushes it to every
// watcher. Used after accepted bids and when the scheduler closes an item.
func (h *AuctionWSHandler) BroadcastItemState(ctx context.Context, itemID uuid.UUID) {
	state, err := h.auctionService.GetItemState(ctx, itemID)
	if err != nil {
		log.Error("Failed to get item state for broadcast",
			zap.String("itemID", itemID.String()),
			zap.Error(err),
		)
		return
	}

	msg := ServerItemUpdateMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerItemUpdate},
		Payload:     toItemStatePayload(state),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("Failed to marshal item update message", zap.Error(err))
		return
	}
	h.hub.BroadcastToItem(itemID.String(), data)
}

func toItemStatePayload(state *application.ItemStateDTO) ItemStatePayload {
	return ItemStatePayload{
		ItemID:       state.ItemID,
		Name:         state.Name,
		CurrentPrice: state.CurrentPrice,
		Deadline:     state.Deadline,
		State:        state.State,
		WinnerID:     state.WinnerID,
		Purchased:    state.Purchased,
		LeaderID:     state.LeaderID,
		LeadingBid:   state.LeadingBid,
	}
}

func (h *AuctionWSHandler) sendErrorToClient(client *websocket.Client, errorMessage string) {
	errMsg := ServerErrorMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerError},
	}
	errMsg.Payload.Error = errorMessage
	data, err := json.Marshal(errMsg)
	if err != nil {
		log.Error("Failed to marshal error message", zap.Error(err))
		return
	}
	select {
	case client.Send <- data:
	default:
		log.Warn("Client send channel full, error message dropped",
			zap.String("clientID", client.ID),
		)
	}
}
