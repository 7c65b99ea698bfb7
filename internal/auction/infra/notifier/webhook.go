package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/cristianortiz/pointAuction/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// winnerNotifiedPayload is the JSON body POSTed to the configured endpoint
// when a purchase is confirmed.
type winnerNotifiedPayload struct {
	Event     string     `json:"event"`
	Timestamp string     `json:"timestamp"`
	Data      winnerData `json:"data"`
}

type winnerData struct {
	ItemID   uuid.UUID `json:"item_id"`
	ItemName string    `json:"item_name"`
	WinnerID uuid.UUID `json:"winner_id"`
	SellerID uuid.UUID `json:"seller_id"`
	Amount   int64     `json:"amount"`
}

// WebhookNotifier delivers winner notifications to an external HTTP endpoint.
// Delivery is fire-and-forget: failures are logged and never retried, and the
// caller is never blocked on the request.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// NotifyWinner implements domain.Notifier. Returns immediately; the actual
// POST happens on its own goroutine with the client timeout as its bound.
func (n *WebhookNotifier) NotifyWinner(ctx context.Context, winnerID uuid.UUID, item *domain.AuctionItem, amount int64) {
	if n.url == "" {
		return
	}

	payload := winnerNotifiedPayload{
		Event:     "purchase.confirmed",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data: winnerData{
			ItemID:   item.ID,
			ItemName: item.Name,
			WinnerID: winnerID,
			SellerID: item.SellerID,
			Amount:   amount,
		},
	}
	go n.deliver(payload)
}

func (n *WebhookNotifier) deliver(payload winnerNotifiedPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", uuid.New().String())
	req.Header.Set("X-Event-Type", payload.Event)

	resp, err := n.client.Do(req)
	if err != nil {
		log.Warn("Winner notification delivery failed",
			zap.String("itemID", payload.Data.ItemID.String()),
			zap.Error(err),
		)
		return
	}
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Warn("Winner notification rejected by endpoint",
			zap.String("itemID", payload.Data.ItemID.String()),
			zap.Int("status", resp.StatusCode),
		)
	}
}
