package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/google/uuid"
)

func TestWebhookNotifier_DeliversPayload(t *testing.T) {
	var mu sync.Mutex
	var bodies [][]byte
	var deliveryIDs []string
	received := make(chan struct{}, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, body)
		deliveryIDs = append(deliveryIDs, r.Header.Get("X-Delivery-Id"))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
		received <- struct{}{}
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, time.Second)
	winnerID := uuid.New()
	item := domain.NewAuctionItem(uuid.New(), "lamp", "", 100, time.Now(), uuid.New())

	n.NotifyWinner(context.Background(), winnerID, item, 250)

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(bodies))
	}
	if deliveryIDs[0] == "" {
		t.Error("expected X-Delivery-Id header")
	}

	var payload winnerNotifiedPayload
	if err := json.Unmarshal(bodies[0], &payload); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if payload.Event != "purchase.confirmed" {
		t.Errorf("expected event purchase.confirmed, got %s", payload.Event)
	}
	if payload.Data.WinnerID != winnerID || payload.Data.Amount != 250 {
		t.Errorf("payload mismatch: %+v", payload.Data)
	}
}

func TestWebhookNotifier_EmptyURLIsNoOp(t *testing.T) {
	n := NewWebhookNotifier("", time.Second)
	item := domain.NewAuctionItem(uuid.New(), "lamp", "", 100, time.Now(), uuid.New())

	// Must not panic or block.
	n.NotifyWinner(context.Background(), uuid.New(), item, 100)
}

func TestWebhookNotifier_EndpointFailureDoesNotBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, time.Second)
	item := domain.NewAuctionItem(uuid.New(), "lamp", "", 100, time.Now(), uuid.New())

	done := make(chan struct{})
	go func() {
		n.NotifyWinner(context.Background(), uuid.New(), item, 100)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyWinner blocked on a failing endpoint")
	}
}
