package engine

import (
	"sync"

	"github.com/google/uuid"
)

// ItemLocks hands out one mutex per auction item. PlaceBid, CloseIfExpired,
// ConfirmPurchase and DeleteItem on the same item all serialize on this lock;
// operations on different items never block each other. Locks live for the
// item's lifetime, which in practice means the process lifetime.
type ItemLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewItemLocks() *ItemLocks {
	return &ItemLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Get returns the mutex for an item, creating it on first use.
func (il *ItemLocks) Get(itemID uuid.UUID) *sync.Mutex {
	il.mu.Lock()
	defer il.mu.Unlock()
	m, ok := il.locks[itemID]
	if !ok {
		m = &sync.Mutex{}
		il.locks[itemID] = m
	}
	return m
}
