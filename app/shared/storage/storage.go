package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/waddletracker/discord-bot/app/observability/attr"
)

// ErrNotFound is returned for missing or expired items.
var ErrNotFound = errors.New("item not found or expired")

// ISInterface defines the behavior for the interaction store using Generics [T].
// Keys are interaction ids; values are pending confirmations.
type ISInterface[T any] interface {
	Set(ctx context.Context, interactionID string, value T) error
	Delete(ctx context.Context, interactionID string)
	Get(ctx context.Context, interactionID string) (T, error)
	// Take removes and returns the item in one step; of two concurrent
	// callers only one gets it.
	Take(ctx context.Context, interactionID string) (T, error)
}

// interactionItem holds the data and the expiration timestamp
type interactionItem[T any] struct {
	value      T
	expiryTime int64 // UnixNano for high-performance comparison
}

// InteractionStore keeps short-lived state between a preview reply and the
// button press that confirms it.
type InteractionStore[T any] struct {
	store  map[string]interactionItem[T]
	mu     sync.RWMutex
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// Stores groups the bot's in-memory stores.
type Stores struct {
	InteractionStore ISInterface[any]
	SentReminders    *SentLedger
}

const (
	// Discord interaction tokens are valid for 15 minutes; a pending
	// confirmation cannot be acted on after that.
	defaultInteractionStoreTTL = 15 * time.Minute
	defaultSentLedgerTTL       = 48 * time.Hour
	janitorInterval            = 1 * time.Minute
)

// NewStores builds the stores. A zero ledgerTTL uses the 48h default.
func NewStores(ctx context.Context, logger *slog.Logger, ledgerTTL time.Duration) (*Stores, error) {
	if ledgerTTL <= 0 {
		ledgerTTL = defaultSentLedgerTTL
	}
	ledger, err := NewSentLedger(ctx, ledgerTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create sent reminder ledger: %w", err)
	}

	return &Stores{
		InteractionStore: NewInteractionStore[any](ctx, logger, defaultInteractionStoreTTL),
		SentReminders:    ledger,
	}, nil
}

// Close releases the stores' background resources.
func (s *Stores) Close() error {
	if s == nil || s.SentReminders == nil {
		return nil
	}
	return s.SentReminders.Close()
}

func NewInteractionStore[T any](ctx context.Context, logger *slog.Logger, ttl time.Duration) ISInterface[T] {
	is := newInteractionStore[T](logger, ttl)
	go is.startJanitor(ctx, janitorInterval)
	return is
}

func newInteractionStore[T any](logger *slog.Logger, ttl time.Duration) *InteractionStore[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &InteractionStore[T]{
		store:  make(map[string]interactionItem[T]),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

func (ts *InteractionStore[T]) Set(ctx context.Context, interactionID string, value T) error {
	if interactionID == "" {
		return errors.New("interaction ID is empty")
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.store[interactionID] = interactionItem[T]{
		value:      value,
		expiryTime: ts.now().Add(ts.ttl).UnixNano(),
	}

	ts.logger.DebugContext(ctx, "InteractionStore: Stored item", attr.InteractionID(interactionID))
	return nil
}

func (ts *InteractionStore[T]) Get(ctx context.Context, interactionID string) (T, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	item, exists := ts.store[interactionID]
	if !exists || ts.now().UnixNano() > item.expiryTime {
		var zero T
		return zero, ErrNotFound
	}

	return item.value, nil
}

func (ts *InteractionStore[T]) Delete(ctx context.Context, interactionID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.store, interactionID)
}

func (ts *InteractionStore[T]) Take(ctx context.Context, interactionID string) (T, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	item, exists := ts.store[interactionID]
	delete(ts.store, interactionID)
	if !exists || ts.now().UnixNano() > item.expiryTime {
		var zero T
		return zero, ErrNotFound
	}
	return item.value, nil
}

// startJanitor runs in the background and removes expired keys at a fixed interval
func (ts *InteractionStore[T]) startJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ts.logger.Debug("🧹 InteractionStore janitor started", attr.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			ts.logger.Debug("🧹 InteractionStore janitor stopping")
			return
		case <-ticker.C:
			ts.performCleanup()
		}
	}
}

func (ts *InteractionStore[T]) performCleanup() {
	now := ts.now().UnixNano()

	ts.mu.Lock()
	defer ts.mu.Unlock()

	initialSize := len(ts.store)
	for id, item := range ts.store {
		if now > item.expiryTime {
			delete(ts.store, id)
		}
	}

	removed := initialSize - len(ts.store)
	if removed > 0 {
		ts.logger.Debug("InteractionStore: Cleanup complete",
			attr.Int("removed_count", removed),
			attr.Int("remaining_count", len(ts.store)))
	}
}
