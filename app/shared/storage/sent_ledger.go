package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
)

// SentLedger remembers which reminder occurrences were already dispatched.
// Entries expire after the configured TTL.
type SentLedger struct {
	mu    sync.Mutex
	cache *bigcache.BigCache
}

func NewSentLedger(ctx context.Context, ttl time.Duration) (*SentLedger, error) {
	config := bigcache.DefaultConfig(ttl)
	config.CleanWindow = 10 * time.Minute
	config.Verbose = false

	cache, err := bigcache.New(ctx, config)
	if err != nil {
		return nil, err
	}
	return &SentLedger{cache: cache}, nil
}

// Claim marks key as sent. It reports false when key was already claimed.
func (l *SentLedger) Claim(key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.cache.Get(key)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, bigcache.ErrEntryNotFound) {
		return false, fmt.Errorf("failed to read ledger entry: %w", err)
	}
	if err := l.cache.Set(key, []byte{1}); err != nil {
		return false, fmt.Errorf("failed to write ledger entry: %w", err)
	}
	return true, nil
}

// Release forgets key so the occurrence can be claimed again.
func (l *SentLedger) Release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.cache.Delete(key)
}

func (l *SentLedger) Len() int {
	return l.cache.Len()
}

func (l *SentLedger) Close() error {
	return l.cache.Close()
}
