package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestInteractionStore_Expiration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	is := newInteractionStore[string](nil, 10*time.Minute)
	is.now = func() time.Time { return now }

	if err := is.Set(ctx, "i1", "pending"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, err := is.Get(ctx, "i1"); err != nil || val != "pending" {
		t.Fatalf("expected pending value, got %q, %v", val, err)
	}

	now = now.Add(11 * time.Minute)
	if _, err := is.Get(ctx, "i1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired item, got %v", err)
	}

	is.performCleanup()
	if len(is.store) != 0 {
		t.Fatalf("expected cleanup to remove expired item, %d left", len(is.store))
	}
}

func TestInteractionStore_EmptyID(t *testing.T) {
	is := newInteractionStore[string](nil, time.Minute)
	if err := is.Set(context.Background(), "", "value"); err == nil {
		t.Fatal("expected error for empty interaction ID")
	}
	if _, err := is.Get(context.Background(), ""); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestInteractionStore_Delete(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	is := NewInteractionStore[int](ctx, nil, time.Minute)
	_ = is.Set(ctx, "i1", 1)
	is.Delete(ctx, "i1")
	if _, err := is.Get(ctx, "i1"); err == nil {
		t.Fatal("expected deleted item to be gone")
	}
}

func TestInteractionStore_TakeHandsOutOnce(t *testing.T) {
	ctx := context.Background()
	is := newInteractionStore[string](nil, time.Minute)
	_ = is.Set(ctx, "i1", "pending")

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, err := is.Take(ctx, "i1"); err == nil && v == "pending" {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("expected exactly one taker, got %d", wins.Load())
	}
	if _, err := is.Get(ctx, "i1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected taken item to be gone, got %v", err)
	}
}

func TestInteractionStore_TakeExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	is := newInteractionStore[string](nil, time.Minute)
	is.now = func() time.Time { return now }
	_ = is.Set(ctx, "i1", "pending")

	now = now.Add(2 * time.Minute)
	if _, err := is.Take(ctx, "i1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired item, got %v", err)
	}
	if len(is.store) != 0 {
		t.Fatalf("expected expired item to be dropped, %d left", len(is.store))
	}
}

func TestSentLedger_ClaimOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ledger, err := NewSentLedger(ctx, time.Hour)
	if err != nil {
		t.Fatalf("NewSentLedger: %v", err)
	}
	defer ledger.Close()

	key := "u1|2026-03-01|07:30"
	if ok, err := ledger.Claim(key); err != nil || !ok {
		t.Fatalf("first claim = %v, %v; want true", ok, err)
	}
	if ok, err := ledger.Claim(key); err != nil || ok {
		t.Fatalf("second claim = %v, %v; want false", ok, err)
	}

	ledger.Release(key)
	if ok, _ := ledger.Claim(key); !ok {
		t.Fatal("expected claim to succeed after release")
	}
}

func TestSentLedger_ConcurrentClaimsWinOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ledger, err := NewSentLedger(ctx, time.Hour)
	if err != nil {
		t.Fatalf("NewSentLedger: %v", err)
	}
	defer ledger.Close()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := ledger.Claim("same-key"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins.Load())
	}
}

func TestNewStores(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := NewStores(ctx, nil, 0)
	if err != nil {
		t.Fatalf("NewStores: %v", err)
	}
	defer stores.Close()

	for i := 0; i < 3; i++ {
		_ = stores.InteractionStore.Set(ctx, fmt.Sprintf("i%d", i), struct{}{})
	}
	if _, err := stores.InteractionStore.Get(ctx, "i2"); err != nil {
		t.Fatalf("expected stored item, got %v", err)
	}
	if ok, _ := stores.SentReminders.Claim("k"); !ok || stores.SentReminders.Len() != 1 {
		t.Fatal("expected ledger to record the claim")
	}
}
