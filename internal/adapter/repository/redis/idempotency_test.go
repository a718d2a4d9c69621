package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestIdempotencyStore_ReserveNewKey(t *testing.T) {
	store, client, mr := newTestStore(t)
	ctx := context.Background()

	reserved, cached, err := store.Reserve(ctx, "pending", time.Minute)
	if err != nil || !reserved || cached != nil {
		t.Fatalf("unexpected result: reserved=%v cached=%v err=%v", reserved, cached, err)
	}

	val, err := client.Get(ctx, store.prefix+"pending").Result()
	if err != nil || val != pendingMarker {
		t.Fatalf("expected pending marker, got val=%s err=%v", val, err)
	}

	if ttl := mr.TTL(store.prefix + "pending"); ttl != time.Minute {
		t.Fatalf("expected ttl of one minute, got %s", ttl)
	}
}

func TestIdempotencyStore_ReserveWhilePending(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	if _, _, err := store.Reserve(ctx, "key", time.Minute); err != nil {
		t.Fatalf("first reserve failed: %v", err)
	}

	reserved, cached, err := store.Reserve(ctx, "key", time.Minute)
	if err != nil {
		t.Fatalf("second reserve failed: %v", err)
	}

	if reserved || cached != nil {
		t.Fatalf("expected in-flight key, got reserved=%v cached=%s", reserved, cached)
	}
}

func TestIdempotencyStore_ReserveReturnsCompletedResponse(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	if _, _, err := store.Reserve(ctx, "key", time.Minute); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}

	if err := store.Complete(ctx, "key", []byte("done"), time.Minute); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	reserved, cached, err := store.Reserve(ctx, "key", time.Minute)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}

	if reserved || string(cached) != "done" {
		t.Fatalf("expected cached response, got reserved=%v cached=%s", reserved, cached)
	}
}

func TestIdempotencyStore_Release(t *testing.T) {
	store, _, mr := newTestStore(t)
	ctx := context.Background()

	if _, _, err := store.Reserve(ctx, "key", time.Minute); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}

	if err := store.Release(ctx, "key"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	if mr.Exists(store.prefix + "key") {
		t.Fatalf("expected key to be removed")
	}

	reserved, _, err := store.Reserve(ctx, "key", time.Minute)
	if err != nil || !reserved {
		t.Fatalf("expected key to be reservable again, got reserved=%v err=%v", reserved, err)
	}
}

func TestIdempotencyStore_ReserveExpires(t *testing.T) {
	store, _, mr := newTestStore(t)
	ctx := context.Background()

	if _, _, err := store.Reserve(ctx, "key", time.Second); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	reserved, _, err := store.Reserve(ctx, "key", time.Second)
	if err != nil || !reserved {
		t.Fatalf("expected expired key to be reservable, got reserved=%v err=%v", reserved, err)
	}
}

func TestIdempotencyStore_ConcurrentReserve(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reserved, _, err := store.Reserve(ctx, "race", time.Minute)
			if err == nil && reserved {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := winners.Load(); got != 1 {
		t.Fatalf("expected exactly one reservation, got %d", got)
	}
}
