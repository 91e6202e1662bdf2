package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) SetNX(_ context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, exists := m.values[key]; exists {
		return false, nil
	}
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return true, nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	value, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func TestRedisLockIsExclusiveUntilReleased(t *testing.T) {
	store := newMemoryStore()
	first, err := NewRedisLock(store, "bb:lock:cron", 0, "worker-a")
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}
	second, _ := NewRedisLock(store, "bb:lock:cron", time.Minute, "worker-b")
	ctx := context.Background()

	if ok, err := first.Acquire(ctx); err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}
	if store.ttls["bb:lock:cron"] != defaultLockTTL {
		t.Fatalf("expected default ttl, got %s", store.ttls["bb:lock:cron"])
	}
	if !strings.HasPrefix(store.values["bb:lock:cron"], "worker-a:") {
		t.Fatalf("owner should name the worker, got %q", store.values["bb:lock:cron"])
	}
	if ok, _ := second.Acquire(ctx); ok {
		t.Fatal("second worker must not acquire a held lock")
	}
	if err := second.Release(ctx); err != nil {
		t.Fatalf("non-owner release: %v", err)
	}
	if _, held := store.values["bb:lock:cron"]; !held {
		t.Fatal("non-owner release must not delete the lock")
	}

	if err := first.Release(ctx); err != nil {
		t.Fatalf("owner release: %v", err)
	}
	if ok, _ := second.Acquire(ctx); !ok {
		t.Fatal("lock should be free after owner release")
	}
}

func TestRedisLockReleaseIgnoresExpiredKeyAndStolenLock(t *testing.T) {
	store := newMemoryStore()
	lock, _ := NewRedisLock(store, "k", time.Minute, "")
	ctx := context.Background()

	if ok, _ := lock.Acquire(ctx); !ok {
		t.Fatal("acquire failed")
	}
	delete(store.values, "k")
	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release after expiry: %v", err)
	}

	if ok, _ := lock.Acquire(ctx); !ok {
		t.Fatal("re-acquire failed")
	}
	store.values["k"] = "someone-else"
	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release of stolen lock: %v", err)
	}
	if store.values["k"] != "someone-else" {
		t.Fatal("stolen lock must be left alone")
	}
}

func TestRedisLockReleaseSurfacesStoreErrors(t *testing.T) {
	store := newMemoryStore()
	lock, _ := NewRedisLock(store, "k", time.Minute, "")
	ctx := context.Background()
	if ok, _ := lock.Acquire(ctx); !ok {
		t.Fatal("acquire failed")
	}
	store.getErr = errors.New("connection reset")
	if err := lock.Release(ctx); err == nil {
		t.Fatal("expected store error")
	}
}

func TestNewRedisLockValidates(t *testing.T) {
	if _, err := NewRedisLock(nil, "k", 0, ""); err == nil {
		t.Fatal("expected nil store error")
	}
	if _, err := NewRedisLock(newMemoryStore(), "", 0, ""); err == nil {
		t.Fatal("expected empty key error")
	}
}

func TestLocalLock(t *testing.T) {
	var lock LocalLock
	ctx := context.Background()
	if ok, _ := lock.Acquire(ctx); !ok {
		t.Fatal("first acquire should succeed")
	}
	if ok, _ := lock.Acquire(ctx); ok {
		t.Fatal("second acquire should fail while held")
	}
	if err := lock.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ok, _ := lock.Acquire(ctx); !ok {
		t.Fatal("acquire after release should succeed")
	}
}
