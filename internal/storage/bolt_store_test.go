package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/samvad-hq/produto-client/internal/domain"
)

func TestBoltStoreSavesAndExpiresProducts(t *testing.T) {
	opts := Options{
		ProductTTL:      time.Minute,
		CleanupInterval: time.Hour,
	}

	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "catalog.db"), opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }

	if _, found, err := store.Product(1); err != nil || found {
		t.Fatalf("expected empty store, found=%v err=%v", found, err)
	}

	widget := domain.Product{ID: 1, Name: "Widget", Description: "A widget"}
	if err := store.SaveProducts([]domain.Product{widget, {ID: 2, Name: "Gadget"}}); err != nil {
		t.Fatalf("SaveProducts: %v", err)
	}

	got, found, err := store.Product(1)
	if err != nil || !found {
		t.Fatalf("expected product 1 stored, found=%v err=%v", found, err)
	}
	if got != widget {
		t.Fatalf("unexpected product %+v", got)
	}

	// Jump past the TTL and the cleanup cadence.
	store.now = func() time.Time { return now.Add(2 * time.Hour) }

	if _, found, err := store.Product(1); err != nil || found {
		t.Fatalf("expected product 1 expired, found=%v err=%v", found, err)
	}
	if _, found, err := store.Product(2); err != nil || found {
		t.Fatalf("expected product 2 swept, found=%v err=%v", found, err)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if Enabled(store) {
		t.Fatalf("noop store reported as enabled")
	}
	if err := store.SaveProducts([]domain.Product{{ID: 1}}); err != nil {
		t.Fatalf("noop store SaveProducts: %v", err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for missing bbolt path")
	}
}
