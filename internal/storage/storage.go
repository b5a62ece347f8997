package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/produto-client/internal/domain"
)

// Package storage keeps an optional local snapshot of fetched products.

// Store persists products keyed by id. The driver only writes; Product is
// the read side for tooling that inspects a snapshot file, and reports false
// for missing or expired entries.
type Store interface {
	Close() error
	SaveProducts(products []domain.Product) error
	Product(id int) (domain.Product, bool, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	ProductTTL      time.Duration
	CleanupInterval time.Duration
}

const (
	defaultProductTTL      = 5 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// Enabled reports whether s actually persists anything.
func Enabled(s Store) bool {
	if s == nil {
		return false
	}
	_, noop := s.(noopStore)
	return !noop
}

func normalizeOptions(opts Options) Options {
	if opts.ProductTTL <= 0 {
		opts.ProductTTL = defaultProductTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                              { return nil }
func (noopStore) SaveProducts([]domain.Product) error       { return nil }
func (noopStore) Product(int) (domain.Product, bool, error) { return domain.Product{}, false, nil }
