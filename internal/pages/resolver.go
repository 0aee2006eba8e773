package pages

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Resolver answers read-side page lookups with a request-scoped memo over
// the page service. One Resolver serves one request; repeated lookups of
// the same (name, locale) return the same record.
type Resolver struct {
	service Service

	mu   sync.RWMutex
	memo map[string]*Page
}

// NewResolver constructs a request-scoped resolver over the page service.
func NewResolver(service Service) *Resolver {
	return &Resolver{
		service: service,
		memo:    make(map[string]*Page),
	}
}

// GetPage resolves a page by name and optional locale. A missing page
// memoizes as nil so repeated lookups of an absent page hit the store only
// once; reset true forgets the memo entry first.
func (r *Resolver) GetPage(ctx context.Context, name string, locale string, reset bool) (*Page, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrIdentifierRequired
	}
	key := trimmed + "|" + strings.TrimSpace(locale)

	if !reset {
		r.mu.RLock()
		memoized, ok := r.memo[key]
		r.mu.RUnlock()
		if ok {
			return memoized, nil
		}
	}

	record, err := r.service.GetByName(ctx, trimmed, locale)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			r.mu.Lock()
			r.memo[key] = nil
			r.mu.Unlock()
			return nil, nil
		}
		return nil, err
	}

	r.mu.Lock()
	r.memo[key] = record
	r.mu.Unlock()
	return record, nil
}

// BlockValue resolves one field inside a named block of a page, nil when
// the page, block, or field is absent. Key follows the dot-path rules of
// the page value document.
func (r *Resolver) BlockValue(ctx context.Context, name, blockID, key, locale string) (any, error) {
	record, err := r.GetPage(ctx, name, locale, false)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return record.BlockValue(blockID, key), nil
}

// Reset clears the request-scoped memo.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.memo = make(map[string]*Page)
	r.mu.Unlock()
}
