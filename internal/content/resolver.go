package content

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-page-content/internal/i18n"
	"github.com/goliatone/go-page-content/internal/logging"
	"github.com/goliatone/go-page-content/internal/runtimeconfig"
	"github.com/goliatone/go-page-content/pkg/interfaces"
	"github.com/goliatone/go-repository-cache/cache"
)

// Resolver answers read-side content lookups through two cache tiers: a
// request-scoped memo owned by this instance and an optional shared TTL
// cache in front of the store. One Resolver serves one request; repeated
// lookups of the same (page, locale) return the same map.
type Resolver struct {
	entries  EntryRepository
	locales  *i18n.Resolver
	cache    cache.CacheService
	prefix   string
	defaults runtimeconfig.DefaultsConfig
	logger   interfaces.Logger

	mu   sync.RWMutex
	memo map[string]pageElements
}

// pageElements is the resolved shape held in both cache tiers: raw values
// keyed by element id, NULLs preserved, plus each element's stored type so
// Value can pick the configured per-type default lazily.
type pageElements struct {
	Values map[string]*string `json:"values"`
	Types  map[string]string  `json:"types,omitempty"`
}

// ResolverOption configures a Resolver at construction time.
type ResolverOption func(*Resolver)

// WithResolverCache attaches the shared cache tier. The prefix must match
// the one the write pipeline invalidates under.
func WithResolverCache(cacheService cache.CacheService, prefix string) ResolverOption {
	return func(r *Resolver) {
		r.cache = cacheService
		r.prefix = prefix
	}
}

// WithResolverLogger overrides the no-op logger.
func WithResolverLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver constructs a request-scoped resolver over the entry store.
func NewResolver(entries EntryRepository, locales *i18n.Resolver, cfg runtimeconfig.Config, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		entries:  entries,
		locales:  locales,
		prefix:   cfg.Cache.KeyPrefix,
		defaults: cfg.Defaults,
		logger:   logging.NoOp(),
		memo:     make(map[string]pageElements),
	}
	if !cfg.Cache.Enabled {
		r.cache = nil
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// GetContent returns every element value for a page in the effective
// locale, keyed by element id. Stored NULLs stay nil in the map. Repeated
// calls for the same (page, locale) return the same map until Reset; reset
// true forgets both tiers for this key first. A page with no rows in a
// non-default locale falls back to the default locale as a whole;
// individual missing elements never do.
func (r *Resolver) GetContent(ctx context.Context, pageID string, locale string, reset bool) (map[string]*string, error) {
	elements, err := r.resolve(ctx, pageID, locale, reset)
	if err != nil {
		return nil, err
	}
	return elements.Values, nil
}

// resolve answers the Tier 1 memo or fills it from the lookup path.
func (r *Resolver) resolve(ctx context.Context, pageID, locale string, reset bool) (pageElements, error) {
	if r.entries == nil {
		return pageElements{}, ErrStoreUnavailable
	}
	if err := ValidatePageID(pageID); err != nil {
		return pageElements{}, err
	}

	trimmed := strings.TrimSpace(pageID)
	effective := r.locales.Effective(locale)
	key := memoKey(trimmed, effective)

	if !reset {
		r.mu.RLock()
		memoized, ok := r.memo[key]
		r.mu.RUnlock()
		if ok {
			return memoized, nil
		}
	}

	elements, err := r.lookup(ctx, trimmed, effective, reset)
	if err != nil {
		return pageElements{}, err
	}

	r.mu.Lock()
	r.memo[key] = elements
	r.mu.Unlock()
	return elements, nil
}

// Value returns one element's value with the configured per-type
// placeholder applied when the element is missing or holds NULL. An empty
// configured placeholder leaves the value nil.
func (r *Resolver) Value(ctx context.Context, pageID, elementID, locale string) (*string, error) {
	elements, err := r.resolve(ctx, pageID, locale, false)
	if err != nil {
		return nil, err
	}
	element := strings.TrimSpace(elementID)
	value := elements.Values[element]
	if value == nil {
		if placeholder := r.defaults.ForType(elements.Types[element]); placeholder != "" {
			return &placeholder, nil
		}
	}
	return value, nil
}

// ValueOr returns one element's raw value, or the supplied default when
// the element is missing or holds NULL. The caller default wins over the
// configured per-type placeholder.
func (r *Resolver) ValueOr(ctx context.Context, pageID, elementID, locale, fallback string) (string, error) {
	elements, err := r.resolve(ctx, pageID, locale, false)
	if err != nil {
		return "", err
	}
	value := elements.Values[strings.TrimSpace(elementID)]
	if value == nil {
		return fallback, nil
	}
	return *value, nil
}

// Reset clears the request-scoped memo. The shared cache tier is untouched;
// writes invalidate that one.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.memo = make(map[string]pageElements)
	r.mu.Unlock()
}

// lookup reads through the shared cache tier when present, otherwise
// straight from the store.
func (r *Resolver) lookup(ctx context.Context, pageID, effective string, reset bool) (pageElements, error) {
	fetch := func(ctx context.Context) (pageElements, error) {
		return r.load(ctx, pageID, effective)
	}

	if r.cache == nil {
		return fetch(ctx)
	}

	key := lookupKey(r.prefix, pageID, effective)
	if reset {
		if err := r.cache.DeleteByPrefix(ctx, key); err != nil {
			r.logger.Error("content cache reset failed", "key", key, "error", err)
			return pageElements{}, err
		}
	}
	return cache.GetOrFetch(ctx, r.cache, key, fetch)
}

// load materializes the element maps from the store, applying the per-page
// locale fallback: only a fully empty result set falls back. Values stay
// raw; placeholder substitution belongs to Value.
func (r *Resolver) load(ctx context.Context, pageID, effective string) (pageElements, error) {
	records, err := r.entries.ListByPage(ctx, pageID, effective)
	if err != nil {
		return pageElements{}, err
	}

	if len(records) == 0 && r.locales.FallbackEnabled() && !r.locales.IsDefault(effective) && effective != i18n.NoLocale {
		records, err = r.entries.ListByPage(ctx, pageID, r.locales.Default())
		if err != nil {
			return pageElements{}, err
		}
	}

	elements := pageElements{
		Values: make(map[string]*string, len(records)),
		Types:  make(map[string]string, len(records)),
	}
	for _, record := range records {
		if record == nil {
			continue
		}
		elements.Values[record.ElementID] = record.Value
		elements.Types[record.ElementID] = record.Type
	}
	return elements, nil
}

// memoKey identifies one (page, locale) pair in both cache tiers.
func memoKey(pageID, locale string) string {
	if locale == i18n.NoLocale {
		return pageID
	}
	return pageID + "_" + locale
}

// lookupKey is the shared-cache key for one (page, locale) pair. Writes
// invalidate the exact same key.
func lookupKey(prefix, pageID, locale string) string {
	return prefix + memoKey(pageID, locale)
}
