package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-page-content/internal/i18n"
	"github.com/goliatone/go-page-content/internal/logging"
	"github.com/goliatone/go-page-content/internal/runtimeconfig"
	"github.com/goliatone/go-page-content/pkg/interfaces"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
)

// Service implements the flat content write pipeline and editor reads.
type Service interface {
	PageContent(ctx context.Context, pageID string, locale string) ([]*Entry, error)
	Upsert(ctx context.Context, req UpsertRequest) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeletePage(ctx context.Context, pageID string) (DeletePageResult, error)
	PageSummaries(ctx context.Context) ([]PageSummary, error)
}

// EntryRepository abstracts storage operations for page content entries.
type EntryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	FindByKey(ctx context.Context, pageID, elementID, locale string) (*Entry, error)
	ListByPage(ctx context.Context, pageID, locale string) ([]*Entry, error)
	Upsert(ctx context.Context, record *Entry) (*Entry, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByPage(ctx context.Context, pageID string) (int, []string, error)
	PageSummaries(ctx context.Context) ([]PageSummary, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithCache attaches the shared cache so writes can forget the lookup keys
// they touch. The prefix must match the one the resolver reads under.
func WithCache(cacheService cache.CacheService, prefix string) ServiceOption {
	return func(s *service) {
		s.cache = cacheService
		s.cachePrefix = prefix
	}
}

// WithLogger overrides the no-op logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	entries     EntryRepository
	locales     *i18n.Resolver
	cfg         runtimeconfig.Config
	cache       cache.CacheService
	cachePrefix string
	logger      interfaces.Logger
	now         func() time.Time
	id          IDGenerator
}

// NewService constructs a content service with the required dependencies.
func NewService(entries EntryRepository, locales *i18n.Resolver, cfg runtimeconfig.Config, opts ...ServiceOption) Service {
	s := &service{
		entries:     entries,
		locales:     locales,
		cfg:         cfg,
		cachePrefix: cfg.Cache.KeyPrefix,
		logger:      logging.NoOp(),
		now:         time.Now,
		id:          uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// PageContent lists the stored entries for a page, narrowed to the
// effective locale. Reads go straight to the store so editors always see
// the current rows.
func (s *service) PageContent(ctx context.Context, pageID string, locale string) ([]*Entry, error) {
	if s.entries == nil {
		return nil, ErrStoreUnavailable
	}
	if err := ValidatePageID(pageID); err != nil {
		return nil, err
	}
	return s.entries.ListByPage(ctx, strings.TrimSpace(pageID), s.locales.Effective(locale))
}

// Upsert writes one entry keyed by its (page, element, locale) triple and
// forgets the shared-cache key it affects before returning. The returned
// entry reflects the stored row.
func (s *service) Upsert(ctx context.Context, req UpsertRequest) (*Entry, error) {
	if s.entries == nil {
		return nil, ErrStoreUnavailable
	}
	if err := ValidatePageID(req.PageID); err != nil {
		return nil, err
	}

	elementID := strings.TrimSpace(req.ElementID)
	if elementID == "" {
		return nil, ErrElementRequired
	}

	locale, err := s.writeLocale(req.Locale)
	if err != nil {
		return nil, err
	}

	entryType, err := s.entryType(req.Type)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &Entry{
		ID:        s.id(),
		PageID:    strings.TrimSpace(req.PageID),
		ElementID: elementID,
		Locale:    locale,
		Type:      entryType,
		Value:     req.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stored, err := s.entries.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}

	if err := s.invalidate(ctx, stored.PageID, stored.Locale); err != nil {
		return nil, err
	}
	return stored, nil
}

// Delete removes a single entry by id and forgets its cache key.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if s.entries == nil {
		return ErrStoreUnavailable
	}
	if id == uuid.Nil {
		return ErrEntryIDRequired
	}

	record, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.entries.DeleteByID(ctx, id); err != nil {
		return err
	}
	return s.invalidate(ctx, record.PageID, record.Locale)
}

// DeletePage removes every entry for a page and forgets the cache key of
// each (page, locale) pair that held content. A page with no rows succeeds
// with a zero result.
func (s *service) DeletePage(ctx context.Context, pageID string) (DeletePageResult, error) {
	if s.entries == nil {
		return DeletePageResult{}, ErrStoreUnavailable
	}
	if err := ValidatePageID(pageID); err != nil {
		return DeletePageResult{}, err
	}

	trimmed := strings.TrimSpace(pageID)
	removed, locales, err := s.entries.DeleteByPage(ctx, trimmed)
	if err != nil {
		return DeletePageResult{}, err
	}

	for _, locale := range locales {
		if err := s.invalidate(ctx, trimmed, locale); err != nil {
			return DeletePageResult{}, err
		}
	}
	return DeletePageResult{Removed: removed, Locales: locales}, nil
}

// PageSummaries lists every page holding content with its entry count.
func (s *service) PageSummaries(ctx context.Context) ([]PageSummary, error) {
	if s.entries == nil {
		return nil, ErrStoreUnavailable
	}
	return s.entries.PageSummaries(ctx)
}

// writeLocale validates the locale supplied on a write. Writes always name
// their locale explicitly when locale support is on; reads may rely on the
// configured default, writes may not fall back.
func (s *service) writeLocale(locale string) (string, error) {
	if !s.locales.Enabled() {
		return i18n.NoLocale, nil
	}

	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return "", ErrLocaleRequired
	}
	if !runtimeconfig.IsValidLocale(trimmed) {
		return "", ErrLocaleInvalid
	}
	if !s.locales.IsAvailable(trimmed) {
		return "", ErrLocaleUnknown
	}
	return trimmed, nil
}

func (s *service) entryType(entryType string) (string, error) {
	trimmed := strings.TrimSpace(entryType)
	if trimmed == "" {
		return TypeText, nil
	}
	if !s.cfg.AllowsType(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrTypeNotAllowed, trimmed)
	}
	return trimmed, nil
}

// invalidate forgets the shared-cache key for one (page, locale) pair. The
// write has already landed when this runs; a failure here surfaces so the
// caller never trusts a cache that may still hold the old value.
func (s *service) invalidate(ctx context.Context, pageID, locale string) error {
	if s.cache == nil {
		return nil
	}
	key := lookupKey(s.cachePrefix, pageID, locale)
	if err := s.cache.DeleteByPrefix(ctx, key); err != nil {
		s.logger.Error("content cache invalidation failed", "key", key, "error", err)
		return fmt.Errorf("%w: %s", ErrCacheInvalidate, key)
	}
	return nil
}
