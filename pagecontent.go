package pagecontent

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-page-content/internal/content"
	pchttp "github.com/goliatone/go-page-content/internal/http"
	"github.com/goliatone/go-page-content/internal/i18n"
	"github.com/goliatone/go-page-content/internal/logging"
	"github.com/goliatone/go-page-content/internal/logging/gologger"
	"github.com/goliatone/go-page-content/internal/pages"
	"github.com/goliatone/go-page-content/internal/validation"
	"github.com/goliatone/go-page-content/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// ContentService exports the page content service contract for consumers of
// the pagecontent package.
type ContentService = content.Service

// PageService exports the versioned page service contract.
type PageService = pages.Service

// ContentResolver exports the request-scoped content resolver.
type ContentResolver = content.Resolver

// PageResolver exports the request-scoped page resolver.
type PageResolver = pages.Resolver

// EntryRepository exports the content storage contract.
type EntryRepository = content.EntryRepository

// PageRepository exports the page storage contract.
type PageRepository = pages.PageRepository

// Entry exports the flat content record.
type Entry = content.Entry

// UpsertRequest exports the content write payload.
type UpsertRequest = content.UpsertRequest

// Page exports the versioned page record.
type Page = pages.Page

// PageValue exports the structured page document.
type PageValue = pages.Value

// PageBlock exports one block of a page document.
type PageBlock = pages.Block

// CreatePageRequest exports the page creation payload.
type CreatePageRequest = pages.CreateRequest

// UpdatePageRequest exports the page update payload.
type UpdatePageRequest = pages.UpdateRequest

// IsNameConflict reports whether the error is a duplicate page name.
func IsNameConflict(err error) bool {
	return errors.Is(err, pages.ErrNameExists)
}

// Module represents the top level page-content runtime façade.
type Module struct {
	cfg          Config
	db           *bun.DB
	cacheService repocache.CacheService
	provider     interfaces.LoggerProvider
	entries      content.EntryRepository
	pageRepo     pages.PageRepository
	locales      *i18n.Resolver
	contentSvc   content.Service
	pageSvc      pages.Service
	validator    *validation.PageValidator
}

// Option overrides a Module collaborator before wiring.
type Option func(*Module)

// WithDB attaches the bun database the module stores content in. Without a
// database the module falls back to in-memory repositories.
func WithDB(db *bun.DB) Option {
	return func(m *Module) {
		if m != nil {
			m.db = db
		}
	}
}

// WithCacheService overrides the shared cache tier.
func WithCacheService(cacheService repocache.CacheService) Option {
	return func(m *Module) {
		if m != nil {
			m.cacheService = cacheService
		}
	}
}

// WithLoggerProvider overrides the logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if m != nil {
			m.provider = provider
		}
	}
}

// WithEntryRepository overrides the content entry storage.
func WithEntryRepository(repo content.EntryRepository) Option {
	return func(m *Module) {
		if m != nil {
			m.entries = repo
		}
	}
}

// WithPageRepository overrides the page storage.
func WithPageRepository(repo pages.PageRepository) Option {
	return func(m *Module) {
		if m != nil {
			m.pageRepo = repo
		}
	}
}

// New constructs a page-content module using the provided configuration and
// optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.cacheService == nil && cfg.Cache.Enabled {
		cacheCfg := repocache.DefaultConfig()
		cacheCfg.TTL = cfg.Cache.TTL
		cacheService, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return nil, fmt.Errorf("pagecontent: build cache service: %w", err)
		}
		m.cacheService = cacheService
	}

	if m.provider == nil && cfg.Logging.Enabled {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, fmt.Errorf("pagecontent: build logger provider: %w", err)
		}
		m.provider = provider
	}

	if m.entries == nil {
		if m.db != nil {
			m.entries = content.NewBunEntryRepository(m.db)
		} else {
			m.entries = content.NewMemoryEntryRepository()
		}
	}
	if m.pageRepo == nil {
		if m.db != nil {
			m.pageRepo = pages.NewBunPageRepository(m.db)
		} else {
			m.pageRepo = pages.NewMemoryPageRepository()
		}
	}

	validator, err := validation.NewPageValidator(cfg.Validation)
	if err != nil {
		return nil, err
	}
	m.validator = validator

	m.locales = i18n.NewResolver(cfg.Locale)

	contentOpts := []content.ServiceOption{
		content.WithLogger(logging.ContentLogger(m.provider)),
	}
	pageOpts := []pages.ServiceOption{
		pages.WithValueValidator(validator),
		pages.WithLogger(logging.PagesLogger(m.provider)),
	}
	if m.cacheService != nil {
		contentOpts = append(contentOpts, content.WithCache(m.cacheService, cfg.Cache.KeyPrefix))
		pageOpts = append(pageOpts, pages.WithCache(m.cacheService, cfg.Cache.KeyPrefix))
	}

	m.contentSvc = content.NewService(m.entries, m.locales, cfg, contentOpts...)
	m.pageSvc = pages.NewService(m.pageRepo, cfg, pageOpts...)

	return m, nil
}

// Content returns the configured content service.
func (m *Module) Content() ContentService {
	if m == nil {
		return nil
	}
	return m.contentSvc
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	if m == nil {
		return nil
	}
	return m.pageSvc
}

// Validator returns the JSON-schema validator for page documents.
func (m *Module) Validator() *validation.PageValidator {
	if m == nil {
		return nil
	}
	return m.validator
}

// NewContentResolver builds a request-scoped resolver over the shared cache
// tier. Callers create one per request (or per render) and discard it; the
// memoized values never outlive the resolver.
func (m *Module) NewContentResolver() *ContentResolver {
	if m == nil {
		return nil
	}
	opts := []content.ResolverOption{
		content.WithResolverLogger(logging.ResolverLogger(m.provider)),
	}
	if m.cacheService != nil {
		opts = append(opts, content.WithResolverCache(m.cacheService, m.cfg.Cache.KeyPrefix))
	}
	return content.NewResolver(m.entries, m.locales, m.cfg, opts...)
}

// NewPageResolver builds a request-scoped resolver over the page service.
func (m *Module) NewPageResolver() *PageResolver {
	if m == nil {
		return nil
	}
	return pages.NewResolver(m.pageSvc)
}

// Register mounts the admin API on the provided mux under the configured
// route prefix.
func (m *Module) Register(mux *http.ServeMux) error {
	if m == nil {
		return fmt.Errorf("pagecontent: module is nil")
	}
	api := pchttp.NewAdminAPI(
		pchttp.WithBasePath(m.cfg.RoutePrefix),
		pchttp.WithContentService(m.contentSvc),
		pchttp.WithPageService(m.pageSvc),
		pchttp.WithLogger(logging.HTTPLogger(m.provider)),
	)
	return api.Register(mux)
}
