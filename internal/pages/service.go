package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pccontent "github.com/goliatone/go-page-content/content"
	"github.com/goliatone/go-page-content/internal/logging"
	"github.com/goliatone/go-page-content/internal/runtimeconfig"
	"github.com/goliatone/go-page-content/pkg/interfaces"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
)

// exportVersion tags backup payloads so future format changes stay
// recognizable on import.
const exportVersion = "1.0"

// Service implements the versioned page model use-cases.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Page, error)
	Get(ctx context.Context, identifier string) (*Page, error)
	GetByName(ctx context.Context, name string, locale string) (*Page, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Update(ctx context.Context, req UpdateRequest) (*Page, error)
	Delete(ctx context.Context, identifier string) error
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
}

// ListQuery is the storage-level shape of the admin listing filters.
type ListQuery struct {
	Type   string
	Locale string
	Search string
	Sort   string
	Desc   bool
	Offset int
	Limit  int
}

// PageRepository abstracts storage operations for page records.
type PageRepository interface {
	Create(ctx context.Context, record *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetByName(ctx context.Context, name string) (*Page, error)
	GetByNameLocale(ctx context.Context, name, locale string) (*Page, error)
	List(ctx context.Context, query ListQuery) ([]*Page, int, error)
	UpdateWithVersion(ctx context.Context, record *Page, expected int) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ValueValidator checks a page value document against the block schemas
// before it is persisted.
type ValueValidator interface {
	ValidatePageValue(value *Value) error
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

// WithCache attaches the shared cache used by name lookups. Writes forget
// every locale variant of the names they touch.
func WithCache(cacheService cache.CacheService, prefix string) ServiceOption {
	return func(s *service) {
		s.cache = cacheService
		s.cachePrefix = prefix
	}
}

// WithValueValidator attaches schema validation for page values.
func WithValueValidator(validator ValueValidator) ServiceOption {
	return func(s *service) {
		s.validator = validator
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
	repo        PageRepository
	cfg         runtimeconfig.Config
	cache       cache.CacheService
	cachePrefix string
	validator   ValueValidator
	logger      interfaces.Logger
	now         func() time.Time
	id          IDGenerator
}

// NewService constructs a page service with the required dependencies.
func NewService(repo PageRepository, cfg runtimeconfig.Config, opts ...ServiceOption) Service {
	s := &service{
		repo:        repo,
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

// Create persists a new page at version 1.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Page, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return nil, ErrDisplayNameRequired
	}
	pageType, err := validateType(req.Type)
	if err != nil {
		return nil, err
	}
	locale, err := validateLocale(req.Locale)
	if err != nil {
		return nil, err
	}
	if err := s.validateValue(req.Value); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(ctx, name); err == nil && existing != nil {
		return nil, ErrNameExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now().UTC()
	record := &Page{
		ID:          s.id(),
		Name:        name,
		DisplayName: displayName,
		Type:        pageType,
		Locale:      locale,
		Version:     1,
		Value:       req.Value,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, created.Name); err != nil {
		return nil, err
	}
	return created, nil
}

// Get resolves a page by uuid or unique name.
func (s *service) Get(ctx context.Context, identifier string) (*Page, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, ErrIdentifierRequired
	}
	if id, err := uuid.Parse(trimmed); err == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.GetByName(ctx, trimmed)
}

// GetByName resolves a page by name and optional locale, reading through
// the shared cache when enabled.
func (s *service) GetByName(ctx context.Context, name string, locale string) (*Page, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrIdentifierRequired
	}
	locale = strings.TrimSpace(locale)

	if s.cache == nil {
		return s.repo.GetByNameLocale(ctx, trimmed, locale)
	}
	return cache.GetOrFetch(ctx, s.cache, pageKey(s.cachePrefix, trimmed, locale), func(ctx context.Context) (*Page, error) {
		return s.repo.GetByNameLocale(ctx, trimmed, locale)
	})
}

// List returns one page of the admin listing.
func (s *service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	perPage := s.cfg.Pagination.PerPageOrDefault(req.PerPage)

	records, total, err := s.repo.List(ctx, ListQuery{
		Type:   strings.TrimSpace(req.Type),
		Locale: strings.TrimSpace(req.Locale),
		Search: strings.TrimSpace(req.Search),
		Sort:   req.Sort,
		Desc:   req.Desc,
		Offset: (page - 1) * perPage,
		Limit:  perPage,
	})
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items:   records,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// Update applies the non-nil fields and bumps the version. The caller's
// expected version, when given, guards against concurrent edits; omitted,
// the version read here serves as the expectation, so a racing writer
// still surfaces as a conflict instead of a silent lost update.
func (s *service) Update(ctx context.Context, req UpdateRequest) (*Page, error) {
	current, err := s.Get(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}

	expected := current.Version
	if req.ExpectedVersion != nil {
		if *req.ExpectedVersion <= 0 {
			return nil, ErrVersionInvalid
		}
		expected = *req.ExpectedVersion
	}

	record := clonePage(current)
	previousName := current.Name

	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		if name != current.Name {
			if existing, err := s.repo.GetByName(ctx, name); err == nil && existing != nil {
				return nil, ErrNameExists
			} else if err != nil {
				var notFound *NotFoundError
				if !errors.As(err, &notFound) {
					return nil, err
				}
			}
		}
		record.Name = name
	}
	if req.DisplayName != nil {
		displayName := strings.TrimSpace(*req.DisplayName)
		if displayName == "" {
			return nil, ErrDisplayNameRequired
		}
		record.DisplayName = displayName
	}
	if req.Type != nil {
		pageType, err := validateType(*req.Type)
		if err != nil {
			return nil, err
		}
		record.Type = pageType
	}
	if req.Locale != nil {
		locale, err := validateLocale(req.Locale)
		if err != nil {
			return nil, err
		}
		record.Locale = locale
	}
	if req.Value != nil {
		if err := s.validateValue(req.Value); err != nil {
			return nil, err
		}
		record.Value = req.Value
	}

	record.Version = expected + 1
	record.UpdatedAt = s.now().UTC()

	updated, err := s.repo.UpdateWithVersion(ctx, record, expected)
	if err != nil {
		return nil, err
	}

	if err := s.invalidate(ctx, previousName); err != nil {
		return nil, err
	}
	if updated.Name != previousName {
		if err := s.invalidate(ctx, updated.Name); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// Delete soft-deletes a page resolved by uuid or name.
func (s *service) Delete(ctx context.Context, identifier string) error {
	record, err := s.Get(ctx, identifier)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, record.ID); err != nil {
		return err
	}
	return s.invalidate(ctx, record.Name)
}

// Export produces a backup payload of every live page matching the filters.
func (s *service) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	records, _, err := s.repo.List(ctx, ListQuery{
		Type:   strings.TrimSpace(req.Type),
		Locale: strings.TrimSpace(req.Locale),
		Sort:   "name",
	})
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		ExportedAt: s.now().UTC(),
		Version:    exportVersion,
		Pages:      records,
	}, nil
}

// Import upserts pages by name. One bad page is reported and skipped; it
// never aborts the rest of the batch.
func (s *service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if len(req.Pages) == 0 {
		return nil, ErrNoPages
	}

	result := &ImportResult{}
	for _, page := range req.Pages {
		if err := s.importPage(ctx, page); err != nil {
			label := strings.TrimSpace(page.Name)
			if label == "" {
				label = "(unnamed)"
			}
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", label, err))
			continue
		}
		result.Imported++
	}

	result.Message = fmt.Sprintf("imported %d of %d pages", result.Imported, len(req.Pages))
	return result, nil
}

func (s *service) importPage(ctx context.Context, page ImportPage) error {
	existing, err := s.repo.GetByName(ctx, strings.TrimSpace(page.Name))
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		_, err := s.Create(ctx, CreateRequest{
			Name:        page.Name,
			DisplayName: page.DisplayName,
			Type:        page.Type,
			Locale:      page.Locale,
			Value:       page.Value,
		})
		return err
	}

	_, err = s.Update(ctx, UpdateRequest{
		Identifier:  existing.ID.String(),
		DisplayName: &page.DisplayName,
		Type:        optionalString(page.Type),
		Locale:      page.Locale,
		Value:       page.Value,
	})
	return err
}

func (s *service) validateValue(value *Value) error {
	if value == nil || s.validator == nil {
		return nil
	}
	return s.validator.ValidatePageValue(value)
}

// invalidate forgets every locale variant of a page name in the shared
// cache. Runs after the write has landed.
func (s *service) invalidate(ctx context.Context, name string) error {
	if s.cache == nil {
		return nil
	}
	prefix := pageKeyPrefix(s.cachePrefix, name)
	if err := s.cache.DeleteByPrefix(ctx, prefix); err != nil {
		s.logger.Error("page cache invalidation failed", "prefix", prefix, "error", err)
		return fmt.Errorf("pages: cache invalidation failed for %q", name)
	}
	return nil
}

func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrNameRequired
	}
	if err := pccontent.ValidatePageID(trimmed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNameInvalid, err)
	}
	return trimmed, nil
}

func validateType(pageType string) (string, error) {
	trimmed := strings.TrimSpace(pageType)
	if trimmed == "" {
		return TypePage, nil
	}
	if !IsValidType(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrTypeInvalid, trimmed)
	}
	return trimmed, nil
}

func validateLocale(locale *string) (*string, error) {
	if locale == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*locale)
	if trimmed == "" {
		return nil, nil
	}
	if !runtimeconfig.IsValidLocale(trimmed) {
		return nil, ErrLocaleInvalid
	}
	return &trimmed, nil
}

func optionalString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

// pageKey is the shared-cache key for one (name, locale) lookup.
func pageKey(prefix, name, locale string) string {
	return pageKeyPrefix(prefix, name) + locale
}

// pageKeyPrefix covers every locale variant of a name. The "|" separator
// cannot occur in page identifiers, so the prefix never bleeds into flat
// content keys.
func pageKeyPrefix(prefix, name string) string {
	return prefix + name + "|"
}
