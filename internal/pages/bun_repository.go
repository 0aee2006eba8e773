package pages

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// sortColumns is the allow-list for admin listing sorts. Anything else
// falls back to name.
var sortColumns = map[string]string{
	"name":         "name",
	"display_name": "display_name",
	"type":         "type",
	"version":      "version",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}

type BunPageRepository struct {
	db   *bun.DB
	repo repository.Repository[*Page]
}

func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

// NewBunPageRepositoryWithCache constructs a PageRepository backed by bun
// with optional caching on the generic repository operations.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPageRepository {
	base := NewPageRepository(db)
	return &BunPageRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunPageRepository) Create(ctx context.Context, record *Page) (*Page, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunPageRepository) GetByName(ctx context.Context, name string) (*Page, error) {
	result, err := r.repo.GetByIdentifier(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(err, name)
	}
	return result, nil
}

// GetByNameLocale resolves a page by name preferring an exact locale match
// over a locale-less row.
func (r *BunPageRepository) GetByNameLocale(ctx context.Context, name, locale string) (*Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("?TableAlias.name = ?", name)
			if locale != "" {
				q = q.Where("?TableAlias.locale = ? OR ?TableAlias.locale IS NULL", locale).
					OrderExpr("?TableAlias.locale IS NULL ASC")
			}
			return q
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, name)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Key: name}
	}
	return records[0], nil
}

// List applies the admin listing filters. A non-positive limit disables
// pagination, which export relies on.
func (r *BunPageRepository) List(ctx context.Context, query ListQuery) ([]*Page, int, error) {
	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(query.Sort))]
	if !ok {
		column = "name"
	}
	direction := "ASC"
	if query.Desc {
		direction = "DESC"
	}

	criteria := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		if query.Type != "" {
			q = q.Where("?TableAlias.type = ?", query.Type)
		}
		if query.Locale != "" {
			q = q.Where("?TableAlias.locale = ?", query.Locale)
		}
		if query.Search != "" {
			needle := "%" + strings.ToLower(query.Search) + "%"
			q = q.Where("LOWER(?TableAlias.name) LIKE ? OR LOWER(?TableAlias.display_name) LIKE ?", needle, needle)
		}
		return q.OrderExpr(fmt.Sprintf("?TableAlias.%s %s", column, direction))
	})

	if query.Limit <= 0 {
		records, total, err := r.repo.List(ctx, criteria)
		return records, total, err
	}

	records, total, err := r.repo.List(ctx, criteria, repository.SelectPaginate(query.Limit, query.Offset))
	return records, total, err
}

// UpdateWithVersion persists the record only when the stored row still
// carries the expected version. record.Version must already hold
// expected+1; the compare and the bump land in one statement so concurrent
// writers cannot both win.
func (r *BunPageRepository) UpdateWithVersion(ctx context.Context, record *Page, expected int) (*Page, error) {
	if r.db == nil {
		return nil, fmt.Errorf("page repository: database not configured")
	}

	res, err := r.db.NewUpdate().
		Model(record).
		Column("name", "display_name", "type", "locale", "value", "version", "updated_at").
		Where("?TableAlias.id = ?", record.ID).
		Where("?TableAlias.version = ?", expected).
		Where("?TableAlias.deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("page update rows affected: %w", err)
	}
	if affected == 0 {
		current, err := r.GetByID(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		return nil, &VersionConflictError{
			Name:            current.Name,
			ExpectedVersion: expected,
			CurrentVersion:  current.Version,
		}
	}

	return r.GetByID(ctx, record.ID)
}

// Delete soft-deletes the page so exports from backups can still see it.
func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("page repository: database not configured")
	}

	res, err := r.db.NewDelete().
		Model((*Page)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("page delete rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Key: id.String()}
	}
	return nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("page repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
