package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunEntryRepository struct {
	db   *bun.DB
	repo repository.Repository[*Entry]
}

func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return NewBunEntryRepositoryWithCache(db, nil, nil)
}

// NewBunEntryRepositoryWithCache constructs an EntryRepository backed by bun
// with optional read-through caching on the generic repository operations.
func NewBunEntryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunEntryRepository {
	base := NewEntryRepository(db)
	return &BunEntryRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page content", id.String())
	}
	return result, nil
}

func (r *BunEntryRepository) FindByKey(ctx context.Context, pageID, elementID, locale string) (*Entry, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				Where("?TableAlias.element_id = ?", elementID).
				Where("?TableAlias.locale = ?", locale)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page content", entryKey(pageID, elementID, locale))
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "page content", Key: entryKey(pageID, elementID, locale)}
	}
	return records[0], nil
}

// ListByPage returns every entry for a page, narrowed to one locale when
// the locale is non-empty. Rows come back ordered by element id so lookups
// are deterministic.
func (r *BunEntryRepository) ListByPage(ctx context.Context, pageID, locale string) ([]*Entry, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("?TableAlias.page_id = ?", pageID)
			if locale != "" {
				q = q.Where("?TableAlias.locale = ?", locale)
			}
			return q.OrderExpr("?TableAlias.element_id ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page content", pageID)
	}
	return records, nil
}

// Upsert writes the entry keyed by its (page, element, locale) triple:
// an existing row keeps its id and created_at and takes the new type and
// value, otherwise the record is inserted as-is. Runs in a transaction so
// concurrent upserts of the same triple cannot produce duplicates.
func (r *BunEntryRepository) Upsert(ctx context.Context, record *Entry) (*Entry, error) {
	if r.db == nil {
		return nil, fmt.Errorf("page content repository: database not configured")
	}

	result := &Entry{}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing := &Entry{}
		err := tx.NewSelect().
			Model(existing).
			Where("?TableAlias.page_id = ?", record.PageID).
			Where("?TableAlias.element_id = ?", record.ElementID).
			Where("?TableAlias.locale = ?", record.Locale).
			Limit(1).
			Scan(ctx)
		switch {
		case err == nil:
			existing.Type = record.Type
			existing.Value = record.Value
			existing.UpdatedAt = record.UpdatedAt
			if existing.UpdatedAt.IsZero() {
				existing.UpdatedAt = time.Now().UTC()
			}
			if _, err := tx.NewUpdate().
				Model(existing).
				Column("type", "value", "updated_at").
				Where("?TableAlias.id = ?", existing.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("update page content: %w", err)
			}
			*result = *existing
			return nil
		case errors.Is(err, sql.ErrNoRows):
			toInsert := *record
			if toInsert.ID == uuid.Nil {
				toInsert.ID = uuid.New()
			}
			if _, err := tx.NewInsert().Model(&toInsert).Exec(ctx); err != nil {
				return fmt.Errorf("insert page content: %w", err)
			}
			*result = toInsert
			return nil
		default:
			return fmt.Errorf("select page content: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *BunEntryRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("page content repository: database not configured")
	}

	res, err := r.db.NewDelete().
		Model((*Entry)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete page content: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("page content delete rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: "page content", Key: id.String()}
	}
	return nil
}

// DeleteByPage removes every entry for a page and reports the distinct
// locales that held content, so callers can invalidate each affected cache
// key. Deleting a page with no rows is not an error.
func (r *BunEntryRepository) DeleteByPage(ctx context.Context, pageID string) (int, []string, error) {
	if r.db == nil {
		return 0, nil, fmt.Errorf("page content repository: database not configured")
	}

	var removed int64
	var locales []string
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().
			Model((*Entry)(nil)).
			ColumnExpr("DISTINCT ?TableAlias.locale").
			Where("?TableAlias.page_id = ?", pageID).
			OrderExpr("?TableAlias.locale ASC").
			Scan(ctx, &locales); err != nil {
			return fmt.Errorf("select page content locales: %w", err)
		}

		res, err := tx.NewDelete().
			Model((*Entry)(nil)).
			Where("?TableAlias.page_id = ?", pageID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete page content: %w", err)
		}
		removed, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("page content delete rows affected: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return int(removed), locales, nil
}

// PageSummaries lists every page that holds content with its entry count,
// feeding the editor index.
func (r *BunEntryRepository) PageSummaries(ctx context.Context) ([]PageSummary, error) {
	if r.db == nil {
		return nil, fmt.Errorf("page content repository: database not configured")
	}

	summaries := []PageSummary{}
	err := r.db.NewSelect().
		Model((*Entry)(nil)).
		ColumnExpr("?TableAlias.page_id AS page_id").
		ColumnExpr("count(*) AS count").
		GroupExpr("?TableAlias.page_id").
		OrderExpr("?TableAlias.page_id ASC").
		Scan(ctx, &summaries)
	if err != nil {
		return nil, fmt.Errorf("select page summaries: %w", err)
	}
	return summaries, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
