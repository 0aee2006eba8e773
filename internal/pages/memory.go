package pages

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryPageRepository is an in-memory implementation for scaffolding and
// tests. It mirrors the store semantics that matter: unique names, the
// version compare-and-bump, and soft deletes hidden from reads.
type MemoryPageRepository struct {
	mu        sync.RWMutex
	pages     map[uuid.UUID]*Page
	nameIndex map[string]uuid.UUID
}

// NewMemoryPageRepository creates an empty in-memory page repository.
func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{
		pages:     make(map[uuid.UUID]*Page),
		nameIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied page.
func (m *MemoryPageRepository) Create(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePage(record)
	m.pages[copied.ID] = copied
	m.nameIndex[copied.Name] = copied.ID
	return clonePage(copied), nil
}

// GetByID retrieves a live page by identifier.
func (m *MemoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.pages[id]
	if !ok || rec.DeletedAt != nil {
		return nil, &NotFoundError{Key: id.String()}
	}
	return clonePage(rec), nil
}

// GetByName retrieves a live page by its unique name.
func (m *MemoryPageRepository) GetByName(_ context.Context, name string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.nameIndex[name]
	if !ok {
		return nil, &NotFoundError{Key: name}
	}
	rec := m.pages[id]
	if rec == nil || rec.DeletedAt != nil {
		return nil, &NotFoundError{Key: name}
	}
	return clonePage(rec), nil
}

// GetByNameLocale resolves a page by name, preferring an exact locale match
// over a locale-less row.
func (m *MemoryPageRepository) GetByNameLocale(ctx context.Context, name, locale string) (*Page, error) {
	rec, err := m.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if locale != "" && rec.Locale != nil && *rec.Locale != locale {
		return nil, &NotFoundError{Key: name}
	}
	return rec, nil
}

// List applies the admin listing filters over live pages.
func (m *MemoryPageRepository) List(_ context.Context, query ListQuery) ([]*Page, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*Page, 0, len(m.pages))
	for _, rec := range m.pages {
		if rec.DeletedAt != nil {
			continue
		}
		if query.Type != "" && rec.Type != query.Type {
			continue
		}
		if query.Locale != "" && (rec.Locale == nil || *rec.Locale != query.Locale) {
			continue
		}
		if query.Search != "" {
			needle := strings.ToLower(query.Search)
			if !strings.Contains(strings.ToLower(rec.Name), needle) &&
				!strings.Contains(strings.ToLower(rec.DisplayName), needle) {
				continue
			}
		}
		matched = append(matched, clonePage(rec))
	}

	sortPages(matched, query.Sort, query.Desc)
	total := len(matched)

	if query.Limit > 0 {
		if query.Offset >= total {
			return []*Page{}, total, nil
		}
		end := query.Offset + query.Limit
		if end > total {
			end = total
		}
		matched = matched[query.Offset:end]
	}
	return matched, total, nil
}

// UpdateWithVersion persists the record only when the stored version still
// matches the expectation.
func (m *MemoryPageRepository) UpdateWithVersion(_ context.Context, record *Page, expected int) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.pages[record.ID]
	if !ok || current.DeletedAt != nil {
		return nil, &NotFoundError{Key: record.ID.String()}
	}
	if current.Version != expected {
		return nil, &VersionConflictError{
			Name:            current.Name,
			ExpectedVersion: expected,
			CurrentVersion:  current.Version,
		}
	}

	delete(m.nameIndex, current.Name)
	copied := clonePage(record)
	copied.CreatedAt = current.CreatedAt
	m.pages[copied.ID] = copied
	m.nameIndex[copied.Name] = copied.ID
	return clonePage(copied), nil
}

// Delete soft-deletes the page.
func (m *MemoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.pages[id]
	if !ok || rec.DeletedAt != nil {
		return &NotFoundError{Key: id.String()}
	}
	now := time.Now().UTC()
	rec.DeletedAt = &now
	delete(m.nameIndex, rec.Name)
	return nil
}

func sortPages(records []*Page, sortBy string, desc bool) {
	less := func(i, j int) bool { return records[i].Name < records[j].Name }
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "display_name":
		less = func(i, j int) bool { return records[i].DisplayName < records[j].DisplayName }
	case "type":
		less = func(i, j int) bool { return records[i].Type < records[j].Type }
	case "version":
		less = func(i, j int) bool { return records[i].Version < records[j].Version }
	case "created_at":
		less = func(i, j int) bool { return records[i].CreatedAt.Before(records[j].CreatedAt) }
	case "updated_at":
		less = func(i, j int) bool { return records[i].UpdatedAt.Before(records[j].UpdatedAt) }
	}
	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.Slice(records, less)
}

func clonePage(src *Page) *Page {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Locale != nil {
		locale := *src.Locale
		copied.Locale = &locale
	}
	if src.DeletedAt != nil {
		deleted := *src.DeletedAt
		copied.DeletedAt = &deleted
	}
	copied.Value = cloneValue(src.Value)
	return &copied
}

// cloneValue deep-copies the JSON document through a marshal round trip so
// callers can never mutate stored block data in place.
func cloneValue(src *Value) *Value {
	if src == nil {
		return nil
	}
	raw, err := json.Marshal(src)
	if err != nil {
		copied := *src
		return &copied
	}
	copied := &Value{}
	if err := json.Unmarshal(raw, copied); err != nil {
		shallow := *src
		return &shallow
	}
	return copied
}
