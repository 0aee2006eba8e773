package content

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryEntryRepository is an in-memory implementation for scaffolding and tests.
type MemoryEntryRepository struct {
	mu       sync.RWMutex
	entries  map[uuid.UUID]*Entry
	keyIndex map[string]uuid.UUID
}

// NewMemoryEntryRepository creates an empty in-memory entry repository.
func NewMemoryEntryRepository() *MemoryEntryRepository {
	return &MemoryEntryRepository{
		entries:  make(map[uuid.UUID]*Entry),
		keyIndex: make(map[string]uuid.UUID),
	}
}

// GetByID retrieves an entry by identifier.
func (m *MemoryEntryRepository) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.entries[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page content", Key: id.String()}
	}
	return cloneEntry(rec), nil
}

// FindByKey retrieves an entry by its unique triple.
func (m *MemoryEntryRepository) FindByKey(_ context.Context, pageID, elementID, locale string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := entryKey(pageID, elementID, locale)
	id, ok := m.keyIndex[key]
	if !ok {
		return nil, &NotFoundError{Resource: "page content", Key: key}
	}
	return cloneEntry(m.entries[id]), nil
}

// ListByPage returns entries for a page, optionally narrowed to a locale,
// ordered by element id.
func (m *MemoryEntryRepository) ListByPage(_ context.Context, pageID, locale string) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Entry, 0)
	for _, rec := range m.entries {
		if rec.PageID != pageID {
			continue
		}
		if locale != "" && rec.Locale != locale {
			continue
		}
		out = append(out, cloneEntry(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ElementID < out[j].ElementID })
	return out, nil
}

// Upsert inserts or replaces the entry keyed by its triple. An existing row
// keeps its id and created_at.
func (m *MemoryEntryRepository) Upsert(_ context.Context, record *Entry) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := entryKey(record.PageID, record.ElementID, record.Locale)
	now := record.UpdatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	if id, ok := m.keyIndex[key]; ok {
		existing := m.entries[id]
		existing.Type = record.Type
		existing.Value = cloneValue(record.Value)
		existing.UpdatedAt = now
		return cloneEntry(existing), nil
	}

	copied := cloneEntry(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = now
	}
	copied.UpdatedAt = now
	m.entries[copied.ID] = copied
	m.keyIndex[key] = copied.ID
	return cloneEntry(copied), nil
}

// DeleteByID removes a single entry.
func (m *MemoryEntryRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.entries[id]
	if !ok {
		return &NotFoundError{Resource: "page content", Key: id.String()}
	}
	delete(m.keyIndex, entryKey(rec.PageID, rec.ElementID, rec.Locale))
	delete(m.entries, id)
	return nil
}

// DeleteByPage removes every entry for a page and reports the distinct
// locales that held content.
func (m *MemoryEntryRepository) DeleteByPage(_ context.Context, pageID string) (int, []string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	seen := map[string]struct{}{}
	for id, rec := range m.entries {
		if rec.PageID != pageID {
			continue
		}
		seen[rec.Locale] = struct{}{}
		delete(m.keyIndex, entryKey(rec.PageID, rec.ElementID, rec.Locale))
		delete(m.entries, id)
		removed++
	}

	locales := make([]string, 0, len(seen))
	for locale := range seen {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return removed, locales, nil
}

// PageSummaries aggregates entry counts per page, ordered by page id.
func (m *MemoryEntryRepository) PageSummaries(_ context.Context) ([]PageSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := map[string]int{}
	for _, rec := range m.entries {
		counts[rec.PageID]++
	}

	out := make([]PageSummary, 0, len(counts))
	for pageID, count := range counts {
		out = append(out, PageSummary{PageID: pageID, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PageID < out[j].PageID })
	return out, nil
}

func cloneEntry(src *Entry) *Entry {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Value = cloneValue(src.Value)
	return &copied
}

func cloneValue(src *string) *string {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}
