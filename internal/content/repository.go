package content

import (
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewEntryRepository(db *bun.DB) repository.Repository[*Entry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Entry]{
		NewRecord: func() *Entry { return &Entry{} },
		GetID: func(e *Entry) uuid.UUID {
			return e.ID
		},
		SetID: func(e *Entry, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(e *Entry) string {
			if e == nil {
				return ""
			}
			return e.ID.String()
		},
	})
}

// entryKey is the canonical form of the unique (page, element, locale)
// triple used in error messages and memory indexes.
func entryKey(pageID, elementID, locale string) string {
	return fmt.Sprintf("%s/%s/%s", pageID, elementID, locale)
}
