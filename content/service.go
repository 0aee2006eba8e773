package content

import (
	"context"

	"github.com/google/uuid"
)

// Service exposes the write pipeline and editor reads for flat page
// content. Every successful write forgets the affected shared-cache keys
// before returning.
type Service interface {
	PageContent(ctx context.Context, pageID string, locale string) ([]*Entry, error)
	Upsert(ctx context.Context, req UpsertRequest) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeletePage(ctx context.Context, pageID string) (DeletePageResult, error)
	PageSummaries(ctx context.Context) ([]PageSummary, error)
}

// UpsertRequest captures the payload of an update-or-create by the unique
// (page, element, locale) triple.
type UpsertRequest struct {
	PageID    string
	ElementID string
	Locale    string
	Type      string
	Value     *string
}

// DeletePageResult reports the effect of a bulk page delete. Removed is
// zero (with no error) when the page had no content.
type DeletePageResult struct {
	Removed int      `json:"removed"`
	Locales []string `json:"locales,omitempty"`
}
