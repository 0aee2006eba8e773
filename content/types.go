package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Content types supported out of the box. The configured allow-list may
// extend this set.
const (
	TypeText  = "text"
	TypeImage = "image"
	TypeFile  = "file"
)

// Entry is a single named content slot on a page. The
// (page_id, element_id, locale) triple is unique.
type Entry struct {
	bun.BaseModel `bun:"table:page_contents,alias:pc"`

	ID        uuid.UUID `bun:",pk,type:uuid"         json:"id"`
	PageID    string    `bun:"page_id,notnull"       json:"page_id"`
	ElementID string    `bun:"element_id,notnull"    json:"element_id"`
	Locale    string    `bun:"locale,notnull"        json:"locale"`
	Type      string    `bun:"type,notnull"          json:"type"`
	Value     *string   `bun:"value"                 json:"value"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// PageSummary aggregates a page id with the number of distinct elements
// stored for it, across locales. Used by the editor index.
type PageSummary struct {
	PageID string `json:"page_id"`
	Count  int    `json:"count"`
}

// PageLocale identifies one (page, locale) pair that holds content. Bulk
// deletes report these so callers can invalidate every affected cache key.
type PageLocale struct {
	PageID string
	Locale string
}
