package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page types supported by the versioned model.
const (
	TypePage     = "page"
	TypeFragment = "fragment"
	TypeBlock    = "block"
	TypeLanding  = "landing"
)

// Page is the versioned document model: a uniquely named page whose value
// holds nested named blocks. Version starts at 1 and increments on every
// successful update.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID          uuid.UUID  `bun:",pk,type:uuid"        json:"id"`
	Name        string     `bun:"name,notnull"         json:"name"`
	DisplayName string     `bun:"display_name,notnull" json:"display_name"`
	Type        string     `bun:"type,notnull,default:'page'" json:"type"`
	Locale      *string    `bun:"locale"               json:"locale"`
	Version     int        `bun:"version,notnull,default:1" json:"version"`
	Value       *Value     `bun:"value,type:jsonb"     json:"value"`
	DeletedAt   *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Value is the JSON document embedded in a page row. Blocks are exclusively
// owned by their page; they have no identity outside this document.
type Value struct {
	Version string  `json:"version,omitempty"`
	Title   string  `json:"title,omitempty"`
	Locale  string  `json:"locale,omitempty"`
	Blocks  []Block `json:"blocks,omitempty"`
}

// Block is a named, typed sub-document. ID is unique within the parent
// page's block array; Data is arbitrary JSON keyed by field name.
type Block struct {
	ID   string         `json:"id"`
	Type string         `json:"type,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// IsValidType reports whether the page type is one of the supported kinds.
func IsValidType(pageType string) bool {
	switch pageType {
	case TypePage, TypeFragment, TypeBlock, TypeLanding:
		return true
	default:
		return false
	}
}
