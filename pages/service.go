package pages

import (
	"context"
	"time"
)

// Service describes the versioned page model use-cases. Updates are guarded
// by optimistic concurrency: a caller-supplied expected version that does
// not match the stored row fails with VersionConflictError and leaves the
// page untouched.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Page, error)
	// Get resolves a page by uuid or unique name.
	Get(ctx context.Context, identifier string) (*Page, error)
	// GetByName resolves a page by name and optional locale, reading
	// through the shared cache when enabled.
	GetByName(ctx context.Context, name string, locale string) (*Page, error)
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Update(ctx context.Context, req UpdateRequest) (*Page, error)
	Delete(ctx context.Context, identifier string) error
	Export(ctx context.Context, req ExportRequest) (*ExportResult, error)
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
}

// CreateRequest captures the payload required to create a page.
type CreateRequest struct {
	Name        string
	DisplayName string
	Type        string
	Locale      *string
	Value       *Value
}

// UpdateRequest captures the mutable fields for an existing page. Nil
// fields are left unchanged. ExpectedVersion, when set, must equal the
// stored version for the update to proceed.
type UpdateRequest struct {
	Identifier      string
	Name            *string
	DisplayName     *string
	Type            *string
	Locale          *string
	Value           *Value
	ExpectedVersion *int
}

// ListRequest captures admin listing filters and pagination.
type ListRequest struct {
	Type    string
	Locale  string
	Search  string
	Sort    string
	Desc    bool
	Page    int
	PerPage int
}

// ListResult is one page of the admin listing.
type ListResult struct {
	Items   []*Page `json:"items"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
}

// ExportRequest optionally narrows an export by type or locale.
type ExportRequest struct {
	Type   string
	Locale string
}

// ExportResult is the backup payload produced by Export.
type ExportResult struct {
	ExportedAt time.Time `json:"exported_at"`
	Version    string    `json:"version"`
	Pages      []*Page   `json:"pages"`
}

// ImportPage is one entry of an import payload, upserted by name.
type ImportPage struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Type        string  `json:"type,omitempty"`
	Locale      *string `json:"locale,omitempty"`
	Value       *Value  `json:"value,omitempty"`
}

// ImportRequest carries the pages to restore.
type ImportRequest struct {
	Pages []ImportPage
}

// ImportResult reports per-item outcomes; a failed page never aborts the
// rest of the batch.
type ImportResult struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}
