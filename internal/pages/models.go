package pages

import pcpages "github.com/goliatone/go-page-content/pages"

type (
	Page                 = pcpages.Page
	Value                = pcpages.Value
	Block                = pcpages.Block
	CreateRequest        = pcpages.CreateRequest
	UpdateRequest        = pcpages.UpdateRequest
	ListRequest          = pcpages.ListRequest
	ListResult           = pcpages.ListResult
	ExportRequest        = pcpages.ExportRequest
	ExportResult         = pcpages.ExportResult
	ImportPage           = pcpages.ImportPage
	ImportRequest        = pcpages.ImportRequest
	ImportResult         = pcpages.ImportResult
	NotFoundError        = pcpages.NotFoundError
	VersionConflictError = pcpages.VersionConflictError
)

const (
	TypePage     = pcpages.TypePage
	TypeFragment = pcpages.TypeFragment
	TypeBlock    = pcpages.TypeBlock
	TypeLanding  = pcpages.TypeLanding
)

var (
	ErrNameRequired        = pcpages.ErrNameRequired
	ErrNameInvalid         = pcpages.ErrNameInvalid
	ErrNameExists          = pcpages.ErrNameExists
	ErrDisplayNameRequired = pcpages.ErrDisplayNameRequired
	ErrTypeInvalid         = pcpages.ErrTypeInvalid
	ErrLocaleInvalid       = pcpages.ErrLocaleInvalid
	ErrIdentifierRequired  = pcpages.ErrIdentifierRequired
	ErrVersionInvalid      = pcpages.ErrVersionInvalid
	ErrVersionConflict     = pcpages.ErrVersionConflict
	ErrNoPages             = pcpages.ErrNoPages
)

var IsValidType = pcpages.IsValidType
