package content

import pccontent "github.com/goliatone/go-page-content/content"

type (
	Entry            = pccontent.Entry
	PageSummary      = pccontent.PageSummary
	PageLocale       = pccontent.PageLocale
	NotFoundError    = pccontent.NotFoundError
	PageIDError      = pccontent.PageIDError
	UpsertRequest    = pccontent.UpsertRequest
	DeletePageResult = pccontent.DeletePageResult
)

const (
	TypeText  = pccontent.TypeText
	TypeImage = pccontent.TypeImage
	TypeFile  = pccontent.TypeFile
)

var (
	ErrPageIDInvalid    = pccontent.ErrPageIDInvalid
	ErrElementRequired  = pccontent.ErrElementRequired
	ErrLocaleRequired   = pccontent.ErrLocaleRequired
	ErrLocaleInvalid    = pccontent.ErrLocaleInvalid
	ErrLocaleUnknown    = pccontent.ErrLocaleUnknown
	ErrTypeNotAllowed   = pccontent.ErrTypeNotAllowed
	ErrEntryIDRequired  = pccontent.ErrEntryIDRequired
	ErrCacheInvalidate  = pccontent.ErrCacheInvalidate
	ErrStoreUnavailable = pccontent.ErrStoreUnavailable
)

var ValidatePageID = pccontent.ValidatePageID
