package content

import (
	"errors"
	"fmt"
)

var (
	ErrPageIDInvalid    = errors.New("content: page id is invalid")
	ErrElementRequired  = errors.New("content: element id is required")
	ErrLocaleRequired   = errors.New("content: locale is required")
	ErrLocaleInvalid    = errors.New("content: locale format is invalid")
	ErrLocaleUnknown    = errors.New("content: locale is not in the available set")
	ErrTypeNotAllowed   = errors.New("content: content type is not allowed")
	ErrEntryIDRequired  = errors.New("content: entry id is required")
	ErrCacheInvalidate  = errors.New("content: cache invalidation failed")
	ErrStoreUnavailable = errors.New("content: store is not configured")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// PageIDError reports which page-id rule a candidate violated. Suggestion,
// when set, is a normalized identifier offered in the message; the input is
// never silently rewritten.
type PageIDError struct {
	PageID     string
	Rule       string
	Suggestion string
}

func (e *PageIDError) Error() string {
	if e == nil {
		return ErrPageIDInvalid.Error()
	}
	msg := ""
	switch e.Rule {
	case RulePageIDRequired:
		msg = "page id is required"
	case RulePageIDSlash:
		msg = `page id cannot be "/"`
	case RulePageIDDoubleSep:
		msg = `page id cannot contain "//"`
	default:
		msg = "page id must start and end with an alphanumeric character and may contain only letters, digits, and -_./"
	}
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (did you mean %q?)", ErrPageIDInvalid.Error(), msg, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", ErrPageIDInvalid.Error(), msg)
}

func (e *PageIDError) Unwrap() error {
	return ErrPageIDInvalid
}
