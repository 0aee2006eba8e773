package pages

import (
	"errors"
	"fmt"
)

var (
	ErrNameRequired        = errors.New("pages: name is required")
	ErrNameInvalid         = errors.New("pages: name contains invalid characters")
	ErrNameExists          = errors.New("pages: name already exists")
	ErrDisplayNameRequired = errors.New("pages: display name is required")
	ErrTypeInvalid         = errors.New("pages: unknown page type")
	ErrLocaleInvalid       = errors.New("pages: locale format is invalid")
	ErrIdentifierRequired  = errors.New("pages: page identifier is required")
	ErrVersionInvalid      = errors.New("pages: version must be a positive integer")
	ErrVersionConflict     = errors.New("pages: page has been modified by another user")
	ErrNoPages             = errors.New("pages: import payload contains no pages")
)

// NotFoundError reports a missing page lookup by id or name.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return "page not found"
	}
	return fmt.Sprintf("page %q not found", e.Key)
}

// VersionConflictError carries the current version alongside the stale
// expectation so clients can re-fetch and re-apply.
type VersionConflictError struct {
	Name            string
	ExpectedVersion int
	CurrentVersion  int
}

func (e *VersionConflictError) Error() string {
	if e == nil {
		return ErrVersionConflict.Error()
	}
	return fmt.Sprintf("%s: expected version %d, current version %d", ErrVersionConflict.Error(), e.ExpectedVersion, e.CurrentVersion)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
