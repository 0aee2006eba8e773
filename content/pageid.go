package content

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
)

var pageIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_./]*[a-zA-Z0-9]$`)

// Page-id validation rules. PageIDError.Rule carries the one that failed.
const (
	RulePageIDRequired  = "required"
	RulePageIDFormat    = "format"
	RulePageIDSlash     = "slash"
	RulePageIDDoubleSep = "double_separator"
)

// ValidatePageID checks a page identifier against the rules shared by both
// content models: starts and ends alphanumeric, middle restricted to
// [a-zA-Z0-9-_./], never the bare "/" and never containing "//". The error,
// when non-nil, names the violated rule and offers a normalized suggestion
// without silently applying it.
func ValidatePageID(pageID string) error {
	trimmed := strings.TrimSpace(pageID)
	if trimmed == "" {
		return &PageIDError{PageID: pageID, Rule: RulePageIDRequired}
	}
	if trimmed == "/" {
		return &PageIDError{PageID: pageID, Rule: RulePageIDSlash, Suggestion: "home"}
	}
	if strings.Contains(trimmed, "//") {
		return &PageIDError{PageID: pageID, Rule: RulePageIDDoubleSep, Suggestion: suggestPageID(trimmed)}
	}
	if !pageIDPattern.MatchString(trimmed) {
		return &PageIDError{PageID: pageID, Rule: RulePageIDFormat, Suggestion: suggestPageID(trimmed)}
	}
	return nil
}

// suggestPageID produces a corrected identifier for validation messages.
// Segments are slug-normalized individually so path shapes survive.
func suggestPageID(pageID string) string {
	parts := strings.Split(strings.Trim(pageID, "/"), "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		normalized, err := slug.Normalize(part)
		if err != nil || normalized == "" {
			continue
		}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return "home"
	}
	return strings.Join(out, "/")
}
