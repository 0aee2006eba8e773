package i18n

import (
	"strings"

	"github.com/goliatone/go-page-content/internal/runtimeconfig"
)

// NoLocale is the sentinel effective locale used when locale support is
// disabled; lookups carrying it ignore locale entirely.
const NoLocale = ""

// Resolver determines the effective locale for a lookup and exposes the
// pieces the resolution engine needs for fallback decisions: both the
// requested value and the configured default are always visible.
type Resolver struct {
	enabled   bool
	def       string
	fallback  bool
	available map[string]string
}

// NewResolver builds a resolver from the validated module configuration.
func NewResolver(cfg runtimeconfig.LocaleConfig) *Resolver {
	def := strings.TrimSpace(cfg.Default)
	if def == "" {
		def = "en"
	}
	return &Resolver{
		enabled:   cfg.Enabled,
		def:       def,
		fallback:  cfg.Fallback,
		available: cfg.Available,
	}
}

// Effective returns the locale a lookup should use: the requested locale
// when given, otherwise the configured default. Disabled locale support
// always yields NoLocale.
func (r *Resolver) Effective(requested string) string {
	if r == nil || !r.enabled {
		return NoLocale
	}
	if trimmed := strings.TrimSpace(requested); trimmed != "" {
		return trimmed
	}
	return r.def
}

// Enabled reports whether locale support is active.
func (r *Resolver) Enabled() bool {
	return r != nil && r.enabled
}

// Default returns the configured default locale.
func (r *Resolver) Default() string {
	if r == nil {
		return "en"
	}
	return r.def
}

// FallbackEnabled reports whether empty lookups for a non-default locale
// should retry with the default locale.
func (r *Resolver) FallbackEnabled() bool {
	return r != nil && r.enabled && r.fallback
}

// IsDefault reports whether the locale equals the configured default.
func (r *Resolver) IsDefault(locale string) bool {
	return r != nil && strings.TrimSpace(locale) == r.def
}

// IsAvailable reports whether the locale is in the configured set. An
// empty available set accepts any well-formed locale.
func (r *Resolver) IsAvailable(locale string) bool {
	if r == nil || !r.enabled {
		return false
	}
	if len(r.available) == 0 {
		return runtimeconfig.IsValidLocale(strings.TrimSpace(locale))
	}
	_, ok := r.available[strings.TrimSpace(locale)]
	return ok
}
