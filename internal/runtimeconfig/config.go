package runtimeconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var ErrTableNameRequired = errors.New("content config: table name is required")
var ErrCacheTTLInvalid = errors.New("content config: cache ttl must be positive when cache is enabled")
var ErrCacheKeyPrefixRequired = errors.New("content config: cache key prefix is required when cache is enabled")
var ErrDefaultLocaleRequired = errors.New("content config: default locale is required when locale support is enabled")
var ErrDefaultLocaleUnavailable = errors.New("content config: default locale must be listed in available locales")
var ErrLocaleCodeInvalid = errors.New("content config: locale code is invalid")
var ErrContentTypesRequired = errors.New("content config: at least one content type is required")
var ErrPaginationInvalid = errors.New("content config: per-page must be positive and not exceed max per-page")
var ErrLoggingProviderRequired = errors.New("content config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("content config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("content config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("content config: logging format is invalid")

// Config aggregates every recognised option for the page-content module.
// It is resolved and validated once at startup; call sites never apply
// ad-hoc defaults.
type Config struct {
	TableName   string
	PageTable   string
	RoutePrefix string
	Defaults    DefaultsConfig
	Cache       CacheConfig
	Locale      LocaleConfig
	Types       []string
	Pagination  PaginationConfig
	Validation  ValidationConfig
	Logging     LoggingConfig
}

// DefaultsConfig captures the placeholder values returned when a content
// element has no stored value.
type DefaultsConfig struct {
	Text  string
	Image string
	File  string
}

// ForType returns the configured placeholder for a content type.
func (d DefaultsConfig) ForType(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image":
		return d.Image
	case "file":
		return d.File
	default:
		return d.Text
	}
}

// CacheConfig captures shared-cache behaviour for resolved content.
type CacheConfig struct {
	Enabled   bool
	TTL       time.Duration
	KeyPrefix string
}

// LocaleConfig captures multi-language behaviour.
type LocaleConfig struct {
	Enabled   bool
	Default   string
	Fallback  bool
	Available map[string]string
}

// PaginationConfig bounds admin listing endpoints.
type PaginationConfig struct {
	PerPage    int
	MaxPerPage int
}

// PerPageOrDefault clamps a requested page size to the configured bounds.
func (p PaginationConfig) PerPageOrDefault(requested int) int {
	if requested <= 0 {
		requested = p.PerPage
	}
	if p.MaxPerPage > 0 && requested > p.MaxPerPage {
		return p.MaxPerPage
	}
	return requested
}

// ValidationConfig controls JSON-schema validation of page documents.
type ValidationConfig struct {
	Strict      bool
	SchemasPath string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the defaults the module ships with.
func DefaultConfig() Config {
	return Config{
		TableName:   "page_contents",
		PageTable:   "pages",
		RoutePrefix: "admin/content",
		Defaults: DefaultsConfig{
			Text:  "-- No content available --",
			Image: "images/placeholder.png",
			File:  "files/placeholder.pdf",
		},
		Cache: CacheConfig{
			Enabled:   true,
			TTL:       time.Hour,
			KeyPrefix: "page_content_",
		},
		Locale: LocaleConfig{
			Enabled:  true,
			Default:  "en",
			Fallback: true,
			Available: map[string]string{
				"en": "English",
				"nl": "Nederlands",
				"fr": "Français",
				"de": "Deutsch",
				"es": "Español",
			},
		},
		Types: []string{"text", "image", "file"},
		Pagination: PaginationConfig{
			PerPage:    15,
			MaxPerPage: 100,
		},
		Validation: ValidationConfig{
			Strict: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.TableName) == "" || strings.TrimSpace(cfg.PageTable) == "" {
		return ErrTableNameRequired
	}
	if cfg.Cache.Enabled {
		if cfg.Cache.TTL <= 0 {
			return ErrCacheTTLInvalid
		}
		if strings.TrimSpace(cfg.Cache.KeyPrefix) == "" {
			return ErrCacheKeyPrefixRequired
		}
	}
	if cfg.Locale.Enabled {
		def := strings.TrimSpace(cfg.Locale.Default)
		if def == "" {
			return ErrDefaultLocaleRequired
		}
		if !IsValidLocale(def) {
			return fmt.Errorf("%w: %s", ErrLocaleCodeInvalid, def)
		}
		if len(cfg.Locale.Available) > 0 {
			if _, ok := cfg.Locale.Available[def]; !ok {
				return fmt.Errorf("%w: %s", ErrDefaultLocaleUnavailable, def)
			}
		}
		for code := range cfg.Locale.Available {
			if !IsValidLocale(code) {
				return fmt.Errorf("%w: %s", ErrLocaleCodeInvalid, code)
			}
		}
	}
	if len(cfg.Types) == 0 {
		return ErrContentTypesRequired
	}
	if cfg.Pagination.PerPage <= 0 || (cfg.Pagination.MaxPerPage > 0 && cfg.Pagination.PerPage > cfg.Pagination.MaxPerPage) {
		return ErrPaginationInvalid
	}
	if cfg.Logging.Enabled {
		provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "console" && provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// AllowsType reports whether the content type is in the configured allow-list.
func (cfg Config) AllowsType(contentType string) bool {
	needle := strings.ToLower(strings.TrimSpace(contentType))
	for _, t := range cfg.Types {
		if strings.ToLower(strings.TrimSpace(t)) == needle {
			return true
		}
	}
	return false
}

var localePattern = regexp.MustCompile(`^[a-z]{2}(_[A-Z]{2})?$`)

// IsValidLocale reports whether the code matches the supported locale shape,
// e.g. "en" or "pt_BR".
func IsValidLocale(code string) bool {
	return localePattern.MatchString(code)
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
