package runtimeconfig

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.TableName != "page_contents" || cfg.PageTable != "pages" {
		t.Fatalf("unexpected table names %q %q", cfg.TableName, cfg.PageTable)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Fatalf("expected 1h cache ttl got %v", cfg.Cache.TTL)
	}
	if cfg.Pagination.PerPage != 15 || cfg.Pagination.MaxPerPage != 100 {
		t.Fatalf("unexpected pagination defaults %+v", cfg.Pagination)
	}
}

func TestConfigValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "missing table name",
			mutate:  func(c *Config) { c.TableName = " " },
			wantErr: ErrTableNameRequired,
		},
		{
			name:    "cache ttl",
			mutate:  func(c *Config) { c.Cache.TTL = 0 },
			wantErr: ErrCacheTTLInvalid,
		},
		{
			name:    "cache prefix",
			mutate:  func(c *Config) { c.Cache.KeyPrefix = "" },
			wantErr: ErrCacheKeyPrefixRequired,
		},
		{
			name:    "default locale missing",
			mutate:  func(c *Config) { c.Locale.Default = "" },
			wantErr: ErrDefaultLocaleRequired,
		},
		{
			name:    "default locale not available",
			mutate:  func(c *Config) { c.Locale.Default = "pt" },
			wantErr: ErrDefaultLocaleUnavailable,
		},
		{
			name:    "malformed locale",
			mutate:  func(c *Config) { c.Locale.Available["ENGLISH"] = "English" },
			wantErr: ErrLocaleCodeInvalid,
		},
		{
			name:    "no content types",
			mutate:  func(c *Config) { c.Types = nil },
			wantErr: ErrContentTypesRequired,
		},
		{
			name:    "per page above max",
			mutate:  func(c *Config) { c.Pagination.PerPage = 500 },
			wantErr: ErrPaginationInvalid,
		},
		{
			name: "logging provider required",
			mutate: func(c *Config) {
				c.Logging.Enabled = true
				c.Logging.Provider = ""
			},
			wantErr: ErrLoggingProviderRequired,
		},
		{
			name: "logging provider unknown",
			mutate: func(c *Config) {
				c.Logging.Enabled = true
				c.Logging.Provider = "syslog"
			},
			wantErr: ErrLoggingProviderUnknown,
		},
		{
			name: "logging level invalid",
			mutate: func(c *Config) {
				c.Logging.Enabled = true
				c.Logging.Level = "verbose"
			},
			wantErr: ErrLoggingLevelInvalid,
		},
		{
			name: "logging format invalid",
			mutate: func(c *Config) {
				c.Logging.Enabled = true
				c.Logging.Provider = "gologger"
				c.Logging.Format = "xml"
			},
			wantErr: ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAllowsType(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.AllowsType("text") || !cfg.AllowsType(" Image ") {
		t.Fatalf("expected configured types to be allowed")
	}
	if cfg.AllowsType("video") {
		t.Fatalf("video should not be allowed by default")
	}
}

func TestDefaultsForType(t *testing.T) {
	defaults := DefaultsConfig{Text: "--", Image: "img.png", File: "doc.pdf"}
	if got := defaults.ForType("image"); got != "img.png" {
		t.Fatalf("expected image placeholder got %q", got)
	}
	if got := defaults.ForType("file"); got != "doc.pdf" {
		t.Fatalf("expected file placeholder got %q", got)
	}
	if got := defaults.ForType("anything"); got != "--" {
		t.Fatalf("expected text placeholder got %q", got)
	}
}

func TestIsValidLocale(t *testing.T) {
	valid := []string{"en", "pt_BR", "nl"}
	for _, code := range valid {
		if !IsValidLocale(code) {
			t.Fatalf("expected %q to be valid", code)
		}
	}
	invalid := []string{"", "ENG", "en-US", "english", "e"}
	for _, code := range invalid {
		if IsValidLocale(code) {
			t.Fatalf("expected %q to be invalid", code)
		}
	}
}

func TestPerPageOrDefault(t *testing.T) {
	p := PaginationConfig{PerPage: 15, MaxPerPage: 100}
	if got := p.PerPageOrDefault(0); got != 15 {
		t.Fatalf("expected default 15 got %d", got)
	}
	if got := p.PerPageOrDefault(50); got != 50 {
		t.Fatalf("expected 50 got %d", got)
	}
	if got := p.PerPageOrDefault(1000); got != 100 {
		t.Fatalf("expected clamp to 100 got %d", got)
	}
}
