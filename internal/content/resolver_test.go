package content_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-page-content/internal/content"
	"github.com/goliatone/go-page-content/internal/i18n"
	repocache "github.com/goliatone/go-repository-cache/cache"
)

func seedEntries(t *testing.T, store *content.MemoryEntryRepository, entries []*content.Entry) {
	t.Helper()
	ctx := context.Background()
	for _, entry := range entries {
		if _, err := store.Upsert(ctx, entry); err != nil {
			t.Fatalf("seed entry %s: %v", entry.ElementID, err)
		}
	}
}

func TestResolverGetContentReturnsElementMap(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	seedEntries(t, store, []*content.Entry{
		{PageID: "home", ElementID: "headline", Locale: "en", Type: "text", Value: strPtr("Welcome")},
		{PageID: "home", ElementID: "intro", Locale: "en", Type: "text", Value: strPtr("Hello")},
	})

	resolver := content.NewResolver(store, i18n.NewResolver(cfg.Locale), cfg)

	values, err := resolver.GetContent(context.Background(), "home", "en", false)
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(values))
	}
	if values["headline"] == nil || *values["headline"] != "Welcome" {
		t.Fatalf("unexpected headline: %v", values["headline"])
	}
}

func TestResolverMemoizesPerPageAndLocale(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	seedEntries(t, store, []*content.Entry{
		{PageID: "home", ElementID: "headline", Locale: "en", Type: "text", Value: strPtr("Welcome")},
	})

	resolver := content.NewResolver(store, i18n.NewResolver(cfg.Locale), cfg)
	ctx := context.Background()

	first, err := resolver.GetContent(ctx, "home", "en", false)
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	second, err := resolver.GetContent(ctx, "home", "en", false)
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}

	// Same backing map: a mutation through one handle is visible through
	// the other.
	first["marker"] = strPtr("x")
	if second["marker"] == nil {
		t.Fatal("expected repeated lookups to share the memoized map")
	}

	// A different locale gets its own map.
	other, err := resolver.GetContent(ctx, "home", "nl", false)
	if err != nil {
		t.Fatalf("other locale lookup: %v", err)
	}
	if other["marker"] != nil {
		t.Fatal("expected a distinct map per locale")
	}
}

func TestResolverPageLevelFallback(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	seedEntries(t, store, []*content.Entry{
		{PageID: "home", ElementID: "headline", Locale: "en", Type: "text", Value: strPtr("Welcome")},
		{PageID: "home", ElementID: "intro", Locale: "en", Type: "text", Value: strPtr("Hello")},
	})

	resolver := content.NewResolver(store, i18n.NewResolver(cfg.Locale), cfg)
	ctx := context.Background()

	// No nl rows at all: the whole page falls back to the default locale.
	values, err := resolver.GetContent(ctx, "home", "nl", false)
	if err != nil {
		t.Fatalf("fallback lookup: %v", err)
	}
	if len(values) != 2 || values["headline"] == nil || *values["headline"] != "Welcome" {
		t.Fatalf("expected full default-locale set, got %v", values)
	}
}

func TestResolverFallbackIsPerPageNotPerElement(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	seedEntries(t, store, []*content.Entry{
		{PageID: "home", ElementID: "headline", Locale: "en", Type: "text", Value: strPtr("Welcome")},
		{PageID: "home", ElementID: "intro", Locale: "en", Type: "text", Value: strPtr("Hello")},
		{PageID: "home", ElementID: "headline", Locale: "nl", Type: "text", Value: strPtr("Welkom")},
	})

	resolver := content.NewResolver(store, i18n.NewResolver(cfg.Locale), cfg)

	// One nl row exists, so the nl set wins as-is: the missing intro does
	// not get patched in from the default locale.
	values, err := resolver.GetContent(context.Background(), "home", "nl", false)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(values) != 1 {
		t.Fatalf("expected only the nl rows, got %d elements", len(values))
	}
	if values["headline"] == nil || *values["headline"] != "Welkom" {
		t.Fatalf("unexpected headline: %v", values["headline"])
	}
}

func TestResolverFallbackDisabled(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	cfg.Locale.Fallback = false
	seedEntries(t, store, []*content.Entry{
		{PageID: "home", ElementID: "headline", Locale: "en", Type: "text", Value: strPtr("Welcome")},
	})

	resolver := content.NewResolver(store, i18n.NewResolver(cfg.Locale), cfg)

	values, err := resolver.GetContent(context.Background(), "home", "nl", false)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("expected empty set with fallback off, got %v", values)
	}
}

func TestResolverKeepsStoredNullsInElementMap(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	seedEntries(t, store, []*content.Entry{
		{PageID: "home", ElementID: "hero", Locale: "en", Type: "image", Value: nil},
		{PageID: "home", ElementID: "headline", Locale: "en", Type: "text", Value: strPtr("Welcome")},
	})

	resolver := content.NewResolver(store, i18n.NewResolver(cfg.Locale), cfg)

	// NULL rows stay nil in the projection so callers can tell "no value"
	// apart from a placeholder.
	values, err := resolver.GetContent(context.Background(), "home", "en", false)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if value, ok := values["hero"]; !ok || value != nil {
		t.Fatalf("expected nil entry for stored NULL, got %v (present %v)", value, ok)
	}
	if values["headline"] == nil || *values["headline"] != "Welcome" {
		t.Fatalf("unexpected headline: %v", values["headline"])
	}
}

func TestResolverValueSubstitutesTypedPlaceholders(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	seedEntries(t, store, []*content.Entry{
		{PageID: "home", ElementID: "hero", Locale: "en", Type: "image", Value: nil},
		{PageID: "home", ElementID: "brochure", Locale: "en", Type: "file", Value: nil},
		{PageID: "home", ElementID: "headline", Locale: "en", Type: "text", Value: nil},
	})

	resolver := content.NewResolver(store, i18n.NewResolver(cfg.Locale), cfg)
	ctx := context.Background()

	for element, want := range map[string]string{
		"hero":     cfg.Defaults.Image,
		"brochure": cfg.Defaults.File,
		"headline": cfg.Defaults.Text,
	} {
		value, err := resolver.Value(ctx, "home", element, "en")
		if err != nil {
			t.Fatalf("value %s: %v", element, err)
		}
		if value == nil || *value != want {
			t.Fatalf("unexpected %s placeholder: %v", element, value)
		}
	}
}

func TestResolverValueOrPrefersCallerDefaultOverPlaceholder(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	seedEntries(t, store, []*content.Entry{
		{PageID: "home", ElementID: "headline", Locale: "en", Type: "text", Value: nil},
	})

	resolver := content.NewResolver(store, i18n.NewResolver(cfg.Locale), cfg)

	got, err := resolver.ValueOr(context.Background(), "home", "headline", "en", "fallback copy")
	if err != nil {
		t.Fatalf("value or: %v", err)
	}
	if got != "fallback copy" {
		t.Fatalf("expected caller default for stored NULL, got %q", got)
	}
}

func TestResolverValueAndValueOr(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	cfg.Defaults.Text = ""
	seedEntries(t, store, []*content.Entry{
		{PageID: "home", ElementID: "headline", Locale: "en", Type: "text", Value: strPtr("Welcome")},
	})

	resolver := content.NewResolver(store, i18n.NewResolver(cfg.Locale), cfg)
	ctx := context.Background()

	value, err := resolver.Value(ctx, "home", "headline", "en")
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if value == nil || *value != "Welcome" {
		t.Fatalf("unexpected value: %v", value)
	}

	missing, err := resolver.Value(ctx, "home", "absent", "en")
	if err != nil {
		t.Fatalf("missing value: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing element, got %v", *missing)
	}

	fallback, err := resolver.ValueOr(ctx, "home", "absent", "en", "n/a")
	if err != nil {
		t.Fatalf("value or: %v", err)
	}
	if fallback != "n/a" {
		t.Fatalf("expected fallback, got %q", fallback)
	}
}

func TestResolverResetDropsMemo(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	seedEntries(t, store, []*content.Entry{
		{PageID: "home", ElementID: "headline", Locale: "en", Type: "text", Value: strPtr("Welcome")},
	})

	resolver := content.NewResolver(store, i18n.NewResolver(cfg.Locale), cfg)
	ctx := context.Background()

	before, err := resolver.GetContent(ctx, "home", "en", false)
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if *before["headline"] != "Welcome" {
		t.Fatalf("unexpected initial value: %v", before["headline"])
	}

	if _, err := store.Upsert(ctx, &content.Entry{
		PageID: "home", ElementID: "headline", Locale: "en", Type: "text", Value: strPtr("Changed"),
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Without reset the memoized map still answers.
	stale, err := resolver.GetContent(ctx, "home", "en", false)
	if err != nil {
		t.Fatalf("memoized lookup: %v", err)
	}
	if *stale["headline"] != "Welcome" {
		t.Fatalf("expected memoized value, got %q", *stale["headline"])
	}

	fresh, err := resolver.GetContent(ctx, "home", "en", true)
	if err != nil {
		t.Fatalf("reset lookup: %v", err)
	}
	if *fresh["headline"] != "Changed" {
		t.Fatalf("expected refreshed value, got %q", *fresh["headline"])
	}

	resolver.Reset()
	again, err := resolver.GetContent(ctx, "home", "en", false)
	if err != nil {
		t.Fatalf("post-reset lookup: %v", err)
	}
	if *again["headline"] != "Changed" {
		t.Fatalf("expected store value after Reset, got %q", *again["headline"])
	}
}

func TestResolverWriteInvalidatesSharedCache(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	cfg.Cache.Enabled = true

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}

	locales := i18n.NewResolver(cfg.Locale)
	svc := content.NewService(store, locales, cfg, content.WithCache(cacheService, cfg.Cache.KeyPrefix))
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, content.UpsertRequest{
		PageID: "home", ElementID: "headline", Locale: "en", Value: strPtr("Welcome"),
	}); err != nil {
		t.Fatalf("seed upsert: %v", err)
	}

	warm := content.NewResolver(store, locales, cfg,
		content.WithResolverCache(cacheService, cfg.Cache.KeyPrefix))
	values, err := warm.GetContent(ctx, "home", "en", false)
	if err != nil {
		t.Fatalf("warm lookup: %v", err)
	}
	if *values["headline"] != "Welcome" {
		t.Fatalf("unexpected warm value: %v", values["headline"])
	}

	// The write lands first, then the shared key is forgotten, so a fresh
	// request-scoped resolver must observe the new value.
	if _, err := svc.Upsert(ctx, content.UpsertRequest{
		PageID: "home", ElementID: "headline", Locale: "en", Value: strPtr("Changed"),
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	next := content.NewResolver(store, locales, cfg,
		content.WithResolverCache(cacheService, cfg.Cache.KeyPrefix))
	refreshed, err := next.GetContent(ctx, "home", "en", false)
	if err != nil {
		t.Fatalf("post-write lookup: %v", err)
	}
	if *refreshed["headline"] != "Changed" {
		t.Fatalf("expected invalidated cache to refetch, got %q", *refreshed["headline"])
	}
}

func TestDeletePageInvalidatesEveryLocaleKey(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	cfg.Cache.Enabled = true

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}

	locales := i18n.NewResolver(cfg.Locale)
	svc := content.NewService(store, locales, cfg, content.WithCache(cacheService, cfg.Cache.KeyPrefix))
	ctx := context.Background()

	seed := []content.UpsertRequest{
		{PageID: "promo", ElementID: "headline", Locale: "en", Value: strPtr("Sale")},
		{PageID: "promo", ElementID: "headline", Locale: "nl", Value: strPtr("Uitverkoop")},
	}
	for _, req := range seed {
		if _, err := svc.Upsert(ctx, req); err != nil {
			t.Fatalf("seed upsert: %v", err)
		}
	}

	// Warm both locale keys in the shared tier.
	for _, locale := range []string{"en", "nl"} {
		warm := content.NewResolver(store, locales, cfg,
			content.WithResolverCache(cacheService, cfg.Cache.KeyPrefix))
		values, err := warm.GetContent(ctx, "promo", locale, false)
		if err != nil {
			t.Fatalf("warm %s lookup: %v", locale, err)
		}
		if values["headline"] == nil {
			t.Fatalf("expected warm %s value", locale)
		}
	}

	result, err := svc.DeletePage(ctx, "promo")
	if err != nil {
		t.Fatalf("delete page: %v", err)
	}
	if result.Removed != 2 {
		t.Fatalf("expected 2 removed rows got %d", result.Removed)
	}

	// Fresh request scopes must hit the store and see the delete for every
	// locale that had rows, not a stale cached map.
	for _, locale := range []string{"en", "nl"} {
		fresh := content.NewResolver(store, locales, cfg,
			content.WithResolverCache(cacheService, cfg.Cache.KeyPrefix))
		values, err := fresh.GetContent(ctx, "promo", locale, false)
		if err != nil {
			t.Fatalf("post-delete %s lookup: %v", locale, err)
		}
		if len(values) != 0 {
			t.Fatalf("expected empty %s map after delete, got %v", locale, values)
		}
	}
}
