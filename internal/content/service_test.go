package content_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-page-content/internal/content"
	"github.com/goliatone/go-page-content/internal/i18n"
	"github.com/goliatone/go-page-content/internal/runtimeconfig"
	"github.com/google/uuid"
)

func testConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func strPtr(s string) *string {
	return &s
}

func TestServiceUpsertCreatesEntry(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	svc := content.NewService(store, i18n.NewResolver(cfg.Locale), cfg, content.WithClock(func() time.Time {
		return time.Unix(0, 0).UTC()
	}))

	ctx := context.Background()
	entry, err := svc.Upsert(ctx, content.UpsertRequest{
		PageID:    "home",
		ElementID: "headline",
		Locale:    "en",
		Type:      "text",
		Value:     strPtr("Welcome"),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if entry.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if entry.PageID != "home" || entry.ElementID != "headline" || entry.Locale != "en" {
		t.Fatalf("unexpected key fields: %+v", entry)
	}
	if entry.Value == nil || *entry.Value != "Welcome" {
		t.Fatalf("unexpected value: %v", entry.Value)
	}
}

func TestServiceUpsertReplacesByTriple(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	svc := content.NewService(store, i18n.NewResolver(cfg.Locale), cfg)

	ctx := context.Background()
	first, err := svc.Upsert(ctx, content.UpsertRequest{
		PageID:    "home",
		ElementID: "headline",
		Locale:    "en",
		Value:     strPtr("Welcome"),
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := svc.Upsert(ctx, content.UpsertRequest{
		PageID:    "home",
		ElementID: "headline",
		Locale:    "en",
		Value:     strPtr("Hello again"),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected the existing row to be updated, got new id %s", second.ID)
	}
	if *second.Value != "Hello again" {
		t.Fatalf("expected replaced value, got %q", *second.Value)
	}

	entries, err := svc.PageContent(ctx, "home", "en")
	if err != nil {
		t.Fatalf("page content: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single row for the triple, got %d", len(entries))
	}
}

func TestServiceUpsertDefaultsTypeToText(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	svc := content.NewService(store, i18n.NewResolver(cfg.Locale), cfg)

	entry, err := svc.Upsert(context.Background(), content.UpsertRequest{
		PageID:    "home",
		ElementID: "headline",
		Locale:    "en",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if entry.Type != content.TypeText {
		t.Fatalf("expected text type, got %q", entry.Type)
	}
}

func TestServiceUpsertValidation(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	svc := content.NewService(store, i18n.NewResolver(cfg.Locale), cfg)
	ctx := context.Background()

	cases := []struct {
		name string
		req  content.UpsertRequest
		want error
	}{
		{
			name: "missing page id",
			req:  content.UpsertRequest{ElementID: "headline", Locale: "en"},
			want: content.ErrPageIDInvalid,
		},
		{
			name: "bare slash page id",
			req:  content.UpsertRequest{PageID: "/", ElementID: "headline", Locale: "en"},
			want: content.ErrPageIDInvalid,
		},
		{
			name: "double separator page id",
			req:  content.UpsertRequest{PageID: "home//hero", ElementID: "headline", Locale: "en"},
			want: content.ErrPageIDInvalid,
		},
		{
			name: "missing element",
			req:  content.UpsertRequest{PageID: "home", Locale: "en"},
			want: content.ErrElementRequired,
		},
		{
			name: "missing locale",
			req:  content.UpsertRequest{PageID: "home", ElementID: "headline"},
			want: content.ErrLocaleRequired,
		},
		{
			name: "malformed locale",
			req:  content.UpsertRequest{PageID: "home", ElementID: "headline", Locale: "english"},
			want: content.ErrLocaleInvalid,
		},
		{
			name: "unavailable locale",
			req:  content.UpsertRequest{PageID: "home", ElementID: "headline", Locale: "pt"},
			want: content.ErrLocaleUnknown,
		},
		{
			name: "disallowed type",
			req:  content.UpsertRequest{PageID: "home", ElementID: "headline", Locale: "en", Type: "video"},
			want: content.ErrTypeNotAllowed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Upsert(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestServiceDeleteRemovesEntry(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	svc := content.NewService(store, i18n.NewResolver(cfg.Locale), cfg)
	ctx := context.Background()

	entry, err := svc.Upsert(ctx, content.UpsertRequest{
		PageID:    "home",
		ElementID: "headline",
		Locale:    "en",
		Value:     strPtr("Welcome"),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := svc.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var notFound *content.NotFoundError
	if err := svc.Delete(ctx, entry.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}

	if err := svc.Delete(ctx, uuid.Nil); !errors.Is(err, content.ErrEntryIDRequired) {
		t.Fatalf("expected id-required error, got %v", err)
	}
}

func TestServiceDeletePageReportsLocales(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	svc := content.NewService(store, i18n.NewResolver(cfg.Locale), cfg)
	ctx := context.Background()

	seed := []content.UpsertRequest{
		{PageID: "about", ElementID: "headline", Locale: "en", Value: strPtr("About")},
		{PageID: "about", ElementID: "headline", Locale: "nl", Value: strPtr("Over ons")},
		{PageID: "about", ElementID: "body", Locale: "en", Value: strPtr("Body")},
		{PageID: "home", ElementID: "headline", Locale: "en", Value: strPtr("Home")},
	}
	for _, req := range seed {
		if _, err := svc.Upsert(ctx, req); err != nil {
			t.Fatalf("seed upsert: %v", err)
		}
	}

	result, err := svc.DeletePage(ctx, "about")
	if err != nil {
		t.Fatalf("delete page: %v", err)
	}
	if result.Removed != 3 {
		t.Fatalf("expected 3 removed rows, got %d", result.Removed)
	}
	if len(result.Locales) != 2 || result.Locales[0] != "en" || result.Locales[1] != "nl" {
		t.Fatalf("unexpected locales: %v", result.Locales)
	}

	// A page with no remaining rows deletes cleanly with a zero result.
	again, err := svc.DeletePage(ctx, "about")
	if err != nil {
		t.Fatalf("second delete page: %v", err)
	}
	if again.Removed != 0 || len(again.Locales) != 0 {
		t.Fatalf("expected empty result, got %+v", again)
	}

	remaining, err := svc.PageContent(ctx, "home", "en")
	if err != nil {
		t.Fatalf("page content: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected other pages untouched, got %d rows", len(remaining))
	}
}

func TestServicePageSummaries(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	svc := content.NewService(store, i18n.NewResolver(cfg.Locale), cfg)
	ctx := context.Background()

	seed := []content.UpsertRequest{
		{PageID: "about", ElementID: "headline", Locale: "en"},
		{PageID: "about", ElementID: "body", Locale: "en"},
		{PageID: "home", ElementID: "headline", Locale: "en"},
	}
	for _, req := range seed {
		if _, err := svc.Upsert(ctx, req); err != nil {
			t.Fatalf("seed upsert: %v", err)
		}
	}

	summaries, err := svc.PageSummaries(ctx)
	if err != nil {
		t.Fatalf("page summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(summaries))
	}
	if summaries[0].PageID != "about" || summaries[0].Count != 2 {
		t.Fatalf("unexpected first summary: %+v", summaries[0])
	}
	if summaries[1].PageID != "home" || summaries[1].Count != 1 {
		t.Fatalf("unexpected second summary: %+v", summaries[1])
	}
}

func TestServiceLocaleDisabledStoresSentinel(t *testing.T) {
	store := content.NewMemoryEntryRepository()
	cfg := testConfig()
	cfg.Locale.Enabled = false
	svc := content.NewService(store, i18n.NewResolver(cfg.Locale), cfg)

	entry, err := svc.Upsert(context.Background(), content.UpsertRequest{
		PageID:    "home",
		ElementID: "headline",
		Value:     strPtr("Welcome"),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if entry.Locale != i18n.NoLocale {
		t.Fatalf("expected locale sentinel, got %q", entry.Locale)
	}
}
