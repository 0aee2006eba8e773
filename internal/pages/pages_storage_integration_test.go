package pages_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-page-content/internal/pages"
	"github.com/goliatone/go-page-content/internal/runtimeconfig"
	"github.com/goliatone/go-page-content/pkg/testsupport"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestPageService_WithBunStorage(t *testing.T) {
	ctx := context.Background()
	bunDB := newPagesTestDB(t)

	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = false
	repo := pages.NewBunPageRepository(bunDB)
	svc := pages.NewService(repo, cfg)

	locale := "en"
	created, err := svc.Create(ctx, pages.CreateRequest{
		Name:        "about-us",
		DisplayName: "About Us",
		Locale:      &locale,
		Value: &pages.Value{
			Title: "About",
			Blocks: []pages.Block{
				{ID: "hero", Type: "hero", Data: map[string]any{"heading": "Who we are"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if created.Version != 1 {
		t.Fatalf("expected version 1 got %d", created.Version)
	}

	fetched, err := svc.GetByName(ctx, "about-us", "en")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if fetched.Value == nil || fetched.Value.Block("hero") == nil {
		t.Fatalf("expected hero block to survive storage round trip, got %+v", fetched.Value)
	}

	displayName := "About the Team"
	updated, err := svc.Update(ctx, pages.UpdateRequest{
		Identifier:      "about-us",
		DisplayName:     &displayName,
		ExpectedVersion: &created.Version,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Version != created.Version+1 {
		t.Fatalf("expected version %d got %d", created.Version+1, updated.Version)
	}

	// The stale expectation must lose and report the winning version.
	stale := created.Version
	otherName := "Someone Else"
	_, err = svc.Update(ctx, pages.UpdateRequest{
		Identifier:      "about-us",
		DisplayName:     &otherName,
		ExpectedVersion: &stale,
	})
	var conflict *pages.VersionConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected VersionConflictError got %v", err)
	}
	if conflict.CurrentVersion != updated.Version {
		t.Fatalf("expected current version %d got %d", updated.Version, conflict.CurrentVersion)
	}

	if err := svc.Delete(ctx, "about-us"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByName(ctx, "about-us", "en"); err == nil {
		t.Fatalf("expected deleted page to be hidden")
	}

	// Soft delete frees the name for reuse.
	recreated, err := svc.Create(ctx, pages.CreateRequest{
		Name:        "about-us",
		DisplayName: "About Us Again",
	})
	if err != nil {
		t.Fatalf("recreate after delete: %v", err)
	}
	if recreated.Version != 1 || recreated.ID == created.ID {
		t.Fatalf("expected fresh page row after recreate, got %+v", recreated)
	}
}

func TestPageRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	bunDB := newPagesTestDB(t)

	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = false
	svc := pages.NewService(pages.NewBunPageRepository(bunDB), cfg)

	en := "en"
	nl := "nl"
	seeds := []pages.CreateRequest{
		{Name: "list-home", DisplayName: "Home", Type: pages.TypePage, Locale: &en},
		{Name: "list-footer", DisplayName: "Footer", Type: pages.TypeFragment, Locale: &en},
		{Name: "list-contact", DisplayName: "Contact", Type: pages.TypePage, Locale: &nl},
	}
	for _, seed := range seeds {
		if _, err := svc.Create(ctx, seed); err != nil {
			t.Fatalf("seed %s: %v", seed.Name, err)
		}
	}

	byType, err := svc.List(ctx, pages.ListRequest{Type: pages.TypePage, Search: "list-"})
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if byType.Total != 2 {
		t.Fatalf("expected 2 pages got %d", byType.Total)
	}

	byLocale, err := svc.List(ctx, pages.ListRequest{Locale: "nl", Search: "list-"})
	if err != nil {
		t.Fatalf("list by locale: %v", err)
	}
	if byLocale.Total != 1 || byLocale.Items[0].Name != "list-contact" {
		t.Fatalf("unexpected locale listing %+v", byLocale.Items)
	}

	bySearch, err := svc.List(ctx, pages.ListRequest{Search: "foot"})
	if err != nil {
		t.Fatalf("list by search: %v", err)
	}
	if bySearch.Total != 1 || bySearch.Items[0].Name != "list-footer" {
		t.Fatalf("unexpected search listing %+v", bySearch.Items)
	}
}

func newPagesTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := bunDB.NewCreateTable().Model((*pages.Page)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create pages table: %v", err)
	}
	if _, err := bunDB.ExecContext(ctx, "CREATE UNIQUE INDEX IF NOT EXISTS idx_pages_name_active_unique ON pages(name) WHERE deleted_at IS NULL"); err != nil {
		t.Fatalf("create index idx_pages_name_active_unique: %v", err)
	}
	return bunDB
}
