package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"sort"

	pagecontent "github.com/goliatone/go-page-content"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func main() {
	ctx := context.Background()

	sqldb, err := sql.Open("sqlite3", "file:pagecontent.db?cache=shared")
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer sqldb.Close()

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := runMigrations(ctx, db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	cfg := pagecontent.DefaultConfig()
	cfg.Logging.Enabled = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "console"

	module, err := pagecontent.New(cfg, pagecontent.WithDB(db))
	if err != nil {
		log.Fatalf("initialise module: %v", err)
	}

	if err := seedContent(ctx, module); err != nil {
		log.Fatalf("seed content: %v", err)
	}

	resolver := module.NewContentResolver()
	title, err := resolver.ValueOr(ctx, "home", "hero.title", "en", "Untitled")
	if err != nil {
		log.Fatalf("resolve hero title: %v", err)
	}
	fmt.Printf("home hero title: %s\n", title)

	page, err := module.NewPageResolver().GetPage(ctx, "landing", "en", false)
	if err != nil {
		log.Fatalf("resolve landing page: %v", err)
	}
	if page != nil {
		fmt.Printf("landing page: %s (version %d)\n", page.DisplayName, page.Version)
	}

	mux := http.NewServeMux()
	if err := module.Register(mux); err != nil {
		log.Fatalf("register admin api: %v", err)
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	fmt.Printf("admin api listening on %s under /%s\n", addr, cfg.RoutePrefix)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("serve admin api: %v", err)
	}
}

func runMigrations(ctx context.Context, db *bun.DB) error {
	migrations := pagecontent.GetMigrationsFS()
	entries, err := fs.ReadDir(migrations, "data/sql/migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		script, err := fs.ReadFile(migrations, "data/sql/migrations/"+name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

func seedContent(ctx context.Context, module *pagecontent.Module) error {
	contentSvc := module.Content()
	seeds := []struct {
		element string
		locale  string
		value   string
	}{
		{"hero.title", "en", "Welcome to our site"},
		{"hero.title", "nl", "Welkom op onze site"},
		{"hero.subtitle", "en", "Everything starts here"},
	}
	for _, seed := range seeds {
		value := seed.value
		if _, err := contentSvc.Upsert(ctx, pagecontent.UpsertRequest{
			PageID:    "home",
			ElementID: seed.element,
			Locale:    seed.locale,
			Value:     &value,
		}); err != nil {
			return fmt.Errorf("seed %s (%s): %w", seed.element, seed.locale, err)
		}
	}

	pageSvc := module.Pages()
	locale := "en"
	_, err := pageSvc.Create(ctx, pagecontent.CreatePageRequest{
		Name:        "landing",
		DisplayName: "Landing Page",
		Locale:      &locale,
		Value: &pagecontent.PageValue{
			Title: "Landing",
			Blocks: []pagecontent.PageBlock{
				{ID: "hero", Type: "hero", Data: map[string]any{
					"heading": "Build something",
					"cta":     map[string]any{"label": "Get started", "url": "/signup"},
				}},
			},
		},
	})
	if err != nil && !pagecontent.IsNameConflict(err) {
		return fmt.Errorf("seed landing page: %w", err)
	}
	return nil
}
