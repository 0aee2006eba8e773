package pages_test

import (
	"encoding/json"
	"testing"

	"github.com/goliatone/go-page-content/pages"
)

func heroValue() *pages.Value {
	return &pages.Value{
		Version: "1.0",
		Title:   "Home",
		Blocks: []pages.Block{
			{
				ID:   "hero",
				Type: "hero",
				Data: map[string]any{
					"title": "Welcome",
					"cta": map[string]any{
						"label": "Start",
						"url":   "/signup",
					},
				},
			},
			{
				ID:   "footer",
				Type: "text",
				Data: map[string]any{"copy": "All rights reserved"},
			},
		},
	}
}

func TestValueBlock(t *testing.T) {
	value := heroValue()

	if block := value.Block("hero"); block == nil || block.Type != "hero" {
		t.Fatalf("expected hero block, got %+v", block)
	}
	if block := value.Block("missing"); block != nil {
		t.Fatalf("expected nil for unknown block, got %+v", block)
	}

	var nilValue *pages.Value
	if block := nilValue.Block("hero"); block != nil {
		t.Fatalf("expected nil on nil value, got %+v", block)
	}
}

func TestValueBlockValue(t *testing.T) {
	value := heroValue()

	if got := value.BlockValue("hero", "title"); got != "Welcome" {
		t.Fatalf("expected title, got %v", got)
	}
	if got := value.BlockValue("hero", "cta.url"); got != "/signup" {
		t.Fatalf("expected nested url, got %v", got)
	}

	// Empty key returns the whole data object.
	data, ok := value.BlockValue("hero", "").(map[string]any)
	if !ok {
		t.Fatalf("expected data map, got %T", value.BlockValue("hero", ""))
	}
	if data["title"] != "Welcome" {
		t.Fatalf("unexpected data contents: %v", data)
	}
}

func TestValueBlockValueMissingPaths(t *testing.T) {
	value := heroValue()

	if got := value.BlockValue("missing", "title"); got != nil {
		t.Fatalf("expected nil for unknown block, got %v", got)
	}
	if got := value.BlockValue("hero", "cta.missing"); got != nil {
		t.Fatalf("expected nil for missing leaf, got %v", got)
	}
	// A non-object in the middle of the path terminates the walk.
	if got := value.BlockValue("hero", "title.deeper"); got != nil {
		t.Fatalf("expected nil when traversing through a scalar, got %v", got)
	}

	empty := &pages.Value{Blocks: []pages.Block{{ID: "bare"}}}
	if got := empty.BlockValue("bare", ""); got != nil {
		t.Fatalf("expected nil for block without data, got %v", got)
	}
}

func TestPageBlockValueNilSafe(t *testing.T) {
	var page *pages.Page
	if got := page.BlockValue("hero", "title"); got != nil {
		t.Fatalf("expected nil on nil page, got %v", got)
	}

	page = &pages.Page{}
	if got := page.BlockValue("hero", "title"); got != nil {
		t.Fatalf("expected nil on page without value, got %v", got)
	}

	page.Value = heroValue()
	if got := page.BlockValue("footer", "copy"); got != "All rights reserved" {
		t.Fatalf("expected footer copy, got %v", got)
	}
}

func TestValueSurvivesJSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(heroValue())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded := &pages.Value{}
	if err := json.Unmarshal(raw, decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got := decoded.BlockValue("hero", "cta.label"); got != "Start" {
		t.Fatalf("expected nested value after round trip, got %v", got)
	}
}
