package application

import (
	"reflect"
	"testing"

	"tradutor/internal/domain/entities"
)

func TestSanitizeTargets(t *testing.T) {
	in := []entities.Target{
		{Name: "  Alice ", Language: " pt-BR "},
		{Name: "", Language: "en"},
		{Name: "   ", Language: "en"},
		{Name: "Bob", Language: ""},
	}

	got := SanitizeTargets(in)
	want := []entities.Target{
		{Name: "Alice", Language: "pt-BR"},
		{Name: "Bob", Language: ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SanitizeTargets = %#v, want %#v", got, want)
	}

	if SanitizeTargets(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestDedupeByLanguageFirstSeenWins(t *testing.T) {
	in := []entities.Target{
		{Name: "Alice", Language: "pt-BR"},
		{Name: "Bob", Language: "PT-br"},
		{Name: "Carol", Language: "en"},
		{Name: "Dave", Language: "en"},
	}

	got := DedupeByLanguage(in)

	wantReps := []entities.Target{
		{Name: "Alice", Language: "pt-BR"},
		{Name: "Carol", Language: "en"},
	}
	if !reflect.DeepEqual(got.Targets, wantReps) {
		t.Fatalf("representatives = %#v, want %#v", got.Targets, wantReps)
	}

	wantIndex := map[string]string{
		"alice": "pt-br",
		"bob":   "pt-br",
		"carol": "en",
		"dave":  "en",
	}
	if !reflect.DeepEqual(got.LanguageByName, wantIndex) {
		t.Fatalf("index = %#v, want %#v", got.LanguageByName, wantIndex)
	}
}

func TestDedupeByLanguageEmptyTagOwnCategory(t *testing.T) {
	in := []entities.Target{
		{Name: "Alice", Language: ""},
		{Name: "Bob", Language: "en"},
		{Name: "Carol", Language: ""},
	}

	got := DedupeByLanguage(in)

	if len(got.Targets) != 2 {
		t.Fatalf("expected 2 representatives, got %#v", got.Targets)
	}
	if got.Targets[0].Name != "Alice" || got.Targets[1].Name != "Bob" {
		t.Fatalf("unexpected representatives: %#v", got.Targets)
	}
	if got.LanguageByName["carol"] != "" {
		t.Fatalf("expected carol in the unknown category, got %q", got.LanguageByName["carol"])
	}
}

func TestDedupeByLanguageNeverGrows(t *testing.T) {
	in := []entities.Target{
		{Name: "A", Language: "en"},
		{Name: "B", Language: "pt"},
		{Name: "C", Language: "es"},
	}
	got := DedupeByLanguage(in)
	if len(got.Targets) > len(in) {
		t.Fatalf("output grew: %d > %d", len(got.Targets), len(in))
	}
	if len(got.LanguageByName) != len(in) {
		t.Fatalf("index size = %d, want %d", len(got.LanguageByName), len(in))
	}
}
