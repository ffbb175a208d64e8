package gamedata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbeddedRoster(t *testing.T) {
	registry, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if len(registry.Players()) != 4 {
		t.Errorf("Expected 4 players, got %d", len(registry.Players()))
	}
	if len(registry.Enemies()) != 4 {
		t.Errorf("Expected 4 enemies, got %d", len(registry.Enemies()))
	}
	if registry.Count() != 8 {
		t.Errorf("Expected 8 units, got %d", registry.Count())
	}

	knight := registry.GetByID("knight")
	if knight == nil {
		t.Fatal("knight not found by ID")
	}
	if knight.Name != "Knight" {
		t.Errorf("Expected name 'Knight', got %q", knight.Name)
	}

	for _, e := range registry.Enemies() {
		if e.Archetype != ArchetypeFlyer {
			t.Errorf("enemy %s archetype = %q, want %q", e.ID, e.Archetype, ArchetypeFlyer)
		}
	}
}

func TestLoadRegistryFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.json")
	content := `{
		"players": [{"id": "p", "name": "Hero", "hp": 10, "attack": 10, "defense": 0, "speed": 5}],
		"enemies": [{"id": "e", "name": "Eye", "hp": 5, "attack": 0, "defense": 3, "speed": 1, "archetype": "flyer"}]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	registry, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry(%s) error = %v", path, err)
	}
	if got := registry.GetByID("e"); got == nil || got.Defense != 3 {
		t.Errorf("GetByID(e) = %+v, want defense 3", got)
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRosterValidate(t *testing.T) {
	valid := func() RosterFile {
		return RosterFile{
			Players: []UnitDef{{ID: "p", Name: "P", HP: 10}},
			Enemies: []UnitDef{{ID: "e", Name: "E", HP: 10}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(f *RosterFile)
		wantErr string
	}{
		{"valid", func(f *RosterFile) {}, ""},
		{"no players", func(f *RosterFile) { f.Players = nil }, "no players"},
		{"no enemies", func(f *RosterFile) { f.Enemies = nil }, "no enemies"},
		{"duplicate id", func(f *RosterFile) { f.Enemies[0].ID = "P" }, "duplicate"},
		{"missing id", func(f *RosterFile) { f.Players[0].ID = "" }, "missing an id"},
		{"missing name", func(f *RosterFile) { f.Players[0].Name = " " }, "missing a name"},
		{"zero hp", func(f *RosterFile) { f.Enemies[0].HP = 0 }, "positive hp"},
		{"negative stat", func(f *RosterFile) { f.Enemies[0].Speed = -1 }, "negative stat"},
		{"bad archetype", func(f *RosterFile) { f.Enemies[0].Archetype = "swimmer" }, "unknown archetype"},
	}

	for _, tt := range tests {
		f := valid()
		tt.mutate(&f)
		err := f.Validate()
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error = %v, want containing %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00ff00", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#GGGGGG", false},
		{"#FFF", false}, // Too short
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestUnitDefGlyph(t *testing.T) {
	def := UnitDef{ID: "test", Name: "Test", Glyph: "T"}
	if def.GlyphRune() != 'T' {
		t.Errorf("Expected glyph 'T', got %c", def.GlyphRune())
	}

	empty := UnitDef{ID: "empty"}
	if empty.GlyphRune() != '?' {
		t.Errorf("Expected fallback glyph '?', got %c", empty.GlyphRune())
	}
}
