package gamedata

import (
	"errors"
	"fmt"
	"strings"
)

// Archetypes understood by the entity package.
const (
	ArchetypeGrounded = "grounded"
	ArchetypeFlyer    = "flyer"
)

// UnitDef defines a combatant loaded from JSON.
type UnitDef struct {
	ID        string  `json:"id"`        // Unique identifier (e.g., "red_knight")
	Name      string  `json:"name"`      // Display name (e.g., "Red Knight")
	Glyph     string  `json:"glyph"`     // Single character for rendering (e.g., "K")
	Color     string  `json:"color"`     // Hex color code (e.g., "#FF4040")
	Archetype string  `json:"archetype"` // Death/recovery behavior ("grounded", "flyer")
	Level     float64 `json:"level"`
	HP        float64 `json:"hp"`
	Attack    float64 `json:"attack"`
	Defense   float64 `json:"defense"`
	Speed     float64 `json:"speed"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *UnitDef) GlyphRune() rune {
	if len(d.Glyph) == 0 {
		return '?'
	}
	return []rune(d.Glyph)[0]
}

// RosterFile represents the structure of roster.json.
type RosterFile struct {
	Players []UnitDef `json:"players"`
	Enemies []UnitDef `json:"enemies"`
}

// Validate checks the file for the problems that would break an encounter:
// an empty side, duplicate IDs, or a unit that starts dead.
func (f *RosterFile) Validate() error {
	if len(f.Players) == 0 {
		return errors.New("roster has no players")
	}
	if len(f.Enemies) == 0 {
		return errors.New("roster has no enemies")
	}

	seen := make(map[string]struct{}, len(f.Players)+len(f.Enemies))
	for _, group := range [][]UnitDef{f.Players, f.Enemies} {
		for _, d := range group {
			id := strings.ToLower(strings.TrimSpace(d.ID))
			if id == "" {
				return fmt.Errorf("unit %q is missing an id", d.Name)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("duplicate unit id %q", d.ID)
			}
			seen[id] = struct{}{}

			if strings.TrimSpace(d.Name) == "" {
				return fmt.Errorf("unit %q is missing a name", d.ID)
			}
			if d.HP <= 0 {
				return fmt.Errorf("unit %q must have positive hp, got %v", d.ID, d.HP)
			}
			if d.Attack < 0 || d.Defense < 0 || d.Speed < 0 {
				return fmt.Errorf("unit %q has a negative stat", d.ID)
			}
			switch d.Archetype {
			case "", ArchetypeGrounded, ArchetypeFlyer:
			default:
				return fmt.Errorf("unit %q has unknown archetype %q", d.ID, d.Archetype)
			}
		}
	}
	return nil
}

// Registry holds loaded unit definitions and provides lookup utilities.
type Registry struct {
	players []UnitDef
	enemies []UnitDef
	byID    map[string]*UnitDef
}

// NewRegistry creates a registry from a validated roster file.
func NewRegistry(file RosterFile) (*Registry, error) {
	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("invalid roster: %w", err)
	}

	r := &Registry{
		players: file.Players,
		enemies: file.Enemies,
		byID:    make(map[string]*UnitDef, len(file.Players)+len(file.Enemies)),
	}
	for i := range r.players {
		r.byID[r.players[i].ID] = &r.players[i]
	}
	for i := range r.enemies {
		r.byID[r.enemies[i].ID] = &r.enemies[i]
	}
	return r, nil
}

// LoadRegistry loads the roster from path, or from the embedded roster.json
// when path is empty.
func LoadRegistry(path string) (*Registry, error) {
	var (
		file RosterFile
		err  error
	)
	if path == "" {
		file, err = Load[RosterFile]("roster.json")
	} else {
		file, err = LoadFile[RosterFile](path)
	}
	if err != nil {
		return nil, err
	}
	return NewRegistry(file)
}

// MustLoadRegistry loads the embedded registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry("")
	if err != nil {
		panic(err)
	}
	return registry
}

// Players returns the player-side definitions in roster order.
func (r *Registry) Players() []UnitDef {
	return r.players
}

// Enemies returns the enemy-side definitions in roster order.
func (r *Registry) Enemies() []UnitDef {
	return r.enemies
}

// GetByID returns the unit definition with the given ID, or nil if not found.
func (r *Registry) GetByID(id string) *UnitDef {
	return r.byID[id]
}

// Count returns the number of unit definitions in the registry.
func (r *Registry) Count() int {
	return len(r.players) + len(r.enemies)
}
