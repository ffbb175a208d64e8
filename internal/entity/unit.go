// Package entity provides the combatants that fill each roster.
package entity

import (
	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/gamedata"
)

// Unit represents a single combatant on either side.
type Unit struct {
	ID    string      // Definition ID (e.g., "red_eye")
	Name  string      // Display name
	Side  combat.Side // Roster the unit fights for
	Glyph rune        // Display symbol
	Color string      // Hex color code for rendering

	// Combat stats
	Level   float64
	HPMax   float64
	HP      float64
	Attack  float64
	Defense float64
	Speed   float64
	Dead    bool

	// Airborne is presentation state owned by the unit's Behavior.
	Airborne bool

	behavior Behavior
}

// NewUnit creates a unit with full health and grounded behavior.
func NewUnit(name string, side combat.Side, hp, attack, defense, speed float64) *Unit {
	u := &Unit{
		ID:       name,
		Name:     name,
		Side:     side,
		Glyph:    '?',
		Level:    1,
		HPMax:    hp,
		HP:       hp,
		Attack:   attack,
		Defense:  defense,
		Speed:    speed,
		behavior: Grounded{},
	}
	return u
}

// NewUnitFromDef creates a unit from a data-driven definition.
func NewUnitFromDef(def *gamedata.UnitDef, side combat.Side) *Unit {
	u := &Unit{
		ID:      def.ID,
		Name:    def.Name,
		Side:    side,
		Glyph:   def.GlyphRune(),
		Color:   def.Color,
		Level:   def.Level,
		HPMax:   def.HP,
		HP:      def.HP,
		Attack:  def.Attack,
		Defense: def.Defense,
		Speed:   def.Speed,
	}
	if u.Level <= 0 {
		u.Level = 1
	}
	u.SetBehavior(BehaviorFor(def.Archetype))
	return u
}

// SetBehavior replaces the unit's death/recovery strategy and applies its
// resting state.
func (u *Unit) SetBehavior(b Behavior) {
	if b == nil {
		b = Grounded{}
	}
	u.behavior = b
	if !u.Dead {
		b.Recover(u)
	}
}

// Behavior returns the unit's death/recovery strategy.
func (u *Unit) Behavior() Behavior {
	return u.behavior
}

// TakeDamage subtracts up to HP and reports whether the unit is now dead.
// Negative amounts are treated as zero.
func (u *Unit) TakeDamage(amount float64) bool {
	if amount < 0 {
		amount = 0
	}
	if amount > u.HP {
		amount = u.HP
	}
	u.HP -= amount

	if u.HP == 0 {
		if !u.Dead {
			u.Dead = true
			u.behavior.Die(u)
		}
		return true
	}
	return false
}

// Recover restores full health and clears death. Calling it again is a no-op.
func (u *Unit) Recover() {
	u.HP = u.HPMax
	u.Dead = false
	u.behavior.Recover(u)
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// GetName returns the unit's name.
func (u *Unit) GetName() string { return u.Name }

// GetSide returns the roster side.
func (u *Unit) GetSide() combat.Side { return u.Side }

// IsDead returns true once HP has reached zero.
func (u *Unit) IsDead() bool { return u.Dead }

// GetHP returns current HP.
func (u *Unit) GetHP() float64 { return u.HP }

// GetMaxHP returns maximum HP.
func (u *Unit) GetMaxHP() float64 { return u.HPMax }

// GetAttack returns attack stat.
func (u *Unit) GetAttack() float64 { return u.Attack }

// GetDefense returns defense stat.
func (u *Unit) GetDefense() float64 { return u.Defense }

// GetSpeed returns speed stat.
func (u *Unit) GetSpeed() float64 { return u.Speed }

// Ensure Unit implements combat.Combatant
var _ combat.Combatant = (*Unit)(nil)
