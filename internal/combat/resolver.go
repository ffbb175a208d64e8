// Package combat provides the turn-order and attack resolution rules for Skirmish.
package combat

import (
	"errors"
	"math"
	"math/rand"
)

// Side identifies which roster a combatant fights for.
type Side int

const (
	// SidePlayer is the user-controlled roster.
	SidePlayer Side = iota
	// SideEnemy is the automatic roster.
	SideEnemy
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Opponent returns the side this side fights against.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Combatant is the interface for any entity that can take part in a battle.
// Both player units and enemy units implement this interface.
type Combatant interface {
	// Identity
	GetName() string
	GetSide() Side
	IsDead() bool

	// Stats
	GetHP() float64
	GetMaxHP() float64
	GetAttack() float64
	GetDefense() float64
	GetSpeed() float64

	// Mutations
	TakeDamage(amount float64) bool // Returns true if the hit was lethal
}

// ErrNoTargets is returned when a target is requested from an empty candidate set.
// Win/loss checks run after every turn, so reaching it means an invariant broke.
var ErrNoTargets = errors.New("no targetable combatants")

// AttackResult contains the outcome of resolving an attack.
type AttackResult struct {
	Damage float64
	Lethal bool
}

// ResolveAttack applies the attacker's basic attack to the defender.
// Damage is the absolute gap between attack and defense, so a weak attacker
// facing a strong defender still lands a hit sized by the difference.
func ResolveAttack(attacker, defender Combatant) AttackResult {
	damage := CalculateDamage(attacker, defender)
	lethal := defender.TakeDamage(damage)
	return AttackResult{Damage: damage, Lethal: lethal}
}

// CalculateDamage calculates damage without applying it (for AI/preview).
func CalculateDamage(attacker, defender Combatant) float64 {
	return math.Abs(attacker.GetAttack() - defender.GetDefense())
}

// PickTarget returns a uniformly random element of candidates.
// Callers must pass the current alive set; it is not cached between turns.
func PickTarget[T any](rng *rand.Rand, candidates []T) (T, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, ErrNoTargets
	}
	return candidates[rng.Intn(len(candidates))], nil
}
