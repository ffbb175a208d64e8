// Package battle runs the encounter state machine: turn order, player and
// enemy turns, win/loss detection and the reset back to START.
package battle

// BattleState represents the current phase of an encounter.
type BattleState int

const (
	// StateStart - rosters are being reset and the turn queue built
	StateStart BattleState = iota
	// StatePlayer - waiting for the player to act with the current unit
	StatePlayer
	// StateEnemy - an enemy is taking its automatic turn
	StateEnemy
	// StateWon - all enemies defeated
	StateWon
	// StateLost - all players defeated
	StateLost
)

// String returns the phase label shown to the player.
func (s BattleState) String() string {
	switch s {
	case StateStart:
		return "START"
	case StatePlayer:
		return "PLAYER"
	case StateEnemy:
		return "ENEMY"
	case StateWon:
		return "WON"
	case StateLost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal reports whether the encounter has been decided.
func (s BattleState) IsTerminal() bool {
	return s == StateWon || s == StateLost
}
