package battle

import (
	"context"

	"github.com/samdwyer/skirmish/internal/entity"
)

// Action is a command the player can choose on their unit's turn.
type Action int

const (
	ActionAttack Action = iota
	ActionMagic
	ActionDefend
	ActionItem
)

// String returns the action's menu label.
func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "Attack"
	case ActionMagic:
		return "Magic"
	case ActionDefend:
		return "Defend"
	case ActionItem:
		return "Item"
	default:
		return "Unknown"
	}
}

// Animation is a presentation cue for a single unit.
type Animation int

const (
	AnimIdle Animation = iota
	AnimBattleStance
	AnimAttack
	AnimHurt
	AnimDeath
	AnimRecover
)

// String returns the animation name.
func (a Animation) String() string {
	switch a {
	case AnimIdle:
		return "idle"
	case AnimBattleStance:
		return "battle_stance"
	case AnimAttack:
		return "attack"
	case AnimHurt:
		return "hurt"
	case AnimDeath:
		return "death"
	case AnimRecover:
		return "recover"
	default:
		return "unknown"
	}
}

// PresentationPort displays what the session is doing. It never owns battle
// logic and every call returns without blocking.
type PresentationPort interface {
	ShowPhase(text string)
	ShowCombatMessage(text string)
	ShowHealth(u *entity.Unit)
	EnableActions(enabled bool)
	HighlightTargetable(candidates []*entity.Unit)
	ClearHighlights()
	SetTargetableSortOrder(candidates []*entity.Unit)

	// PlayAnimation starts an animation and returns a channel that is closed
	// when it finishes. Callers that do not need to wait may ignore it.
	PlayAnimation(u *entity.Unit, kind Animation) <-chan struct{}
}

// InputPort supplies the player's decisions.
//
// Both methods block until a choice arrives or ctx is done. AwaitTarget must
// only return one of the given candidates, and only while it is alive.
type InputPort interface {
	AwaitAction(ctx context.Context) (Action, error)
	AwaitTarget(ctx context.Context, candidates []*entity.Unit) (*entity.Unit, error)
}
