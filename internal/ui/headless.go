package ui

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-logr/logr"

	"github.com/samdwyer/skirmish/internal/battle"
	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
)

// LogPresenter is a battle.PresentationPort that writes every call to a
// logger instead of a screen.
type LogPresenter struct {
	log       logr.Logger
	animDelay time.Duration
}

var _ battle.PresentationPort = (*LogPresenter)(nil)

// NewLogPresenter creates a presenter. Attack animations complete after
// animDelay.
func NewLogPresenter(log logr.Logger, animDelay time.Duration) *LogPresenter {
	return &LogPresenter{log: log.WithName("presenter"), animDelay: animDelay}
}

func (p *LogPresenter) ShowPhase(text string) {
	p.log.Info("phase", "text", text)
}

func (p *LogPresenter) ShowCombatMessage(text string) {
	p.log.Info(text)
}

func (p *LogPresenter) ShowHealth(u *entity.Unit) {
	p.log.V(1).Info("health", "unit", u.Name, "hp", u.HP, "max", u.HPMax, "dead", u.Dead)
}

func (p *LogPresenter) EnableActions(enabled bool) {
	p.log.V(2).Info("actions", "enabled", enabled)
}

func (p *LogPresenter) HighlightTargetable(candidates []*entity.Unit) {
	p.log.V(2).Info("highlight", "units", names(candidates))
}

func (p *LogPresenter) ClearHighlights() {
	p.log.V(2).Info("clear highlights")
}

func (p *LogPresenter) SetTargetableSortOrder(candidates []*entity.Unit) {
	p.log.V(2).Info("target order", "units", names(candidates))
}

func (p *LogPresenter) PlayAnimation(u *entity.Unit, kind battle.Animation) <-chan struct{} {
	p.log.V(2).Info("animation", "unit", u.Name, "kind", kind.String(), "airborne", u.Airborne)

	done := make(chan struct{})
	if kind != battle.AnimAttack || p.animDelay <= 0 {
		close(done)
		return done
	}
	time.AfterFunc(p.animDelay, func() { close(done) })
	return done
}

// AutoPilot is a battle.InputPort that plays the heroes at random. It picks
// unavailable actions too, so the re-prompt path gets exercised.
type AutoPilot struct {
	rng *rand.Rand
	log logr.Logger
}

var _ battle.InputPort = (*AutoPilot)(nil)

// NewAutoPilot creates an AutoPilot drawing from rng. rng must not be shared
// with another goroutine.
func NewAutoPilot(rng *rand.Rand, log logr.Logger) *AutoPilot {
	return &AutoPilot{rng: rng, log: log.WithName("autopilot")}
}

var allActions = []battle.Action{
	battle.ActionAttack,
	battle.ActionMagic,
	battle.ActionDefend,
	battle.ActionItem,
}

func (a *AutoPilot) AwaitAction(ctx context.Context) (battle.Action, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	action, err := combat.PickTarget(a.rng, allActions)
	if err != nil {
		return 0, err
	}
	a.log.V(1).Info("chose action", "action", action.String())
	return action, nil
}

func (a *AutoPilot) AwaitTarget(ctx context.Context, candidates []*entity.Unit) (*entity.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := combat.PickTarget(a.rng, candidates)
	if err != nil {
		return nil, err
	}
	a.log.V(1).Info("chose target", "target", target.Name)
	return target, nil
}

func names(units []*entity.Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Name
	}
	return out
}
