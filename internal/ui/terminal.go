package ui

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/samdwyer/skirmish/internal/battle"
	"github.com/samdwyer/skirmish/internal/entity"
)

// ErrQuit is returned by Terminal.Run when the player asks to leave.
var ErrQuit = errors.New("player quit")

// Terminal is the interactive battle view. It implements both
// battle.PresentationPort and battle.InputPort.
//
// Port methods are called from the battle goroutine; Run pumps terminal
// events on another. The two only meet through the view, guarded by mu,
// and the action and target channels.
type Terminal struct {
	screen    *Screen
	renderer  *Renderer
	log       logr.Logger
	animDelay time.Duration

	mu   sync.Mutex
	view *view

	actions chan battle.Action
	targets chan *entity.Unit
}

var (
	_ battle.PresentationPort = (*Terminal)(nil)
	_ battle.InputPort        = (*Terminal)(nil)
)

// NewTerminal lays out both rosters on screen. Attack animations take
// animDelay to complete.
func NewTerminal(screen *Screen, players, enemies *entity.Roster, animDelay time.Duration, log logr.Logger) *Terminal {
	return &Terminal{
		screen:    screen,
		renderer:  NewRenderer(screen),
		log:       log.WithName("terminal"),
		animDelay: animDelay,
		view:      newView(players.Members, enemies.Members),
		actions:   make(chan battle.Action, 1),
		targets:   make(chan *entity.Unit, 1),
	}
}

// update runs fn under the view lock and redraws.
func (t *Terminal) update(fn func(v *view)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.view)
	t.renderer.Render(t.view)
}

// ShowPhase replaces the phase banner.
func (t *Terminal) ShowPhase(text string) {
	t.update(func(v *view) { v.phase = text })
}

// ShowCombatMessage replaces the message line.
func (t *Terminal) ShowCombatMessage(text string) {
	t.update(func(v *view) { v.message = text })
}

// ShowHealth copies u's health into the view.
func (t *Terminal) ShowHealth(u *entity.Unit) {
	t.update(func(v *view) {
		if i := v.index(u); i >= 0 {
			v.units[i].refresh(u)
		}
	})
}

// EnableActions turns the action menu on or off. Choices made while the
// menu was on but not yet collected are discarded when it turns off.
func (t *Terminal) EnableActions(enabled bool) {
	t.update(func(v *view) { v.actionsEnabled = enabled })
	if !enabled {
		drain(t.actions)
	}
}

// HighlightTargetable marks candidates on screen.
func (t *Terminal) HighlightTargetable(candidates []*entity.Unit) {
	t.update(func(v *view) {
		for _, i := range v.indices(candidates) {
			v.highlighted[i] = true
		}
	})
}

// ClearHighlights removes all target markings.
func (t *Terminal) ClearHighlights() {
	t.update(func(v *view) {
		clear(v.highlighted)
		v.candidates = nil
		v.cursor = 0
	})
}

// SetTargetableSortOrder numbers the candidates top to bottom, which is the
// order the cursor and digit keys follow.
func (t *Terminal) SetTargetableSortOrder(candidates []*entity.Unit) {
	t.update(func(v *view) {
		v.candidates = v.indices(candidates)
		v.cursor = 0
	})
}

// PlayAnimation shows kind next to u. Attacks complete after the animation
// delay; everything else completes at once.
func (t *Terminal) PlayAnimation(u *entity.Unit, kind battle.Animation) <-chan struct{} {
	t.update(func(v *view) {
		if i := v.index(u); i >= 0 {
			v.units[i].anim = kind
			v.units[i].refresh(u)
		}
	})
	t.log.V(2).Info("animation", "unit", u.Name, "kind", kind.String())

	done := make(chan struct{})
	if kind != battle.AnimAttack || t.animDelay <= 0 {
		close(done)
		return done
	}
	time.AfterFunc(t.animDelay, func() { close(done) })
	return done
}

// AwaitAction blocks until the player picks an action from the menu.
func (t *Terminal) AwaitAction(ctx context.Context) (battle.Action, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case a := <-t.actions:
		return a, nil
	}
}

// AwaitTarget blocks until the player picks one of candidates.
func (t *Terminal) AwaitTarget(ctx context.Context, candidates []*entity.Unit) (*entity.Unit, error) {
	drain(t.targets)
	t.update(func(v *view) {
		if !sameUnits(v, v.candidates, candidates) {
			v.candidates = v.indices(candidates)
		}
		v.cursor = 0
		v.targeting = true
	})
	defer t.update(func(v *view) { v.targeting = false })

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case u := <-t.targets:
		return u, nil
	}
}

// Run pumps terminal events until the player quits or ctx is done. It
// closes the screen when ctx is done so the blocked poll returns.
func (t *Terminal) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, t.screen.Close)
	defer stop()

	t.update(func(*view) {})
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return ctx.Err()
		}
		if t.handleEvent(ev) {
			return ErrQuit
		}
	}
}

// handleEvent processes one event and reports whether the player quit.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKeyEvent(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			t.pick(func(v *view) int { return v.unitAt(x, y) })
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.update(func(*view) {})
	}
	return false
}

// handleKeyEvent processes keyboard input.
func (t *Terminal) handleKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true

	case tcell.KeyUp, tcell.KeyLeft, tcell.KeyBacktab:
		t.update(func(v *view) { v.move(-1) })
	case tcell.KeyDown, tcell.KeyRight, tcell.KeyTab:
		t.update(func(v *view) { v.move(1) })
	case tcell.KeyEnter:
		t.pick(func(v *view) int { return v.cursorUnit() })

	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			return true
		case 'a', 'A':
			t.choose(battle.ActionAttack)
		case 'm', 'M':
			t.choose(battle.ActionMagic)
		case 'd', 'D':
			t.choose(battle.ActionDefend)
		case 'i', 'I':
			t.choose(battle.ActionItem)
		default:
			if r >= '1' && r <= '9' {
				n := int(r - '1')
				t.pick(func(v *view) int {
					if n < len(v.candidates) {
						return v.candidates[n]
					}
					return -1
				})
			}
		}
	}
	return false
}

// choose forwards an action if the menu is on.
func (t *Terminal) choose(a battle.Action) {
	t.mu.Lock()
	ok := t.view.actionsEnabled && !t.view.targeting
	t.mu.Unlock()
	if !ok {
		return
	}
	select {
	case t.actions <- a:
	default:
	}
}

// pick forwards the unit chosen by which if it is a living candidate.
func (t *Terminal) pick(which func(v *view) int) {
	t.update(func(v *view) {
		i := which(v)
		if !v.selectable(i) {
			return
		}
		select {
		case t.targets <- v.units[i].unit:
			v.targeting = false
		default:
		}
	})
}

// sameUnits reports whether idx refers to exactly the units in want.
func sameUnits(v *view, idx []int, want []*entity.Unit) bool {
	if len(idx) != len(want) {
		return false
	}
	for _, u := range want {
		i := v.index(u)
		found := false
		for _, j := range idx {
			if i == j {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func drain[T any](ch chan T) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
