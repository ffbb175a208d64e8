package ui

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/samdwyer/skirmish/internal/battle"
	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
)

func captureLogger(lines *[]string, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		*lines = append(*lines, prefix+" "+args)
	}, funcr.Options{Verbosity: verbosity})
}

func TestLogPresenterVerbosity(t *testing.T) {
	var lines []string
	p := NewLogPresenter(captureLogger(&lines, 0), 0)
	eye := entity.NewUnit("Eye", combat.SideEnemy, 6, 3, 1, 4)

	p.ShowPhase("START")
	p.ShowCombatMessage("Knight hits Eye for 2 damage!")
	p.ShowHealth(eye)
	<-p.PlayAnimation(eye, battle.AnimHurt)

	if len(lines) != 2 {
		t.Fatalf("got %d lines at verbosity 0, want 2: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], `"text"="START"`) {
		t.Errorf("phase line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Knight hits Eye") {
		t.Errorf("message line = %q", lines[1])
	}
}

func TestLogPresenterDetail(t *testing.T) {
	var lines []string
	p := NewLogPresenter(captureLogger(&lines, 2), 0)
	eye := entity.NewUnit("Eye", combat.SideEnemy, 6, 3, 1, 4)
	bat := entity.NewUnit("Bat", combat.SideEnemy, 4, 2, 0, 5)

	p.EnableActions(true)
	p.SetTargetableSortOrder([]*entity.Unit{eye, bat})
	p.HighlightTargetable([]*entity.Unit{eye, bat})
	p.ClearHighlights()
	<-p.PlayAnimation(eye, battle.AnimAttack)

	joined := strings.Join(lines, "\n")
	for _, want := range []string{`"enabled"=true`, `"msg"="target order"`, `"units"=[`, `"Eye"`, `"Bat"`, "clear highlights", `"kind"="attack"`} {
		if !strings.Contains(joined, want) {
			t.Errorf("log missing %s:\n%s", want, joined)
		}
	}
}

func TestAutoPilotChoosesEveryAction(t *testing.T) {
	a := NewAutoPilot(rand.New(rand.NewSource(3)), logr.Discard())
	seen := make(map[battle.Action]bool)
	for i := 0; i < 200; i++ {
		action, err := a.AwaitAction(context.Background())
		if err != nil {
			t.Fatalf("AwaitAction() error = %v", err)
		}
		seen[action] = true
	}
	if len(seen) != len(allActions) {
		t.Errorf("saw %d distinct actions, want %d", len(seen), len(allActions))
	}
}

func TestAutoPilotTargetsCandidates(t *testing.T) {
	a := NewAutoPilot(rand.New(rand.NewSource(5)), logr.Discard())
	eye := entity.NewUnit("Eye", combat.SideEnemy, 6, 3, 1, 4)
	bat := entity.NewUnit("Bat", combat.SideEnemy, 4, 2, 0, 5)
	candidates := []*entity.Unit{eye, bat}

	for i := 0; i < 50; i++ {
		u, err := a.AwaitTarget(context.Background(), candidates)
		if err != nil {
			t.Fatalf("AwaitTarget() error = %v", err)
		}
		if u != eye && u != bat {
			t.Fatalf("AwaitTarget() = %v, not a candidate", u)
		}
	}

	if _, err := a.AwaitTarget(context.Background(), nil); !errors.Is(err, combat.ErrNoTargets) {
		t.Errorf("AwaitTarget(nil) error = %v, want ErrNoTargets", err)
	}
}

func TestAutoPilotCancelled(t *testing.T) {
	a := NewAutoPilot(rand.New(rand.NewSource(1)), logr.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.AwaitAction(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("AwaitAction() error = %v, want context.Canceled", err)
	}
	if _, err := a.AwaitTarget(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("AwaitTarget() error = %v, want context.Canceled", err)
	}
}

func TestHeadlessEncounter(t *testing.T) {
	players := entity.NewRoster(combat.SidePlayer, entity.NewUnit("Knight", combat.SidePlayer, 20, 8, 1, 5))
	enemies := entity.NewRoster(combat.SideEnemy, entity.NewUnit("Eye", combat.SideEnemy, 10, 2, 1, 1))
	rng := rand.New(rand.NewSource(9))

	s := battle.NewSession(battle.Config{Rand: rng, MaxEncounters: 3}, players, enemies,
		NewLogPresenter(logr.Discard(), 0), NewAutoPilot(rand.New(rand.NewSource(10)), logr.Discard()))
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	outcomes := s.Outcomes()
	if len(outcomes) != 3 {
		t.Fatalf("Outcomes() = %d, want 3", len(outcomes))
	}
	for _, o := range outcomes {
		if o.State != battle.StateWon {
			t.Errorf("outcome %+v, want WON", o)
		}
	}
}
