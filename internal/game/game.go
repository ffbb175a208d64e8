package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/skirmish/internal/battle"
	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/gamedata"
	"github.com/samdwyer/skirmish/internal/random"
	"github.com/samdwyer/skirmish/internal/telemetry"
	"github.com/samdwyer/skirmish/internal/ui"
)

// Game holds the entire game state.
type Game struct {
	cfg     Config
	mode    Mode
	seed    int64
	log     logr.Logger
	players *entity.Roster
	enemies *entity.Roster
	session *battle.Session

	screen   *ui.Screen
	terminal *ui.Terminal
}

// New creates a new game instance from cfg.
func New(cfg Config, log logr.Logger) (*Game, error) {
	return newGame(cfg, log, ui.NewScreen)
}

// newGame builds the game, opening a screen with newScreen in terminal mode.
func newGame(cfg Config, log logr.Logger, newScreen func() (*ui.Screen, error)) (*Game, error) {
	registry, err := gamedata.LoadRegistry(cfg.RosterFile)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	rng, seed, err := random.New(cfg.Seed)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		mode:    cfg.Mode(),
		seed:    seed,
		log:     log.WithName("game"),
		players: entity.NewRosterFromDefs(combat.SidePlayer, registry.Players()),
		enemies: entity.NewRosterFromDefs(combat.SideEnemy, registry.Enemies()),
	}

	var (
		present battle.PresentationPort
		input   battle.InputPort
	)
	switch g.mode {
	case ModeHeadless:
		present = ui.NewLogPresenter(log, cfg.AnimationDelay)
		input = ui.NewAutoPilot(rand.New(rand.NewSource(seed+1)), log)
	default:
		g.screen, err = newScreen()
		if err != nil {
			return nil, fmt.Errorf("open screen: %w", err)
		}
		g.terminal = ui.NewTerminal(g.screen, g.players, g.enemies, cfg.AnimationDelay, log)
		present, input = g.terminal, g.terminal
	}

	g.session = battle.NewSession(battle.Config{
		Timing:        cfg.Timing(),
		Rand:          rng,
		Logger:        log,
		MaxEncounters: cfg.Encounters,
		OnState:       g.onState,
	}, g.players, g.enemies, present, input)

	return g, nil
}

// Run plays until the configured number of encounters is reached, the
// player quits, or ctx is cancelled. Quitting and cancellation are not
// errors.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, telemetry.SpanGameRun)
	defer span.End()
	span.SetAttributes(
		attribute.String("mode", g.mode.String()),
		attribute.Int64("seed", g.seed),
		attribute.Int("players", len(g.players.Members)),
		attribute.Int("enemies", len(g.enemies.Members)),
	)
	g.log.Info("starting", "mode", g.mode.String(), "seed", g.seed,
		"players", len(g.players.Members), "enemies", len(g.enemies.Members))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		// A finished session stops the terminal pump as well.
		defer cancel()
		return g.session.Run(ctx)
	})
	if g.terminal != nil {
		eg.Go(func() error {
			return g.terminal.Run(ctx)
		})
	}

	err := eg.Wait()
	g.Close()

	wins, losses := g.tally()
	span.SetAttributes(
		attribute.Int("encounters", wins+losses),
		attribute.Int("wins", wins),
		attribute.Int("losses", losses),
	)
	g.log.Info("stopped", "encounters", wins+losses, "wins", wins, "losses", losses)

	if errors.Is(err, context.Canceled) || errors.Is(err, ui.ErrQuit) {
		return nil
	}
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// Outcomes returns the encounters finished so far.
func (g *Game) Outcomes() []battle.Outcome {
	return g.session.Outcomes()
}

// Seed returns the seed the battle's random source was built from.
func (g *Game) Seed() int64 {
	return g.seed
}

func (g *Game) onState(s battle.BattleState) {
	if s.IsTerminal() {
		g.log.Info("battle decided", "state", s.String())
		return
	}
	g.log.V(1).Info("state", "state", s.String())
}

func (g *Game) tally() (wins, losses int) {
	for _, o := range g.session.Outcomes() {
		if o.State == battle.StateWon {
			wins++
		} else {
			losses++
		}
	}
	return wins, losses
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
