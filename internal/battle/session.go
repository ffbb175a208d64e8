package battle

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/skirmish/internal/combat"
	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/telemetry"
)

var (
	// ErrNoCombatants is returned when a freshly built turn queue has nobody
	// left alive to act.
	ErrNoCombatants = errors.New("turn queue has no living combatants")

	// ErrInvalidTarget is returned when the input layer hands back a unit
	// that was not one of the living candidates.
	ErrInvalidTarget = errors.New("selected target is not a living candidate")
)

// Config holds the session's tunables and collaborators that are not ports.
type Config struct {
	Timing Timing
	Logger logr.Logger

	// Rand drives enemy target selection. Nil seeds from the clock.
	Rand *rand.Rand

	// MaxEncounters stops Run after that many encounters. Zero runs forever.
	MaxEncounters int

	// OnState, when set, is called on every state transition.
	OnState func(BattleState)
}

// Outcome records how a finished encounter went.
type Outcome struct {
	EncounterID string
	Winner      combat.Side
	State       BattleState
	Turns       int
	Rounds      int
}

// Session owns both rosters, the turn queue and the battle state, and drives
// encounters through the presentation and input ports.
//
// A Session is not safe for concurrent use; Run is expected to be the only
// goroutine touching it and its units.
type Session struct {
	players *entity.Roster
	enemies *entity.Roster
	queue   *combat.TurnQueue[*entity.Unit]
	state   BattleState

	present PresentationPort
	input   InputPort
	cfg     Config
	log     logr.Logger
	tracer  trace.Tracer

	encounterID string
	turns       int
	roundsStart int
	outcomes    []Outcome
}

// NewSession creates a session in the START state.
func NewSession(cfg Config, players, enemies *entity.Roster, present PresentationPort, input InputPort) *Session {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	return &Session{
		players: players,
		enemies: enemies,
		queue:   combat.NewTurnQueue[*entity.Unit](nil),
		state:   StateStart,
		present: present,
		input:   input,
		cfg:     cfg,
		log:     log.WithName("battle"),
		tracer:  telemetry.Tracer("battle"),
	}
}

// State returns the current battle state.
func (s *Session) State() BattleState { return s.state }

// Players returns the player roster.
func (s *Session) Players() *entity.Roster { return s.players }

// Enemies returns the enemy roster.
func (s *Session) Enemies() *entity.Roster { return s.enemies }

// EncounterID returns the ID of the current or most recent encounter.
func (s *Session) EncounterID() string { return s.encounterID }

// Outcomes returns the finished encounters in order.
func (s *Session) Outcomes() []Outcome {
	out := make([]Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// Run plays encounters back to back until ctx is done, an invariant breaks,
// or MaxEncounters encounters have finished.
func (s *Session) Run(ctx context.Context) error {
	for n := 0; s.cfg.MaxEncounters <= 0 || n < s.cfg.MaxEncounters; n++ {
		if _, err := s.RunEncounter(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RunEncounter plays one encounter from START through WON or LOST and the
// reset back to START.
func (s *Session) RunEncounter(ctx context.Context) (Outcome, error) {
	if err := s.start(ctx); err != nil {
		return Outcome{}, err
	}
	winner, err := s.fight(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return s.finish(ctx, winner)
}

// combatants returns every unit, players first, in roster order.
func (s *Session) combatants() []*entity.Unit {
	all := make([]*entity.Unit, 0, len(s.players.Members)+len(s.enemies.Members))
	all = append(all, s.players.Members...)
	all = append(all, s.enemies.Members...)
	return all
}

func (s *Session) setState(state BattleState) {
	s.state = state
	if s.cfg.OnState != nil {
		s.cfg.OnState(state)
	}
}

// start resets both rosters, paces the opening and builds the first round.
func (s *Session) start(ctx context.Context) error {
	s.encounterID = uuid.NewString()
	s.turns = 0
	s.roundsStart = s.queue.Rounds()

	s.setState(StateStart)
	s.present.ShowPhase(StateStart.String())
	s.present.EnableActions(false)

	s.players.RecoverAll()
	s.enemies.RecoverAll()
	for _, u := range s.combatants() {
		s.present.ShowHealth(u)
	}

	_, span := s.tracer.Start(ctx, telemetry.SpanEncounterStart)
	span.SetAttributes(
		attribute.String("encounter.id", s.encounterID),
		attribute.Int("players", len(s.players.Members)),
		attribute.Int("enemies", len(s.enemies.Members)),
	)
	span.End()
	s.log.Info("encounter started", "encounter", s.encounterID,
		"players", len(s.players.Members), "enemies", len(s.enemies.Members))

	if err := sleep(ctx, s.cfg.Timing.BattleDelay); err != nil {
		return err
	}

	for _, u := range s.combatants() {
		s.present.PlayAnimation(u, AnimIdle)
	}
	s.queue.Rebuild(s.combatants())
	return nil
}

// fight runs the turn loop until one side has nobody standing and returns
// the winning side.
func (s *Session) fight(ctx context.Context) (combat.Side, error) {
	for {
		actor, err := s.nextActor()
		if err != nil {
			return 0, err
		}

		if err := s.takeTurn(ctx, actor); err != nil {
			return 0, err
		}

		if s.rosterOf(actor.Side.Opponent()).IsDefeated() {
			return actor.Side, nil
		}
	}
}

// nextActor pops the next living unit, rebuilding the queue when a round is
// exhausted. Dead units are dropped without using a turn.
func (s *Session) nextActor() (*entity.Unit, error) {
	rebuilt := false
	for {
		u, ok := s.queue.Pop()
		if !ok {
			if rebuilt {
				return nil, ErrNoCombatants
			}
			s.queue.Rebuild(s.combatants())
			rebuilt = true
			continue
		}
		if u.IsDead() {
			continue
		}
		return u, nil
	}
}

func (s *Session) rosterOf(side combat.Side) *entity.Roster {
	if side == combat.SidePlayer {
		return s.players
	}
	return s.enemies
}

// turn is what a single attack did.
type turn struct {
	target *entity.Unit
	result combat.AttackResult
}

func (s *Session) takeTurn(ctx context.Context, actor *entity.Unit) error {
	ctx, span := s.tracer.Start(ctx, telemetry.SpanTurn)
	defer span.End()
	span.SetAttributes(
		attribute.String("encounter.id", s.encounterID),
		attribute.String("actor", actor.Name),
		attribute.String("side", actor.Side.String()),
		attribute.Int("turn", s.turns),
	)

	var (
		t   turn
		err error
	)
	if actor.Side == combat.SidePlayer {
		s.setState(StatePlayer)
		t, err = s.playerTurn(ctx, actor)
	} else {
		s.setState(StateEnemy)
		t, err = s.enemyTurn(ctx, actor)
	}
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.String("target", t.target.Name),
		attribute.Float64("damage", t.result.Damage),
		attribute.Bool("lethal", t.result.Lethal),
	)
	s.log.V(1).Info("turn resolved", "turn", s.turns, "actor", actor.Name,
		"target", t.target.Name, "damage", t.result.Damage, "lethal", t.result.Lethal)
	s.turns++
	return nil
}

// playerTurn waits for the player's action. Only Attack is resolved; the
// other actions have no effect yet and ask again.
func (s *Session) playerTurn(ctx context.Context, actor *entity.Unit) (turn, error) {
	s.present.ShowPhase(actor.Name)
	s.present.PlayAnimation(actor, AnimBattleStance)
	s.present.EnableActions(true)
	defer s.present.EnableActions(false)

	for {
		action, err := s.input.AwaitAction(ctx)
		if err != nil {
			return turn{}, err
		}
		if action == ActionAttack {
			return s.playerAttack(ctx, actor)
		}

		s.log.V(1).Info("action not available", "actor", actor.Name, "action", action.String())
		s.present.ShowCombatMessage(action.String() + " is not available yet.")
	}
}

func (s *Session) playerAttack(ctx context.Context, actor *entity.Unit) (turn, error) {
	s.present.EnableActions(false)

	candidates := s.enemies.Alive()
	if len(candidates) == 0 {
		return turn{}, fmt.Errorf("%s attack: %w", actor.Name, combat.ErrNoTargets)
	}

	s.present.SetTargetableSortOrder(candidates)
	s.present.HighlightTargetable(candidates)
	target, err := s.input.AwaitTarget(ctx, candidates)
	s.present.ClearHighlights()
	if err != nil {
		return turn{}, err
	}
	if !isCandidate(target, candidates) {
		return turn{}, fmt.Errorf("%s attack: %w", actor.Name, ErrInvalidTarget)
	}

	if err := await(ctx, s.present.PlayAnimation(actor, AnimAttack)); err != nil {
		return turn{}, err
	}
	return s.hit(ctx, actor, target, s.cfg.Timing.HurtDelay)
}

// enemyTurn attacks a random living player. The target is drawn after the
// attack animation so it reflects the current alive set.
func (s *Session) enemyTurn(ctx context.Context, actor *entity.Unit) (turn, error) {
	s.present.EnableActions(false)
	s.present.ShowPhase(actor.Name)
	s.present.PlayAnimation(actor, AnimBattleStance)

	if err := await(ctx, s.present.PlayAnimation(actor, AnimAttack)); err != nil {
		return turn{}, err
	}

	target, err := combat.PickTarget(s.cfg.Rand, s.players.Alive())
	if err != nil {
		return turn{}, fmt.Errorf("%s attack: %w", actor.Name, err)
	}
	return s.hit(ctx, actor, target, s.cfg.Timing.AnimationDelay)
}

// hit resolves the attack, narrates it and pauses for settle.
func (s *Session) hit(ctx context.Context, actor, target *entity.Unit, settle time.Duration) (turn, error) {
	result := combat.ResolveAttack(actor, target)
	t := turn{target: target, result: result}

	s.present.ShowHealth(target)
	s.present.PlayAnimation(target, AnimHurt)
	msg := fmt.Sprintf("%s hits %s for %s damage!", actor.Name, target.Name, formatAmount(result.Damage))
	if result.Lethal {
		s.present.PlayAnimation(target, AnimDeath)
		msg += " " + target.Name + " is defeated!"
	}
	s.present.ShowCombatMessage(msg)

	if err := sleep(ctx, settle); err != nil {
		return t, err
	}
	s.present.PlayAnimation(actor, AnimIdle)
	return t, nil
}

// finish records the result, pauses, recovers everyone and returns to START.
func (s *Session) finish(ctx context.Context, winner combat.Side) (Outcome, error) {
	state := StateWon
	if winner == combat.SideEnemy {
		state = StateLost
	}
	s.setState(state)
	s.present.ShowPhase(state.String())
	s.present.EnableActions(false)
	for _, u := range s.rosterOf(winner).Members {
		s.present.PlayAnimation(u, AnimIdle)
	}

	outcome := Outcome{
		EncounterID: s.encounterID,
		Winner:      winner,
		State:       state,
		Turns:       s.turns,
		Rounds:      s.queue.Rounds() - s.roundsStart,
	}
	s.outcomes = append(s.outcomes, outcome)

	_, span := s.tracer.Start(ctx, telemetry.SpanEncounterEnd)
	span.SetAttributes(
		attribute.String("encounter.id", s.encounterID),
		attribute.String("outcome", state.String()),
		attribute.String("winner", winner.String()),
		attribute.Int("turns_taken", s.turns),
		attribute.Int("rounds", outcome.Rounds),
	)
	span.End()
	s.log.Info("encounter finished", "encounter", s.encounterID,
		"outcome", state.String(), "turns", s.turns, "rounds", outcome.Rounds)

	if err := sleep(ctx, s.cfg.Timing.BattleDelay); err != nil {
		return outcome, err
	}

	for _, u := range s.combatants() {
		wasDead := u.IsDead()
		u.Recover()
		if wasDead {
			s.present.PlayAnimation(u, AnimRecover)
		}
		s.present.ShowHealth(u)
	}
	s.setState(StateStart)
	return outcome, nil
}

func isCandidate(target *entity.Unit, candidates []*entity.Unit) bool {
	if target == nil || target.IsDead() {
		return false
	}
	for _, c := range candidates {
		if c == target {
			return true
		}
	}
	return false
}

// formatAmount prints damage without trailing zeros ("7", "2.5").
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
