// Package encounter runs rounds of combat between one player and a group
// of monsters.
package encounter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/gugon/internal/combatlog"
	"github.com/udisondev/gugon/internal/dice"
	"github.com/udisondev/gugon/internal/game/combat"
	"github.com/udisondev/gugon/internal/world"
)

var (
	// ErrEncounterOver is returned when playing a round after the end.
	ErrEncounterOver = errors.New("encounter is over")
	// ErrUnknownCombatant is returned for target ids that are not enemies here.
	ErrUnknownCombatant = errors.New("unknown combatant")
	// ErrTargetDown is returned when targeting a dead enemy.
	ErrTargetDown = errors.New("target is down")
	// ErrSkillOnCooldown is returned for skills that are still cooling down.
	ErrSkillOnCooldown = errors.New("skill on cooldown")
	// ErrUnknownSkill is returned for skills the player has not learned.
	ErrUnknownSkill = combat.ErrUnknownSkill
	// ErrNoPlayer is returned when spawning monsters before the player joined.
	ErrNoPlayer = errors.New("encounter has no player")
)

// Outcome is the state of an encounter.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Victory
	Defeat
	Escaped
	Stalemate
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Escaped:
		return "escaped"
	case Stalemate:
		return "stalemate"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Encounter is a single fight. It owns the id registry of its combatants
// and is not safe for concurrent use.
type Encounter struct {
	id        string
	registry  *world.Registry[*combat.Combatant]
	player    *combat.Combatant
	spawned   map[string]int
	round     int
	outcome   Outcome
	src       dice.Source
	sink      combatlog.Sink
	presenter combat.ChoicePresenter
}

// Option configures an Encounter.
type Option func(*Encounter)

// WithID names the encounter in reports.
func WithID(id string) Option {
	return func(e *Encounter) { e.id = id }
}

// WithSink sends every report to sink.
func WithSink(sink combatlog.Sink) Option {
	return func(e *Encounter) { e.sink = sink }
}

// WithPresenter resolves the player's level-up choices.
func WithPresenter(p combat.ChoicePresenter) Option {
	return func(e *Encounter) { e.presenter = p }
}

// New creates an empty encounter rolling dice from src.
func New(src dice.Source, opts ...Option) *Encounter {
	e := &Encounter{
		registry:  world.NewRegistry[*combat.Combatant](),
		spawned:   make(map[string]int),
		src:       src,
		sink:      combatlog.Fanout{},
		presenter: FirstChoice{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the encounter name.
func (e *Encounter) ID() string { return e.id }

// Round returns the number of rounds played.
func (e *Encounter) Round() int { return e.round }

// Outcome returns the current outcome.
func (e *Encounter) Outcome() Outcome { return e.outcome }

// Player returns the player combatant.
func (e *Encounter) Player() *combat.Combatant { return e.player }

// Source returns the encounter's dice source.
func (e *Encounter) Source() dice.Source { return e.src }

// Combatant resolves an id issued by this encounter.
func (e *Encounter) Combatant(id uint32) (*combat.Combatant, bool) {
	return e.registry.Get(id)
}

// Enemies returns every enemy in initiative order, dead ones included.
func (e *Encounter) Enemies() []*combat.Combatant {
	return e.registry.InRange(world.RangeMonster)
}

// LivingEnemies returns the enemies still standing, in initiative order.
func (e *Encounter) LivingEnemies() []*combat.Combatant {
	var out []*combat.Combatant
	for _, c := range e.Enemies() {
		if c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// AddPlayer registers the player. An encounter has exactly one.
func (e *Encounter) AddPlayer(c *combat.Combatant) (uint32, error) {
	if e.player != nil {
		return 0, fmt.Errorf("encounter %s: player %s already joined", e.id, e.player.Name())
	}
	id := e.registry.Insert(c, world.RangePlayer)
	e.player = c
	return id, nil
}

// AddEnemy registers a monster at the end of the initiative order. Its
// target is the player.
func (e *Encounter) AddEnemy(c *combat.Combatant) (uint32, error) {
	if e.player == nil {
		return 0, ErrNoPlayer
	}
	id := e.registry.Insert(c, world.RangeMonster)
	c.SetTarget(e.player.ID())
	return id, nil
}

// PlayRound plays the player's action and then one action of every living
// enemy, in initiative order.
func (e *Encounter) PlayRound(ctx context.Context, act PlayerAction) (Outcome, error) {
	if e.outcome != Ongoing {
		return e.outcome, ErrEncounterOver
	}
	if e.player == nil {
		return e.outcome, ErrNoPlayer
	}

	resolve, err := e.validate(act)
	if err != nil {
		return e.outcome, err
	}
	e.round++

	if done, err := resolve(ctx); err != nil || done {
		return e.outcome, err
	}
	if e.settle(ctx) {
		return e.outcome, e.finish(ctx)
	}

	for _, enemy := range e.Enemies() {
		if !enemy.IsAlive() {
			continue
		}
		if err := e.enemyTurn(ctx, enemy); err != nil {
			return e.outcome, err
		}
		if !e.player.IsAlive() {
			break
		}
	}

	// the player's timers run down right before its next action
	if e.player.IsAlive() {
		if err := e.player.Tick(); err != nil {
			return e.outcome, err
		}
	}

	if e.settle(ctx) {
		return e.outcome, e.finish(ctx)
	}
	return e.outcome, nil
}

// Run plays rounds chosen by policy until the encounter ends. Reaching
// maxRounds ends it as a stalemate; maxRounds <= 0 means no limit.
func (e *Encounter) Run(ctx context.Context, policy Policy, maxRounds int) (Outcome, error) {
	for e.outcome == Ongoing {
		if maxRounds > 0 && e.round >= maxRounds {
			e.outcome = Stalemate
			slog.InfoContext(ctx, "encounter over", "encounter", e.id, "outcome", e.outcome, "round", e.round)
			break
		}
		if err := ctx.Err(); err != nil {
			return e.outcome, err
		}
		if _, err := e.PlayRound(ctx, policy.Next(e)); err != nil {
			return e.outcome, err
		}
	}
	return e.outcome, nil
}

// validate checks act against the current state and returns the closure
// that performs it. Invalid requests do not start a round.
func (e *Encounter) validate(act PlayerAction) (func(context.Context) (bool, error), error) {
	p := e.player
	switch act.Kind {
	case ActAttack:
		target, err := e.enemy(act.Target)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (bool, error) {
			p.SetTarget(target.ID())
			return false, e.emit(ctx, p, target, p.AttackAction(target))
		}, nil

	case ActDefend:
		return func(ctx context.Context) (bool, error) {
			r, err := p.DefendAction()
			if err != nil {
				return false, err
			}
			return false, e.emit(ctx, p, p, r)
		}, nil

	case ActSkill:
		s, ok := p.Skill(act.Skill)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, act.Skill)
		}
		if s.IsTicking() {
			return nil, fmt.Errorf("%w: %s (%d rounds left)", ErrSkillOnCooldown, s.Name(), s.RoundsLeft())
		}
		target := p
		if !s.SelfTarget() {
			t, err := e.enemy(act.Target)
			if err != nil {
				return nil, err
			}
			target = t
		}
		return func(ctx context.Context) (bool, error) {
			r, err := p.SkillAction(s, target)
			if err != nil {
				return false, err
			}
			return false, e.emit(ctx, p, target, r)
		}, nil

	case ActEscape:
		return func(ctx context.Context) (bool, error) {
			e.outcome = Escaped
			slog.Info("player escaped", "encounter", e.id, "round", e.round)
			return true, e.emit(ctx, p, p, combat.EscapeReport{Actor: p.Name()})
		}, nil

	default:
		return nil, fmt.Errorf("unknown player action %s", act.Kind)
	}
}

func (e *Encounter) enemy(id uint32) (*combat.Combatant, error) {
	c, err := e.registry.Lookup(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownCombatant, err)
	}
	if c == e.player {
		return nil, fmt.Errorf("%w: %s is the player", ErrUnknownCombatant, c.Name())
	}
	if !c.IsAlive() {
		return nil, fmt.Errorf("%w: %s", ErrTargetDown, c.Name())
	}
	return c, nil
}

// enemyTurn plays one enemy action. The enemy's own effects and cooldowns
// tick first, so anything it raised on its last turn holds through the
// player's action in between.
func (e *Encounter) enemyTurn(ctx context.Context, enemy *combat.Combatant) error {
	if err := enemy.Tick(); err != nil {
		return err
	}
	p := e.player

	// auras hit both sides before the enemy acts
	if r, ok := p.PassiveDamage(enemy); ok {
		if err := e.emit(ctx, p, enemy, r); err != nil {
			return err
		}
	}
	if r, ok := enemy.PassiveDamage(p); ok {
		if err := e.emit(ctx, enemy, p, r); err != nil {
			return err
		}
	}
	if !enemy.IsAlive() || !p.IsAlive() {
		return nil
	}

	target := p
	if t, ok := e.registry.Get(enemy.Target()); ok && t.IsAlive() {
		target = t
	}

	action, ok := enemy.Decide()
	if !ok {
		action = AttackAction
	}
	report, err := action(target, enemy)
	if err != nil {
		return fmt.Errorf("%s acting: %w", enemy.Name(), err)
	}
	return e.emit(ctx, enemy, target, report)
}

// settle updates the outcome and reports whether the encounter ended.
func (e *Encounter) settle(ctx context.Context) bool {
	if e.outcome != Ongoing {
		return true
	}
	switch {
	case !e.player.IsAlive():
		e.outcome = Defeat
	case len(e.Enemies()) > 0 && len(e.LivingEnemies()) == 0:
		e.outcome = Victory
	default:
		return false
	}
	slog.InfoContext(ctx, "encounter over",
		"encounter", e.id,
		"outcome", e.outcome,
		"round", e.round)
	return true
}

func (e *Encounter) finish(ctx context.Context) error {
	if e.outcome != Victory {
		return nil
	}
	xp := 0
	for _, c := range e.Enemies() {
		xp += c.Reward()
	}
	reports, err := e.player.AddExperience(xp, e.presenter)
	if err != nil {
		return fmt.Errorf("awarding %d experience: %w", xp, err)
	}
	for _, r := range reports {
		if err := e.emit(ctx, e.player, e.player, r); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encounter) emit(ctx context.Context, actor, target *combat.Combatant, report any) error {
	ev := combatlog.Event{
		Encounter: e.id,
		Round:     e.round,
		Actor:     actor.Name(),
		Target:    target.Name(),
		Report:    report,
	}
	if err := e.sink.Record(ctx, ev); err != nil {
		return fmt.Errorf("encounter %s round %d: %w", e.id, e.round, err)
	}
	return nil
}
