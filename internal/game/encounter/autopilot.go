package encounter

import (
	"github.com/udisondev/gugon/internal/ai"
	"github.com/udisondev/gugon/internal/game/combat"
	"github.com/udisondev/gugon/internal/model"
)

// Policy chooses the player's action for the next round.
type Policy interface {
	Next(e *Encounter) PlayerAction
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(e *Encounter) PlayerAction

// Next implements Policy.
func (f PolicyFunc) Next(e *Encounter) PlayerAction { return f(e) }

// Script replays a fixed list of actions, then attacks the first living
// enemy.
type Script struct {
	Actions []PlayerAction
	next    int
}

// Next implements Policy.
func (s *Script) Next(e *Encounter) PlayerAction {
	if s.next < len(s.Actions) {
		a := s.Actions[s.next]
		s.next++
		return a
	}
	return Attack(weakest(e))
}

// HealSkill is the skill the autopilot saves for low health.
const HealSkill = "Heal"

type plan func(e *Encounter) PlayerAction

// Autopilot plays the player with a behavior tree. It heals when wounded
// and prefers ready skills over plain attacks on the weakest enemy.
type Autopilot struct {
	tree *ai.Tree[plan]
	e    *Encounter

	buff    *combat.Skill
	offense *combat.Skill
}

// NewAutopilot builds the autopilot for the player of e.
func NewAutopilot(e *Encounter) (*Autopilot, error) {
	a := &Autopilot{e: e}

	b := ai.NewBuilder[plan]()
	b.Condition("wounded", a.wounded, b.Goto("buff_ready"), b.Goto("heal_ready"))
	b.Condition("heal_ready", a.healReady, b.Goto("buff_ready"), b.Do(a.heal))
	b.Condition("buff_ready", a.buffReady, b.Goto("offense_ready"), b.Do(a.useBuff))
	b.Condition("offense_ready", a.offenseReady, b.Do(a.attack), b.Do(a.useOffense))

	tree, err := b.Build("wounded")
	if err != nil {
		return nil, err
	}
	a.tree = tree
	return a, nil
}

// Next implements Policy.
func (a *Autopilot) Next(e *Encounter) PlayerAction {
	a.e = e
	return a.tree.FindAction()(e)
}

func (a *Autopilot) wounded() bool {
	attrs := a.e.Player().Attributes()
	return attrs.Get(model.StatHealth)*2 <= attrs.Get(model.StatMaxHealth)
}

func (a *Autopilot) healReady() bool {
	s, ok := a.e.Player().Skill(HealSkill)
	return ok && !s.IsTicking()
}

func (a *Autopilot) buffReady() bool {
	p := a.e.Player()
	for _, s := range p.Skills() {
		if s.SelfTarget() && s.Name() != HealSkill && !s.IsTicking() && !p.HasEffect(s.Name()) {
			a.buff = s
			return true
		}
	}
	return false
}

func (a *Autopilot) offenseReady() bool {
	for _, s := range a.e.Player().Skills() {
		if !s.SelfTarget() && !s.IsTicking() {
			a.offense = s
			return true
		}
	}
	return false
}

func (a *Autopilot) heal(*Encounter) PlayerAction { return UseSkill(HealSkill, 0) }

func (a *Autopilot) useBuff(*Encounter) PlayerAction { return UseSkill(a.buff.Name(), 0) }

func (a *Autopilot) useOffense(e *Encounter) PlayerAction {
	return UseSkill(a.offense.Name(), weakest(e))
}

func (a *Autopilot) attack(e *Encounter) PlayerAction { return Attack(weakest(e)) }

// weakest returns the id of the living enemy with the least health.
func weakest(e *Encounter) uint32 {
	var best *combat.Combatant
	for _, c := range e.LivingEnemies() {
		if best == nil || c.Attributes().Get(model.StatHealth) < best.Attributes().Get(model.StatHealth) {
			best = c
		}
	}
	if best == nil {
		return 0
	}
	return best.ID()
}
