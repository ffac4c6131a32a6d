package encounter

import (
	"fmt"

	"github.com/udisondev/gugon/internal/ai"
	"github.com/udisondev/gugon/internal/game/combat"
	"github.com/udisondev/gugon/internal/model"
)

// Behavior builds the decision tree of a monster once it has joined the
// encounter. Predicates read live encounter state on every decision.
type Behavior func(arena *Encounter, self *combat.Combatant) (*ai.Tree[combat.Action], error)

var behaviorRegistry = map[string]Behavior{}

// RegisterBehavior registers a monster behavior by name.
func RegisterBehavior(name string, b Behavior) {
	behaviorRegistry[name] = b
}

// LookupBehavior returns the behavior registered under name.
func LookupBehavior(name string) (Behavior, error) {
	b, ok := behaviorRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown behavior: %s", name)
	}
	return b, nil
}

func init() {
	RegisterBehavior("brute", bruteBehavior)
	RegisterBehavior("skeleton", skeletonBehavior)
	RegisterBehavior("goblin", goblinBehavior)
}

// AttackAction attacks the target attack_number times.
func AttackAction(target, actor *combat.Combatant) (any, error) {
	return actor.AttackAction(target), nil
}

// DefendAction raises the actor's defence for the round.
func DefendAction(_, actor *combat.Combatant) (any, error) {
	return actor.DefendAction()
}

// SkillAction binds a learned skill as a tree leaf.
func SkillAction(s *combat.Skill) combat.Action {
	return func(target, actor *combat.Combatant) (any, error) {
		return actor.SkillAction(s, target)
	}
}

func ready(s *combat.Skill) ai.Predicate {
	return func() bool { return !s.IsTicking() }
}

func wounded(c *combat.Combatant) ai.Predicate {
	return func() bool {
		attrs := c.Attributes()
		return attrs.Get(model.StatHealth)*2 <= attrs.Get(model.StatMaxHealth)
	}
}

func requireSkill(c *combat.Combatant, name string) (*combat.Skill, error) {
	s, ok := c.Skill(name)
	if !ok {
		return nil, fmt.Errorf("%s: behavior needs skill %s", c.Name(), name)
	}
	return s, nil
}

// bruteBehavior only attacks.
func bruteBehavior(_ *Encounter, self *combat.Combatant) (*ai.Tree[combat.Action], error) {
	b := ai.NewBuilder[combat.Action]()
	b.Condition("alive", self.IsAlive, b.Do(AttackAction), b.Do(AttackAction))
	return b.Build("alive")
}

// skeletonBehavior distracts the player when fighting in a group and
// rampages whenever it can.
func skeletonBehavior(arena *Encounter, self *combat.Combatant) (*ai.Tree[combat.Action], error) {
	distract, err := requireSkill(self, "Distract")
	if err != nil {
		return nil, err
	}
	rampage, err := requireSkill(self, "Rampage")
	if err != nil {
		return nil, err
	}

	alone := func() bool { return len(arena.LivingEnemies()) == 1 }
	distracted := func() bool { return arena.Player().HasEffect("Distracted") }

	b := ai.NewBuilder[combat.Action]()
	b.Condition("alone", alone, b.Goto("opponent_distracted"), b.Goto("rampage_ready"))
	b.Condition("opponent_distracted", distracted, b.Goto("distract_ready"), b.Goto("rampage_ready"))
	b.Condition("distract_ready", ready(distract), b.Goto("rampage_ready"), b.Do(SkillAction(distract)))
	b.Condition("rampage_ready", ready(rampage), b.Do(AttackAction), b.Do(SkillAction(rampage)))
	return b.Build("alone")
}

// goblinBehavior defends when wounded, otherwise rampages when it can.
func goblinBehavior(_ *Encounter, self *combat.Combatant) (*ai.Tree[combat.Action], error) {
	rampage, err := requireSkill(self, "Rampage")
	if err != nil {
		return nil, err
	}

	b := ai.NewBuilder[combat.Action]()
	b.Condition("wounded", wounded(self), b.Goto("rampage_ready"), b.Do(DefendAction))
	b.Condition("rampage_ready", ready(rampage), b.Do(AttackAction), b.Do(SkillAction(rampage)))
	return b.Build("wounded")
}
