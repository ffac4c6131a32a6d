package encounter

import "fmt"

// ActionKind tags the variant held by a PlayerAction.
type ActionKind uint8

const (
	ActAttack ActionKind = iota + 1
	ActDefend
	ActSkill
	ActEscape
)

func (k ActionKind) String() string {
	switch k {
	case ActAttack:
		return "attack"
	case ActDefend:
		return "defend"
	case ActSkill:
		return "skill"
	case ActEscape:
		return "escape"
	default:
		return fmt.Sprintf("ActionKind(%d)", uint8(k))
	}
}

// PlayerAction is what the player does with their turn.
type PlayerAction struct {
	Kind   ActionKind
	Target uint32 // attack and non-self skills
	Skill  string // skill name
}

// Attack attacks the enemy with id target.
func Attack(target uint32) PlayerAction {
	return PlayerAction{Kind: ActAttack, Target: target}
}

// Defend raises the player's defence for the round.
func Defend() PlayerAction {
	return PlayerAction{Kind: ActDefend}
}

// UseSkill activates a learned skill. target is ignored by self-targeting skills.
func UseSkill(name string, target uint32) PlayerAction {
	return PlayerAction{Kind: ActSkill, Skill: name, Target: target}
}

// Escape leaves the encounter. Remaining enemy turns are abandoned.
func Escape() PlayerAction {
	return PlayerAction{Kind: ActEscape}
}

func (a PlayerAction) String() string {
	switch a.Kind {
	case ActAttack:
		return fmt.Sprintf("attack(%#x)", a.Target)
	case ActSkill:
		return fmt.Sprintf("skill(%s, %#x)", a.Skill, a.Target)
	default:
		return a.Kind.String()
	}
}
