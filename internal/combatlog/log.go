// Package combatlog turns combat reports into log lines and forwards them
// to sinks.
package combatlog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/udisondev/gugon/internal/game/combat"
	"github.com/udisondev/gugon/internal/game/effect"
)

// ErrUnknownReport is returned for report shapes the log cannot render.
var ErrUnknownReport = errors.New("unknown report type")

// DefaultMaxMessages is how many messages a Log keeps by default.
const DefaultMaxMessages = 10

// Tone classifies a message for presentation.
type Tone uint8

const (
	ToneNormal Tone = iota
	ToneHit
	ToneCrit
	ToneMiss
)

// Message is one rendered log line.
type Message struct {
	Text string
	Tone Tone
}

// Log keeps the most recent messages of an encounter.
type Log struct {
	max      int
	messages []Message
}

// NewLog creates a log that keeps the last max messages.
func NewLog(max int) *Log {
	if max < 1 {
		max = DefaultMaxMessages
	}
	return &Log{max: max}
}

// Messages returns the kept messages, oldest first.
func (l *Log) Messages() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Lines returns the kept message texts, oldest first.
func (l *Log) Lines() []string {
	out := make([]string, 0, len(l.messages))
	for _, m := range l.messages {
		out = append(out, m.Text)
	}
	return out
}

func (l *Log) push(text string, tone Tone) {
	l.messages = append(l.messages, Message{Text: text, Tone: tone})
	if over := len(l.messages) - l.max; over > 0 {
		l.messages = append(l.messages[:0], l.messages[over:]...)
	}
}

// Add renders any report produced by an action.
func (l *Log) Add(report any, actor, target string) error {
	switch r := report.(type) {
	case combat.AttackReport:
		l.AddAttack(r, actor, target)
	case []combat.AttackReport:
		for _, a := range r {
			l.AddAttack(a, actor, target)
		}
	case combat.SkillReport:
		l.AddSkill(r, actor, target)
	case effect.StatusEffectReport:
		l.AddStatusEffect(r, actor, true)
	case combat.DefendReport:
		l.AddDefend(actor)
	case combat.EscapeReport:
		l.AddEscape(actor)
	case combat.PassiveDamageReport:
		l.AddPassiveDamage(r)
	case combat.LevelUpReport:
		l.AddLevelUp(r, actor)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownReport, report)
	}
	return nil
}

// AddAttack renders one attack.
func (l *Log) AddAttack(r combat.AttackReport, user, target string) {
	if !r.IsHit {
		l.push(fmt.Sprintf("%s attacked %s and missed! (%d+%d)", user, target, r.Roll, r.AttackBonus), ToneMiss)
		return
	}

	tone := ToneHit
	how := "hit"
	if r.IsCrit {
		tone = ToneCrit
		how = "critically hit"
	}
	l.push(fmt.Sprintf("%s attacked %s and %s! (%d+%d)", user, target, how, r.Roll, r.AttackBonus), tone)

	dealt := r.Damage.Dealt
	msg := fmt.Sprintf("%s dealt %d (%d+%d-target_armour)!", user, dealt.TotalReceived, dealt.DamageRoll, dealt.DamageBonus)
	if r.Damage.Received > 0 {
		msg = fmt.Sprintf("%s and received %d from biteback!", msg, r.Damage.Received)
	}
	if tone != ToneCrit {
		tone = ToneNormal
	}
	l.push(msg, tone)
}

// AddDefend renders a defend action.
func (l *Log) AddDefend(user string) {
	l.push(user+" defends!", ToneNormal)
}

// AddEscape renders an escape attempt.
func (l *Log) AddEscape(user string) {
	l.push(user+" tries to escape!", ToneNormal)
}

// AddStatusEffect renders every change of a status effect. standalone adds
// the "used" line for effects that are not part of a skill.
func (l *Log) AddStatusEffect(r effect.StatusEffectReport, user string, standalone bool) {
	if standalone {
		l.push(fmt.Sprintf("%s used %s!", user, r.Name), ToneNormal)
	}
	for _, c := range r.Effects {
		word := "increased"
		value := c.Value.String()
		if !c.Value.IsDice() && c.Value.Amount < 0 {
			word = "decreased"
			value = fmt.Sprint(-c.Value.Amount)
		}
		l.push(fmt.Sprintf("%s's %s %s by %s!", r.Target, statLabel(string(c.Stat)), word, value), ToneNormal)
	}
}

// AddSkill renders a skill and everything it caused.
func (l *Log) AddSkill(r combat.SkillReport, user, target string) {
	l.push(fmt.Sprintf("%s used %s on %s!", user, r.Name, target), ToneNormal)
	for _, se := range r.StatusEffects {
		l.AddStatusEffect(se, user, false)
	}
	for _, a := range r.Attacks {
		l.AddAttack(a, user, target)
	}
}

// AddPassiveDamage renders aura damage.
func (l *Log) AddPassiveDamage(r combat.PassiveDamageReport) {
	l.push(fmt.Sprintf("%s's aura burns %s for %d!", r.Source, r.Target, r.Received), ToneNormal)
}

// AddLevelUp renders a level gained.
func (l *Log) AddLevelUp(r combat.LevelUpReport, user string) {
	if r.MaxedOut {
		l.push(user+" has maxed out their level!", ToneNormal)
		return
	}
	msg := fmt.Sprintf("%s reached level %d (+%d health)!", user, r.Level, r.HealthGained)
	if len(r.Granted) > 0 {
		msg = fmt.Sprintf("%s Gained: %s.", msg, strings.Join(r.Granted, ", "))
	}
	l.push(msg, ToneNormal)
}

// statLabel turns "temporary_health" into "Temporary health".
func statLabel(stat string) string {
	s := strings.ReplaceAll(stat, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
