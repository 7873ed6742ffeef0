// Package creature implements the Creature type: the concrete owner
// of HP/PP, status, stat stages, skills, and duration-bound effects
// that every other component operates on. Creature implements
// combatant.Combatant structurally (it never imports that package),
// which is what lets effect/skill/damage mutate a Creature through a
// narrow interface without creature importing them back.
//
// This generalizes the teacher's internal/entity.Member/Enemy split
// (two concrete types sharing ad hoc HP/position fields) into one
// generic type configured by data, per spec §1's requirement that a
// new species needs only data, not new core logic.
package creature

import (
	"math/rand"

	"github.com/samdwyer/battlecore/internal/duration"
	"github.com/samdwyer/battlecore/internal/element"
	"github.com/samdwyer/battlecore/internal/handle"
	"github.com/samdwyer/battlecore/internal/skill"
	"github.com/samdwyer/battlecore/internal/stat"
	"github.com/samdwyer/battlecore/internal/status"
)

// Creature is a single combat-ready instance of a species: its own
// resource pools, status, stages, skill list, and active duration
// effects.
type Creature struct {
	h       handle.Handle
	species string
	typ     element.Type
	level   int

	baseStats stat.Base
	talent    stat.Talent
	stages    stat.Stages

	st status.Condition

	maxHP, hp int
	maxPP, pp int

	skills         []skill.Skill
	signatureSkill *skill.Skill

	durations []duration.Duration

	// SpeciesState is a per-species opaque blob (e.g. a berserk/shadow
	// form flag and its remaining turn count) that a species' skill
	// hooks and the battle engine's species-specific glue read and
	// write. Generalizes the source's form-switching subclasses into
	// one field instead of a type hierarchy, per the spec's design note.
	SpeciesState any
}

// New constructs a Creature at the given level, running the level-up
// stat recomputation once at construction time (mid-battle leveling
// is out of scope; only construction-time computation is needed).
// MaxHP is derived from BaseStats/Talent/level and MaxPP from level
// alone; the exact
// scaling constants are this module's own choice (the original
// source's equivalent formula wasn't available to carry over
// verbatim), kept monotonic and level-sensitive as the source's intent
// requires.
func New(species string, typ element.Type, level int, base stat.Base, talent stat.Talent, skills []skill.Skill, signature *skill.Skill) *Creature {
	if level < 1 {
		level = 1
	}
	if level > 100 {
		level = 100
	}
	c := &Creature{
		h:              handle.Invalid,
		species:        species,
		typ:            typ,
		level:          level,
		baseStats:      base,
		talent:         talent,
		stages:         stat.NewStages(),
		skills:         skills,
		signatureSkill: signature,
	}
	c.maxHP = c.statAtLevel(stat.HP)*2 + level + 10
	c.hp = c.maxHP
	c.maxPP = 20 + level/5
	c.pp = c.maxPP
	return c
}

// SetHandle assigns the stable handle the owning battle.Engine's
// arena allocated for this creature. Only the engine calls this, at
// registration time.
func (c *Creature) SetHandle(h handle.Handle) { c.h = h }

func (c *Creature) Handle() handle.Handle { return c.h }
func (c *Creature) Name() string          { return c.species }
func (c *Creature) Level() int            { return c.level }
func (c *Creature) Type() element.Type    { return c.typ }
func (c *Creature) IsAlive() bool         { return c.hp > 0 }

func (c *Creature) HP() int    { return c.hp }
func (c *Creature) MaxHP() int { return c.maxHP }
func (c *Creature) PP() int    { return c.pp }
func (c *Creature) MaxPP() int { return c.maxPP }

func (c *Creature) Skills() []skill.Skill       { return c.skills }
func (c *Creature) SignatureSkill() *skill.Skill { return c.signatureSkill }

// statAtLevel computes a raw (pre-stage, pre-status) stat value from
// the species' base stat and talent growth rate, scaled by level.
func (c *Creature) statAtLevel(k stat.Kind) int {
	return c.baseStats.Get(k) + c.talent.Get(k)*c.level/10
}

func (c *Creature) StatStage(k stat.Kind) int { return c.stages.Get(k) }

// CalculateAttack applies the Attack stage modifier and halves the
// result while Burned, per the spec's status-penalty rule.
func (c *Creature) CalculateAttack() int {
	v := float64(c.statAtLevel(stat.Attack)) * stat.Modifier(stat.Attack, c.stages.Get(stat.Attack))
	if c.st == status.Burn {
		v /= 2
	}
	return maxInt(1, int(v))
}

func (c *Creature) CalculateDefense() int {
	v := float64(c.statAtLevel(stat.Defense)) * stat.Modifier(stat.Defense, c.stages.Get(stat.Defense))
	return maxInt(1, int(v))
}

func (c *Creature) CalculateSpAttack() int {
	v := float64(c.statAtLevel(stat.SpAttack)) * stat.Modifier(stat.SpAttack, c.stages.Get(stat.SpAttack))
	return maxInt(1, int(v))
}

func (c *Creature) CalculateSpDefense() int {
	v := float64(c.statAtLevel(stat.SpDefense)) * stat.Modifier(stat.SpDefense, c.stages.Get(stat.SpDefense))
	return maxInt(1, int(v))
}

// CalculateSpeed applies the Speed stage modifier and halves the
// result while Paralyzed.
func (c *Creature) CalculateSpeed() int {
	v := float64(c.statAtLevel(stat.Speed)) * stat.Modifier(stat.Speed, c.stages.Get(stat.Speed))
	if c.st == status.Paralyze {
		v /= 2
	}
	return maxInt(1, int(v))
}

func (c *Creature) Status() status.Condition { return c.st }

// SetStatus fails if the creature already carries any non-None
// status, or if it currently holds a matching Immunity duration. Only
// ClearStatus (or fainting) opens the slot back up.
func (c *Creature) SetStatus(cond status.Condition) bool {
	if c.st != status.None {
		return false
	}
	if c.HasImmunity(true, element.None) {
		return false
	}
	c.st = cond
	return true
}

func (c *Creature) ClearStatus() { c.st = status.None }

func (c *Creature) ModifyStatStage(k stat.Kind, delta int) (int, int) {
	return c.stages.Modify(k, delta)
}

func (c *Creature) ClearPositiveStages() {
	for _, k := range stat.Kinds() {
		if v := c.stages.Get(k); v > 0 {
			c.stages.Modify(k, -v)
		}
	}
}

func (c *Creature) ClearNegativeStages() {
	for _, k := range stat.Kinds() {
		if v := c.stages.Get(k); v < 0 {
			c.stages.Modify(k, -v)
		}
	}
}

// TakeDamage clamps current HP at 0 and, on fainting, clears duration
// effects and resets stat stages per the spec's faint-handling rule.
func (c *Creature) TakeDamage(n int) int {
	if n < 0 {
		n = 0
	}
	if n > c.hp {
		n = c.hp
	}
	c.hp -= n
	if c.hp <= 0 {
		c.hp = 0
		c.durations = nil
		c.stages.Reset()
	}
	return n
}

// Heal is a no-op against a fainted creature and clamps to MaxHP.
func (c *Creature) Heal(n int) int {
	if !c.IsAlive() {
		return 0
	}
	if n < 0 {
		n = 0
	}
	if c.hp+n > c.maxHP {
		n = c.maxHP - c.hp
	}
	c.hp += n
	return n
}

func (c *Creature) ConsumePP(n int) bool {
	if n > c.pp {
		return false
	}
	c.pp -= n
	return true
}

func (c *Creature) RestorePP(n int) int {
	if n < 0 {
		n = 0
	}
	if c.pp+n > c.maxPP {
		n = c.maxPP - c.pp
	}
	c.pp += n
	return n
}

func (c *Creature) Durations() []duration.Duration { return c.durations }

func (c *Creature) AddDuration(d duration.Duration) {
	c.durations = append(c.durations, d)
}

func (c *Creature) ClearDurations() bool {
	had := len(c.durations) > 0
	c.durations = nil
	return had
}

// HasImmunity reports whether any active Immunity-kind duration
// covers a status infliction attempt (statusCheck) or the given
// element (elementCheck). Pass element.None to skip the element
// check. This is the single centralized immunity query every other
// package consults, per the spec's explicit call to unify what the
// source left scattered.
func (c *Creature) HasImmunity(statusCheck bool, elementCheck element.ElementType) bool {
	for _, d := range c.durations {
		if d.Kind != duration.Immunity {
			continue
		}
		if statusCheck && d.ImmuneToStatus {
			return true
		}
		if elementCheck != element.None && d.ImmuneToElement == elementCheck {
			return true
		}
	}
	return false
}

// CanAct reports whether this creature may attempt an action this
// turn. A fainted creature, or one holding a condition that
// PreventsAction, cannot. Confusion deliberately returns true here;
// the engine must separately roll a self-hit chance before letting a
// confused creature's action through.
func (c *Creature) CanAct() bool {
	return c.IsAlive() && !c.st.PreventsAction()
}

// RollConfusionSelfHit reports whether a confused creature hits
// itself this turn instead of acting. Only meaningful when Status()
// == Confusion; callers should guard on that first.
func (c *Creature) RollConfusionSelfHit(rng *rand.Rand) bool {
	return c.st == status.Confusion && rng.Intn(100) < 50
}

// WakeThaw runs the status-start rolls on turn start: a 25% chance to
// wake from Sleep, a 20% chance to thaw from Freeze. Returns any
// narration produced.
func (c *Creature) WakeThaw(rng *rand.Rand) []string {
	var msgs []string
	switch c.st {
	case status.Sleep:
		if rng.Intn(100) < 25 {
			c.st = status.None
			msgs = append(msgs, c.species+" woke up!")
		}
	case status.Freeze:
		if rng.Intn(100) < 20 {
			c.st = status.None
			msgs = append(msgs, c.species+" thawed out!")
		}
	}
	return msgs
}

// ApplyStatusTick runs the end-of-turn status damage ticks: Poison,
// Burn, and Freeze drain max_hp/8; Bleed drains a flat 80; Confusion
// has a 5% chance to drain a flat 50. This flat Confusion-tick value
// is deliberately distinct from damage.ConfusionSelfHitDamage, which
// is the separate self-hit a confused creature rolls when attempting
// to act — the spec's literal text gives each its own number.
func (c *Creature) ApplyStatusTick(rng *rand.Rand) []string {
	var msgs []string
	switch c.st {
	case status.Poison, status.Burn, status.Freeze:
		dealt := c.TakeDamage(c.maxHP / 8)
		if dealt > 0 {
			msgs = append(msgs, c.species+" is hurt by its "+c.st.String()+"!")
		}
	case status.Bleed:
		dealt := c.TakeDamage(80)
		if dealt > 0 {
			msgs = append(msgs, c.species+" is hurt by Bleed!")
		}
	case status.Confusion:
		if rng.Intn(100) < 5 {
			c.TakeDamage(50)
			msgs = append(msgs, c.species+" hurt itself in its confusion!")
		}
	}
	return msgs
}

// TriggerDurations returns a snapshot of the creature's currently
// active duration effects matching the given trigger. Iteration uses
// a copied slice so the battle engine may safely mutate or remove
// durations (via DecrementDurations) while processing this snapshot,
// per the spec's snapshot-during-traversal requirement.
func (c *Creature) TriggerDurations(trigger duration.Trigger) []duration.Duration {
	var matched []duration.Duration
	for _, d := range c.durations {
		if d.Trigger == trigger {
			matched = append(matched, d)
		}
	}
	return matched
}

// DecrementDurations counts every active duration effect down by one
// and removes any that have expired. Called once per turn, at turn
// end, regardless of each effect's own trigger.
func (c *Creature) DecrementDurations() []string {
	var msgs []string
	kept := c.durations[:0]
	for _, d := range c.durations {
		d.TurnsRemaining--
		if d.Expired() {
			msgs = append(msgs, c.species+"'s "+d.ID+" wore off.")
			continue
		}
		kept = append(kept, d)
	}
	c.durations = kept
	return msgs
}

// ResetOnSwitchIn clears stat stages, matching the spec's rule that
// switching resets the incoming creature's stages.
func (c *Creature) ResetOnSwitchIn() {
	c.stages.Reset()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
