// Package effect implements the polymorphic effect library: the
// tagged variants (status infliction, stat-stage change, heal, fixed
// damage, clearing, duration hooks, immunity) that a skill attaches
// to its target(s), each dispatched through the same Apply contract.
//
// This generalizes the teacher's internal/combat.EffectResolver,
// which special-cased damage/heal/buff/debuff inline inside one
// resolver method, into one small interface per variant — matching
// the spec's design note to replace deep class hierarchies with
// tagged-variant dispatch.
package effect

import (
	"math/rand"

	"github.com/samdwyer/battlecore/internal/combatant"
	"github.com/samdwyer/battlecore/internal/duration"
	"github.com/samdwyer/battlecore/internal/element"
	"github.com/samdwyer/battlecore/internal/stat"
	"github.com/samdwyer/battlecore/internal/status"
)

// TargetSide resolves which participant in a skill's use an effect
// actually applies to.
type TargetSide int

const (
	Foe TargetSide = iota
	Self
)

// Context bundles the source and target of the skill use currently
// being resolved, plus the engine's shared RNG. Effects borrow these
// references only for the duration of Apply; nothing here is stored
// past the call.
type Context struct {
	Source combatant.Combatant
	Target combatant.Combatant
	RNG    *rand.Rand
}

// resolve picks Source or Target per the effect's declared side.
func (c Context) resolve(side TargetSide) combatant.Combatant {
	if side == Self {
		return c.Source
	}
	return c.Target
}

// Effect is the uniform contract every effect variant implements.
// Apply returns whether the effect actually changed state (a failed
// chance roll, a fainted target, or a no-op clear all return false).
type Effect interface {
	Apply(ctx Context) bool
}

// RollChance exposes the chance gate for callers outside this package
// that need the identical semantics — package skill uses it for the
// composite effect_chance roll that gates a skill's whole effect list
// as a single unit rather than per-effect.
func RollChance(rng *rand.Rand, chance int) bool {
	return rollChance(rng, chance)
}

// rollChance performs the independent 1..100 chance gate described in
// the spec: chance>=100 always succeeds, chance<=0 always fails,
// otherwise roll must land at or under chance.
func rollChance(rng *rand.Rand, chance int) bool {
	if chance >= 100 {
		return true
	}
	if chance <= 0 {
		return false
	}
	return rng.Intn(100)+1 <= chance
}

// StatusInflict attempts to afflict the target with a status
// condition, subject to the chance gate and the target's immunity.
type StatusInflict struct {
	Condition status.Condition
	Chance    int
	Target    TargetSide
}

func (e StatusInflict) Apply(ctx Context) bool {
	if !rollChance(ctx.RNG, e.Chance) {
		return false
	}
	tgt := ctx.resolve(e.Target)
	if !tgt.IsAlive() {
		return false
	}
	if tgt.HasImmunity(true, element.None) {
		return false
	}
	return tgt.SetStatus(e.Condition)
}

// StatStageChange raises or lowers one of the target's stat stages.
type StatStageChange struct {
	Stat   stat.Kind
	Delta  int
	Chance int
	Target TargetSide
}

func (e StatStageChange) Apply(ctx Context) bool {
	if !rollChance(ctx.RNG, e.Chance) {
		return false
	}
	tgt := ctx.resolve(e.Target)
	if !tgt.IsAlive() {
		return false
	}
	before, after := tgt.ModifyStatStage(e.Stat, e.Delta)
	return before != after
}

// Heal restores HP to the target, either a flat Amount or Amount
// percent of MaxHP when IsPercent is set.
type Heal struct {
	Amount    int
	IsPercent bool
	Chance    int
	Target    TargetSide
}

func (e Heal) Apply(ctx Context) bool {
	if !rollChance(ctx.RNG, e.Chance) {
		return false
	}
	tgt := ctx.resolve(e.Target)
	if !tgt.IsAlive() {
		return false
	}
	amount := e.Amount
	if e.IsPercent {
		amount = tgt.MaxHP() * e.Amount / 100
	}
	return tgt.Heal(amount) > 0
}

// FixedDamage deals an exact amount of damage, bypassing the damage
// formula entirely (no type effectiveness, no stages, no crit).
type FixedDamage struct {
	Amount int
	Chance int
	Target TargetSide
}

func (e FixedDamage) Apply(ctx Context) bool {
	if !rollChance(ctx.RNG, e.Chance) {
		return false
	}
	tgt := ctx.resolve(e.Target)
	if !tgt.IsAlive() {
		return false
	}
	return tgt.TakeDamage(e.Amount) > 0
}

// ClearFlags selects which parts of a creature's transient state
// ClearEffects should wipe.
type ClearFlags struct {
	PositiveStages  bool
	NegativeStages  bool
	Status          bool
	DurationEffects bool
}

// ClearEffects wipes stat stages, status, and/or duration effects
// from the target. It reports true only if something was actually
// cleared, so applying it twice in a row is idempotent both in state
// and in its own return value's second call being false.
type ClearEffects struct {
	Flags  ClearFlags
	Chance int
	Target TargetSide
}

func (e ClearEffects) Apply(ctx Context) bool {
	if !rollChance(ctx.RNG, e.Chance) {
		return false
	}
	tgt := ctx.resolve(e.Target)
	cleared := false

	if e.Flags.PositiveStages {
		if hasStageAbove(tgt, 0) {
			cleared = true
		}
		tgt.ClearPositiveStages()
	}
	if e.Flags.NegativeStages {
		if hasStageBelow(tgt, 0) {
			cleared = true
		}
		tgt.ClearNegativeStages()
	}
	if e.Flags.Status {
		if tgt.Status() != status.None {
			cleared = true
		}
		tgt.ClearStatus()
	}
	if e.Flags.DurationEffects {
		if tgt.ClearDurations() {
			cleared = true
		}
	}
	return cleared
}

func hasStageAbove(c combatant.Combatant, threshold int) bool {
	for _, k := range stat.Kinds() {
		if c.StatStage(k) > threshold {
			return true
		}
	}
	return false
}

func hasStageBelow(c combatant.Combatant, threshold int) bool {
	for _, k := range stat.Kinds() {
		if c.StatStage(k) < threshold {
			return true
		}
	}
	return false
}

// Duration clones a duration.Duration template onto the target's
// active effect list, giving it its own independent countdown. By
// default duplicate applications stack (append rather than replace);
// species-specific behavior overriding this would wrap this effect.
type Duration struct {
	ID      string
	Kind    duration.Kind
	Trigger duration.Trigger
	Turns   int
	Power   int
	Chance  int
	Target  TargetSide
}

func (e Duration) Apply(ctx Context) bool {
	if !rollChance(ctx.RNG, e.Chance) {
		return false
	}
	tgt := ctx.resolve(e.Target)
	if !tgt.IsAlive() {
		return false
	}
	tgt.AddDuration(duration.Duration{
		ID:             e.ID,
		Kind:           e.Kind,
		Trigger:        e.Trigger,
		TurnsRemaining: e.Turns,
		Power:          e.Power,
		OriginalSource: ctx.Source.Handle(),
	})
	return true
}

// ImmunityEffectID is the well-known duration id every Immunity effect
// carries. The centralized immunity query (creature.HasImmunity)
// recognizes these durations by their duration.Immunity kind, not by
// this id.
const ImmunityEffectID = "immunity"

// Immunity grants the target temporary immunity to status infliction,
// to a specific element, or both. It is realized internally as a
// Duration effect carrying the well-known ImmunityEffectID.
type Immunity struct {
	Turns           int
	ImmuneToStatus  bool
	ImmuneToElement element.ElementType
	Chance          int
	Target          TargetSide
}

func (e Immunity) Apply(ctx Context) bool {
	if !rollChance(ctx.RNG, e.Chance) {
		return false
	}
	tgt := ctx.resolve(e.Target)
	if !tgt.IsAlive() {
		return false
	}
	tgt.AddDuration(duration.Duration{
		ID:              ImmunityEffectID,
		Kind:            duration.Immunity,
		Trigger:         duration.TurnEnd,
		TurnsRemaining:  e.Turns,
		OriginalSource:  ctx.Source.Handle(),
		ImmuneToStatus:  e.ImmuneToStatus,
		ImmuneToElement: e.ImmuneToElement,
	})
	return true
}
