// Package damage implements the Damage & Hit Engine: the hit-check,
// critical-check, type-effectiveness lookup, and damage formula that
// skill.Skill.Use calls into for physical/special skills.
//
// This generalizes the teacher's inline damage math in
// internal/combat.EffectResolver (which computed a single flat
// attacker-defense delta) into the full multi-factor pipeline the
// battle core requires, while keeping the teacher's habit of returning
// a small result struct rather than mutating state directly.
package damage

import (
	"math"
	"math/rand"

	"github.com/samdwyer/battlecore/internal/combatant"
	"github.com/samdwyer/battlecore/internal/element"
)

// Category distinguishes how a skill draws its damage (or whether it
// deals any at all). It lives here, not in package skill, so that
// this package never needs to import skill — skill imports damage,
// not the reverse.
type Category int

const (
	Physical Category = iota
	Special
	Status
)

func (c Category) String() string {
	switch c {
	case Physical:
		return "Physical"
	case Special:
		return "Special"
	default:
		return "Status"
	}
}

// AlwaysHitAccuracy is the sentinel accuracy value meaning "never
// rolls for hit."
const AlwaysHitAccuracy = 101

// ConfusionSelfHitDamage is the flat, typeless damage a confused
// creature deals to itself when its self-hit roll succeeds. Decided
// in favor of a flat value over a full formula (see the open question
// on this in the project's decisions record) because the source's own
// confusion-tick damage is already flat, and a confused creature
// striking itself shouldn't depend on the skill it failed to use.
const ConfusionSelfHitDamage = 40

const baseCritChancePercent = 6
const critMultiplier = 1.8

// STAB reports whether the user's type shares an element with the
// skill being used — same-type attack bonus applies against either
// the primary or secondary type, resolving the spec's open question
// in favor of the source's actual behavior.
func STAB(user combatant.Combatant, el element.ElementType) bool {
	return user.Type().Has(el)
}

// ResolveHit performs the accuracy check for a skill use. Sentinel
// accuracies at or above AlwaysHitAccuracy always hit. Otherwise the
// effective accuracy is scaled by the user's Accuracy stage and the
// target's Evasion stage before a single 0..99 roll.
func ResolveHit(rng *rand.Rand, accuracy int, userAccuracyMod, targetEvasionMod float64) bool {
	if accuracy >= AlwaysHitAccuracy {
		return true
	}
	acc := float64(accuracy) * userAccuracyMod / targetEvasionMod
	roll := rng.Intn(100)
	return float64(roll) < acc
}

// RollCrit decides whether a hit lands as a critical. force overrides
// the base rate to a guaranteed critical, as a signature skill's hook
// may demand.
func RollCrit(rng *rand.Rand, force bool) bool {
	if force {
		return true
	}
	return rng.Intn(100) < baseCritChancePercent
}

// Request bundles everything Calculate needs for one damage
// resolution. Power is the skill's (possibly hook-adjusted) effective
// power for this use, not its declared base power.
type Request struct {
	User, Target combatant.Combatant
	Category     Category
	Power        int
	Element      element.ElementType
	ForceCrit    bool
	Chart        *element.Chart
	RNG          *rand.Rand
}

// Result reports how a damage calculation resolved, including enough
// detail for the battle engine to emit a DamageDealt event.
type Result struct {
	Amount              int
	Critical            bool
	TypeFactor          float64
	EffectivenessBucket string
	NoEffect            bool
}

// BaseDamage computes the pre-modifier base damage, using the same
// integer-division order as the source so results match its literal
// worked examples exactly: ((2*level/5+2) * power * atk / def) / 50 + 2.
func BaseDamage(level, power, atk, def int) int {
	inner := 2*level/5 + 2
	return inner*power*atk/def/50 + 2
}

// Calculate runs the full damage formula from the spec: base damage
// from level/power/attack/defense (computed with the source's integer
// division order so results match its literal worked examples), times
// STAB, type effectiveness, critical, and an 85-100% random roll.
func Calculate(req Request) Result {
	if req.Target.HasImmunity(false, req.Element) {
		return Result{EffectivenessBucket: element.Bucket(0), NoEffect: true}
	}

	var atk, def int
	if req.Category == Physical {
		atk, def = req.User.CalculateAttack(), req.Target.CalculateDefense()
	} else {
		atk, def = req.User.CalculateSpAttack(), req.Target.CalculateSpDefense()
	}

	base := BaseDamage(req.User.Level(), req.Power, atk, def)

	stab := 1.0
	if STAB(req.User, req.Element) {
		stab = 1.5
	}

	typeFactor := req.Chart.Effectiveness(req.Element, req.Target.Type())

	critical := RollCrit(req.RNG, req.ForceCrit)
	crit := 1.0
	if critical {
		crit = critMultiplier
	}

	random := float64(req.RNG.Intn(16)+85) / 100

	amount := int(math.Floor(float64(base) * stab * typeFactor * crit * random))
	if amount < 0 {
		amount = 0
	}

	return Result{
		Amount:              amount,
		Critical:            critical,
		TypeFactor:          typeFactor,
		EffectivenessBucket: element.Bucket(typeFactor),
		NoEffect:            typeFactor == 0,
	}
}
