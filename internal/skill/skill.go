// Package skill implements the Skill Model: skills as data plus
// optional behavioral hooks, and the execution algorithm that drives
// a single skill use through hit resolution, damage, and effects.
//
// This generalizes the teacher's internal/combat resolver, which
// inlined one ability's resolution directly in the turn loop, into a
// reusable Skill.Use method any battle.Engine action can call,
// whether the actor is a player's creature or the PvE AI's pick.
package skill

import (
	"math/rand"

	"github.com/samdwyer/battlecore/internal/combatant"
	"github.com/samdwyer/battlecore/internal/damage"
	"github.com/samdwyer/battlecore/internal/effect"
	"github.com/samdwyer/battlecore/internal/element"
	"github.com/samdwyer/battlecore/internal/stat"
)

// TargetType is a skill's declared targeting mode, independent of the
// Self/Foe resolution each attached Effect makes individually.
type TargetType int

const (
	Foe TargetType = iota
	Self
	// Field marks a skill as affecting the battlefield rather than a
	// single creature. No battlefield-wide state is modeled beyond the
	// two active creatures, so Field skills resolve their effects
	// against Self; a richer field-state model is out of scope.
	Field
)

// MultiHit marks a skill as striking between Min and Max times in a
// single use (inclusive), consuming PP only once.
type MultiHit struct {
	Min, Max int
}

// Skill is a single move a creature can use: declarative metadata plus
// the attached effects and optional signature hooks.
type Skill struct {
	Name         string
	Element      element.ElementType
	Category     damage.Category
	Power        int
	PPCost       int
	Accuracy     int // 0-100, or damage.AlwaysHitAccuracy sentinel
	Priority     int
	Target       TargetType
	Effects      []effect.Effect
	EffectChance int // <100 gates the whole Effects list as one unit
	MultiHit     *MultiHit
	FixedDamage  *int // bypasses the damage formula entirely when set
	Hooks        *Hooks
	IsSignature  bool
}

// Outcome is the top-level result of a single Skill.Use call.
type Outcome int

const (
	Succeeded Outcome = iota
	Missed
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "Succeeded"
	case Missed:
		return "Missed"
	default:
		return "Failed"
	}
}

// HitResult records the outcome of one hit within a (possibly
// multi-hit) skill use.
type HitResult struct {
	Hit     bool
	Damage  damage.Result
	Dealt   bool // true if a damage calculation actually ran for this hit
}

// UseResult is the full report from a Skill.Use call.
type UseResult struct {
	Outcome Outcome
	Reason  string
	Hits    []HitResult
}

// Use runs the full skill execution algorithm from step 1 (PP check)
// through multi-hit looping, exactly mirroring the spec's eight-step
// contract.
func (s *Skill) Use(user, target combatant.Combatant, rng *rand.Rand, chart *element.Chart) UseResult {
	if user.PP() < s.PPCost {
		return UseResult{Outcome: Failed, Reason: "insufficient pp"}
	}
	if s.IsSignature && s.Hooks != nil && s.Hooks.Usable != nil && !s.Hooks.Usable(user) {
		return UseResult{Outcome: Failed, Reason: "not allowed"}
	}

	user.ConsumePP(s.PPCost)

	hitCount := 1
	if s.MultiHit != nil {
		span := s.MultiHit.Max - s.MultiHit.Min
		hitCount = s.MultiHit.Min
		if span > 0 {
			hitCount += rng.Intn(span + 1)
		}
	}

	result := UseResult{Outcome: Missed}
	for i := 0; i < hitCount; i++ {
		if !target.IsAlive() {
			break
		}

		userAccuracyMod := stat.Modifier(stat.Accuracy, user.StatStage(stat.Accuracy))
		targetEvasionMod := stat.Modifier(stat.Evasion, target.StatStage(stat.Evasion))
		hit := damage.ResolveHit(rng, s.Accuracy, userAccuracyMod, targetEvasionMod)
		hr := HitResult{Hit: hit}
		if !hit {
			result.Hits = append(result.Hits, hr)
			continue
		}

		result.Outcome = Succeeded

		if s.Category != damage.Status {
			hr.Dealt = true
			hr.Damage = s.resolveDamage(user, target, rng, chart)
			target.TakeDamage(hr.Damage.Amount)
		}

		s.applyEffects(user, target, rng)

		result.Hits = append(result.Hits, hr)
	}

	return result
}

// resolveDamage computes one hit's damage, honoring a fixed-damage
// override or a signature power/crit hook before falling through to
// the standard formula.
func (s *Skill) resolveDamage(user, target combatant.Combatant, rng *rand.Rand, chart *element.Chart) damage.Result {
	if s.FixedDamage != nil {
		return damage.Result{Amount: *s.FixedDamage, EffectivenessBucket: "fixed"}
	}

	power := s.Power
	forceCrit := false
	if s.Hooks != nil {
		if s.Hooks.Power != nil {
			power = s.Hooks.Power(user, target, s.Power)
		}
		if s.Hooks.ForceCritical != nil {
			forceCrit = s.Hooks.ForceCritical(user, target)
		}
	}

	return damage.Calculate(damage.Request{
		User: user, Target: target,
		Category: s.Category, Power: power, Element: s.Element,
		ForceCrit: forceCrit, Chart: chart, RNG: rng,
	})
}

// applyEffects applies the skill's attached effects. A composite
// effect_chance below 100 gates the entire list behind one shared
// roll; an effect_chance of 100 (the common case) defers to each
// effect's own per-effect chance field.
func (s *Skill) applyEffects(user, target combatant.Combatant, rng *rand.Rand) {
	if s.EffectChance < 100 && !effect.RollChance(rng, s.EffectChance) {
		return
	}
	ctx := effect.Context{Source: user, Target: target, RNG: rng}
	for _, e := range s.Effects {
		e.Apply(ctx)
	}
}
