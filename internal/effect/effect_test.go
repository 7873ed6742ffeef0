package effect

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/battlecore/internal/duration"
	"github.com/samdwyer/battlecore/internal/element"
	"github.com/samdwyer/battlecore/internal/handle"
	"github.com/samdwyer/battlecore/internal/stat"
	"github.com/samdwyer/battlecore/internal/status"
)

// fakeCombatant is a hand-rolled test double, in the style of the
// teacher's mockCombatant in internal/combat/resolver_test.go.
type fakeCombatant struct {
	handle     handle.Handle
	hp, maxHP  int
	pp, maxPP  int
	st         status.Condition
	stages     stat.Stages
	immune     bool
	immuneElem element.ElementType
	durations  []duration.Duration
}

func newFakeCombatant() *fakeCombatant {
	return &fakeCombatant{hp: 100, maxHP: 100, pp: 20, maxPP: 20, stages: stat.NewStages()}
}

func (f *fakeCombatant) Handle() handle.Handle       { return f.handle }
func (f *fakeCombatant) Name() string                { return "fake" }
func (f *fakeCombatant) Level() int                  { return 50 }
func (f *fakeCombatant) Type() element.Type          { return element.Type{Primary: element.Normal} }
func (f *fakeCombatant) IsAlive() bool               { return f.hp > 0 }
func (f *fakeCombatant) HP() int                     { return f.hp }
func (f *fakeCombatant) MaxHP() int                  { return f.maxHP }
func (f *fakeCombatant) PP() int                     { return f.pp }
func (f *fakeCombatant) MaxPP() int                  { return f.maxPP }
func (f *fakeCombatant) CalculateAttack() int         { return 50 }
func (f *fakeCombatant) CalculateDefense() int        { return 50 }
func (f *fakeCombatant) CalculateSpAttack() int       { return 50 }
func (f *fakeCombatant) CalculateSpDefense() int      { return 50 }
func (f *fakeCombatant) CalculateSpeed() int           { return 50 }
func (f *fakeCombatant) StatStage(k stat.Kind) int    { return f.stages.Get(k) }
func (f *fakeCombatant) Status() status.Condition     { return f.st }

func (f *fakeCombatant) SetStatus(c status.Condition) bool {
	if f.st != status.None {
		return false
	}
	f.st = c
	return true
}
func (f *fakeCombatant) ClearStatus() { f.st = status.None }

func (f *fakeCombatant) ModifyStatStage(k stat.Kind, delta int) (int, int) {
	return f.stages.Modify(k, delta)
}
func (f *fakeCombatant) ClearPositiveStages() {
	for _, k := range stat.Kinds() {
		if f.stages.Get(k) > 0 {
			f.stages.Modify(k, -f.stages.Get(k))
		}
	}
}
func (f *fakeCombatant) ClearNegativeStages() {
	for _, k := range stat.Kinds() {
		if f.stages.Get(k) < 0 {
			f.stages.Modify(k, -f.stages.Get(k))
		}
	}
}

func (f *fakeCombatant) TakeDamage(n int) int {
	if n > f.hp {
		n = f.hp
	}
	f.hp -= n
	return n
}
func (f *fakeCombatant) Heal(n int) int {
	if f.hp+n > f.maxHP {
		n = f.maxHP - f.hp
	}
	f.hp += n
	return n
}
func (f *fakeCombatant) ConsumePP(n int) bool {
	if f.pp < n {
		return false
	}
	f.pp -= n
	return true
}
func (f *fakeCombatant) RestorePP(n int) int {
	if f.pp+n > f.maxPP {
		n = f.maxPP - f.pp
	}
	f.pp += n
	return n
}

func (f *fakeCombatant) Durations() []duration.Duration { return f.durations }
func (f *fakeCombatant) AddDuration(d duration.Duration) {
	f.durations = append(f.durations, d)
}
func (f *fakeCombatant) ClearDurations() bool {
	had := len(f.durations) > 0
	f.durations = nil
	return had
}
func (f *fakeCombatant) HasImmunity(statusCheck bool, elementCheck element.ElementType) bool {
	if statusCheck && f.immune {
		return true
	}
	if elementCheck != element.None && elementCheck == f.immuneElem {
		return true
	}
	return false
}

func ctxFor(source, target *fakeCombatant, rng *rand.Rand) Context {
	return Context{Source: source, Target: target, RNG: rng}
}

func TestStatusInflictSucceedsAtFullChance(t *testing.T) {
	src, tgt := newFakeCombatant(), newFakeCombatant()
	e := StatusInflict{Condition: status.Poison, Chance: 100, Target: Foe}
	if !e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1)))) {
		t.Fatal("expected success at chance=100")
	}
	if tgt.Status() != status.Poison {
		t.Errorf("target status = %v, want Poison", tgt.Status())
	}
}

func TestStatusInflictFailsAtZeroChance(t *testing.T) {
	src, tgt := newFakeCombatant(), newFakeCombatant()
	e := StatusInflict{Condition: status.Poison, Chance: 0, Target: Foe}
	if e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1)))) {
		t.Fatal("expected failure at chance=0")
	}
}

func TestStatusInflictFailsWhenAlreadyStatused(t *testing.T) {
	src, tgt := newFakeCombatant(), newFakeCombatant()
	tgt.st = status.Burn
	e := StatusInflict{Condition: status.Poison, Chance: 100, Target: Foe}
	if e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1)))) {
		t.Fatal("expected failure when target already statused")
	}
	if tgt.Status() != status.Burn {
		t.Error("existing status should be unchanged")
	}
}

func TestStatusInflictRespectsImmunity(t *testing.T) {
	src, tgt := newFakeCombatant(), newFakeCombatant()
	tgt.immune = true
	e := StatusInflict{Condition: status.Poison, Chance: 100, Target: Foe}
	if e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1)))) {
		t.Fatal("expected failure against immune target")
	}
}

func TestStatStageChangeSelfTarget(t *testing.T) {
	src, tgt := newFakeCombatant(), newFakeCombatant()
	e := StatStageChange{Stat: stat.Attack, Delta: 2, Chance: 100, Target: Self}
	if !e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1)))) {
		t.Fatal("expected success")
	}
	if src.StatStage(stat.Attack) != 2 {
		t.Errorf("source Attack stage = %d, want 2", src.StatStage(stat.Attack))
	}
	if tgt.StatStage(stat.Attack) != 0 {
		t.Error("target stage should be untouched for a self-targeted effect")
	}
}

func TestStatStageChangeNoOpAtClampReturnsFalse(t *testing.T) {
	src, tgt := newFakeCombatant(), newFakeCombatant()
	tgt.stages.Modify(stat.Attack, 6)
	e := StatStageChange{Stat: stat.Attack, Delta: 1, Chance: 100, Target: Foe}
	if e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1)))) {
		t.Error("expected no-op (already clamped) to report false")
	}
}

func TestHealCapsAtMaxHP(t *testing.T) {
	src, tgt := newFakeCombatant(), newFakeCombatant()
	tgt.hp = 95
	e := Heal{Amount: 50, Chance: 100, Target: Foe}
	e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1))))
	if tgt.hp != 100 {
		t.Errorf("hp = %d, want capped at 100", tgt.hp)
	}
}

func TestHealPercent(t *testing.T) {
	src, tgt := newFakeCombatant(), newFakeCombatant()
	tgt.hp = 10
	e := Heal{Amount: 50, IsPercent: true, Chance: 100, Target: Foe}
	e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1))))
	if tgt.hp != 60 {
		t.Errorf("hp = %d, want 60 (10 + 50%% of 100)", tgt.hp)
	}
}

func TestFixedDamageBypassesEverything(t *testing.T) {
	src, tgt := newFakeCombatant(), newFakeCombatant()
	e := FixedDamage{Amount: 30, Chance: 100, Target: Foe}
	e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1))))
	if tgt.hp != 70 {
		t.Errorf("hp = %d, want 70", tgt.hp)
	}
}

func TestClearEffectsIdempotent(t *testing.T) {
	src, tgt := newFakeCombatant(), newFakeCombatant()
	tgt.stages.Modify(stat.Attack, 3)
	tgt.stages.Modify(stat.Defense, -2)
	tgt.st = status.Burn
	tgt.AddDuration(duration.Duration{ID: "x", TurnsRemaining: 3})

	e := ClearEffects{
		Flags:  ClearFlags{PositiveStages: true, NegativeStages: true, Status: true, DurationEffects: true},
		Chance: 100,
		Target: Foe,
	}

	first := e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1))))
	if !first {
		t.Fatal("expected first ClearEffects application to report true")
	}

	snapshot := *tgt
	second := e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1))))
	if second {
		t.Error("expected second ClearEffects application to report false (nothing left to clear)")
	}
	if tgt.st != snapshot.st || tgt.StatStage(stat.Attack) != snapshot.StatStage(stat.Attack) {
		t.Error("second application should leave state unchanged")
	}
}

func TestDurationEffectClonesIndependentCounters(t *testing.T) {
	src, tgt1, tgt2 := newFakeCombatant(), newFakeCombatant(), newFakeCombatant()
	e := Duration{ID: "poison_strike", Kind: duration.Leech, Trigger: duration.TurnEnd, Turns: 3, Power: 5, Chance: 100, Target: Foe}

	e.Apply(ctxFor(src, tgt1, rand.New(rand.NewSource(1))))
	e.Apply(ctxFor(src, tgt2, rand.New(rand.NewSource(1))))

	tgt1.durations[0].TurnsRemaining = 1
	if tgt2.durations[0].TurnsRemaining != 3 {
		t.Error("duration counters should be cloned independently per target")
	}
}

func TestImmunityAppliesWellKnownID(t *testing.T) {
	src, tgt := newFakeCombatant(), newFakeCombatant()
	e := Immunity{Turns: 2, ImmuneToStatus: true, Chance: 100, Target: Self}
	e.Apply(ctxFor(src, tgt, rand.New(rand.NewSource(1))))
	if len(src.durations) != 1 || src.durations[0].ID != ImmunityEffectID {
		t.Fatal("expected immunity duration with well-known ID on self")
	}
}
