package skill

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/battlecore/internal/damage"
	"github.com/samdwyer/battlecore/internal/duration"
	"github.com/samdwyer/battlecore/internal/effect"
	"github.com/samdwyer/battlecore/internal/element"
	"github.com/samdwyer/battlecore/internal/handle"
	"github.com/samdwyer/battlecore/internal/stat"
	"github.com/samdwyer/battlecore/internal/status"
)

// stubCombatant is a hand-rolled combatant.Combatant double, in the
// teacher's mockCombatant style, with mutable resource pools so
// Skill.Use's PP/HP/status mutations are observable.
type stubCombatant struct {
	level                    int
	typ                      element.Type
	hp, maxHP, pp, maxPP     int
	st                       status.Condition
	stages                   stat.Stages
	attack, defense, spatk   int
	spdef, speed             int
}

func newStub() *stubCombatant {
	return &stubCombatant{level: 50, hp: 100, maxHP: 100, pp: 10, maxPP: 10, stages: stat.NewStages(),
		attack: 50, defense: 50, spatk: 50, spdef: 50, speed: 50, typ: element.Type{Primary: element.Normal}}
}

func (s *stubCombatant) Handle() handle.Handle { return handle.Invalid }
func (s *stubCombatant) Name() string          { return "stub" }
func (s *stubCombatant) Level() int            { return s.level }
func (s *stubCombatant) Type() element.Type    { return s.typ }
func (s *stubCombatant) IsAlive() bool         { return s.hp > 0 }
func (s *stubCombatant) HP() int               { return s.hp }
func (s *stubCombatant) MaxHP() int            { return s.maxHP }
func (s *stubCombatant) PP() int               { return s.pp }
func (s *stubCombatant) MaxPP() int            { return s.maxPP }

func (s *stubCombatant) CalculateAttack() int    { return s.attack }
func (s *stubCombatant) CalculateDefense() int   { return s.defense }
func (s *stubCombatant) CalculateSpAttack() int  { return s.spatk }
func (s *stubCombatant) CalculateSpDefense() int { return s.spdef }
func (s *stubCombatant) CalculateSpeed() int     { return s.speed }
func (s *stubCombatant) StatStage(k stat.Kind) int { return s.stages.Get(k) }

func (s *stubCombatant) Status() status.Condition { return s.st }
func (s *stubCombatant) SetStatus(c status.Condition) bool {
	if s.st != status.None {
		return false
	}
	s.st = c
	return true
}
func (s *stubCombatant) ClearStatus() { s.st = status.None }

func (s *stubCombatant) ModifyStatStage(k stat.Kind, delta int) (int, int) {
	return s.stages.Modify(k, delta)
}
func (s *stubCombatant) ClearPositiveStages() {}
func (s *stubCombatant) ClearNegativeStages() {}

func (s *stubCombatant) TakeDamage(n int) int {
	if n > s.hp {
		n = s.hp
	}
	s.hp -= n
	return n
}
func (s *stubCombatant) Heal(n int) int { return 0 }
func (s *stubCombatant) ConsumePP(n int) bool {
	if s.pp < n {
		return false
	}
	s.pp -= n
	return true
}
func (s *stubCombatant) RestorePP(n int) int { return 0 }

func (s *stubCombatant) Durations() []duration.Duration            { return nil }
func (s *stubCombatant) AddDuration(duration.Duration)             {}
func (s *stubCombatant) ClearDurations() bool                      { return false }
func (s *stubCombatant) HasImmunity(bool, element.ElementType) bool { return false }

func TestUseFailsWithInsufficientPP(t *testing.T) {
	user, target := newStub(), newStub()
	user.pp = 0
	sk := &Skill{Name: "Tackle", PPCost: 5, Accuracy: damage.AlwaysHitAccuracy, Category: damage.Physical, Power: 40}
	res := sk.Use(user, target, rand.New(rand.NewSource(1)), element.NewChart(nil))
	if res.Outcome != Failed || res.Reason != "insufficient pp" {
		t.Fatalf("expected Failed/insufficient pp, got %+v", res)
	}
	if user.pp != 0 {
		t.Error("PP should not be further consumed on a failed use")
	}
}

func TestUseFailsWhenSignatureNotUsable(t *testing.T) {
	user, target := newStub(), newStub()
	user.hp = 100 // full health, HPBelowHalf predicate should deny
	sk := &Skill{Name: "Indomitable Spirit", PPCost: 2, IsSignature: true, Hooks: &Hooks{Usable: HPBelowHalf}}
	res := sk.Use(user, target, rand.New(rand.NewSource(1)), element.NewChart(nil))
	if res.Outcome != Failed || res.Reason != "not allowed" {
		t.Fatalf("expected Failed/not allowed, got %+v", res)
	}
	if user.pp != 10 {
		t.Error("PP should not be consumed when the signature predicate denies use")
	}
}

func TestUseConsumesPPExactlyOnceForMultiHit(t *testing.T) {
	user, target := newStub(), newStub()
	target.hp = 1000
	target.maxHP = 1000
	sk := &Skill{
		Name: "Barrage", PPCost: 3, Accuracy: damage.AlwaysHitAccuracy,
		Category: damage.Physical, Power: 10, MultiHit: &MultiHit{Min: 2, Max: 5},
	}
	sk.Use(user, target, rand.New(rand.NewSource(3)), element.NewChart(nil))
	if user.pp != 7 {
		t.Errorf("pp = %d, want 7 (10 - 3, consumed once)", user.pp)
	}
}

func TestUseStopsMultiHitEarlyOnFaint(t *testing.T) {
	user, target := newStub(), newStub()
	target.hp = 1
	target.maxHP = 1
	sk := &Skill{
		Name: "Barrage", PPCost: 1, Accuracy: damage.AlwaysHitAccuracy,
		Category: damage.Physical, Power: 80, MultiHit: &MultiHit{Min: 5, Max: 5},
	}
	res := sk.Use(user, target, rand.New(rand.NewSource(3)), element.NewChart(nil))
	if len(res.Hits) >= 5 {
		t.Errorf("expected multi-hit to stop early on faint, got %d hits", len(res.Hits))
	}
	if target.hp != 0 {
		t.Error("target should have fainted")
	}
}

func TestUseAppliesEffectsOnHit(t *testing.T) {
	user, target := newStub(), newStub()
	sk := &Skill{
		Name: "Venom Bite", PPCost: 1, Accuracy: damage.AlwaysHitAccuracy,
		Category: damage.Physical, Power: 30, EffectChance: 100,
		Effects: []effect.Effect{effect.StatusInflict{Condition: status.Poison, Chance: 100, Target: effect.Foe}},
	}
	sk.Use(user, target, rand.New(rand.NewSource(1)), element.NewChart(nil))
	if target.Status() != status.Poison {
		t.Errorf("target status = %v, want Poison", target.Status())
	}
}

func TestUseCompositeEffectChanceGatesAllEffects(t *testing.T) {
	user, target := newStub(), newStub()
	sk := &Skill{
		Name: "Gambit", PPCost: 1, Accuracy: damage.AlwaysHitAccuracy,
		Category: damage.Physical, Power: 30, EffectChance: 0,
		Effects: []effect.Effect{effect.StatusInflict{Condition: status.Poison, Chance: 100, Target: effect.Foe}},
	}
	sk.Use(user, target, rand.New(rand.NewSource(1)), element.NewChart(nil))
	if target.Status() != status.None {
		t.Errorf("expected composite gate at 0%% to suppress all effects, got status %v", target.Status())
	}
}

func TestUseFixedDamageBypassesFormula(t *testing.T) {
	user, target := newStub(), newStub()
	fixed := 25
	sk := &Skill{Name: "Seismic Slam", PPCost: 1, Accuracy: damage.AlwaysHitAccuracy, FixedDamage: &fixed}
	sk.Use(user, target, rand.New(rand.NewSource(1)), element.NewChart(nil))
	if target.hp != 75 {
		t.Errorf("hp = %d, want 75", target.hp)
	}
}
