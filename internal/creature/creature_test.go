package creature

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/battlecore/internal/duration"
	"github.com/samdwyer/battlecore/internal/element"
	"github.com/samdwyer/battlecore/internal/stat"
	"github.com/samdwyer/battlecore/internal/status"
)

func newTestCreature() *Creature {
	base := stat.NewBase(map[stat.Kind]int{
		stat.HP: 100, stat.Attack: 100, stat.Defense: 100,
		stat.SpAttack: 100, stat.SpDefense: 100, stat.Speed: 100,
	})
	return New("Testmon", element.Type{Primary: element.Normal}, 50, base, stat.Talent{}, nil, nil)
}

func TestParalyzeHalvesSpeed(t *testing.T) {
	c := newTestCreature()
	before := c.CalculateSpeed()
	c.st = status.Paralyze
	after := c.CalculateSpeed()
	if after != before/2 {
		t.Errorf("paralyzed speed = %d, want %d", after, before/2)
	}
}

func TestBurnHalvesAttack(t *testing.T) {
	c := newTestCreature()
	before := c.CalculateAttack()
	c.st = status.Burn
	after := c.CalculateAttack()
	if after != before/2 {
		t.Errorf("burned attack = %d, want %d", after, before/2)
	}
}

func TestTakeDamageClearsStagesAndDurationsOnFaint(t *testing.T) {
	c := newTestCreature()
	c.ModifyStatStage(stat.Attack, 3)
	c.AddDuration(duration.Duration{ID: "x", TurnsRemaining: 3})
	c.TakeDamage(c.MaxHP() + 9999)

	if c.HP() != 0 {
		t.Fatalf("hp = %d, want 0", c.HP())
	}
	if c.StatStage(stat.Attack) != 0 {
		t.Error("stages should reset on faint")
	}
	if len(c.Durations()) != 0 {
		t.Error("durations should clear on faint")
	}
}

func TestHealNoOpWhenFainted(t *testing.T) {
	c := newTestCreature()
	c.TakeDamage(c.MaxHP())
	healed := c.Heal(50)
	if healed != 0 || c.HP() != 0 {
		t.Errorf("heal on fainted creature should be a no-op, got healed=%d hp=%d", healed, c.HP())
	}
}

func TestSetStatusFailsWhenAlreadyStatused(t *testing.T) {
	c := newTestCreature()
	if !c.SetStatus(status.Poison) {
		t.Fatal("first SetStatus should succeed")
	}
	if c.SetStatus(status.Burn) {
		t.Error("second SetStatus should fail while already statused")
	}
	if c.Status() != status.Poison {
		t.Error("status should remain unchanged after a failed SetStatus")
	}
}

func TestHasImmunityBlocksStatus(t *testing.T) {
	c := newTestCreature()
	c.AddDuration(duration.Duration{Kind: duration.Immunity, ImmuneToStatus: true, TurnsRemaining: 2})
	if c.SetStatus(status.Poison) {
		t.Error("expected status infliction to fail while immune")
	}
}

func TestCanActFalseWhenParalyzed(t *testing.T) {
	c := newTestCreature()
	c.st = status.Paralyze
	if c.CanAct() {
		t.Error("paralyzed creature should not be able to act")
	}
}

func TestCanActTrueWhenConfused(t *testing.T) {
	c := newTestCreature()
	c.st = status.Confusion
	if !c.CanAct() {
		t.Error("confused creature can still attempt an action")
	}
}

func TestApplyStatusTickBurn(t *testing.T) {
	base := stat.NewBase(map[stat.Kind]int{stat.HP: 120})
	c := New("Burnmon", element.Type{Primary: element.Fire}, 1, base, stat.Talent{}, nil, nil)
	// Force a known max_hp of 120 directly for the literal scenario.
	c.maxHP = 120
	c.hp = 120
	c.st = status.Burn
	c.ApplyStatusTick(rand.New(rand.NewSource(1)))
	if c.HP() != 105 {
		t.Errorf("hp after burn tick = %d, want 105 (120 - 15)", c.HP())
	}
}

func TestDecrementDurationsRemovesExpired(t *testing.T) {
	c := newTestCreature()
	c.AddDuration(duration.Duration{ID: "short", TurnsRemaining: 1})
	c.AddDuration(duration.Duration{ID: "long", TurnsRemaining: 5})
	c.DecrementDurations()
	if len(c.Durations()) != 1 || c.Durations()[0].ID != "long" {
		t.Errorf("expected only 'long' to survive, got %+v", c.Durations())
	}
}

func TestModifyStatStageRoundTrip(t *testing.T) {
	c := newTestCreature()
	c.ModifyStatStage(stat.Attack, 3)
	c.ModifyStatStage(stat.Attack, -3)
	if c.StatStage(stat.Attack) != 0 {
		t.Errorf("stage = %d, want 0 after round trip", c.StatStage(stat.Attack))
	}
}
