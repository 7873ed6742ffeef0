// Package combatant defines the narrow interface the effect, skill,
// and damage packages need from "whatever a battle is fighting over."
// It generalizes the teacher's internal/combat.Combatant interface
// (which covered party members and enemies as two concrete types)
// into a single contract that internal/creature.Creature implements
// structurally, so this package never needs to import creature and
// risk a cycle.
package combatant

import (
	"github.com/samdwyer/battlecore/internal/duration"
	"github.com/samdwyer/battlecore/internal/element"
	"github.com/samdwyer/battlecore/internal/handle"
	"github.com/samdwyer/battlecore/internal/stat"
	"github.com/samdwyer/battlecore/internal/status"
)

// Combatant is the contract a creature must satisfy to participate in
// skill resolution, damage calculation, and effect application.
type Combatant interface {
	// Identity
	Handle() handle.Handle
	Name() string
	Level() int
	Type() element.Type
	IsAlive() bool

	// Resource pools
	HP() int
	MaxHP() int
	PP() int
	MaxPP() int

	// Derived stats (already reflect stage modifiers and status
	// penalties such as Burn halving Attack or Paralyze halving Speed).
	CalculateAttack() int
	CalculateDefense() int
	CalculateSpAttack() int
	CalculateSpDefense() int
	CalculateSpeed() int
	StatStage(k stat.Kind) int

	// Status condition
	Status() status.Condition
	SetStatus(c status.Condition) bool
	ClearStatus()

	// Stat stages
	ModifyStatStage(k stat.Kind, delta int) (oldStage, newStage int)
	ClearPositiveStages()
	ClearNegativeStages()

	// Resource mutation
	TakeDamage(n int) int
	Heal(n int) int
	ConsumePP(n int) bool
	RestorePP(n int) int

	// Duration-bound effects
	Durations() []duration.Duration
	AddDuration(d duration.Duration)
	ClearDurations() bool

	// HasImmunity centralizes the immunity query the spec's open
	// questions call for: true if the creature currently carries an
	// Immunity duration effect covering a status infliction attempt
	// (statusCheck) or the given element (elementCheck). Pass
	// element.None to skip the element check.
	HasImmunity(statusCheck bool, elementCheck element.ElementType) bool
}
