// Package duration defines the data shape of duration-bound effects —
// the countdown-and-per-turn-hook effects a creature carries in its
// active_duration_effects list. It is deliberately a data-only leaf
// package (no behavior) so that both internal/effect (which executes
// duration hooks) and internal/combatant (whose Combatant interface
// stores and returns them) can depend on it without a cycle.
//
// Per the spec's design note, "lambda-captured per-turn effect logic"
// is replaced here with a closed set of parameterized Kind values
// instead of a free function pointer — easier to reason about, copy,
// and test.
package duration

import (
	"github.com/samdwyer/battlecore/internal/element"
	"github.com/samdwyer/battlecore/internal/handle"
)

// Trigger identifies when a duration effect's hook fires during a
// turn.
type Trigger int

const (
	TurnStart Trigger = iota
	TurnEnd
)

// Kind is the closed set of duration-effect behaviors. New effects
// add a case here rather than capturing an ad hoc closure.
type Kind int

const (
	// Leech drains Power HP from the effect's target each trigger and
	// heals the OriginalSource creature for the same amount.
	Leech Kind = iota
	// FieldAura adjusts the holder's current HP by Power each trigger
	// (positive regenerates, negative drains, independent of any
	// OriginalSource) for as long as the effect remains — a lingering
	// field-like presence rather than a one-shot heal or leech.
	FieldAura
	// Immunity marks the holder immune to status infliction, to a
	// specific element, or both, for its duration. Queried directly by
	// creature.SetStatus and damage.Calculate rather than having its own
	// per-turn behavior.
	Immunity
	// StateSnapshot restores a previously recorded stat-stage/status
	// snapshot when it expires (used by species forms that revert
	// after a set number of turns).
	StateSnapshot
)

// Duration is one active, countdown-bound effect attached to a
// creature. It is cloned from a skill's template Effect into the
// target's list on application (see effect.Duration.Apply), so each
// instance has its own independent counter.
type Duration struct {
	ID             string
	Kind           Kind
	Trigger        Trigger
	TurnsRemaining int
	Power          int
	OriginalSource handle.Handle

	// ImmuneToStatus / ImmuneToElement apply only when Kind == Immunity.
	ImmuneToStatus  bool
	ImmuneToElement element.ElementType
}

// Expired reports whether the effect's counter has run out.
func (d Duration) Expired() bool {
	return d.TurnsRemaining <= 0
}
