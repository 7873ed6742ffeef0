package skill

import "github.com/samdwyer/battlecore/internal/combatant"

// UsabilityPredicate decides whether a signature skill may currently
// be used. Supplements the original source's per-skill hardcoded
// conditionals (e.g. "requires HP < 50%") with a small set of named,
// reusable closures instead of one-off inline checks per species.
type UsabilityPredicate func(user combatant.Combatant) bool

// Always permits use unconditionally — the default for signature
// skills without a usability restriction.
func Always(combatant.Combatant) bool { return true }

// HPBelowHalf permits use only while the user's HP is under 50% of
// its max.
func HPBelowHalf(user combatant.Combatant) bool {
	return user.HP()*2 < user.MaxHP()
}

// HPBelowQuarter permits use only while the user's HP is under 25% of
// its max.
func HPBelowQuarter(user combatant.Combatant) bool {
	return user.HP()*4 < user.MaxHP()
}

// PowerHook computes a dynamic effective power for the current use,
// overriding the skill's declared base Power (e.g. a skill that hits
// harder the lower the target's HP has fallen).
type PowerHook func(user, target combatant.Combatant, basePower int) int

// CritHook decides whether to force a critical hit regardless of the
// base critical rate (e.g. "always crits against a target under 25%
// HP").
type CritHook func(user, target combatant.Combatant) bool

// Hooks bundles a signature skill's behavioral overrides. A nil field
// falls back to the skill's plain data-driven behavior.
type Hooks struct {
	Usable        UsabilityPredicate
	Power         PowerHook
	ForceCritical CritHook
}
