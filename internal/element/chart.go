package element

import "fmt"

// Chart is the static multiplicative effectiveness matrix between
// elemental types. It is built once (typically from embedded data in
// internal/gamedata) and then only read.
type Chart struct {
	factors map[[2]ElementType]float64
}

// Entry is one row of a raw, data-driven type chart.
type Entry struct {
	Attacker   ElementType
	Defender   ElementType
	Multiplier float64
}

// NewChart builds a Chart from a flat list of entries. Pairs not
// present default to a neutral 1.0 factor.
func NewChart(entries []Entry) *Chart {
	c := &Chart{factors: make(map[[2]ElementType]float64, len(entries))}
	for _, e := range entries {
		c.factors[[2]ElementType{e.Attacker, e.Defender}] = e.Multiplier
	}
	return c
}

// Factor returns the single-element attacker-vs-defender multiplier,
// defaulting to neutral (1.0) for unlisted pairs or the None element.
func (c *Chart) Factor(attacker, defender ElementType) float64 {
	if attacker == None || defender == None {
		return 1.0
	}
	if f, ok := c.factors[[2]ElementType{attacker, defender}]; ok {
		return f
	}
	return 1.0
}

// combine applies the dual-type composition rule from a pair of
// single-element factors:
//   - if either factor is 0.0, the result still favors zero but is
//     halved rather than truly zero when only one side is immune
//     ((f1+f2)/4);
//   - if both factors are super-effective (1.5), the result is the
//     full 2.0 double-super-effective bucket;
//   - otherwise the two factors average.
func combine(f1, f2 float64) float64 {
	if f1 == 0.0 || f2 == 0.0 {
		return (f1 + f2) / 4
	}
	if f1 == 1.5 && f2 == 1.5 {
		return 2.0
	}
	return (f1 + f2) / 2
}

// Effectiveness computes the overall multiplier of a single attacking
// element (a skill's element) against a (possibly dual-type) defender.
// It takes one attacking element only; there is no composition across
// a dual-type attacker's two elements.
func (c *Chart) Effectiveness(attackerElement ElementType, defender Type) float64 {
	return c.effectivenessSingle(attackerElement, defender)
}

// effectivenessSingle composes one attacking element against a
// (possibly dual-type) defender per the rule in combine.
func (c *Chart) effectivenessSingle(attackerElement ElementType, defender Type) float64 {
	if defender.IsMonoType() {
		return c.Factor(attackerElement, defender.Primary)
	}
	f1 := c.Factor(attackerElement, defender.Primary)
	f2 := c.Factor(attackerElement, defender.Secondary)
	return combine(f1, f2)
}

// Bucket classifies a multiplier into the effectiveness bucket used
// in DamageDealt events ("no effect", "not very effective", "normal",
// "super effective").
func Bucket(multiplier float64) string {
	switch {
	case multiplier == 0:
		return "no effect"
	case multiplier < 1.0:
		return "not very effective"
	case multiplier > 1.0:
		return "super effective"
	default:
		return "normal"
	}
}

// String implements fmt.Stringer for Entry, useful in data validation
// error messages.
func (e Entry) String() string {
	return fmt.Sprintf("%s->%s=%.2f", e.Attacker, e.Defender, e.Multiplier)
}
