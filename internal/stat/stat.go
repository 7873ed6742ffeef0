// Package stat provides the stat model: base stats, stat stages,
// talent growth rates, and the derived-stat modifier formulas.
package stat

// Kind identifies one of the eight stat slots a creature carries.
// HP never participates in stage modifiers; Accuracy/Evasion
// participate only in hit calculation, never in damage.
type Kind int

const (
	HP Kind = iota
	Attack
	Defense
	SpAttack
	SpDefense
	Speed
	Accuracy
	Evasion

	numKinds
)

// String returns the display name of the stat.
func (k Kind) String() string {
	switch k {
	case HP:
		return "HP"
	case Attack:
		return "Attack"
	case Defense:
		return "Defense"
	case SpAttack:
		return "SpAttack"
	case SpDefense:
		return "SpDefense"
	case Speed:
		return "Speed"
	case Accuracy:
		return "Accuracy"
	case Evasion:
		return "Evasion"
	default:
		return "Unknown"
	}
}

// Base is a creature species' base stat line. All values must be ≥1,
// and HP must be ≥10; NewBase enforces this by clamping so that
// malformed data can never produce a divide-by-zero or negative stat
// downstream.
type Base map[Kind]int

// NewBase builds a Base map, clamping each value to its floor.
func NewBase(values map[Kind]int) Base {
	b := make(Base, len(values))
	for k, v := range values {
		floor := 1
		if k == HP {
			floor = 10
		}
		if v < floor {
			v = floor
		}
		b[k] = v
	}
	return b
}

// Get returns the base value for a stat, defaulting to its floor if
// unset.
func (b Base) Get(k Kind) int {
	if v, ok := b[k]; ok {
		return v
	}
	if k == HP {
		return 10
	}
	return 1
}

// Talent is a species' per-stat growth rate, typically 1-15, applied
// at creature construction to scale base stats by level.
type Talent map[Kind]int

// Get returns the talent value for a stat, defaulting to 1.
func (t Talent) Get(k Kind) int {
	if v, ok := t[k]; ok {
		return v
	}
	return 1
}

// Stages holds a creature's current stat-stage modifiers, each
// clamped to [-6, +6]. HP never appears here; the zero value (an
// empty map) behaves as all-zero stages.
type Stages map[Kind]int

// NewStages returns a fresh, all-neutral stage map.
func NewStages() Stages {
	return make(Stages)
}

// Get returns the current stage for a stat, defaulting to 0.
func (s Stages) Get(k Kind) int {
	return s[k]
}

// Modify adjusts a stat's stage by delta, clamping the result to
// [-6, +6], and returns the old and new stage values.
func (s Stages) Modify(k Kind, delta int) (oldStage, newStage int) {
	oldStage = s[k]
	newStage = oldStage + delta
	if newStage > 6 {
		newStage = 6
	}
	if newStage < -6 {
		newStage = -6
	}
	s[k] = newStage
	return oldStage, newStage
}

// Reset clears all stages back to neutral, as happens when a creature
// faints or switches in.
func (s Stages) Reset() {
	for k := range s {
		delete(s, k)
	}
}

// Modifier computes the multiplicative stage modifier for a given
// stat and stage value. Attack/Defense/SpAttack/SpDefense/Speed use
// mod(s) = max(2, 2+s)/max(2, 2-s); Accuracy/Evasion use
// mod(s) = max(3, 3+s)/max(3, 3-s).
func Modifier(k Kind, stage int) float64 {
	switch k {
	case Accuracy, Evasion:
		return float64(maxInt(3, 3+stage)) / float64(maxInt(3, 3-stage))
	default:
		return float64(maxInt(2, 2+stage)) / float64(maxInt(2, 2-stage))
	}
}

// Kinds returns the seven stages-bearing stat kinds, in a stable
// order, excluding HP (which never carries a stage).
func Kinds() []Kind {
	return []Kind{Attack, Defense, SpAttack, SpDefense, Speed, Accuracy, Evasion}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
