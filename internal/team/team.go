// Package team implements the Team type: an ordered roster of
// creatures with one active slot, shared by both sides of a battle.
package team

import "github.com/samdwyer/battlecore/internal/creature"

// Team is an ordered roster of 1-6 creatures with one active slot.
// The invariant that ActiveIndex points at a non-fainted creature
// unless the whole team has fainted is maintained by SwitchTo and by
// the battle engine's forced-switch handling, not by this type alone.
type Team struct {
	Members     []*creature.Creature
	ActiveIndex int
}

// New builds a Team from 1-6 creatures with the active slot at index
// 0. It does not skip a fainted first member; a switch is what moves
// the active slot off one.
func New(members []*creature.Creature) *Team {
	return &Team{Members: members, ActiveIndex: 0}
}

// Active returns the team's current on-field creature, or nil for an
// empty roster.
func (t *Team) Active() *creature.Creature {
	if t.ActiveIndex < 0 || t.ActiveIndex >= len(t.Members) {
		return nil
	}
	return t.Members[t.ActiveIndex]
}

// IsDefeated reports whether every member of the team has fainted.
func (t *Team) IsDefeated() bool {
	for _, m := range t.Members {
		if m.IsAlive() {
			return false
		}
	}
	return true
}

// SwitchTo moves the active slot to index, resetting the incoming
// creature's stat stages. Fails if index is out of range or names a
// fainted creature.
func (t *Team) SwitchTo(index int) bool {
	if index < 0 || index >= len(t.Members) {
		return false
	}
	if !t.Members[index].IsAlive() {
		return false
	}
	t.ActiveIndex = index
	t.Members[index].ResetOnSwitchIn()
	return true
}

// FirstAlive returns the index of the first non-fainted member, or -1
// if none remain.
func (t *Team) FirstAlive() int {
	for i, m := range t.Members {
		if m.IsAlive() {
			return i
		}
	}
	return -1
}

// AliveCount reports how many members have not fainted.
func (t *Team) AliveCount() int {
	n := 0
	for _, m := range t.Members {
		if m.IsAlive() {
			n++
		}
	}
	return n
}
