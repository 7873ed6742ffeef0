package gamedata

import (
	"github.com/samdwyer/battlecore/internal/combatant"
	"github.com/samdwyer/battlecore/internal/skill"
)

// signatureHooks maps a signature skill's ID to its behavioral
// overrides. Hooks are Go closures, not data, so they cannot live in
// skills.json; this table is the one place content (an ID) and
// behavior (a hook) are reunited, mirroring how the teacher's
// AbilityDef stays pure data while anything dynamic is resolved in
// Go code that consults it by ID.
var signatureHooks = map[string]*skill.Hooks{
	"overgrowth_bloom": {Usable: skill.HPBelowHalf},
	"cinder_last_stand": {
		Usable: skill.HPBelowQuarter,
		Power: func(user, target combatant.Combatant, basePower int) int {
			return basePower * 2
		},
	},
	"tideform_execute": {
		ForceCritical: func(user, target combatant.Combatant) bool {
			return target.HP()*4 < target.MaxHP()
		},
	},
}

// AttachSignatureHooks sets sk.Hooks from the signatureHooks table when
// sk.IsSignature and a matching id is registered, leaving sk
// unchanged otherwise (a signature skill with no matching hook simply
// behaves as plain data, same as any regular skill).
func AttachSignatureHooks(id string, sk *skill.Skill) {
	if !sk.IsSignature {
		return
	}
	if h, ok := signatureHooks[id]; ok {
		sk.Hooks = h
	}
}
