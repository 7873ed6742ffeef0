package battle

// selectFoeAction picks the non-PvP foe side's action for the current
// turn, per the spec's PvE opponent algorithm: switch in a replacement
// if fainted, skip if unable to act, otherwise pick uniformly at
// random among skills with sufficient PP (including the signature
// skill), falling back to restoring PP, and finally skipping if
// nothing is usable.
//
// Modeled on the teacher's selectEnemyAbility/selectEnemyTarget pair
// in internal/game/enemy_ai.go: a short ordered list of fallbacks
// rather than a scored utility function, since the spec calls for
// uniform random choice among usable skills, not weighting.
func (e *Engine) selectFoeAction() Action {
	actor := e.foe.Active()
	if actor == nil || !actor.IsAlive() {
		if idx := e.foe.FirstAlive(); idx >= 0 {
			return Action{Kind: ActionSwitch, SwitchIndex: idx}
		}
		return Action{Kind: ActionEscape}
	}
	if !actor.CanAct() {
		return Action{Kind: ActionPass}
	}

	var usable []int
	for i, sk := range actor.Skills() {
		if actor.PP() >= sk.PPCost {
			usable = append(usable, i)
		}
	}
	signatureUsable := false
	if sig := actor.SignatureSkill(); sig != nil && actor.PP() >= sig.PPCost {
		if sig.Hooks == nil || sig.Hooks.Usable == nil || sig.Hooks.Usable(actor) {
			signatureUsable = true
		}
	}

	total := len(usable)
	if signatureUsable {
		total++
	}
	if total == 0 {
		if actor.PP() < actor.MaxPP() {
			return Action{Kind: ActionRestorePP}
		}
		return Action{Kind: ActionPass}
	}

	pick := e.rng.Intn(total)
	if pick < len(usable) {
		return Action{Kind: ActionUseSkill, SkillIndex: usable[pick]}
	}
	return Action{Kind: ActionUseSkill, SkillIndex: -1}
}
