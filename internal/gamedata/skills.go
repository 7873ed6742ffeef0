package gamedata

import (
	"fmt"

	"github.com/samdwyer/battlecore/internal/damage"
	"github.com/samdwyer/battlecore/internal/duration"
	"github.com/samdwyer/battlecore/internal/effect"
	"github.com/samdwyer/battlecore/internal/skill"
	"github.com/samdwyer/battlecore/internal/stat"
	"github.com/samdwyer/battlecore/internal/status"
)

// EffectDTO is one tagged-variant entry in a skill's effects list.
// Only the fields relevant to Type are meaningful, mirroring the
// AbilityDef-style flat JSON schema the teacher's gamedata package
// uses for its own data-driven content.
type EffectDTO struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Chance int    `json:"chance"`

	// status_inflict
	Status string `json:"status,omitempty"`

	// stat_stage_change
	Stat  string `json:"stat,omitempty"`
	Delta int    `json:"delta,omitempty"`

	// heal
	Amount    int  `json:"amount,omitempty"`
	IsPercent bool `json:"isPercent,omitempty"`

	// clear_effects
	ClearPositiveStages  bool `json:"clearPositiveStages,omitempty"`
	ClearNegativeStages  bool `json:"clearNegativeStages,omitempty"`
	ClearStatus          bool `json:"clearStatus,omitempty"`
	ClearDurationEffects bool `json:"clearDurationEffects,omitempty"`

	// duration
	DurationID      string `json:"durationId,omitempty"`
	DurationKind    string `json:"durationKind,omitempty"`
	DurationTrigger string `json:"durationTrigger,omitempty"`
	Turns           int    `json:"turns,omitempty"`
	Power           int    `json:"power,omitempty"`

	// immunity
	ImmuneToStatus  bool   `json:"immuneToStatus,omitempty"`
	ImmuneToElement string `json:"immuneToElement,omitempty"`
}

// MultiHitDTO mirrors skill.MultiHit.
type MultiHitDTO struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SkillDTO is one skill as authored in skills.json.
type SkillDTO struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Element      string        `json:"element"`
	Category     string        `json:"category"`
	Power        int           `json:"power"`
	PPCost       int           `json:"ppCost"`
	Accuracy     int           `json:"accuracy"`
	Priority     int           `json:"priority"`
	Target       string        `json:"target"`
	EffectChance int           `json:"effectChance"`
	MultiHit     *MultiHitDTO  `json:"multiHit,omitempty"`
	FixedDamage  *int          `json:"fixedDamage,omitempty"`
	IsSignature  bool          `json:"isSignature,omitempty"`
	Effects      []EffectDTO   `json:"effects,omitempty"`
}

// SkillsFile is the structure of skills.json.
type SkillsFile struct {
	Skills []SkillDTO `json:"skills"`
}

// LoadSkills loads the raw skill DTOs from the embedded skills.json.
func LoadSkills() ([]SkillDTO, error) {
	file, err := Load[SkillsFile]("skills.json")
	if err != nil {
		return nil, err
	}
	return file.Skills, nil
}

var categoryByName = map[string]damage.Category{
	"physical": damage.Physical,
	"special":  damage.Special,
	"status":   damage.Status,
}

var targetByName = map[string]skill.TargetType{
	"foe":   skill.Foe,
	"self":  skill.Self,
	"field": skill.Field,
}

var effectTargetByName = map[string]effect.TargetSide{
	"foe":  effect.Foe,
	"self": effect.Self,
}

var statKindByName = map[string]stat.Kind{
	"attack":    stat.Attack,
	"defense":   stat.Defense,
	"spattack":  stat.SpAttack,
	"spdefense": stat.SpDefense,
	"speed":     stat.Speed,
	"accuracy":  stat.Accuracy,
	"evasion":   stat.Evasion,
}

var statusByName = map[string]status.Condition{
	"poison":    status.Poison,
	"burn":      status.Burn,
	"freeze":    status.Freeze,
	"paralyze":  status.Paralyze,
	"sleep":     status.Sleep,
	"fear":      status.Fear,
	"tired":     status.Tired,
	"bleed":     status.Bleed,
	"confusion": status.Confusion,
}

var durationKindByName = map[string]duration.Kind{
	"leech":     duration.Leech,
	"fieldaura": duration.FieldAura,
	"immunity":  duration.Immunity,
	"snapshot":  duration.StateSnapshot,
}

var durationTriggerByName = map[string]duration.Trigger{
	"turnstart": duration.TurnStart,
	"turnend":   duration.TurnEnd,
}

// buildEffect converts one EffectDTO into its concrete effect.Effect
// variant. An unrecognized Type returns an error rather than silently
// dropping the effect — unlike an unrecognized element name, a
// mis-typed effect changes what the skill does, not just its display.
func buildEffect(dto EffectDTO) (effect.Effect, error) {
	side := effectTargetByName[dto.Target]
	switch dto.Type {
	case "status_inflict":
		return effect.StatusInflict{Condition: statusByName[dto.Status], Chance: dto.Chance, Target: side}, nil
	case "stat_stage_change":
		return effect.StatStageChange{Stat: statKindByName[dto.Stat], Delta: dto.Delta, Chance: dto.Chance, Target: side}, nil
	case "heal":
		return effect.Heal{Amount: dto.Amount, IsPercent: dto.IsPercent, Chance: dto.Chance, Target: side}, nil
	case "fixed_damage":
		return effect.FixedDamage{Amount: dto.Amount, Chance: dto.Chance, Target: side}, nil
	case "clear_effects":
		return effect.ClearEffects{
			Flags: effect.ClearFlags{
				PositiveStages:  dto.ClearPositiveStages,
				NegativeStages:  dto.ClearNegativeStages,
				Status:          dto.ClearStatus,
				DurationEffects: dto.ClearDurationEffects,
			},
			Chance: dto.Chance, Target: side,
		}, nil
	case "duration":
		return effect.Duration{
			ID: dto.DurationID, Kind: durationKindByName[dto.DurationKind],
			Trigger: durationTriggerByName[dto.DurationTrigger], Turns: dto.Turns, Power: dto.Power,
			Chance: dto.Chance, Target: side,
		}, nil
	case "immunity":
		return effect.Immunity{
			Turns: dto.Turns, ImmuneToStatus: dto.ImmuneToStatus,
			ImmuneToElement: elementFromString(dto.ImmuneToElement), Chance: dto.Chance, Target: side,
		}, nil
	default:
		return nil, fmt.Errorf("gamedata: unknown effect type %q", dto.Type)
	}
}

// BuildSkill converts a SkillDTO into a skill.Skill. Signature-skill
// behavioral hooks are not data — see hooks.go — and are attached
// afterward by the caller (typically a SkillRegistry) keyed by ID.
func BuildSkill(dto SkillDTO) (skill.Skill, error) {
	effects := make([]effect.Effect, 0, len(dto.Effects))
	for _, e := range dto.Effects {
		built, err := buildEffect(e)
		if err != nil {
			return skill.Skill{}, fmt.Errorf("gamedata: skill %q: %w", dto.ID, err)
		}
		effects = append(effects, built)
	}

	var multiHit *skill.MultiHit
	if dto.MultiHit != nil {
		multiHit = &skill.MultiHit{Min: dto.MultiHit.Min, Max: dto.MultiHit.Max}
	}

	return skill.Skill{
		Name:         dto.Name,
		Element:      elementFromString(dto.Element),
		Category:     categoryByName[dto.Category],
		Power:        dto.Power,
		PPCost:       dto.PPCost,
		Accuracy:     dto.Accuracy,
		Priority:     dto.Priority,
		Target:       targetByName[dto.Target],
		Effects:      effects,
		EffectChance: dto.EffectChance,
		MultiHit:     multiHit,
		FixedDamage:  dto.FixedDamage,
		IsSignature:  dto.IsSignature,
	}, nil
}
