package gamedata

import (
	"fmt"

	"github.com/samdwyer/battlecore/internal/creature"
	"github.com/samdwyer/battlecore/internal/element"
	"github.com/samdwyer/battlecore/internal/skill"
	"github.com/samdwyer/battlecore/internal/stat"
)

// SpeciesDTO is one species template as authored in species.json. A
// species is "a configured instance of the generic creature type," so
// this file deliberately carries a small demonstration roster rather
// than a full game's catalog — the concrete species catalog is out of
// this module's scope beyond exercising internal/gamedata itself.
type SpeciesDTO struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	PrimaryType     string         `json:"primaryType"`
	SecondaryType   string         `json:"secondaryType,omitempty"`
	BaseStats       map[string]int `json:"baseStats"`
	Talent          map[string]int `json:"talent"`
	SkillIDs        []string       `json:"skillIds"`
	SignatureSkillID string        `json:"signatureSkillId,omitempty"`
}

// SpeciesFile is the structure of species.json.
type SpeciesFile struct {
	Species []SpeciesDTO `json:"species"`
}

// LoadSpecies loads the raw species DTOs from the embedded
// species.json.
func LoadSpecies() ([]SpeciesDTO, error) {
	file, err := Load[SpeciesFile]("species.json")
	if err != nil {
		return nil, err
	}
	return file.Species, nil
}

func statsFromJSON(m map[string]int) map[stat.Kind]int {
	out := make(map[stat.Kind]int, len(m))
	for name, v := range m {
		if k, ok := statKindFromDataName(name); ok {
			out[k] = v
		}
	}
	return out
}

// statKindFromDataName additionally recognizes "hp", which
// statKindByName (the skill-effect table, which never targets HP)
// deliberately omits.
func statKindFromDataName(name string) (stat.Kind, bool) {
	if name == "hp" {
		return stat.HP, true
	}
	k, ok := statKindByName[name]
	return k, ok
}

// NewCreature builds a fresh creature.Creature instance for a species
// definition at the given level, wiring each listed skill through the
// SkillRegistry and attaching any signature-skill behavioral hooks.
func (dto SpeciesDTO) NewCreature(level int, skills *SkillRegistry) (*creature.Creature, error) {
	base := stat.NewBase(statsFromJSON(dto.BaseStats))
	talent := stat.Talent(statsFromJSON(dto.Talent))

	typ := element.Type{Primary: elementFromString(dto.PrimaryType)}
	if dto.SecondaryType != "" {
		typ.Secondary = elementFromString(dto.SecondaryType)
	}

	moveset := make([]skill.Skill, 0, len(dto.SkillIDs))
	for _, id := range dto.SkillIDs {
		sk, ok := skills.GetByID(id)
		if !ok {
			return nil, fmt.Errorf("gamedata: species %q references unknown skill %q", dto.ID, id)
		}
		moveset = append(moveset, sk)
	}

	var signature *skill.Skill
	if dto.SignatureSkillID != "" {
		sk, ok := skills.GetByID(dto.SignatureSkillID)
		if !ok {
			return nil, fmt.Errorf("gamedata: species %q references unknown signature skill %q", dto.ID, dto.SignatureSkillID)
		}
		sigCopy := sk
		signature = &sigCopy
	}

	return creature.New(dto.Name, typ, level, base, talent, moveset, signature), nil
}
