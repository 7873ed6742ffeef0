package gamedata

import (
	"errors"

	"github.com/samdwyer/battlecore/internal/creature"
	"github.com/samdwyer/battlecore/internal/skill"
)

// SkillRegistry holds every skill built from skills.json, keyed by ID,
// mirroring the teacher's AbilityRegistry.
type SkillRegistry struct {
	byID map[string]skill.Skill
	all  []string
}

// NewSkillRegistry builds a registry from raw DTOs, converting and
// attaching signature hooks as it goes.
func NewSkillRegistry(dtos []SkillDTO) (*SkillRegistry, error) {
	r := &SkillRegistry{byID: make(map[string]skill.Skill, len(dtos))}
	for _, dto := range dtos {
		sk, err := BuildSkill(dto)
		if err != nil {
			return nil, err
		}
		AttachSignatureHooks(dto.ID, &sk)
		r.byID[dto.ID] = sk
		r.all = append(r.all, dto.ID)
	}
	return r, nil
}

// LoadSkillRegistry loads and builds a SkillRegistry from the embedded
// skills.json.
func LoadSkillRegistry() (*SkillRegistry, error) {
	dtos, err := LoadSkills()
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, errors.New("gamedata: no skills loaded from skills.json")
	}
	return NewSkillRegistry(dtos)
}

// MustLoadSkillRegistry loads a SkillRegistry, panicking on error.
func MustLoadSkillRegistry() *SkillRegistry {
	r, err := LoadSkillRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// GetByID returns the skill registered under id and whether it was
// found. The returned value is a copy — callers that need a stable
// pointer (e.g. a creature's signature skill slot) should take the
// address of their own copy, not of the registry's internal map entry.
func (r *SkillRegistry) GetByID(id string) (skill.Skill, bool) {
	sk, ok := r.byID[id]
	return sk, ok
}

// IDs returns every registered skill ID, in load order.
func (r *SkillRegistry) IDs() []string {
	return r.all
}

// SpeciesRegistry holds every species template built from
// species.json, keyed by ID, mirroring the teacher's EnemyRegistry.
type SpeciesRegistry struct {
	byID map[string]SpeciesDTO
	all  []string
}

// NewSpeciesRegistry builds a registry from raw DTOs.
func NewSpeciesRegistry(dtos []SpeciesDTO) *SpeciesRegistry {
	r := &SpeciesRegistry{byID: make(map[string]SpeciesDTO, len(dtos))}
	for _, dto := range dtos {
		r.byID[dto.ID] = dto
		r.all = append(r.all, dto.ID)
	}
	return r
}

// LoadSpeciesRegistry loads and builds a SpeciesRegistry from the
// embedded species.json.
func LoadSpeciesRegistry() (*SpeciesRegistry, error) {
	dtos, err := LoadSpecies()
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, errors.New("gamedata: no species loaded from species.json")
	}
	return NewSpeciesRegistry(dtos), nil
}

// MustLoadSpeciesRegistry loads a SpeciesRegistry, panicking on error.
func MustLoadSpeciesRegistry() *SpeciesRegistry {
	r, err := LoadSpeciesRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// New builds a fresh creature.Creature for the named species at the
// given level, using skills to resolve its moveset and signature
// skill.
func (r *SpeciesRegistry) New(id string, level int, skills *SkillRegistry) (*creature.Creature, error) {
	dto, ok := r.byID[id]
	if !ok {
		return nil, errors.New("gamedata: unknown species " + id)
	}
	return dto.NewCreature(level, skills)
}

// IDs returns every registered species ID, in load order.
func (r *SpeciesRegistry) IDs() []string {
	return r.all
}
