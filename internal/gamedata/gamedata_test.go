package gamedata

import "testing"

func TestLoadElementChart(t *testing.T) {
	chart, err := LoadElementChart()
	if err != nil {
		t.Fatalf("LoadElementChart: %v", err)
	}
	if f := chart.Factor(elementByName["fire"], elementByName["grass"]); f != 1.5 {
		t.Errorf("fire->grass = %v, want 1.5", f)
	}
	if f := chart.Factor(elementByName["water"], elementByName["fire"]); f != 1.5 {
		t.Errorf("water->fire = %v, want 1.5", f)
	}
}

func TestLoadSkillRegistry(t *testing.T) {
	reg, err := LoadSkillRegistry()
	if err != nil {
		t.Fatalf("LoadSkillRegistry: %v", err)
	}
	sk, ok := reg.GetByID("tackle")
	if !ok {
		t.Fatal("tackle not found")
	}
	if sk.Name != "Tackle" || sk.PPCost != 5 {
		t.Errorf("unexpected tackle definition: %+v", sk)
	}

	sig, ok := reg.GetByID("cinder_last_stand")
	if !ok {
		t.Fatal("cinder_last_stand not found")
	}
	if sig.Hooks == nil || sig.Hooks.Usable == nil || sig.Hooks.Power == nil {
		t.Error("expected cinder_last_stand to carry its Usable and Power hooks")
	}
}

func TestLoadSpeciesRegistryBuildsCreature(t *testing.T) {
	skills, err := LoadSkillRegistry()
	if err != nil {
		t.Fatalf("LoadSkillRegistry: %v", err)
	}
	species, err := LoadSpeciesRegistry()
	if err != nil {
		t.Fatalf("LoadSpeciesRegistry: %v", err)
	}

	c, err := species.New("overgrowth", 20, skills)
	if err != nil {
		t.Fatalf("species.New: %v", err)
	}
	if c.Name() != "Overgrowth" || c.Level() != 20 {
		t.Errorf("unexpected creature: name=%s level=%d", c.Name(), c.Level())
	}
	if c.SignatureSkill() == nil || c.SignatureSkill().Name != "Overgrowth Bloom" {
		t.Error("expected overgrowth's signature skill to be attached")
	}
	if len(c.Skills()) != 6 {
		t.Errorf("len(Skills()) = %d, want 6", len(c.Skills()))
	}
}

func TestSpeciesReferencingUnknownSkillFails(t *testing.T) {
	skills, err := LoadSkillRegistry()
	if err != nil {
		t.Fatalf("LoadSkillRegistry: %v", err)
	}
	dto := SpeciesDTO{ID: "bogus", Name: "Bogus", PrimaryType: "normal", SkillIDs: []string{"not_a_real_skill"}}
	if _, err := dto.NewCreature(10, skills); err == nil {
		t.Error("expected an error building a creature from an unknown skill id")
	}
}
