package duration

import (
	"testing"

	"github.com/samdwyer/battlecore/internal/element"
	"github.com/samdwyer/battlecore/internal/handle"
)

func TestExpired(t *testing.T) {
	cases := []struct {
		name string
		d    Duration
		want bool
	}{
		{"positive remaining", Duration{TurnsRemaining: 3}, false},
		{"exactly zero", Duration{TurnsRemaining: 0}, true},
		{"negative", Duration{TurnsRemaining: -1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.Expired(); got != tc.want {
				t.Errorf("Expired() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDurationCarriesImmunityFields(t *testing.T) {
	d := Duration{
		ID:              "ward",
		Kind:            Immunity,
		Trigger:         TurnStart,
		TurnsRemaining:  2,
		ImmuneToStatus:  true,
		ImmuneToElement: element.Fire,
	}
	if d.Kind != Immunity {
		t.Fatalf("Kind = %v, want Immunity", d.Kind)
	}
	if !d.ImmuneToStatus {
		t.Error("ImmuneToStatus = false, want true")
	}
	if d.ImmuneToElement != element.Fire {
		t.Errorf("ImmuneToElement = %v, want Fire", d.ImmuneToElement)
	}
}

func TestDurationCarriesLeechSource(t *testing.T) {
	h := handle.Handle(7)
	d := Duration{Kind: Leech, Trigger: TurnEnd, TurnsRemaining: 1, Power: 8, OriginalSource: h}
	if d.OriginalSource != h {
		t.Errorf("OriginalSource = %v, want %v", d.OriginalSource, h)
	}
	if d.Power != 8 {
		t.Errorf("Power = %d, want 8", d.Power)
	}
}
