package gamedata

import "github.com/samdwyer/battlecore/internal/element"

// ElementEntryDTO is one row of elements.json's flat effectiveness
// table, named by string so content authors never touch Go constants.
type ElementEntryDTO struct {
	Attacker   string  `json:"attacker"`
	Defender   string  `json:"defender"`
	Multiplier float64 `json:"multiplier"`
}

// ElementsFile is the structure of elements.json.
type ElementsFile struct {
	Entries []ElementEntryDTO `json:"entries"`
}

// LoadElementChart loads and builds the type-effectiveness Chart from
// the embedded elements.json.
func LoadElementChart() (*element.Chart, error) {
	file, err := Load[ElementsFile]("elements.json")
	if err != nil {
		return nil, err
	}
	entries := make([]element.Entry, 0, len(file.Entries))
	for _, e := range file.Entries {
		entries = append(entries, element.Entry{
			Attacker:   elementFromString(e.Attacker),
			Defender:   elementFromString(e.Defender),
			Multiplier: e.Multiplier,
		})
	}
	return element.NewChart(entries), nil
}

// MustLoadElementChart loads the type chart, panicking on error.
func MustLoadElementChart() *element.Chart {
	chart, err := LoadElementChart()
	if err != nil {
		panic(err)
	}
	return chart
}

var elementByName = map[string]element.ElementType{
	"normal":  element.Normal,
	"fire":    element.Fire,
	"water":   element.Water,
	"grass":   element.Grass,
	"flying":  element.Flying,
	"ground":  element.Ground,
	"machine": element.Machine,
	"shadow":  element.Shadow,
	"light":   element.Light,
	"bug":     element.Bug,
}

// elementFromString resolves a content-authored element name, falling
// back to None for anything unrecognized rather than failing the
// whole load — a single bad row in a hand-edited table shouldn't take
// down chart construction.
func elementFromString(name string) element.ElementType {
	if e, ok := elementByName[name]; ok {
		return e
	}
	return element.None
}
