package place

import "slices"

// Type values. Positive values are the fixed types; values between Custom and
// 0 are numbered custom types whose ids are stable across databases (GOV
// codes for example); values below Custom are manually created types whose
// ids are only meaningful inside one registry.
const (
	// Custom separates numbered from manual custom types. A PlaceType holding
	// it carries its name in PlaceType.Custom until registered.
	Custom  = -0x20000000
	Unknown = 0

	Country      = 1
	State        = 2
	County       = 3
	City         = 4
	Parish       = 5
	Locality     = 6
	Street       = 7
	Province     = 8
	Region       = 9
	Department   = 10
	Neighborhood = 11
	District     = 12
	Borough      = 13
	Municipality = 14
	Town         = 15
	Village      = 16
	Hamlet       = 17
	Farm         = 18
	Building     = 19
	Number       = 20

	// manualBase is where the search for an unused manual id starts.
	manualBase = -0x3fffffff
)

// Group is a bit set of place type categories.
type Group int

const (
	GroupCountry  Group = 0x1
	GroupRegion   Group = 0x2
	GroupPlace    Group = 0x4
	GroupUnpop    Group = 0x8
	GroupBuilding Group = 0x10
	// GroupOther holds ungrouped types in menus; bits above it are allocated
	// by Registry.AddGroup.
	GroupOther Group = 0x20

	// MaxGroupBits bounds the group bit space; AddGroup never allocates bit
	// MaxGroupBits or above.
	MaxGroupBits = 30
)

// Equivalence results of PlaceType.IsEquivalent.
const (
	Different = iota
	Equal
	Identical
)

// PlaceType is a dated place classification. Names and groups live in a
// Registry; the value itself only carries the id.
type PlaceType struct {
	Value     int      `yaml:"value" json:"value" msgpack:"value"`
	Custom    string   `yaml:"custom,omitempty" json:"custom,omitempty" msgpack:"custom,omitempty"`
	Date      Date     `yaml:"date,omitempty" json:"date,omitempty" msgpack:"date"`
	Citations []string `yaml:"citations,omitempty" json:"citations,omitempty" msgpack:"citations,omitempty"`
}

// NewPlaceType returns an undated type with the given id.
func NewPlaceType(value int) PlaceType { return PlaceType{Value: value} }

// IsEmpty reports whether the type was never set.
func (t PlaceType) IsEmpty() bool {
	return t.Value == Unknown && t.Date.IsEmpty() && len(t.Citations) == 0
}

// IsCustom reports whether the type is an unregistered, name-only type.
func (t PlaceType) IsCustom() bool { return t.Value == Custom }

// IsManualCustom reports whether the id is registry-local and must be matched
// by name when exchanged with other databases.
func (t PlaceType) IsManualCustom() bool { return t.Value < Custom }

// IsNumbered reports whether the id is a fixed type or a stable numbered one.
func (t PlaceType) IsNumbered() bool { return t.Value > Custom }

// IsCustomNumbered reports whether the id is a stable numbered custom type.
func (t PlaceType) IsCustomNumbered() bool { return t.Value > Custom && t.Value < 0 }

func isNumbered(v int) bool       { return v > Custom }
func isCustomNumbered(v int) bool { return v > Custom && v < 0 }

// IsEqual compares value, custom name, date and citations.
func (t PlaceType) IsEqual(o PlaceType) bool {
	return t.Value == o.Value && t.Custom == o.Custom && t.Date == o.Date &&
		slices.Equal(t.Citations, o.Citations)
}

// IsEquivalent returns Different when value or date differ, Identical when
// everything matches and Equal otherwise.
func (t PlaceType) IsEquivalent(o PlaceType) int {
	if t.Value != o.Value || t.Date != o.Date {
		return Different
	}
	if t.IsEqual(o) {
		return Identical
	}
	return Equal
}

// Merge takes over the citations of acquisition not already present.
func (t *PlaceType) Merge(acquisition PlaceType) {
	for _, c := range acquisition.Citations {
		if !slices.Contains(t.Citations, c) {
			t.Citations = append(t.Citations, c)
		}
	}
}
