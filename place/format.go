package place

import (
	"fmt"
	"strings"
)

// Target is what a rule selects chain entries by.
type Target int

const (
	TargetGroup Target = iota
	TargetType
	TargetStreetNumber
)

var targetNames = []string{"group", "type", "street-number"}

func (t Target) String() string {
	if t >= 0 && int(t) < len(targetNames) {
		return targetNames[t]
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

func (t Target) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(targetNames) {
		return nil, fmt.Errorf("invalid rule target: %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Target) UnmarshalText(b []byte) error {
	for i, n := range targetNames {
		if strings.EqualFold(n, string(b)) {
			*t = Target(i)
			return nil
		}
	}
	return fmt.Errorf("invalid rule target: %q", b)
}

// Visibility is what a rule does with the entries it selects.
type Visibility int

const (
	VisHidden Visibility = iota
	// VisStreetFirst and VisNumberFirst only apply to TargetStreetNumber.
	VisStreetFirst
	VisNumberFirst
	VisAll
	VisSmallest
	VisLargest
)

var visibilityNames = []string{"hidden", "street-number", "number-street", "all", "smallest", "largest"}

func (v Visibility) String() string {
	if v >= 0 && int(v) < len(visibilityNames) {
		return visibilityNames[v]
	}
	return fmt.Sprintf("Visibility(%d)", int(v))
}

func (v Visibility) MarshalText() ([]byte, error) {
	if v < 0 || int(v) >= len(visibilityNames) {
		return nil, fmt.Errorf("invalid rule visibility: %d", int(v))
	}
	return []byte(v.String()), nil
}

func (v *Visibility) UnmarshalText(b []byte) error {
	for i, n := range visibilityNames {
		if strings.EqualFold(n, string(b)) {
			*v = Visibility(i)
			return nil
		}
	}
	return fmt.Errorf("invalid rule visibility: %q", b)
}

// Rule is one visibility/abbreviation instruction of a Format.
type Rule struct {
	// Where limits the rule to chains containing this place handle.
	Where  string     `yaml:"where,omitempty" json:"where,omitempty" msgpack:"where,omitempty"`
	Target Target     `yaml:"target" json:"target" msgpack:"target"`
	Value  int        `yaml:"value,omitempty" json:"value,omitempty" msgpack:"value,omitempty"`
	Vis    Visibility `yaml:"vis" json:"vis" msgpack:"vis"`
	Abbrev AbbrevType `yaml:"abbrev,omitempty" json:"abbrev,omitempty" msgpack:"abbrev"`
}

// Valid reports whether the rule can be applied with reg: its group or type
// must exist and its visibility must suit its target.
func (r Rule) Valid(reg *Registry) bool {
	switch r.Target {
	case TargetGroup:
		return r.selects() && reg.HasGroup(Group(r.Value))
	case TargetType:
		return r.selects() && reg.HasType(r.Value)
	case TargetStreetNumber:
		return r.Vis == VisHidden || r.Vis == VisStreetFirst || r.Vis == VisNumberFirst
	}
	return false
}

func (r Rule) selects() bool {
	switch r.Vis {
	case VisHidden, VisAll, VisSmallest, VisLargest:
		return true
	}
	return false
}

// Format is a named place title format.
type Format struct {
	Name     string   `yaml:"name" json:"name" msgpack:"name"`
	Hier     HierType `yaml:"hier" json:"hier" msgpack:"hier"`
	Language string   `yaml:"language,omitempty" json:"language,omitempty" msgpack:"language,omitempty"`
	// Reverse renders the outermost place first.
	Reverse bool   `yaml:"reverse,omitempty" json:"reverse,omitempty" msgpack:"reverse,omitempty"`
	Rules   []Rule `yaml:"rules,omitempty" json:"rules,omitempty" msgpack:"rules,omitempty"`
}

// DefaultFormat is the format every displayer starts with.
func DefaultFormat() *Format { return &Format{Name: "Full", Hier: Admin} }

// Validate returns the indexes of rules that cannot be applied with reg.
func (f *Format) Validate(reg *Registry) []int {
	var bad []int
	for i, r := range f.Rules {
		if !r.Valid(reg) {
			bad = append(bad, i)
		}
	}
	return bad
}

// PruneRules drops the rules that cannot be applied with reg and returns them.
func (f *Format) PruneRules(reg *Registry) []Rule {
	var kept, removed []Rule
	for _, r := range f.Rules {
		if r.Valid(reg) {
			kept = append(kept, r)
		} else {
			removed = append(removed, r)
		}
	}
	f.Rules = kept
	return removed
}

// Clone returns a deep copy.
func (f *Format) Clone() *Format {
	c := *f
	c.Rules = append([]Rule(nil), f.Rules...)
	return &c
}
