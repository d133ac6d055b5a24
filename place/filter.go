package place

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// HasData selects places by name and type. An empty Name or TypeName matches
// anything.
type HasData struct {
	Name string
	// Regex treats Name as a regular expression.
	Regex bool
	// Fuzzy accepts names within this many edits of Name.
	Fuzzy    int
	TypeName string

	re    *regexp.Regexp
	typ   PlaceType
	byTyp bool
}

// Prepare compiles the filter against reg. It does not register types.
func (h *HasData) Prepare(reg *Registry) error {
	h.re, h.byTyp = nil, false
	if h.Regex && h.Name != "" {
		re, err := regexp.Compile("(?i)" + h.Name)
		if err != nil {
			return err
		}
		h.re = re
	}
	if h.TypeName != "" {
		t, ok := reg.Lookup(h.TypeName)
		if !ok {
			if s, near := reg.Suggest(h.TypeName); near {
				return fmt.Errorf("%w: %q (did you mean %q?)", ErrNotFound, h.TypeName, s)
			}
			return fmt.Errorf("%w: %q", ErrNotFound, h.TypeName)
		}
		h.typ, h.byTyp = t, true
	}
	return nil
}

// Match reports whether p passes the filter.
func (h *HasData) Match(p *Place) bool {
	if p == nil {
		return false
	}
	if h.byTyp && !h.matchType(p) {
		return false
	}
	if h.Name == "" {
		return true
	}
	for _, n := range p.Names {
		if h.matchName(n.Value) {
			return true
		}
	}
	return false
}

func (h *HasData) matchType(p *Place) bool {
	for _, t := range p.Types {
		if t.Value == h.typ.Value {
			return true
		}
	}
	return false
}

func (h *HasData) matchName(name string) bool {
	if h.re != nil {
		return h.re.MatchString(name)
	}
	n, want := fold(name), fold(h.Name)
	if strings.Contains(n, want) {
		return true
	}
	return h.Fuzzy > 0 && levenshtein.ComputeDistance(n, want) <= h.Fuzzy
}
