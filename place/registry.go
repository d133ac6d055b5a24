package place

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// TypeEntry is the registry data of one place type.
type TypeEntry struct {
	Name    string `yaml:"name" json:"name" msgpack:"name"`
	Groups  Group  `yaml:"groups" json:"groups" msgpack:"groups"`
	Visible bool   `yaml:"visible" json:"visible" msgpack:"visible"`
}

// GroupEntry is the registry data of one group bit.
type GroupEntry struct {
	Name string `yaml:"name" json:"name" msgpack:"name"`
	Key  string `yaml:"key" json:"key" msgpack:"key"`
}

// canonical (untranslated) names of the fixed types.
var canonicalNames = map[int]string{
	Unknown:      "Unknown",
	Country:      "Country",
	State:        "State",
	County:       "County",
	City:         "City",
	Parish:       "Parish",
	Locality:     "Locality",
	Street:       "Street",
	Province:     "Province",
	Region:       "Region",
	Department:   "Department",
	Neighborhood: "Neighborhood",
	District:     "District",
	Borough:      "Borough",
	Municipality: "Municipality",
	Town:         "Town",
	Village:      "Village",
	Hamlet:       "Hamlet",
	Farm:         "Farm",
	Building:     "Building",
	Number:       "Number",
}

func defaultTypes() map[int]TypeEntry {
	return map[int]TypeEntry{
		Unknown:      {"Unknown", 0, true},
		Custom:       {"", 0, false},
		Country:      {"Country", GroupCountry, true},
		State:        {"State", GroupRegion, true},
		County:       {"County", GroupRegion, true},
		City:         {"City", GroupPlace, true},
		Parish:       {"Parish", GroupRegion, true},
		Locality:     {"Locality", GroupPlace, true},
		Street:       {"Street", 0, true},
		Province:     {"Province", GroupRegion, true},
		Region:       {"Region", GroupRegion, true},
		Department:   {"Department", GroupRegion, true},
		Neighborhood: {"Neighborhood", GroupPlace, true},
		District:     {"District", GroupPlace, true},
		Borough:      {"Borough", GroupPlace, true},
		Municipality: {"Municipality", GroupPlace, true},
		Town:         {"Town", GroupPlace, true},
		Village:      {"Village", GroupPlace, true},
		Hamlet:       {"Hamlet", GroupPlace, true},
		Farm:         {"Farm", GroupPlace, true},
		Building:     {"Building", GroupBuilding, true},
		Number:       {"Number", 0, true},
	}
}

func defaultGroups() map[Group]GroupEntry {
	return map[Group]GroupEntry{
		GroupPlace:    {"Places", "Place"},
		GroupUnpop:    {"Unpopulated Places", "Unpop"},
		GroupCountry:  {"Countries", "Country"},
		GroupRegion:   {"Regions", "Region"},
		GroupBuilding: {"Buildings", "Building"},
	}
}

// Registry is the place type taxonomy of one set of open databases. It is
// safe for concurrent use; Session drives its open/close lifecycle.
type Registry struct {
	mu     sync.RWMutex
	types  map[int]TypeEntry
	groups map[Group]GroupEntry
	status int
}

// NewRegistry returns a registry holding only the compiled-in defaults.
func NewRegistry() *Registry {
	return &Registry{types: defaultTypes(), groups: defaultGroups()}
}

func fold(s string) string { return cases.Fold().String(s) }

// Reset discards every customization and the open count.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
}

func (r *Registry) reset() {
	r.types = defaultTypes()
	r.groups = defaultGroups()
	r.status = 0
}

// Status is the number of open databases holding the registry.
func (r *Registry) Status() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Resolve returns the entry for a type id, falling back to Unknown.
func (r *Registry) Resolve(value int) TypeEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolve(value)
}

func (r *Registry) resolve(value int) TypeEntry {
	if e, ok := r.types[value]; ok {
		return e
	}
	return r.types[Unknown]
}

// HasType reports whether the id is registered.
func (r *Registry) HasType(value int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[value]
	return ok
}

// HasGroup reports whether g is a non-empty mask below MaxGroupBits whose
// bits are all known groups.
func (r *Registry) HasGroup(g Group) bool {
	if g <= 0 || g >= Group(1)<<MaxGroupBits {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for bit := Group(1); bit != 0 && bit <= g; bit <<= 1 {
		if g&bit == 0 || bit == GroupOther {
			continue
		}
		if _, ok := r.groups[bit]; !ok {
			return false
		}
	}
	return true
}

// Name is the display name of t.
func (r *Registry) Name(t PlaceType) string {
	if t.IsCustom() {
		return t.Custom
	}
	return r.Resolve(t.Value).Name
}

// XMLString is the untranslated name of t, suitable for exchange.
func (r *Registry) XMLString(t PlaceType) string {
	if t.IsCustom() {
		return ""
	}
	if s, ok := canonicalNames[t.Value]; ok {
		return s
	}
	return r.Resolve(t.Value).Name
}

// Groups returns the group bits of t; unknown ids belong to no group.
func (r *Registry) Groups(t PlaceType) Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[t.Value].Groups
}

// Group returns the entry of a group bit.
func (r *Registry) Group(g Group) (GroupEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.groups[g]
	return e, ok
}

// Map returns id -> display name for every registered type.
func (r *Registry) Map() map[int]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int]string, len(r.types))
	for k, v := range r.types {
		out[k] = v.Name
	}
	return out
}

// Lookup finds a type by canonical name, then by display name, ignoring case.
func (r *Registry) Lookup(name string) (PlaceType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(name)
}

func (r *Registry) lookup(name string) (PlaceType, bool) {
	f := fold(strings.TrimSpace(name))
	if f == "" {
		return PlaceType{}, false
	}
	for _, id := range sortedKeys(canonicalNames) {
		if fold(canonicalNames[id]) == f {
			return NewPlaceType(id), true
		}
	}
	for _, id := range sortedKeys(r.types) {
		if fold(r.types[id].Name) == f {
			return NewPlaceType(id), true
		}
	}
	return PlaceType{}, false
}

// Suggest returns the registered type name closest to name when it is within
// a few edits of it.
func (r *Registry) Suggest(name string) (string, bool) {
	f := fold(strings.TrimSpace(name))
	if f == "" {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	best, bestDist := "", 4
	for _, id := range sortedKeys(r.types) {
		e := r.types[id]
		if e.Name == "" {
			continue
		}
		if d := levenshtein.ComputeDistance(f, fold(e.Name)); d < bestDist {
			best, bestDist = e.Name, d
		}
	}
	return best, best != ""
}

// LookupGroup finds a group by display name or key, ignoring case. "Other"
// names GroupOther.
func (r *Registry) LookupGroup(name string) (Group, bool) {
	f := fold(strings.TrimSpace(name))
	if f == "" {
		return 0, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, g := range sortedKeys(r.groups) {
		e := r.groups[g]
		if f == fold(e.Name) || f == fold(e.Key) {
			return g, true
		}
	}
	if f == fold("Other") {
		return GroupOther, true
	}
	return 0, false
}

// RegisterName returns the type matching raw, registering a new manual type in
// GroupPlace when none does. Registering the same text twice yields the same
// type.
func (r *Registry) RegisterName(raw string) (PlaceType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NewPlaceType(Unknown), nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.lookup(raw); ok {
		return t, nil
	}
	id, err := r.newID()
	if err != nil {
		return PlaceType{}, err
	}
	r.types[id] = TypeEntry{Name: r.validName(raw, id), Groups: GroupPlace, Visible: true}
	return NewPlaceType(id), nil
}

// RegisterCustom gives an unregistered Custom type a fresh manual id.
func (r *Registry) RegisterCustom(t *PlaceType) error {
	if !t.IsCustom() || strings.TrimSpace(t.Custom) == "" {
		return fmt.Errorf("%w: not an unregistered custom type", ErrInvalidType)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id, err := r.newID()
	if err != nil {
		return err
	}
	r.types[id] = TypeEntry{Name: r.validName(t.Custom, id), Groups: GroupPlace, Visible: true}
	t.Value, t.Custom = id, ""
	return nil
}

// Set configures t from src, registering numbered types as needed.
func (r *Registry) Set(t *PlaceType, src TypeSource) error {
	switch s := src.(type) {
	case byID:
		t.Value, t.Custom = s.id, ""
	case byIDName:
		r.setNamed(t, s.id, s.name, GroupPlace)
	case byIDNameGroup:
		r.setNamed(t, s.id, s.name, s.group)
	case fromType:
		*t = s.t
		t.Citations = slices.Clone(s.t.Citations)
	case fromString:
		v, err := r.RegisterName(s.s)
		if err != nil {
			return err
		}
		t.Value, t.Custom = v.Value, ""
	default:
		return fmt.Errorf("%w: %T", ErrInvalidType, src)
	}
	return nil
}

func (r *Registry) setNamed(t *PlaceType, id int, name string, group Group) {
	if id == Custom && name != "" {
		t.Value, t.Custom = Custom, name
		return
	}
	t.Value, t.Custom = id, ""
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[id]; ok || !isNumbered(id) {
		return
	}
	r.types[id] = TypeEntry{Name: r.validName(name, id), Groups: group, Visible: true}
}

// NewID returns an unused manual custom id.
func (r *Registry) NewID() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.newID()
}

func (r *Registry) newID() (int, error) {
	for v := manualBase; v < Custom; v++ {
		if _, ok := r.types[v]; !ok {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: no unused type id", ErrCapacityExhausted)
}

// ValidName returns name made unique among the registered names. Numbered
// custom ids get their number appended, other ids a _N suffix.
func (r *Registry) ValidName(name string, id int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.validName(name, id)
}

func (r *Registry) validName(name string, id int) string {
	names := make(map[string]struct{}, len(r.types))
	for _, e := range r.types {
		names[fold(e.Name)] = struct{}{}
	}
	suffix := ""
	for n := 1; ; {
		if _, taken := names[fold(name+suffix)]; !taken {
			return name + suffix
		}
		if isCustomNumbered(id) {
			name += strconv.Itoa(-id)
		} else {
			suffix = "_" + strconv.Itoa(n)
			n++
		}
	}
}

// AddGroup returns the group named name (display name or key), allocating the
// next free bit above GroupOther when there is none.
func (r *Registry) AddGroup(name string) (Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addGroup(name, name)
}

func (r *Registry) addGroup(key, display string) (Group, error) {
	f := fold(key)
	for _, g := range sortedKeys(r.groups) {
		e := r.groups[g]
		if f == fold(e.Name) || f == fold(e.Key) {
			return g, nil
		}
	}
	for bit := 6; bit < MaxGroupBits; bit++ {
		g := Group(1) << bit
		if _, ok := r.groups[g]; !ok {
			r.groups[g] = GroupEntry{Name: display, Key: key}
				return g, nil
		}
	}
	return 0, fmt.Errorf("%w: no unused group bit for %q", ErrCapacityExhausted, key)
}

func sortedKeys[K ~int, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
