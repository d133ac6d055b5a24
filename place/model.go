package place

import (
	"strconv"
	"strings"
)

// HierType is the kind of a "located in" relation.
type HierType struct {
	Value  int    `msgpack:"value"`
	Custom string `msgpack:"custom,omitempty"`
}

// The zero HierType is the administrative hierarchy.
const (
	HierCustom = -1
	HierAdmin  = iota - 1
	HierReligious
	HierGeographic
	HierCultural
	HierJudicial
)

var hierNames = map[int]string{
	HierAdmin:      "admin",
	HierReligious:  "religious",
	HierGeographic: "geographic",
	HierCultural:   "cultural",
	HierJudicial:   "judicial",
}

// Admin is the administrative hierarchy.
var Admin = HierType{Value: HierAdmin}

// CustomHier returns a user defined hierarchy kind.
func CustomHier(name string) HierType { return HierType{Value: HierCustom, Custom: name} }

func (h HierType) String() string {
	if h.Value == HierCustom {
		return h.Custom
	}
	if s, ok := hierNames[h.Value]; ok {
		return s
	}
	return strconv.Itoa(h.Value)
}

// ParseHierType maps a fixed kind name to its value; anything else is custom.
func ParseHierType(s string) HierType {
	s = strings.TrimSpace(s)
	if s == "" {
		return Admin
	}
	for v, n := range hierNames {
		if strings.EqualFold(n, s) {
			return HierType{Value: v}
		}
	}
	return CustomHier(s)
}

func (h HierType) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *HierType) UnmarshalText(b []byte) error {
	*h = ParseHierType(string(b))
	return nil
}

// AbbrevType classifies an abbreviation. Rules additionally use AbbrevNone
// (the zero value) and AbbrevFirst.
type AbbrevType struct {
	Value  int    `msgpack:"value"`
	Custom string `msgpack:"custom,omitempty"`
}

const (
	AbbrevCustom = -1
	AbbrevNone   = 0
	AbbrevFirst  = 1
	AbbrevAbbr   = 2
	AbbrevPostal = 3
	AbbrevFIPS   = 4
	AbbrevISO    = 5
)

var abbrevNames = map[int]string{
	AbbrevFirst:  "first",
	AbbrevNone:   "none",
	AbbrevAbbr:   "abbreviation",
	AbbrevPostal: "postal",
	AbbrevFIPS:   "fips",
	AbbrevISO:    "iso",
}

// Abbrev returns a fixed abbreviation kind.
func Abbrev(v int) AbbrevType { return AbbrevType{Value: v} }

func (a AbbrevType) String() string {
	if a.Value == AbbrevCustom {
		return a.Custom
	}
	if s, ok := abbrevNames[a.Value]; ok {
		return s
	}
	return strconv.Itoa(a.Value)
}

// ParseAbbrevType maps a fixed kind name to its value; empty text is
// AbbrevNone and anything else is custom.
func ParseAbbrevType(s string) AbbrevType {
	s = strings.TrimSpace(s)
	if s == "" {
		return Abbrev(AbbrevNone)
	}
	for v, n := range abbrevNames {
		if strings.EqualFold(n, s) {
			return Abbrev(v)
		}
	}
	return AbbrevType{Value: AbbrevCustom, Custom: s}
}

func (a AbbrevType) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *AbbrevType) UnmarshalText(b []byte) error {
	*a = ParseAbbrevType(string(b))
	return nil
}

// PlaceAbbrev is one abbreviated form of a place name.
type PlaceAbbrev struct {
	Value string     `yaml:"value" json:"value" msgpack:"value"`
	Type  AbbrevType `yaml:"type" json:"type" msgpack:"type"`
}

// Name is a dated, language tagged place name.
type Name struct {
	Value     string        `yaml:"value" json:"value" msgpack:"value"`
	Date      Date          `yaml:"date,omitempty" json:"date,omitempty" msgpack:"date"`
	Lang      string        `yaml:"lang,omitempty" json:"lang,omitempty" msgpack:"lang,omitempty"`
	Abbrevs   []PlaceAbbrev `yaml:"abbrevs,omitempty" json:"abbrevs,omitempty" msgpack:"abbrevs,omitempty"`
	Citations []string      `yaml:"citations,omitempty" json:"citations,omitempty" msgpack:"citations,omitempty"`
}

// PlaceRef links a place to an enclosing place.
type PlaceRef struct {
	Ref       string   `yaml:"ref" json:"ref" msgpack:"ref"`
	Hier      HierType `yaml:"hier" json:"hier" msgpack:"hier"`
	Date      Date     `yaml:"date,omitempty" json:"date,omitempty" msgpack:"date"`
	Citations []string `yaml:"citations,omitempty" json:"citations,omitempty" msgpack:"citations,omitempty"`
}

// AttrPostal is the attribute type holding postal codes.
const AttrPostal = "Postal Code"

// Attribute is a typed free-text value attached to a place.
type Attribute struct {
	Type  string `yaml:"type" json:"type" msgpack:"type"`
	Value string `yaml:"value" json:"value" msgpack:"value"`
}

// Place is a place record as stored by a database.
type Place struct {
	Handle     string      `yaml:"handle" json:"handle" msgpack:"handle"`
	ID         string      `yaml:"id,omitempty" json:"id,omitempty" msgpack:"id,omitempty"`
	Title      string      `yaml:"title,omitempty" json:"title,omitempty" msgpack:"title,omitempty"`
	Names      []Name      `yaml:"names" json:"names" msgpack:"names"`
	Types      []PlaceType `yaml:"types" json:"types" msgpack:"types"`
	Refs       []PlaceRef  `yaml:"refs,omitempty" json:"refs,omitempty" msgpack:"refs,omitempty"`
	Attributes []Attribute `yaml:"attributes,omitempty" json:"attributes,omitempty" msgpack:"attributes,omitempty"`
}

// Name returns the primary name.
func (p *Place) Name() string {
	if len(p.Names) == 0 {
		return ""
	}
	return p.Names[0].Value
}

// Type returns the primary type, Unknown when there is none.
func (p *Place) Type() PlaceType {
	if len(p.Types) == 0 {
		return NewPlaceType(Unknown)
	}
	return p.Types[0]
}

// Event is the part of an event the place display needs.
type Event struct {
	PlaceHandle string `yaml:"place" json:"place" msgpack:"place"`
	Date        Date   `yaml:"date,omitempty" json:"date,omitempty" msgpack:"date"`
}

// PlaceSource resolves handles to places.
type PlaceSource interface {
	// PlaceFromHandle returns ErrNotFound for unknown handles.
	PlaceFromHandle(handle string) (*Place, error)
}

// Database is what a family tree database offers the place display.
type Database interface {
	PlaceSource
	// PlaceHierTypes lists the custom hierarchy kinds used by places.
	PlaceHierTypes() ([]string, error)
	// Metadata returns nil without error for a missing key.
	Metadata(key string) ([]byte, error)
	SetMetadata(key string, value []byte) error
}

// Metadata keys.
const (
	MetaPlaceTypes   = "place_types"
	MetaPlaceFormats = "place_formats"
)
