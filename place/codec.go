package place

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

type typeRecord struct {
	ID      int    `msgpack:"id"`
	Name    string `msgpack:"name"`
	Groups  Group  `msgpack:"groups"`
	Visible bool   `msgpack:"visible"`
}

type groupRecord struct {
	Bit  Group  `msgpack:"bit"`
	Name string `msgpack:"name"`
	Key  string `msgpack:"key"`
}

// EncodeRegistryData writes the registry state as two MessagePack arrays,
// groups then types, each sorted by id.
func EncodeRegistryData(d *RegistryData) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeArrayLen(len(d.Groups)); err != nil {
		return nil, err
	}
	for _, g := range sortedKeys(d.Groups) {
		e := d.Groups[g]
		if err := enc.Encode(groupRecord{Bit: g, Name: e.Name, Key: e.Key}); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeArrayLen(len(d.Types)); err != nil {
		return nil, err
	}
	for _, id := range sortedKeys(d.Types) {
		e := d.Types[id]
		if err := enc.Encode(typeRecord{ID: id, Name: e.Name, Groups: e.Groups, Visible: e.Visible}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeRegistryData reads what EncodeRegistryData wrote.
func DecodeRegistryData(raw []byte) (*RegistryData, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	d := &RegistryData{Types: map[int]TypeEntry{}, Groups: map[Group]GroupEntry{}}
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		var g groupRecord
		if err := dec.Decode(&g); err != nil {
			return nil, err
		}
		d.Groups[g.Bit] = GroupEntry{Name: g.Name, Key: g.Key}
	}
	if n, err = dec.DecodeArrayLen(); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		var t typeRecord
		if err := dec.Decode(&t); err != nil {
			return nil, err
		}
		d.Types[t.ID] = TypeEntry{Name: t.Name, Groups: t.Groups, Visible: t.Visible}
	}
	return d, nil
}

// EncodeFormats writes formats as a MessagePack array.
func EncodeFormats(formats []*Format) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeArrayLen(len(formats)); err != nil {
		return nil, err
	}
	for _, f := range formats {
		if err := enc.Encode(f); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeFormats reads what EncodeFormats wrote.
func DecodeFormats(raw []byte) ([]*Format, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	out := make([]*Format, 0, n)
	for i := 0; i < n; i++ {
		f := &Format{}
		if err := dec.Decode(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// WriteFormatsJSON writes formats as an indented JSON array.
func WriteFormatsJSON(w io.Writer, formats []*Format) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(formats)
}

type formatSpec struct {
	Name     string     `yaml:"name"`
	Hier     HierType   `yaml:"hier"`
	Language string     `yaml:"language"`
	Reverse  bool       `yaml:"reverse"`
	Rules    []ruleSpec `yaml:"rules"`
}

// ruleSpec names groups and types instead of using their ids.
type ruleSpec struct {
	Where  string      `yaml:"where"`
	Group  string      `yaml:"group"`
	Type   string      `yaml:"type"`
	Street bool        `yaml:"street_number"`
	Vis    *Visibility `yaml:"vis"`
	Abbrev AbbrevType  `yaml:"abbrev"`
}

// ReadFormatsYAML reads a list of formats whose rules refer to groups and
// types by name. Every rule needs a vis; abbrev defaults to none:
//
//	- name: Short
//	  hier: admin
//	  rules:
//	    - {group: Regions, vis: hidden}
//	    - {type: City, vis: smallest, abbrev: first}
//	    - {street_number: true, vis: street-number}
func ReadFormatsYAML(r io.Reader, reg *Registry) ([]*Format, error) {
	var specs []formatSpec
	if err := yaml.NewDecoder(r).Decode(&specs); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	out := make([]*Format, 0, len(specs))
	for _, fs := range specs {
		if fs.Name == "" {
			return nil, fmt.Errorf("format without name")
		}
		f := &Format{Name: fs.Name, Hier: fs.Hier, Language: fs.Language, Reverse: fs.Reverse}
		for i, rs := range fs.Rules {
			rule, err := rs.rule(reg)
			if err != nil {
				return nil, fmt.Errorf("format %q rule %d: %w", fs.Name, i, err)
			}
			f.Rules = append(f.Rules, rule)
		}
		out = append(out, f)
	}
	return out, nil
}

func (rs ruleSpec) rule(reg *Registry) (Rule, error) {
	rule := Rule{Where: rs.Where, Abbrev: rs.Abbrev}
	switch {
	case rs.Street:
		rule.Target = TargetStreetNumber
	case rs.Group != "":
		g, ok := reg.LookupGroup(rs.Group)
		if !ok {
			return rule, fmt.Errorf("unknown group: %s", rs.Group)
		}
		rule.Target, rule.Value = TargetGroup, int(g)
	case rs.Type != "":
		t, ok := reg.Lookup(rs.Type)
		if !ok {
			if s, near := reg.Suggest(rs.Type); near {
				return rule, fmt.Errorf("unknown place type: %s (did you mean %s?)", rs.Type, s)
			}
			return rule, fmt.Errorf("unknown place type: %s", rs.Type)
		}
		rule.Target, rule.Value = TargetType, t.Value
	default:
		return rule, fmt.Errorf("rule needs group, type or street_number")
	}
	if rs.Vis == nil {
		return rule, fmt.Errorf("%s rule needs vis", rule.Target)
	}
	rule.Vis = *rs.Vis
	if !rule.Valid(reg) {
		return rule, fmt.Errorf("visibility %s does not apply to %s rules", rule.Vis, rule.Target)
	}
	return rule, nil
}

type placeSpec struct {
	Handle     string        `yaml:"handle"`
	ID         string        `yaml:"id"`
	Title      string        `yaml:"title"`
	Names      []Name        `yaml:"names"`
	Types      []typeRefSpec `yaml:"types"`
	Refs       []PlaceRef    `yaml:"refs"`
	Attributes []Attribute   `yaml:"attributes"`
}

// typeRefSpec names a type; unknown names are registered.
type typeRefSpec struct {
	Name      string   `yaml:"name"`
	Date      Date     `yaml:"date"`
	Citations []string `yaml:"citations"`
}

// ReadPlacesYAML reads a list of places. Types are given by name and new
// names are registered in reg; places without handle get a random one.
func ReadPlacesYAML(r io.Reader, reg *Registry) ([]*Place, error) {
	var specs []placeSpec
	if err := yaml.NewDecoder(r).Decode(&specs); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	out := make([]*Place, 0, len(specs))
	for _, ps := range specs {
		p := &Place{Handle: ps.Handle, ID: ps.ID, Title: ps.Title, Refs: ps.Refs, Attributes: ps.Attributes}
		if p.Handle == "" {
			p.Handle = uuid.NewString()
		}
		for _, n := range ps.Names {
			v, ok := cleanName(n.Value)
			if !ok {
				continue
			}
			n.Value = v
			p.Names = append(p.Names, n)
		}
		for _, ts := range ps.Types {
			t := PlaceType{Date: ts.Date, Citations: ts.Citations}
			if err := reg.Set(&t, FromString(ts.Name)); err != nil {
				return nil, fmt.Errorf("place %s: %w", p.Handle, err)
			}
			p.Types = append(p.Types, t)
		}
		out = append(out, p)
	}
	return out, nil
}
