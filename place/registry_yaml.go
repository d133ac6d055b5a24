package place

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// typeFileSpec is the layout of a type definition file:
//
//	groups:
//	  - key: ADM
//	    name: Administrative
//	types:
//	  - id: -1001
//	    name: Landkreis
//	    groups: [Region, ADM]
type typeFileSpec struct {
	Groups []groupSpec `yaml:"groups"`
	Types  []typeSpec  `yaml:"types"`
}

type groupSpec struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type typeSpec struct {
	ID     int      `yaml:"id"`
	Name   string   `yaml:"name"`
	Groups []string `yaml:"groups"`
	Hidden bool     `yaml:"hidden"`
}

// LoadTypes reads numbered type definitions from a YAML file, or from every
// .yml/.yaml file below a directory, and registers them. Ids already present
// keep their local entry.
func (r *Registry) LoadTypes(path string) (int, error) {
	added := 0
	walk := func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".yml") && !strings.HasSuffix(d.Name(), ".yaml") {
			return nil
		}
		raw, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		n, err := r.LoadTypesYAML(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		added += n
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return added, err
	}
	return added, nil
}

// LoadTypesYAML registers the definitions of one YAML document and returns how
// many types were added.
func (r *Registry) LoadTypesYAML(raw []byte) (int, error) {
	var spec typeFileSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range spec.Groups {
		if g.Key == "" {
			return 0, fmt.Errorf("group without key: %q", g.Name)
		}
		name := g.Name
		if name == "" {
			name = g.Key
		}
		if _, err := r.addGroup(g.Key, name); err != nil {
			return 0, err
		}
	}
	seen := map[int]struct{}{}
	added := 0
	for _, ts := range spec.Types {
		if !isCustomNumbered(ts.ID) {
			return added, fmt.Errorf("type %q: id %d is not a numbered custom id", ts.Name, ts.ID)
		}
		if _, dup := seen[ts.ID]; dup {
			return added, fmt.Errorf("duplicate type id: %d", ts.ID)
		}
		seen[ts.ID] = struct{}{}
		if _, ok := r.types[ts.ID]; ok {
			continue
		}
		var groups Group
		for _, gn := range ts.Groups {
			g, err := r.addGroup(gn, gn)
			if err != nil {
				return added, err
			}
			groups |= g
		}
		r.types[ts.ID] = TypeEntry{Name: r.validName(ts.Name, ts.ID), Groups: groups, Visible: !ts.Hidden}
		added++
	}
	return added, nil
}
