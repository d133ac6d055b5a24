package place

import (
	"maps"
)

// RegistryData is the persisted customization of a registry, stored as
// database metadata.
type RegistryData struct {
	Types  map[int]TypeEntry
	Groups map[Group]GroupEntry
}

// IsEmpty reports whether there is nothing to load.
func (d *RegistryData) IsEmpty() bool {
	return d == nil || (len(d.Types) == 0 && len(d.Groups) == 0)
}

// Snapshot copies the current registry state.
func (r *Registry) Snapshot() *RegistryData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot()
}

func (r *Registry) snapshot() *RegistryData {
	return &RegistryData{Types: maps.Clone(r.types), Groups: maps.Clone(r.groups)}
}

// Open loads the customization of a database being opened. A registry holding
// defaults takes the data as is; otherwise the data is merged into what other
// open databases contributed. Either way the open count goes up by one; data
// may be nil for a database without customization.
func (r *Registry) Open(data *RegistryData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case data.IsEmpty():
	case r.status == 0:
		r.types = maps.Clone(data.Types)
		r.groups = maps.Clone(data.Groups)
		if _, ok := r.types[Unknown]; !ok {
			r.types[Unknown] = defaultTypes()[Unknown]
		}
	default:
		if err := r.merge(data); err != nil {
			return err
		}
	}
	r.status++
	return nil
}

// Close returns the state to store in the database being closed and drops the
// open count. The registry returns to defaults when the count reaches zero.
func (r *Registry) Close() (*RegistryData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == 0 {
		return nil, ErrNotOpen
	}
	out := r.snapshot()
	r.status--
	if r.status == 0 {
		r.reset()
	}
	return out, nil
}

// Merge folds a foreign registry into this one without changing the open
// count. Groups are matched by key or name and reallocated locally. Numbered
// ids are kept as they are and never overwrite a local entry; manual ids are
// matched by name and get a fresh local id when new. Merging the same data
// again changes nothing.
func (r *Registry) Merge(data *RegistryData) error {
	if data.IsEmpty() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.merge(data)
}

func (r *Registry) merge(data *RegistryData) error {
	xlate := make(map[Group]Group, len(data.Groups))
	for _, g := range sortedKeys(data.Groups) {
		e := data.Groups[g]
		key := e.Key
		if key == "" {
			key = e.Name
		}
		local, err := r.addGroup(key, e.Name)
		if err != nil {
			return err
		}
		xlate[g] = local
	}
	for _, id := range sortedKeys(data.Types) {
		e := data.Types[id]
		localID := id
		if isNumbered(id) {
			if _, ok := r.types[id]; ok {
				continue
			}
		} else {
			if r.hasName(e.Name) {
				continue
			}
			n, err := r.newID()
			if err != nil {
				return err
			}
			localID = n
		}
		var groups Group
		for g, local := range xlate {
			if g&e.Groups != 0 {
				groups |= local
			}
		}
		r.types[localID] = TypeEntry{Name: r.validName(e.Name, localID), Groups: groups, Visible: true}
	}
	return nil
}

func (r *Registry) hasName(name string) bool {
	f := fold(name)
	for _, e := range r.types {
		if fold(e.Name) == f {
			return true
		}
	}
	return false
}
