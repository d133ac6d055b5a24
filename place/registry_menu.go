package place

import (
	"slices"
	"strings"
)

const menuPage = 20

// MenuSection is one labelled list of type ids for a selection widget.
type MenuSection struct {
	Label string `json:"label"`
	Types []int  `json:"types"`
}

var menuGroupOrder = []Group{GroupPlace, GroupUnpop, GroupCountry, GroupRegion, GroupBuilding}

// Menu organizes the registry by group. It returns nil when only the fixed
// types exist, in which case a flat list is enough. The first section holds
// the common types; each group then gets pages of up to 20 visible types,
// sorted by name. Types without a group are listed under GroupOther when
// that group is defined.
func (r *Registry) Menu() []MenuSection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var common []int
	commonOnly := true
	for _, id := range sortedKeys(r.types) {
		if id >= 100 || id < 0 {
			if id != Custom {
				commonOnly = false
			}
			continue
		}
		common = append(common, id)
	}
	if commonOnly {
		return nil
	}
	menu := []MenuSection{{Label: "Common", Types: common}}

	byName := sortedKeys(r.types)
	slices.SortStableFunc(byName, func(a, b int) int {
		return strings.Compare(r.types[a].Name, r.types[b].Name)
	})

	for _, g := range r.groupOrder() {
		label := r.groups[g].Name
		var items []int
		cont, custom := false, false
		flush := func() {
			l := label
			if cont {
				l = label + " cont."
			}
			menu = append(menu, MenuSection{Label: l, Types: items})
			cont = true
			items = nil
		}
		for _, id := range byName {
			e := r.types[id]
			if id == Unknown || id == Custom || !e.Visible {
				continue
			}
			if !(e.Groups == 0 && g == GroupOther) && e.Groups&g == 0 {
				continue
			}
			items = append(items, id)
			if id < 0 || id > 512 {
				custom = true
			}
			if len(items) == menuPage {
				flush()
			}
		}
		if len(items) > 0 && custom {
			flush()
		}
	}
	return menu
}

func (r *Registry) groupOrder() []Group {
	out := make([]Group, 0, len(r.groups))
	for _, g := range menuGroupOrder {
		if _, ok := r.groups[g]; ok {
			out = append(out, g)
		}
	}
	for _, g := range sortedKeys(r.groups) {
		if !slices.Contains(menuGroupOrder, g) {
			out = append(out, g)
		}
	}
	return out
}
