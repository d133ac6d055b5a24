package place

import "strings"

// An innermost entry whose groups are all in insignificant may stay hidden.
const insignificant = GroupPlace | GroupUnpop | GroupOther | GroupBuilding

// Title is the outcome of rendering a chain.
type Title struct {
	Text string
	// Skipped holds the indexes of rules that could not be applied.
	Skipped []int
}

// slot is a shown chain position: the text shown there and the chain entry it
// came from. Street/number rules move text between slots.
type slot struct {
	text string
	src  int
}

type titleState struct {
	chain []Location
	shown map[int]slot
}

// Render applies the rules of f to chain, innermost entry first, and joins the
// shown names with sep. Rules that cannot be applied are skipped and
// reported.
func Render(reg *Registry, chain []Location, f *Format, sep string) Title {
	if len(chain) == 0 {
		return Title{}
	}
	st := &titleState{chain: chain, shown: make(map[int]slot, len(chain))}
	for i, loc := range chain {
		st.shown[i] = slot{loc.Name, i}
	}
	var skipped []int
	for i, rule := range f.Rules {
		if rule.Where != "" && !st.contains(rule.Where) {
			continue
		}
		if !rule.Valid(reg) {
			skipped = append(skipped, i)
			continue
		}
		switch rule.Target {
		case TargetGroup:
			g := Group(rule.Value)
			st.apply(rule, func(loc Location) bool { return reg.Groups(loc.Type)&g != 0 })
		case TargetType:
			st.apply(rule, func(loc Location) bool { return loc.Type.Value == rule.Value })
		case TargetStreetNumber:
			st.streetNumber(rule)
		}
	}

	// keep the innermost place when it is more than a plain place
	if _, ok := st.shown[0]; !ok && reg.Groups(chain[0].Type)&^insignificant != 0 {
		st.shown[0] = slot{chain[0].Name, 0}
	}

	var parts []string
	for n := range chain {
		i := n
		if f.Reverse {
			i = len(chain) - 1 - n
		}
		if s, ok := st.shown[i]; ok && s.text != "" {
			parts = append(parts, s.text)
		}
	}
	return Title{Text: strings.Join(parts, sep), Skipped: skipped}
}

func (st *titleState) contains(handle string) bool {
	for _, loc := range st.chain {
		if loc.Handle == handle {
			return true
		}
	}
	return false
}

// apply runs a group or type rule. Smallest and largest keep the first match
// met when scanning from the inner or outer end respectively and hide the
// other matches; all shows every match and hidden hides them.
func (st *titleState) apply(rule Rule, match func(Location) bool) {
	n := len(st.chain)
	order := func(k int) int { return k }
	if rule.Vis == VisLargest {
		order = func(k int) int { return n - 1 - k }
	}
	first := true
	for k := 0; k < n; k++ {
		i := order(k)
		if !match(st.chain[i]) {
			continue
		}
		switch rule.Vis {
		case VisSmallest, VisLargest:
			if first {
				st.show(i, rule.Abbrev)
				first = false
			} else {
				delete(st.shown, i)
			}
		case VisAll:
			st.show(i, rule.Abbrev)
		default:
			delete(st.shown, i)
		}
	}
}

func (st *titleState) show(i int, abb AbbrevType) {
	st.shown[i] = slot{abbreviate(st.chain[i], abb), i}
}

// abbreviate returns the text of loc for the abbreviation instruction.
func abbreviate(loc Location, abb AbbrevType) string {
	switch abb.Value {
	case AbbrevNone:
		return loc.Name
	case AbbrevFirst:
		if len(loc.Abbrevs) > 0 {
			return loc.Abbrevs[0].Value
		}
		return loc.Name
	}
	for _, a := range loc.Abbrevs {
		if a.Type == abb {
			return a.Value
		}
	}
	return loc.Name
}

// streetNumber hides street and number entries, or puts the first street and
// first number in the requested order by swapping their texts.
func (st *titleState) streetNumber(rule Rule) {
	street, number := -1, -1
	for i, loc := range st.chain {
		switch loc.Type.Value {
		case Street:
			if rule.Vis == VisHidden {
				delete(st.shown, i)
			} else if street < 0 {
				street = i
			}
		case Number:
			if rule.Vis == VisHidden {
				delete(st.shown, i)
			} else if number < 0 {
				number = i
			}
		}
	}
	if street < 0 || number < 0 {
		return
	}
	ps, pn := st.position(street), st.position(number)
	if ps < 0 || pn < 0 {
		return
	}
	if (rule.Vis == VisNumberFirst && pn < ps) || (rule.Vis == VisStreetFirst && ps < pn) {
		return
	}
	st.shown[ps], st.shown[pn] = st.shown[pn], st.shown[ps]
}

// position returns the slot currently showing chain entry src, or -1.
func (st *titleState) position(src int) int {
	for i, s := range st.shown {
		if s.src == src {
			return i
		}
	}
	return -1
}
