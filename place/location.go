package place

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Location is one entry of a resolved chain.
type Location struct {
	Name    string
	Type    PlaceType
	Handle  string
	Abbrevs []PlaceAbbrev
}

// Resolver walks "located in" references of places held by DB.
type Resolver struct {
	DB PlaceSource
	// AboutYears is how far an "about" date reaches; 0 means 50.
	AboutYears int
}

func (r *Resolver) about() int {
	if r.AboutYears <= 0 {
		return DefaultAboutYears
	}
	return r.AboutYears
}

// LocationList resolves the chain of place, from the place itself outward,
// following refs of kind hier valid at the given date. A nil date means the
// latest date of the place's names. Cycles and dangling references end the
// chain.
func (r *Resolver) LocationList(p *Place, at *Date, lang string, hier HierType) []Location {
	if p == nil {
		return nil
	}
	date := LatestDate(p)
	if at != nil {
		date = *at
	}
	about := r.about()
	visited := map[string]struct{}{p.Handle: {}}
	chain := []Location{r.location(p, date, lang, about)}
	for {
		handle := ""
		for _, ref := range p.Refs {
			if ref.Hier == hier && ref.Date.Covers(date, about) {
				handle = ref.Ref
				break
			}
		}
		if handle == "" {
			break
		}
		if _, seen := visited[handle]; seen {
			Logger().Debug("place hierarchy cycle", "place", p.Handle, "ref", handle)
			break
		}
		parent, err := r.DB.PlaceFromHandle(handle)
		if err != nil || parent == nil {
			if err != nil && !errors.Is(err, ErrNotFound) {
				Logger().Debug("place lookup failed", "ref", handle, "err", err)
			} else {
				Logger().Debug("dangling place reference", "place", p.Handle, "ref", handle)
			}
			break
		}
		visited[handle] = struct{}{}
		p = parent
		chain = append(chain, r.location(p, date, lang, about))
	}
	return chain
}

func (r *Resolver) location(p *Place, date Date, lang string, about int) Location {
	name, abbrevs := placeName(p, date, lang, about)
	return Location{Name: name, Type: placeType(p, date, about), Handle: p.Handle, Abbrevs: abbrevs}
}

// placeName picks the name valid at date in lang, falling back to the first
// valid name of any language, then to "?".
func placeName(p *Place, date Date, lang string, about int) (string, []PlaceAbbrev) {
	var endonym *Name
	for i := range p.Names {
		n := &p.Names[i]
		if !n.Date.Covers(date, about) {
			continue
		}
		if sameLanguage(n.Lang, lang) {
			return n.Value, n.Abbrevs
		}
		if endonym == nil {
			endonym = n
		}
	}
	if endonym != nil {
		return endonym.Value, endonym.Abbrevs
	}
	return "?", nil
}

func placeType(p *Place, date Date, about int) PlaceType {
	for _, t := range p.Types {
		if t.Date.Covers(date, about) {
			return t
		}
	}
	return NewPlaceType(Unknown)
}

// sameLanguage compares language tags, canonicalizing well-formed BCP 47 tags
// so that "EN" and "en" match. Malformed tags compare as plain text.
func sameLanguage(a, b string) bool {
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(a, b)
	}
	return ta == tb
}

// LatestDate is the latest date the place's names refer to. An undated name,
// an "after" name or a place without names yields today.
func LatestDate(p *Place) Date {
	var latest *Date
	for _, n := range p.Names {
		d := n.Date
		if d.IsEmpty() || d.Mod == ModAfter {
			return Today()
		}
		if d.IsCompound() && !d.Stop.isZero() {
			d = Date{Start: d.Stop}
		}
		if d.Mod == ModBefore {
			d = Date{Start: d.Start.prev()}
		}
		d.Mod = ModNone
		if latest == nil || latest.Before(d) {
			latest = &d
		}
	}
	if latest == nil {
		return Today()
	}
	return *latest
}

// MainLocation returns type id -> name for the administrative chain of p,
// leaving out unregistered custom types.
func (r *Resolver) MainLocation(p *Place, at *Date) map[int]string {
	out := map[int]string{}
	for _, loc := range r.LocationList(p, at, "", Admin) {
		if !loc.Type.IsCustom() {
			out[loc.Type.Value] = loc.Name
		}
	}
	return out
}

// Route is one path from a place to a top level place.
type Route []RouteStep

// RouteStep holds the primary type and all names of one place of a route.
type RouteStep struct {
	Type  int
	Names []string
}

// Locations returns every route up the hierarchy of p, over references of
// any kind and date.
func (r *Resolver) Locations(p *Place) []Route {
	type todo struct {
		place   *Place
		route   Route
		visited []string
	}
	var routes []Route
	stack := []todo{{p, Route{step(p)}, []string{p.Handle}}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ref := range cur.place.Refs {
			if slices.Contains(cur.visited, ref.Ref) {
				continue
			}
			parent, err := r.DB.PlaceFromHandle(ref.Ref)
			if err != nil || parent == nil {
				continue
			}
			stack = append(stack, todo{
				place:   parent,
				route:   append(slices.Clip(cur.route), step(parent)),
				visited: append(slices.Clip(cur.visited), ref.Ref),
			})
		}
		if len(cur.place.Refs) == 0 {
			routes = append(routes, cur.route)
		}
	}
	return routes
}

func step(p *Place) RouteStep {
	names := make([]string, 0, len(p.Names))
	for _, n := range p.Names {
		names = append(names, n.Value)
	}
	return RouteStep{Type: p.Type().Value, Names: names}
}

// LocatedIn reports whether the place with handle inner lies, directly or
// transitively, inside the place with handle outer.
func (r *Resolver) LocatedIn(inner, outer string) bool {
	p, err := r.DB.PlaceFromHandle(inner)
	if err != nil || p == nil {
		return false
	}
	type todo struct {
		place   *Place
		visited []string
	}
	stack := []todo{{p, []string{inner}}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ref := range cur.place.Refs {
			if ref.Ref == outer {
				return true
			}
			if slices.Contains(cur.visited, ref.Ref) {
				continue
			}
			parent, err := r.DB.PlaceFromHandle(ref.Ref)
			if err != nil || parent == nil {
				continue
			}
			stack = append(stack, todo{parent, append(slices.Clip(cur.visited), ref.Ref)})
		}
	}
	return false
}

// PostalCode joins the postal code attributes of p.
func PostalCode(p *Place) string {
	var codes []string
	for _, a := range p.Attributes {
		if a.Type == AttrPostal && a.Value != "" {
			codes = append(codes, a.Value)
		}
	}
	return strings.Join(codes, ", ")
}
