package place

// TypeSource is one of the ways a PlaceType can be configured. Build it with
// ByID, ByIDName, ByIDNameGroup, FromType or FromString.
type TypeSource interface {
	typeSource()
}

type byID struct{ id int }

type byIDName struct {
	id   int
	name string
}

type byIDNameGroup struct {
	id    int
	name  string
	group Group
}

type fromType struct{ t PlaceType }

type fromString struct{ s string }

func (byID) typeSource()          {}
func (byIDName) typeSource()      {}
func (byIDNameGroup) typeSource() {}
func (fromType) typeSource()      {}
func (fromString) typeSource()    {}

// ByID selects a type by id without touching the registry.
func ByID(id int) TypeSource { return byID{id} }

// ByIDName selects a type by id, registering it under name when the id is a
// numbered one not known yet. With id Custom it sets an unregistered custom
// type named name.
func ByIDName(id int, name string) TypeSource { return byIDName{id, name} }

// ByIDNameGroup is ByIDName with explicit groups for a new registration.
func ByIDNameGroup(id int, name string, group Group) TypeSource {
	return byIDNameGroup{id, name, group}
}

// FromType copies value, date and citations from t.
func FromType(t PlaceType) TypeSource { return fromType{t} }

// FromString resolves a canonical or display name, registering a new type if
// nothing matches.
func FromString(s string) TypeSource { return fromString{s} }
