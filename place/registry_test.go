package place

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryDefaults(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()

	require.Equal(0, reg.Status())
	require.Equal("City", reg.Resolve(City).Name)
	require.Equal("Unknown", reg.Resolve(4242).Name)
	require.Equal(GroupRegion, reg.Groups(NewPlaceType(County)))
	require.Equal(Group(0), reg.Groups(NewPlaceType(4242)))
	require.Equal("Shire", reg.Name(PlaceType{Value: Custom, Custom: "Shire"}))
	require.Equal("Parish", reg.XMLString(NewPlaceType(Parish)))
	require.Empty(reg.XMLString(PlaceType{Value: Custom, Custom: "Shire"}))
	require.Len(reg.Map(), 22)
}

func TestRegisterName(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()

	city, err := reg.RegisterName("city")
	require.NoError(err)
	require.Equal(City, city.Value)

	t1, err := reg.RegisterName("Landkreis")
	require.NoError(err)
	require.True(t1.IsManualCustom())

	t2, err := reg.RegisterName(" landkreis ")
	require.NoError(err)
	require.Equal(t1.Value, t2.Value)
	require.Equal("Landkreis", reg.Name(t2))
	require.Equal(GroupPlace, reg.Groups(t2))

	empty, err := reg.RegisterName("")
	require.NoError(err)
	require.Equal(Unknown, empty.Value)
}

func TestLookupAndSuggest(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()

	got, ok := reg.Lookup("HAMLET")
	require.True(ok)
	require.Equal(Hamlet, got.Value)
	_, ok = reg.Lookup("Landkreis")
	require.False(ok)
	require.Len(reg.Map(), 22, "lookup must not register")

	s, ok := reg.Suggest("Citty")
	require.True(ok)
	require.Equal("City", s)
	_, ok = reg.Suggest("Archipelago")
	require.False(ok)
}

func TestLookupGroup(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()

	for _, name := range []string{"regions", "Region"} {
		g, ok := reg.LookupGroup(name)
		require.True(ok, name)
		require.Equal(GroupRegion, g)
	}
	g, ok := reg.LookupGroup("other")
	require.True(ok)
	require.Equal(GroupOther, g)
	_, ok = reg.LookupGroup("Deaneries")
	require.False(ok)
}

func TestValidName(t *testing.T) {
	reg := NewRegistry()
	require.Equal(t, "Shire", reg.ValidName("Shire", Custom-1))
	require.Equal(t, "City_1", reg.ValidName("City", Custom-1))
	require.Equal(t, "City5", reg.ValidName("City", -5))
}

func TestAddGroup(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()

	g, err := reg.AddGroup("Deaneries")
	require.NoError(err)
	require.Equal(Group(1)<<6, g)
	again, err := reg.AddGroup("deaneries")
	require.NoError(err)
	require.Equal(g, again)
	require.True(reg.HasGroup(g | GroupPlace))
	require.True(reg.HasGroup(GroupOther))
	require.False(reg.HasGroup(Group(1) << 7))
	require.False(reg.HasGroup(0))
	require.False(reg.HasGroup(-1))
	require.False(reg.HasGroup(Group(1) << MaxGroupBits))

	g, err = reg.AddGroup("Places")
	require.NoError(err)
	require.Equal(GroupPlace, g)
}

func TestAddGroupExhausted(t *testing.T) {
	reg := NewRegistry()
	for i := 6; i < MaxGroupBits; i++ {
		g, err := reg.AddGroup(fmt.Sprintf("G%d", i))
		require.NoError(t, err)
		require.Equal(t, Group(1)<<i, g)
	}
	_, err := reg.AddGroup("One too many")
	require.ErrorIs(t, err, ErrCapacityExhausted)
}

func TestRegistrySet(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()
	var pt PlaceType

	require.NoError(reg.Set(&pt, ByID(Town)))
	require.Equal(Town, pt.Value)

	require.NoError(reg.Set(&pt, ByIDName(-100, "Amt")))
	require.Equal(-100, pt.Value)
	require.Equal("Amt", reg.Name(pt))
	require.Equal(GroupPlace, reg.Groups(pt))

	require.NoError(reg.Set(&pt, ByIDNameGroup(-101, "Kreis", GroupRegion)))
	require.Equal(GroupRegion, reg.Groups(pt))

	// a known id keeps its entry
	require.NoError(reg.Set(&pt, ByIDName(City, "Stadt")))
	require.Equal("City", reg.Name(pt))

	require.NoError(reg.Set(&pt, ByIDName(Custom, "Shire")))
	require.True(pt.IsCustom())
	require.Len(reg.Map(), 24)
	require.NoError(reg.RegisterCustom(&pt))
	require.True(pt.IsManualCustom())
	require.Equal("Shire", reg.Name(pt))
	require.ErrorIs(reg.RegisterCustom(&pt), ErrInvalidType)

	src := PlaceType{Value: Farm, Date: DateOf(1850, 0, 0), Citations: []string{"c1"}}
	require.NoError(reg.Set(&pt, FromType(src)))
	require.True(pt.IsEqual(src))

	pt = PlaceType{Date: DateOf(1900, 0, 0)}
	require.NoError(reg.Set(&pt, FromString("Hamlet")))
	require.Equal(Hamlet, pt.Value)
	require.Equal(DateOf(1900, 0, 0), pt.Date)
}

func TestMenu(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()
	require.Nil(reg.Menu())

	lk, err := reg.RegisterName("Landkreis")
	require.NoError(err)
	menu := reg.Menu()
	require.Len(menu, 2)
	require.Equal("Common", menu[0].Label)
	require.Contains(menu[0].Types, City)
	require.Equal("Places", menu[1].Label)
	require.Contains(menu[1].Types, lk.Value)
	require.Contains(menu[1].Types, Town)
}

func TestMenuPages(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()
	for i := 0; i < 15; i++ {
		_, err := reg.RegisterName(fmt.Sprintf("Kind %02d", i))
		require.NoError(err)
	}
	menu := reg.Menu()
	require.Len(menu, 3)
	require.Equal("Places", menu[1].Label)
	require.Len(menu[1].Types, menuPage)
	require.Equal("Places cont.", menu[2].Label)
	require.Len(menu[2].Types, 5)
}
