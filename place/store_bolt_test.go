package place

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openBolt(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "places.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBoltStorePlaces(t *testing.T) {
	require := require.New(t)
	s := openBolt(t)

	parish := named("p1", "St. Mary", Parish)
	parish.Refs = []PlaceRef{
		{Ref: "d1", Hier: CustomHier("deanery")},
		{Ref: "c1", Hier: Admin, Date: MustParseDate("after 1800")},
	}
	parish.Attributes = []Attribute{{Type: AttrPostal, Value: "12345"}}
	require.NoError(s.PutPlace(parish))
	require.NoError(s.PutPlace(named("c1", "Springfield", City)))
	require.Error(s.PutPlace(&Place{}))

	got, err := s.PlaceFromHandle("p1")
	require.NoError(err)
	require.Equal("St. Mary", got.Name())
	require.Equal(Parish, got.Type().Value)
	require.Equal(parish.Refs, got.Refs)
	require.Equal("12345", PostalCode(got))

	_, err = s.PlaceFromHandle("nope")
	require.ErrorIs(err, ErrNotFound)

	// writes replace the cached copy
	renamed := named("p1", "St. Mary's", Parish)
	require.NoError(s.PutPlace(renamed))
	got, err = s.PlaceFromHandle("p1")
	require.NoError(err)
	require.Equal("St. Mary's", got.Name())

	var handles []string
	require.NoError(s.Places(func(p *Place) bool {
		handles = append(handles, p.Handle)
		return true
	}))
	require.Equal([]string{"c1", "p1"}, handles)
}

func TestBoltStoreHierTypes(t *testing.T) {
	require := require.New(t)
	s := openBolt(t)
	for _, p := range []*Place{
		{Handle: "a", Refs: []PlaceRef{{Ref: "x", Hier: CustomHier("deanery")}, {Ref: "y", Hier: Admin}}},
		{Handle: "b", Refs: []PlaceRef{{Ref: "x", Hier: CustomHier("deanery")}, {Ref: "z", Hier: CustomHier("circuit")}}},
	} {
		require.NoError(s.PutPlace(p))
	}
	kinds, err := s.PlaceHierTypes()
	require.NoError(err)
	require.Equal([]string{"circuit", "deanery"}, kinds)
}

func TestBoltStoreMetadata(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "places.db")
	s, err := OpenBoltStore(path)
	require.NoError(err)

	v, err := s.Metadata(MetaPlaceTypes)
	require.NoError(err)
	require.Nil(v)
	require.NoError(s.SetMetadata(MetaPlaceTypes, []byte("blob")))
	require.NoError(s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(err)
	defer s.Close()
	v, err = s.Metadata(MetaPlaceTypes)
	require.NoError(err)
	require.Equal([]byte("blob"), v)
}

func TestBoltStoreSession(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "places.db")
	reg := NewRegistry()

	s, err := OpenBoltStore(path)
	require.NoError(err)
	session, err := OpenSession(reg, s)
	require.NoError(err)
	var pt PlaceType
	require.NoError(reg.Set(&pt, FromString("Landkreis")))
	require.NoError(s.PutPlace(&Place{Handle: "k", Names: []Name{{Value: "Mitte"}}, Types: []PlaceType{pt}}))
	require.NoError(session.Close())
	require.NoError(s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(err)
	defer s.Close()
	session, err = OpenSession(reg, s)
	require.NoError(err)
	defer session.Close()

	p, err := s.PlaceFromHandle("k")
	require.NoError(err)
	require.Equal("Landkreis", reg.Name(p.Type()))
}
