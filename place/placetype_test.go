package place

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceTypeKinds(t *testing.T) {
	require := require.New(t)

	require.True(NewPlaceType(City).IsNumbered())
	require.False(NewPlaceType(City).IsCustomNumbered())
	require.True(NewPlaceType(-100).IsCustomNumbered())
	require.True(NewPlaceType(Custom - 1).IsManualCustom())
	require.False(NewPlaceType(Custom - 1).IsNumbered())
	require.True(PlaceType{Value: Custom, Custom: "Shire"}.IsCustom())
	require.True(PlaceType{}.IsEmpty())
	require.False(PlaceType{Date: DateOf(1850, 0, 0)}.IsEmpty())
}

func TestPlaceTypeEquivalence(t *testing.T) {
	require := require.New(t)

	a := PlaceType{Value: City, Date: DateOf(1850, 0, 0), Citations: []string{"c1"}}
	b := PlaceType{Value: City, Date: DateOf(1850, 0, 0), Citations: []string{"c2"}}
	require.Equal(Identical, a.IsEquivalent(a))
	require.Equal(Equal, a.IsEquivalent(b))
	require.Equal(Different, a.IsEquivalent(NewPlaceType(Town)))
	require.Equal(Different, a.IsEquivalent(NewPlaceType(City)))

	a.Merge(b)
	a.Merge(b)
	require.Equal([]string{"c1", "c2"}, a.Citations)
}
