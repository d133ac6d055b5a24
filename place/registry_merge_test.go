package place

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryOpenClose(t *testing.T) {
	require := require.New(t)

	a := NewRegistry()
	_, err := a.RegisterName("Landkreis")
	require.NoError(err)
	b := NewRegistry()
	_, err = b.RegisterName("Amt")
	require.NoError(err)

	reg := NewRegistry()
	require.NoError(reg.Open(nil))
	require.Equal(1, reg.Status())
	_, err = reg.Close()
	require.NoError(err)
	_, err = reg.Close()
	require.ErrorIs(err, ErrNotOpen)

	require.NoError(reg.Open(a.Snapshot()))
	require.Equal(1, reg.Status())
	lk, ok := reg.Lookup("Landkreis")
	require.True(ok)
	want, _ := a.Lookup("Landkreis")
	require.Equal(want.Value, lk.Value)

	require.NoError(reg.Open(b.Snapshot()))
	require.Equal(2, reg.Status())
	_, ok = reg.Lookup("Amt")
	require.True(ok)

	data, err := reg.Close()
	require.NoError(err)
	require.Equal(1, reg.Status())
	require.Len(data.Types, 24)

	_, err = reg.Close()
	require.NoError(err)
	require.Equal(0, reg.Status())
	_, ok = reg.Lookup("Landkreis")
	require.False(ok)
	require.Len(reg.Map(), 22)
}

func TestRegistryMergeIdempotent(t *testing.T) {
	require := require.New(t)

	src := NewRegistry()
	_, err := src.RegisterName("Landkreis")
	require.NoError(err)
	var pt PlaceType
	require.NoError(src.Set(&pt, ByIDName(-100, "Amt")))

	reg := NewRegistry()
	require.NoError(reg.Merge(src.Snapshot()))
	first := reg.Snapshot()
	require.NoError(reg.Merge(src.Snapshot()))
	require.Equal(first, reg.Snapshot())

	require.Equal("Amt", reg.Resolve(-100).Name)
	lk, ok := reg.Lookup("Landkreis")
	require.True(ok)
	require.True(lk.IsManualCustom())
	require.Equal(0, reg.Status())
}

func TestRegistryMergeGroups(t *testing.T) {
	require := require.New(t)

	src := NewRegistry()
	parishes, err := src.AddGroup("Parishes")
	require.NoError(err)
	var pt PlaceType
	require.NoError(src.Set(&pt, ByIDNameGroup(-200, "Kirchspiel", parishes|GroupRegion)))

	reg := NewRegistry()
	deaneries, err := reg.AddGroup("Deaneries")
	require.NoError(err)
	require.Equal(parishes, deaneries)

	require.NoError(reg.Merge(src.Snapshot()))
	local, ok := reg.LookupGroup("Parishes")
	require.True(ok)
	require.Equal(Group(1)<<7, local)
	require.Equal(local|GroupRegion, reg.Groups(NewPlaceType(-200)))
}

func TestRegistryMergeKeepsLocalEntries(t *testing.T) {
	require := require.New(t)

	src := NewRegistry()
	var pt PlaceType
	require.NoError(src.Set(&pt, ByIDName(-100, "Amt")))

	reg := NewRegistry()
	require.NoError(reg.Set(&pt, ByIDName(-100, "Bailiwick")))
	require.NoError(reg.Merge(src.Snapshot()))
	require.Equal("Bailiwick", reg.Resolve(-100).Name)
}
