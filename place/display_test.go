package place

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openSpringfield(t *testing.T) (*Session, *MemStore) {
	t.Helper()
	db := springfield()
	s, err := OpenSession(NewRegistry(), db)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, db
}

func shortFormat() *Format {
	return &Format{Name: "Short", Hier: Admin, Rules: []Rule{
		{Target: TargetGroup, Value: int(GroupRegion), Vis: VisHidden},
		{Target: TargetStreetNumber, Vis: VisHidden},
	}}
}

func TestDisplay(t *testing.T) {
	require := require.New(t)
	s, db := openSpringfield(t)
	p, _ := db.PlaceFromHandle("number")

	d := NewDisplayer(DefaultConfig())
	require.Equal("12, Main Street, Springfield, Anystate, USA", d.Display(s, p, nil, -1))
	require.Equal("", d.Display(s, nil, nil, -1))

	d.SetFormats([]*Format{DefaultFormat(), shortFormat()})
	require.Equal("Springfield, USA", d.Display(s, p, nil, 1))
}

func TestDisplayDefaultFormat(t *testing.T) {
	require := require.New(t)
	s, db := openSpringfield(t)
	p, _ := db.PlaceFromHandle("city")

	cfg := DefaultConfig()
	cfg.DefaultFormat = 1
	d := NewDisplayer(cfg)
	d.SetFormats([]*Format{DefaultFormat(), shortFormat()})
	require.Equal("Springfield, USA", d.Display(s, p, nil, -1))

	require.Equal("Springfield, Anystate, USA", d.Display(s, p, nil, 7))
	require.Equal(0, d.Config().DefaultFormat)
	require.Equal("Springfield, Anystate, USA", d.Display(s, p, nil, -1))
}

func TestDisplayStoredTitle(t *testing.T) {
	s, _ := openSpringfield(t)
	cfg := DefaultConfig()
	cfg.PlaceAuto = false
	d := NewDisplayer(cfg)
	p := &Place{Handle: "x", Title: "Springfield, AS"}
	require.Equal(t, "Springfield, AS", d.Display(s, p, nil, -1))
}

func TestDisplayEvent(t *testing.T) {
	require := require.New(t)
	s, _ := openSpringfield(t)
	d := NewDisplayer(DefaultConfig())

	ev := &Event{PlaceHandle: "city", Date: DateOf(1950, 0, 0)}
	require.Equal("Springfield, Anystate, USA", d.DisplayEvent(s, ev, -1))
	require.Equal("", d.DisplayEvent(s, &Event{PlaceHandle: "missing"}, -1))
	require.Equal("", d.DisplayEvent(s, &Event{}, -1))
}

func TestDisplayerLoadFormats(t *testing.T) {
	require := require.New(t)
	d := NewDisplayer(DefaultConfig())

	dropped := d.LoadFormats([]*Format{{Name: "Full"}, shortFormat(), {Name: "Short"}})
	require.Equal([]string{"Full", "Short"}, dropped)
	formats := d.Formats()
	require.Len(formats, 2)
	require.Equal("Short", formats[1].Name)
	require.Len(formats[1].Rules, 2)

	formats[1].Rules = nil
	require.Len(d.Formats()[1].Rules, 2)
}

func TestDisplayerPruneRules(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()
	stale := shortFormat()
	stale.Rules = append(stale.Rules, Rule{Target: TargetType, Value: -999, Vis: VisHidden})

	d := NewDisplayer(DefaultConfig())
	d.SetFormats([]*Format{DefaultFormat(), stale})
	require.Equal(map[string]int{"Short": 1}, d.PruneRules(reg))
	require.Len(d.Formats()[1].Rules, 2)
	require.Empty(d.PruneRules(reg))
}
