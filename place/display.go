package place

import (
	"slices"
	"sync"
)

// Displayer renders place titles with a list of formats. Format 0 is the
// built-in "Full" format unless replaced with SetFormats.
type Displayer struct {
	mu      sync.RWMutex
	cfg     Config
	formats []*Format
}

// NewDisplayer returns a displayer holding the default format.
func NewDisplayer(cfg Config) *Displayer {
	if cfg.Separator == "" {
		cfg.Separator = ", "
	}
	return &Displayer{cfg: cfg, formats: []*Format{DefaultFormat()}}
}

// Config returns the current preferences.
func (d *Displayer) Config() Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

// format picks the format for index; -1 selects the configured default and an
// index out of range falls back to 0, resetting the default.
func (d *Displayer) format(index int) *Format {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index == -1 {
		index = d.cfg.DefaultFormat
	}
	if index < 0 || index >= len(d.formats) {
		index = 0
		d.cfg.DefaultFormat = 0
	}
	if len(d.formats) == 0 {
		return DefaultFormat()
	}
	return d.formats[index].Clone()
}

// Display renders the title of p at the given date (nil for the latest date
// of its names) with format index (-1 for the default format).
func (d *Displayer) Display(s *Session, p *Place, at *Date, index int) string {
	if p == nil {
		return ""
	}
	cfg := d.Config()
	if !cfg.PlaceAuto {
		return p.Title
	}
	f := d.format(index)
	chain := s.Resolver(cfg.AboutYears).LocationList(p, at, f.Language, f.Hier)
	t := Render(s.Registry, chain, f, cfg.Separator)
	if len(t.Skipped) > 0 {
		Logger().Warn("place format has stale rules", "format", f.Name, "rules", t.Skipped)
	}
	return t.Text
}

// DisplayEvent renders the title of the event's place at the event's date.
func (d *Displayer) DisplayEvent(s *Session, ev *Event, index int) string {
	if ev == nil || ev.PlaceHandle == "" {
		return ""
	}
	p, err := s.DB.PlaceFromHandle(ev.PlaceHandle)
	if err != nil {
		Logger().Debug("event place not found", "place", ev.PlaceHandle, "err", err)
		return ""
	}
	var at *Date
	if !ev.Date.IsEmpty() {
		at = &ev.Date
	}
	return d.Display(s, p, at, index)
}

// Formats returns copies of the formats.
func (d *Displayer) Formats() []*Format {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Format, len(d.formats))
	for i, f := range d.formats {
		out[i] = f.Clone()
	}
	return out
}

// SetFormats replaces the formats.
func (d *Displayer) SetFormats(formats []*Format) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.formats = make([]*Format, len(formats))
	for i, f := range formats {
		d.formats[i] = f.Clone()
	}
}

// LoadFormats appends the candidates whose names are not taken yet. An
// existing format is never overwritten; the names of the dropped candidates
// are returned.
func (d *Displayer) LoadFormats(candidates []*Format) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var dropped []string
	for _, c := range candidates {
		taken := slices.ContainsFunc(d.formats, func(f *Format) bool { return f.Name == c.Name })
		if taken {
			dropped = append(dropped, c.Name)
			continue
		}
		d.formats = append(d.formats, c.Clone())
	}
	return dropped
}

// PruneRules removes the stale rules of every format and returns how many
// were removed per format name.
func (d *Displayer) PruneRules(reg *Registry) map[string]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := map[string]int{}
	for _, f := range d.formats {
		if n := len(f.PruneRules(reg)); n > 0 {
			out[f.Name] = n
		}
	}
	return out
}
