package place

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Modifier qualifies how a Date relates to its calendar value.
type Modifier int

const (
	ModNone Modifier = iota
	ModBefore
	ModAfter
	ModAbout
	ModRange // between Start and Stop
	ModSpan  // from Start to Stop
)

// YMD is a calendar value; Month and Day are 0 when unknown.
type YMD struct {
	Year  int
	Month int
	Day   int
}

func (v YMD) isZero() bool { return v.Year == 0 && v.Month == 0 && v.Day == 0 }

// first returns the first day covered by the value.
func (v YMD) first() time.Time {
	m, d := v.Month, v.Day
	if m == 0 {
		m = 1
	}
	if d == 0 {
		d = 1
	}
	return time.Date(v.Year, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// last returns the last day covered by the value.
func (v YMD) last() time.Time {
	switch {
	case v.Month == 0:
		return time.Date(v.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
	case v.Day == 0:
		return time.Date(v.Year, time.Month(v.Month)+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return v.first()
}

// prev steps back one unit at the value's own precision.
func (v YMD) prev() YMD {
	switch {
	case v.Month == 0:
		return YMD{Year: v.Year - 1}
	case v.Day == 0:
		t := v.first().AddDate(0, -1, 0)
		return YMD{Year: t.Year(), Month: int(t.Month())}
	}
	t := v.first().AddDate(0, 0, -1)
	return YMD{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (v YMD) String() string {
	switch {
	case v.Month == 0:
		return fmt.Sprintf("%04d", v.Year)
	case v.Day == 0:
		return fmt.Sprintf("%04d-%02d", v.Year, v.Month)
	}
	return fmt.Sprintf("%04d-%02d-%02d", v.Year, v.Month, v.Day)
}

// Date is a possibly qualified or compound genealogical date. The zero value
// is the empty date, which is valid at any time.
type Date struct {
	Mod   Modifier
	Start YMD
	Stop  YMD
}

// DateOf returns a plain date; pass 0 for an unknown month or day.
func DateOf(year, month, day int) Date {
	return Date{Start: YMD{Year: year, Month: month, Day: day}}
}

// clock is replaced in tests.
var clock = time.Now

// Today returns the current day as a plain date.
func Today() Date {
	t := clock()
	return DateOf(t.Year(), int(t.Month()), t.Day())
}

func (d Date) IsEmpty() bool    { return d.Start.isZero() && d.Stop.isZero() }
func (d Date) IsCompound() bool { return d.Mod == ModRange || d.Mod == ModSpan }

func dayNum(t time.Time) int64 { return t.Unix() / 86400 }

// Bounds returns the inclusive day range the date may refer to. about is the
// number of years an "about" date extends in either direction.
func (d Date) Bounds(about int) (lo, hi int64) {
	if d.IsEmpty() {
		return math.MinInt64, math.MaxInt64
	}
	switch d.Mod {
	case ModBefore:
		return math.MinInt64, dayNum(d.Start.first()) - 1
	case ModAfter:
		return dayNum(d.Start.last()) + 1, math.MaxInt64
	case ModAbout:
		return dayNum(d.Start.first().AddDate(-about, 0, 0)), dayNum(d.Start.last().AddDate(about, 0, 0))
	case ModRange, ModSpan:
		stop := d.Stop
		if stop.isZero() {
			stop = d.Start
		}
		return dayNum(d.Start.first()), dayNum(stop.last())
	}
	return dayNum(d.Start.first()), dayNum(d.Start.last())
}

// Covers reports whether the date, taken as a validity range, includes at.
// The empty date covers everything.
func (d Date) Covers(at Date, about int) bool {
	if d.IsEmpty() {
		return true
	}
	lo, hi := d.Bounds(about)
	alo, ahi := at.Bounds(about)
	return alo <= hi && ahi >= lo
}

// Before orders dates by their first covered day.
func (d Date) Before(o Date) bool {
	lo, _ := d.Bounds(0)
	olo, _ := o.Bounds(0)
	return lo < olo
}

var isoDateFull = regexp.MustCompile(`^(-?\d{1,4})-(\d{2})-(\d{2})$`)
var isoDateMonth = regexp.MustCompile(`^(-?\d{1,4})-(\d{2})$`)
var isoDateYear = regexp.MustCompile(`^(-?\d{1,4})$`)
var compoundDate = regexp.MustCompile(`^(between|from)\s+(\S+)\s+(and|to)\s+(\S+)$`)

func parseYMD(s string) (YMD, error) {
	atoi := func(x string) int { n, _ := strconv.Atoi(x); return n }
	var v YMD
	switch {
	case isoDateFull.MatchString(s):
		m := isoDateFull.FindStringSubmatch(s)
		v = YMD{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}
	case isoDateMonth.MatchString(s):
		m := isoDateMonth.FindStringSubmatch(s)
		v = YMD{Year: atoi(m[1]), Month: atoi(m[2])}
	case isoDateYear.MatchString(s):
		v = YMD{Year: atoi(s)}
	default:
		return YMD{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	if v.Month < 0 || v.Month > 12 || v.Day < 0 || v.Day > 31 || (v.Month == 0 && v.Day != 0) {
		return YMD{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return v, nil
}

// ParseDate reads "YYYY", "YYYY-MM", "YYYY-MM-DD", optionally prefixed by
// before/after/about, or "between X and Y" / "from X to Y". Empty text is
// the empty date.
func ParseDate(text string) (Date, error) {
	s := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if s == "" {
		return Date{}, nil
	}
	if m := compoundDate.FindStringSubmatch(s); m != nil {
		if (m[1] == "between") != (m[3] == "and") {
			return Date{}, fmt.Errorf("%w: %q", ErrBadDate, text)
		}
		start, err := parseYMD(m[2])
		if err != nil {
			return Date{}, err
		}
		stop, err := parseYMD(m[4])
		if err != nil {
			return Date{}, err
		}
		mod := ModRange
		if m[1] == "from" {
			mod = ModSpan
		}
		return Date{Mod: mod, Start: start, Stop: stop}, nil
	}
	mod := ModNone
	for prefix, m := range map[string]Modifier{"before ": ModBefore, "after ": ModAfter, "about ": ModAbout} {
		if strings.HasPrefix(s, prefix) {
			mod = m
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	v, err := parseYMD(s)
	if err != nil {
		return Date{}, err
	}
	return Date{Mod: mod, Start: v}, nil
}

// MustParseDate is ParseDate for literals; it panics on bad input.
func MustParseDate(text string) Date {
	d, err := ParseDate(text)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	if d.IsEmpty() {
		return ""
	}
	switch d.Mod {
	case ModBefore:
		return "before " + d.Start.String()
	case ModAfter:
		return "after " + d.Start.String()
	case ModAbout:
		return "about " + d.Start.String()
	case ModRange:
		return "between " + d.Start.String() + " and " + d.Stop.String()
	case ModSpan:
		return "from " + d.Start.String() + " to " + d.Stop.String()
	}
	return d.Start.String()
}

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
