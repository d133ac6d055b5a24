package place

import (
	"slices"
	"strings"
	"unicode"
)

// maxNameRunes bounds an imported place name.
const maxNameRunes = 256

// cleanName normalizes an imported place name for use as a title fragment:
// control characters are dropped, whitespace runs become one space, and
// separators left at either end are trimmed so they cannot double up with
// the title separator. Overlong names are cut at a rune boundary.
func cleanName(s string) (string, bool) {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	for i, f := range fields {
		fields[i] = strings.Map(func(r rune) rune {
			if unicode.IsControl(r) {
				return -1
			}
			return r
		}, f)
	}
	out := strings.Join(slices.DeleteFunc(fields, func(f string) bool { return f == "" }), " ")
	out = strings.TrimFunc(out, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	})
	if out == "" {
		return "", false
	}
	if r := []rune(out); len(r) > maxNameRunes {
		out = strings.TrimRightFunc(string(r[:maxNameRunes]), unicode.IsSpace)
	}
	return out, true
}
