// Package format implements the locale primitives used across the KUDE:
// es-PY number grouping, DD/MM/YYYY date rendering, fixed-width zero
// padding, CDC grouping and locality normalization.
//
// All parsing here is best-effort: a value that cannot be parsed renders
// as "0" or the empty string, never as an error. A partially populated
// fiscal document is preferable to a failed render.
package format

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	spanishLower  = cases.Lower(language.Spanish)
	parenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*`)
)

// dateLayouts accepted for SIFEN timestamps, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// CDC groups an identifier in blocks of 4 characters separated by a
// single space. Whitespace in the input is stripped first; a trailing
// remainder shorter than 4 is kept as-is.
func CDC(id string) string {
	compact := strings.Join(strings.Fields(id), "")
	if compact == "" {
		return ""
	}
	var groups []string
	for len(compact) > 4 {
		groups = append(groups, compact[:4])
		compact = compact[4:]
	}
	groups = append(groups, compact)
	return strings.Join(groups, " ")
}

// Amount parses value as a decimal number and renders it with es-PY
// grouping: "." for thousands, "," before exactly decimals fraction
// digits. Unparseable input renders as "0".
func Amount(value string, decimals int) string {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return "0"
	}
	fixed := d.StringFixed(int32(decimals))

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	out := groupThousands(intPart)
	if fracPart != "" {
		out += "," + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

// DateTime renders value as "DD/MM/YYYY HH:MM:SS"; empty or unparseable
// input yields the empty string.
func DateTime(value string) string {
	t, ok := parseTime(value)
	if !ok {
		return ""
	}
	return t.Format("02/01/2006 15:04:05")
}

// Date renders value as "DD/MM/YYYY"; empty or unparseable input yields
// the empty string.
func Date(value string) string {
	t, ok := parseTime(value)
	if !ok {
		return ""
	}
	return t.Format("02/01/2006")
}

// ZeroPad left-pads value with '0' to width characters. An empty value
// yields a string of width zeros; a value already longer than width is
// returned unchanged.
func ZeroPad(value string, width int) string {
	if value == "" {
		return strings.Repeat("0", width)
	}
	if len(value) >= width {
		return value
	}
	return strings.Repeat("0", width-len(value)) + value
}

// Locality normalizes a locality name: parenthetical qualifiers are
// removed ("ASUNCION (DISTRITO)" -> "ASUNCION"), the remainder is
// lower-cased and the first rune of every whitespace-delimited word is
// capitalized.
func Locality(value string) string {
	if value == "" {
		return ""
	}
	clean := strings.TrimSpace(parenthetical.ReplaceAllString(value, ""))
	if clean == "" {
		return ""
	}
	lowered := spanishLower.String(clean)

	var b strings.Builder
	b.Grow(len(lowered))
	startOfWord := true
	for _, r := range lowered {
		if unicode.IsSpace(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DecimalOrZero parses s as a decimal, falling back to zero.
func DecimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IntOrZero parses s as an integer, falling back to 0. A decimal string
// is truncated the way the source schema's rate field is ("10.0" -> 10).
func IntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return int(d.IntPart())
	}
	return 0
}

func parseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}
