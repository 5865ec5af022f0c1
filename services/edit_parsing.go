package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Lenient parsing for edited cell text. Invalid numbers never reject an
// edit; callers decide the fallback (0, null, or leaving a value alone).

var (
	firstNumberPattern    = regexp.MustCompile(`\d*\.?\d+`)
	leadingFloatPattern   = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingIntegerPattern = regexp.MustCompile(`^[+-]?\d+`)
)

// timeStatMarker marks a stat as a duration; its raw value is seconds.
const timeStatMarker = "时间"

// timeStatFullScale is the number of seconds drawn as a full bar.
const timeStatFullScale = 120.0

// parseLeadingInt reads an optionally signed integer prefix after leading
// whitespace: "12000" → 12000, "3局" → 3, "3.7" → 3, "abc" → false.
func parseLeadingInt(s string) (int, bool) {
	m := leadingIntegerPattern.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseLeadingFloat reads a decimal prefix after leading whitespace.
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingFloatPattern.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// parseFirstNumber finds the first unsigned decimal anywhere in s.
func parseFirstNumber(s string) (float64, bool) {
	m := firstNumberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// derivePercentage computes a stat's bar fill from its raw display value.
// The bool is false when the text holds no number; the percentage must
// then stay as it was.
func derivePercentage(statName, value string) (float64, bool) {
	num, ok := parseFirstNumber(value)
	if !ok {
		return 0, false
	}

	if strings.Contains(value, "/") {
		if parts := strings.Split(value, "/"); len(parts) == 2 {
			a, okA := parseLeadingFloat(parts[0])
			b, okB := parseLeadingFloat(parts[1])
			if okA && okB && b != 0 {
				if q := a / b * 100; !math.IsInf(q, 0) && !math.IsNaN(q) {
					return q, true
				}
			}
		}
	}

	if strings.Contains(value, "%") {
		return num, true
	}

	if strings.Contains(statName, timeStatMarker) {
		return math.Min(num/timeStatFullScale*100, 100), true
	}
	return math.Min(num, 100), true
}

// firstGlyph returns the first user-perceived character of s.
func firstGlyph(s string) string {
	if s == "" {
		return ""
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return cluster
}
