package linkbox

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
)

type timeUnit struct {
	suffix string
	secs   float64
}

// Largest to smallest. Elapsed values at or above a minute are rendered
// with the two dominant units from this table.
var timeUnits = []timeUnit{
	{"w", 7 * 24 * 3600},
	{"d", 24 * 3600},
	{"h", 3600},
	{"m", 60},
	{"s", 1},
}

// FormatDuration renders an elapsed duration for display. Negative values
// mean "not yet started" and render as the empty string. Under a second the
// value is shown in milliseconds, under a minute in decimal seconds, and
// beyond that as the two dominant units, e.g. "1m 30s" or "2w 3d". The
// remainder is rounded into the second unit, carrying upward when it rounds
// to a full unit ("1m 59.7s" becomes "2m 0s", not "1m 60s").
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return ""
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	total := d.Seconds()

	// Round at the granularity of the unit below the dominant one, then
	// pick units again: rounding can promote the total into a larger
	// bucket (59m 59.7s is "1h 0m").
	first := dominantUnit(total)
	total = math.Round(total/timeUnits[first+1].secs) * timeUnits[first+1].secs
	first = dominantUnit(total)
	second := first + 1

	major := math.Floor(total / timeUnits[first].secs)
	rem := total - major*timeUnits[first].secs
	minor := math.Round(rem / timeUnits[second].secs)

	return fmt.Sprintf("%d%s %d%s",
		int64(major), timeUnits[first].suffix,
		int64(minor), timeUnits[second].suffix)
}

func dominantUnit(totalSecs float64) int {
	for i, u := range timeUnits[:len(timeUnits)-1] {
		if totalSecs >= u.secs {
			return i
		}
	}
	return len(timeUnits) - 2
}

// FormatTimeAgo renders how long ago something happened as a single unit,
// truncated: "5m ago", "2h ago". Negative values render as the empty
// string; under a second the result is "0s ago".
func FormatTimeAgo(d time.Duration) string {
	if d < 0 {
		return ""
	}
	total := d.Seconds()
	for _, u := range timeUnits {
		if total >= u.secs {
			return fmt.Sprintf("%d%s ago", int64(total/u.secs), u.suffix)
		}
	}
	return "0s ago"
}

// SanitizeID converts an arbitrary name into a widget identifier:
// lowercase, with spaces and path separators turned into hyphens and every
// other rune outside [a-z0-9_-] replaced by a hyphen.
//
//	SanitizeID("Run Tests")   == "run-tests"
//	SanitizeID("src/main.py") == "src-main-py"
func SanitizeID(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r == ' ' || r == '/' || r == '\\':
			b.WriteRune('-')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
