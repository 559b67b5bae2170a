// Package streak derives canonical day keys, completion-set membership, and
// consecutive-day streaks from a habit's completion markers. All functions are
// pure; the caller supplies the location that defines calendar-day boundaries
// and every call applies it consistently.
package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/ecogoals/ecogoals/internal/constants"
)

// timestampLayouts are the wire formats accepted for completion markers, in
// the order they are tried. The backend stores full timestamps for older
// records and day-only strings for newer ones.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	constants.DateFormat,
}

// DayKey returns the canonical YYYY-MM-DD key for the calendar day containing
// t in the given location.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DateFormat)
}

// NormalizeDayKey converts a completion marker (day-only string or full
// timestamp) to the canonical day key for its calendar day in loc. It returns
// an error for values that parse under no known layout; callers drop such
// entries rather than failing the whole computation.
func NormalizeDayKey(value string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		// Zone-less layouts are read as wall-clock time in loc; parsing
		// them as UTC and converting would shift days east of Greenwich.
		t, err := time.ParseInLocation(layout, value, loc)
		if err != nil {
			continue
		}
		if layout == constants.DateFormat {
			// Day-only strings are already calendar days; re-interpreting
			// their midnight in another zone must not shift the day.
			return value, nil
		}
		return t.In(loc).Format(constants.DateFormat), nil
	}
	return "", fmt.Errorf("unrecognized date value: %q", value)
}

// Normalize returns the deduplicated, sorted day-key set for values.
// Malformed entries are excluded; a single bad marker never corrupts the
// rest of the set.
func Normalize(values []string, loc *time.Location) []string {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		key, err := NormalizeDayKey(v, loc)
		if err != nil {
			continue
		}
		seen[key] = true
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Compute returns the length of the maximal run of consecutive calendar days
// ending at today that are present in values. If today itself is absent the
// streak is 0, regardless of any run ending yesterday. The result depends
// only on calendar-day membership, never on time-of-day or duplicate marks.
func Compute(values []string, today string, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}

	set := make(map[string]bool, len(values))
	for _, v := range values {
		key, err := NormalizeDayKey(v, loc)
		if err != nil {
			continue
		}
		set[key] = true
	}

	cursor, err := time.ParseInLocation(constants.DateFormat, today, loc)
	if err != nil {
		return 0
	}

	count := 0
	for set[cursor.Format(constants.DateFormat)] {
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}

// Toggle adds target to the completion set if absent, or removes it if
// present (undo). The returned collection is normalized and deduplicated;
// applying Toggle twice with the same target yields the original set modulo
// normalization. The caller persists the result and derives the new streak
// via Compute.
func Toggle(values []string, target string, loc *time.Location) []string {
	key, err := NormalizeDayKey(target, loc)
	if err != nil {
		// An unparseable target cannot match any real day; the set is
		// returned normalized but otherwise unchanged.
		return Normalize(values, loc)
	}

	normalized := Normalize(values, loc)
	for i, d := range normalized {
		if d == key {
			return append(normalized[:i:i], normalized[i+1:]...)
		}
	}

	normalized = append(normalized, key)
	sort.Strings(normalized)
	return normalized
}

// Contains reports whether day is in the normalized completion set.
func Contains(values []string, day string, loc *time.Location) bool {
	key, err := NormalizeDayKey(day, loc)
	if err != nil {
		return false
	}
	for _, v := range values {
		k, err := NormalizeDayKey(v, loc)
		if err != nil {
			continue
		}
		if k == key {
			return true
		}
	}
	return false
}

// History returns a per-day completion grid for the days window ending at
// end, oldest first. It feeds the habit log and heatmap views.
func History(values []string, end string, days int, loc *time.Location) []bool {
	if loc == nil {
		loc = time.Local
	}
	if days <= 0 {
		return nil
	}

	endDay, err := time.ParseInLocation(constants.DateFormat, end, loc)
	if err != nil {
		return make([]bool, days)
	}

	set := make(map[string]bool, len(values))
	for _, v := range values {
		key, kerr := NormalizeDayKey(v, loc)
		if kerr != nil {
			continue
		}
		set[key] = true
	}

	grid := make([]bool, days)
	for i := 0; i < days; i++ {
		day := endDay.AddDate(0, 0, -(days - 1 - i))
		grid[i] = set[day.Format(constants.DateFormat)]
	}
	return grid
}
