package streak

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalizeDayKey_Idempotent(t *testing.T) {
	loc := time.UTC
	key, err := NormalizeDayKey("2024-01-03", loc)
	if err != nil {
		t.Fatalf("NormalizeDayKey failed: %v", err)
	}
	if key != "2024-01-03" {
		t.Errorf("expected already-normalized key to be unchanged, got %q", key)
	}

	again, err := NormalizeDayKey(key, loc)
	if err != nil {
		t.Fatalf("NormalizeDayKey failed on second pass: %v", err)
	}
	if again != key {
		t.Errorf("normalization is not idempotent: %q -> %q", key, again)
	}
}

func TestNormalizeDayKey_Timestamps(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		loc      *time.Location
		expected string
	}{
		{
			name:     "RFC3339 UTC timestamp",
			value:    "2024-01-03T10:30:00Z",
			loc:      time.UTC,
			expected: "2024-01-03",
		},
		{
			name:     "RFC3339 with fractional seconds",
			value:    "2024-01-03T10:30:00.123Z",
			loc:      time.UTC,
			expected: "2024-01-03",
		},
		{
			name:     "near-midnight UTC instant shifts day in UTC+13",
			value:    "2024-01-03T23:30:00Z",
			loc:      time.FixedZone("NZDT", 13*3600),
			expected: "2024-01-04",
		},
		{
			name:     "day-only string is not timezone shifted",
			value:    "2024-01-03",
			loc:      time.FixedZone("NZDT", 13*3600),
			expected: "2024-01-03",
		},
		{
			name:     "zone-less timestamp is wall-clock time in loc",
			value:    "2024-01-03T23:30:00",
			loc:      time.FixedZone("NZDT", 13*3600),
			expected: "2024-01-03",
		},
		{
			name:     "zone-less timestamp west of UTC keeps its day",
			value:    "2024-01-03T00:30:00",
			loc:      time.FixedZone("PST", -8*3600),
			expected: "2024-01-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NormalizeDayKey(tt.value, tt.loc)
			if err != nil {
				t.Fatalf("NormalizeDayKey(%q) failed: %v", tt.value, err)
			}
			if key != tt.expected {
				t.Errorf("NormalizeDayKey(%q) = %q, expected %q", tt.value, key, tt.expected)
			}
		})
	}
}

func TestNormalizeDayKey_Invalid(t *testing.T) {
	for _, value := range []string{"", "not-a-date", "2024-13-45", "03/01/2024"} {
		if _, err := NormalizeDayKey(value, time.UTC); err == nil {
			t.Errorf("expected error for %q, got none", value)
		}
	}
}

func TestNormalize_DropsMalformedEntries(t *testing.T) {
	got := Normalize([]string{"2024-01-01", "garbage", "2024-01-02", ""}, time.UTC)
	expected := []string{"2024-01-01", "2024-01-02"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Normalize = %v, expected %v", got, expected)
	}
}

func TestCompute_ConsecutiveRunEndingToday(t *testing.T) {
	days := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	if got := Compute(days, "2024-01-03", time.UTC); got != 3 {
		t.Errorf("expected streak 3, got %d", got)
	}
}

func TestCompute_ZeroWhenTodayAbsent(t *testing.T) {
	days := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	// Gap on the 4th and 5th: the run ending on the 3rd does not count.
	if got := Compute(days, "2024-01-05", time.UTC); got != 0 {
		t.Errorf("expected streak 0 after gap, got %d", got)
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	if got := Compute(nil, "2024-01-03", time.UTC); got != 0 {
		t.Errorf("expected streak 0 for empty input, got %d", got)
	}
	if got := Compute([]string{}, "2024-01-03", time.UTC); got != 0 {
		t.Errorf("expected streak 0 for empty slice, got %d", got)
	}
}

func TestCompute_StopsAtFirstGap(t *testing.T) {
	days := []string{"2024-01-10", "2024-01-09", "2024-01-07", "2024-01-06"}
	if got := Compute(days, "2024-01-10", time.UTC); got != 2 {
		t.Errorf("expected streak 2 (gap on the 8th), got %d", got)
	}
}

func TestCompute_InvariantUnderDuplicatesAndFormats(t *testing.T) {
	base := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	mixed := []string{
		"2024-01-01",
		"2024-01-01T08:00:00Z",
		"2024-01-02",
		"2024-01-02",
		"2024-01-03T23:59:00Z",
		"2024-01-03",
	}

	want := Compute(base, "2024-01-03", time.UTC)
	got := Compute(mixed, "2024-01-03", time.UTC)
	if got != want {
		t.Errorf("streak changed under duplicates/mixed formats: %d vs %d", got, want)
	}
	if got != 3 {
		t.Errorf("expected streak 3, got %d", got)
	}
}

func TestCompute_CrossesMonthBoundary(t *testing.T) {
	days := []string{"2024-01-30", "2024-01-31", "2024-02-01"}
	if got := Compute(days, "2024-02-01", time.UTC); got != 3 {
		t.Errorf("expected streak 3 across month boundary, got %d", got)
	}
}

func TestCompute_MalformedEntryDoesNotCorrupt(t *testing.T) {
	days := []string{"2024-01-02", "bogus", "2024-01-03"}
	if got := Compute(days, "2024-01-03", time.UTC); got != 2 {
		t.Errorf("expected streak 2 with malformed entry excluded, got %d", got)
	}
}

func TestToggle_AddAndRemove(t *testing.T) {
	loc := time.UTC

	added := Toggle([]string{"2024-01-01"}, "2024-01-02", loc)
	expected := []string{"2024-01-01", "2024-01-02"}
	if !reflect.DeepEqual(added, expected) {
		t.Errorf("Toggle add = %v, expected %v", added, expected)
	}

	removed := Toggle(added, "2024-01-02", loc)
	if !reflect.DeepEqual(removed, []string{"2024-01-01"}) {
		t.Errorf("Toggle remove = %v, expected [2024-01-01]", removed)
	}
}

func TestToggle_SelfInverse(t *testing.T) {
	loc := time.UTC
	original := []string{"2024-01-01", "2024-01-03", "2024-01-05"}

	once := Toggle(original, "2024-01-04", loc)
	twice := Toggle(once, "2024-01-04", loc)

	if !reflect.DeepEqual(twice, Normalize(original, loc)) {
		t.Errorf("Toggle is not self-inverse: %v -> %v", original, twice)
	}
}

func TestToggle_UndoOnlyEntry(t *testing.T) {
	loc := time.UTC
	got := Toggle([]string{"2024-01-03"}, "2024-01-03", loc)
	if len(got) != 0 {
		t.Errorf("expected empty set after undo, got %v", got)
	}
	if streak := Compute(got, "2024-01-03", loc); streak != 0 {
		t.Errorf("expected streak 0 after undo, got %d", streak)
	}
}

func TestToggle_MatchesTimestampVariantOfSameDay(t *testing.T) {
	loc := time.UTC
	// The stored marker is a full timestamp; toggling the day key removes it.
	got := Toggle([]string{"2024-01-03T09:15:00Z"}, "2024-01-03", loc)
	if len(got) != 0 {
		t.Errorf("expected timestamp variant to be removed, got %v", got)
	}
}

func TestContains(t *testing.T) {
	loc := time.UTC
	days := []string{"2024-01-03T09:15:00Z"}

	if !Contains(days, "2024-01-03", loc) {
		t.Error("expected membership under normalization")
	}
	if Contains(days, "2024-01-04", loc) {
		t.Error("did not expect membership for absent day")
	}
}

func TestHistory(t *testing.T) {
	loc := time.UTC
	days := []string{"2024-01-03", "2024-01-05"}

	got := History(days, "2024-01-05", 5, loc)
	expected := []bool{false, false, true, false, true} // Jan 1..5
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("History = %v, expected %v", got, expected)
	}
}

func TestDayKey_UsesLocation(t *testing.T) {
	// 2024-01-03 23:30 UTC is already 2024-01-04 in UTC+2.
	instant := time.Date(2024, 1, 3, 23, 30, 0, 0, time.UTC)

	if got := DayKey(instant, time.UTC); got != "2024-01-03" {
		t.Errorf("DayKey in UTC = %q, expected 2024-01-03", got)
	}
	if got := DayKey(instant, time.FixedZone("EET", 2*3600)); got != "2024-01-04" {
		t.Errorf("DayKey in UTC+2 = %q, expected 2024-01-04", got)
	}
}
