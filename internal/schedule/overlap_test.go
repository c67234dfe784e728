package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return parsed
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := ParseDate(s)
	require.NoError(t, err)
	return parsed
}

func TestDateRangesOverlap(t *testing.T) {
	jan1 := mustDate(t, "2024-01-01")
	jan31 := mustDate(t, "2024-01-31")
	feb1 := mustDate(t, "2024-02-01")
	feb15 := mustDate(t, "2024-02-15")
	jan15 := mustDate(t, "2024-01-15")

	assert.True(t, DateRangesOverlap(jan1, jan31, jan15, feb15))
	assert.True(t, DateRangesOverlap(jan15, feb15, jan1, jan31))
	// touching endpoints count, the ranges are closed
	assert.True(t, DateRangesOverlap(jan1, jan31, jan31, feb15))
	// disjoint ranges never overlap regardless of times
	assert.False(t, DateRangesOverlap(jan1, jan31, feb1, feb15))
	assert.False(t, DateRangesOverlap(feb1, feb15, jan1, jan31))
}

func TestTimeWindowsOverlapSymmetric(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical", "09:00:00", "18:00:00", "09:00:00", "18:00:00", true},
		{"contained", "09:00:00", "18:00:00", "10:00:00", "12:00:00", true},
		{"partial", "09:00:00", "12:00:00", "11:00:00", "15:00:00", true},
		{"touching", "09:00:00", "12:00:00", "12:00:00", "15:00:00", true},
		{"disjoint", "09:00:00", "12:00:00", "13:00:00", "15:00:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s1, e1 := mustTime(t, tc.s1), mustTime(t, tc.e1)
			s2, e2 := mustTime(t, tc.s2), mustTime(t, tc.e2)
			assert.Equal(t, tc.want, TimeWindowsOverlap(s1, e1, s2, e2))
			assert.Equal(t, tc.want, TimeWindowsOverlap(s2, e2, s1, e1), "must be symmetric")
		})
	}
}

func TestBufferWindow(t *testing.T) {
	start := mustTime(t, "09:00:00")
	end := mustTime(t, "18:00:00")

	s, e := BufferWindow(start, end, time.Hour)
	assert.Equal(t, "08:00:00", FormatTimeOfDay(s))
	assert.Equal(t, "19:00:00", FormatTimeOfDay(e))

	// no buffer leaves the window untouched
	s, e = BufferWindow(start, end, 0)
	assert.Equal(t, start, s)
	assert.Equal(t, end, e)
}

func TestBufferWindowClampsAtMidnight(t *testing.T) {
	start := mustTime(t, "00:30:00")
	end := mustTime(t, "23:30:00")

	s, e := BufferWindow(start, end, time.Hour)
	assert.Equal(t, "00:00:00", FormatTimeOfDay(s))
	assert.Equal(t, anchor, s)
	assert.Equal(t, anchorEnd, e)
	assert.False(t, s.After(e))
}

func TestConflicts(t *testing.T) {
	base := Assignment{
		StartDate: mustDate(t, "2024-01-01"),
		EndDate:   mustDate(t, "2024-01-31"),
		SlotStart: mustTime(t, "09:00:00"),
		SlotEnd:   mustTime(t, "18:00:00"),
	}

	t.Run("same slot same dates", func(t *testing.T) {
		assert.True(t, Conflicts(base, base, 0))
	})

	t.Run("disjoint dates", func(t *testing.T) {
		other := base
		other.StartDate = mustDate(t, "2024-02-01")
		other.EndDate = mustDate(t, "2024-02-28")
		assert.False(t, Conflicts(other, base, 0))
	})

	t.Run("back to back slots pass without buffer", func(t *testing.T) {
		evening := base
		evening.SlotStart = mustTime(t, "18:30:00")
		evening.SlotEnd = mustTime(t, "22:00:00")
		assert.False(t, Conflicts(evening, base, 0))
	})

	t.Run("buffer turns a near miss into a conflict", func(t *testing.T) {
		evening := base
		evening.SlotStart = mustTime(t, "18:30:00")
		evening.SlotEnd = mustTime(t, "22:00:00")
		assert.True(t, Conflicts(evening, base, time.Hour))
	})
}

func TestParseClock12(t *testing.T) {
	parsed, err := ParseClock12("9:00 AM")
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", FormatTimeOfDay(parsed))

	parsed, err = ParseClock12("06:00 PM")
	require.NoError(t, err)
	assert.Equal(t, "18:00:00", FormatTimeOfDay(parsed))

	_, err = ParseClock12("25:00")
	assert.Error(t, err)
}
