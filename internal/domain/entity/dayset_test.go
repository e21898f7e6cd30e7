package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaySet_Contains(t *testing.T) {
	d := NewDaySet(time.Monday, time.Wednesday)

	assert.True(t, d.Contains(time.Monday))
	assert.True(t, d.Contains(time.Wednesday))
	assert.False(t, d.Contains(time.Tuesday))
	assert.False(t, d.Contains(time.Sunday))
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, d.Days())
}

func TestDaySet_EveryDayAndEmpty(t *testing.T) {
	assert.Len(t, EveryDay().Days(), 7)
	assert.True(t, DaySet(0).IsEmpty())
	assert.False(t, NewDaySet(time.Saturday).IsEmpty())
}

func TestDaySet_ValueScan(t *testing.T) {
	d := NewDaySet(time.Sunday, time.Friday)
	v, err := d.Value()
	require.NoError(t, err)

	var out DaySet
	require.NoError(t, out.Scan(v))
	assert.Equal(t, d, out)

	assert.Error(t, out.Scan("Mon"))
}

func TestParseWeekday(t *testing.T) {
	tests := map[string]time.Weekday{
		"Mon":       time.Monday,
		"mon":       time.Monday,
		"Wednesday": time.Wednesday,
		" sun ":     time.Sunday,
		"SAT":       time.Saturday,
	}
	for in, want := range tests {
		got, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWeekday("Funday")
	assert.Error(t, err)
}

func TestWeekdayAbbr(t *testing.T) {
	assert.Equal(t, "Thu", WeekdayAbbr(time.Thursday))
}
