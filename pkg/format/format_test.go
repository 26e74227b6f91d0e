package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinutes(t *testing.T) {
	for _, tc := range []struct {
		in   int
		want string
	}{
		{125, "2h 5m"},
		{120, "2h"},
		{45, "45m"},
		{0, "0m"},
		{1505, "25h 5m"},
		{-90, "-1h 30m"},
	} {
		assert.Equal(t, tc.want, Minutes(tc.in), tc.in)
	}
}

func TestDistanceKm(t *testing.T) {
	assert.Equal(t, "5,540 km", DistanceKm(5540.01))
	assert.Equal(t, "812 km", DistanceKm(812.2))
	assert.Equal(t, "17,016 km", DistanceKm(17016))
}

func TestDayOffset(t *testing.T) {
	assert.Equal(t, "", DayOffset(0))
	assert.Equal(t, "+1 day", DayOffset(1))
	assert.Equal(t, "-1 day", DayOffset(-1))
	assert.Equal(t, "+2 days", DayOffset(2))
}
