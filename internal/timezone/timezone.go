package timezone

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/dharmasatrya/fakeflight/internal/models"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Policy decides what happens when an airport has no usable timezone.
type Policy string

const (
	PolicyFail        Policy = "fail"
	PolicyFallbackUTC Policy = "fallback_utc"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyFail:
		return PolicyFail, nil
	case PolicyFallbackUTC:
		return PolicyFallbackUTC, nil
	}
	return "", fmt.Errorf("unknown missing-timezone policy %q", s)
}

type Localizer struct {
	policy Policy
}

func NewLocalizer(policy Policy) *Localizer {
	return &Localizer{policy: policy}
}

func (l *Localizer) Policy() Policy {
	return l.policy
}

// Location returns the zone of an airport. Under PolicyFallbackUTC a
// missing zone yields UTC and a warning for the caller to surface.
func (l *Localizer) Location(a models.Airport) (*time.Location, []string, error) {
	loc, err := LoadLocation(a.Timezone)
	if err == nil {
		return loc, nil, nil
	}
	if l.policy == PolicyFallbackUTC {
		warning := fmt.Sprintf("no timezone data for %s, times shown in UTC", a.Code)
		return time.UTC, []string{warning}, nil
	}
	return nil, nil, models.NewComputeError(models.ErrMissingTimezoneData, a.Code)
}

// LoadLocation loads an IANA zone. An empty name is missing data, not UTC.
func LoadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.ErrMissingTimezoneData
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMissingTimezoneData, err)
	}
	return loc, nil
}

// ParseLocal reads an ISO date and a 24-hour HH:MM clock as wall time in loc.
// Wall times that the zone never shows are rejected.
func ParseLocal(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, models.NewComputeError(models.ErrInvalidDateTime, date)
	}
	c, err := time.Parse(ClockLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, models.NewComputeError(models.ErrInvalidDateTime, clock)
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc)
	// A clock time skipped by a DST jump is normalised by time.Date.
	if t.Day() != d.Day() || t.Hour() != c.Hour() || t.Minute() != c.Minute() {
		return time.Time{}, models.NewComputeError(models.ErrInvalidDateTime, date+" "+clock+" does not exist in "+loc.String())
	}
	return t, nil
}

func LocalTime(instant time.Time, loc *time.Location) models.LocalTime {
	local := instant.In(loc)
	abbr, offset := local.Zone()
	return models.LocalTime{
		Date:         local.Format(DateLayout),
		Time:         local.Format(ClockLayout),
		Timezone:     loc.String(),
		Abbreviation: abbr,
		UTCOffset:    FormatOffset(offset),
		Instant:      instant.UTC(),
	}
}

// OffsetHours returns how many hours zone b is ahead of zone a at instant.
func OffsetHours(a, b *time.Location, instant time.Time) float64 {
	_, offA := instant.In(a).Zone()
	_, offB := instant.In(b).Zone()
	return float64(offB-offA) / 3600
}

// DayOffset is the local arrival date minus the local departure date in
// calendar days, whatever the flight length.
func DayOffset(departure, arrival time.Time, depLoc, arrLoc *time.Location) int {
	return int(civilDate(arrival.In(arrLoc)).Sub(civilDate(departure.In(depLoc))).Hours() / 24)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}
