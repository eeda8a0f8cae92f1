// Package astro derives zodiac placements from birth data using closed-form
// calendar and angle arithmetic. The moon and rising formulas are simplified
// proxies, not ephemeris lookups; their outputs are used as opaque labels
// downstream, so the formulas must stay stable.
package astro

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Dark-Folio-Press/sonifyr-sub002/internal/core/domain"
)

type sunRange struct {
	sign       string
	startMonth int
	startDay   int
	endMonth   int
	endDay     int
}

// Standard tropical zodiac cutovers. Capricorn crosses the year boundary
// and is handled separately in SunSign.
var sunRanges = [12]sunRange{
	{"Aries", 3, 21, 4, 19},
	{"Taurus", 4, 20, 5, 20},
	{"Gemini", 5, 21, 6, 20},
	{"Cancer", 6, 21, 7, 22},
	{"Leo", 7, 23, 8, 22},
	{"Virgo", 8, 23, 9, 22},
	{"Libra", 9, 23, 10, 22},
	{"Scorpio", 10, 23, 11, 21},
	{"Sagittarius", 11, 22, 12, 21},
	{"Capricorn", 12, 22, 1, 19},
	{"Aquarius", 1, 20, 2, 18},
	{"Pisces", 2, 19, 3, 20},
}

// CalculateBigThree maps birth data to the three core placements. Each
// placement degrades independently to "" when its inputs are missing or
// malformed; no error is ever returned.
func CalculateBigThree(bd domain.BirthData) domain.BigThree {
	return domain.BigThree{
		SunSign:    SunSign(bd.BirthDate),
		MoonSign:   MoonSign(bd.BirthDate, bd.BirthTime),
		RisingSign: RisingSign(bd.BirthDate, bd.BirthTime, bd.BirthLocation),
	}
}

// SunSign returns the tropical sun sign for a YYYY-MM-DD date, or "" if the
// date does not parse.
func SunSign(birthDate string) string {
	t, ok := parseDate(birthDate)
	if !ok {
		return ""
	}
	month, day := int(t.Month()), t.Day()

	for _, r := range sunRanges {
		if r.startMonth <= r.endMonth {
			if (month == r.startMonth && day >= r.startDay) ||
				(month == r.endMonth && day <= r.endDay) ||
				(month > r.startMonth && month < r.endMonth) {
				return r.sign
			}
			continue
		}
		// Range wraps the year boundary (Capricorn).
		if (month == r.startMonth && day >= r.startDay) ||
			(month == r.endMonth && day <= r.endDay) {
			return r.sign
		}
	}
	return ""
}

// MoonSign approximates the lunar zodiac position from the birth date and
// time. The 12.37 factor tracks the moon's sign progression per day; the
// year term spreads birth years across the wheel. Not astronomically exact.
func MoonSign(birthDate, birthTime string) string {
	t, ok := parseDate(birthDate)
	if !ok {
		return ""
	}
	hours, ok := parseTimeOfDay(birthTime)
	if !ok {
		return ""
	}

	daysIntoYear := float64(t.YearDay()) + hours/24
	position := math.Mod(daysIntoYear*12.37+float64(t.Year())*11, 360)
	if position < 0 {
		position += 360
	}
	idx := int(math.Floor(position/30)) % 12
	return domain.ZodiacSigns[idx]
}

// RisingSign approximates the ascendant: one sign every two hours, nudged by
// a seasonal sine term and a location adjustment. The location adjustment is
// a character-sum hash of the location string, a coarse longitude proxy
// rather than a geographic lookup.
func RisingSign(birthDate, birthTime, birthLocation string) string {
	t, ok := parseDate(birthDate)
	if !ok {
		return ""
	}
	hours, ok := parseTimeOfDay(birthTime)
	if !ok {
		return ""
	}
	if birthLocation == "" {
		return ""
	}

	base := math.Floor(hours / 2)
	seasonal := math.Sin(float64(t.YearDay())*2*math.Pi/365.25) * 0.5
	locAdj := float64(charSum(birthLocation)%12) * 0.1

	idx := int(math.Floor(base+seasonal+locAdj)) % 12
	idx = ((idx % 12) + 12) % 12
	return domain.ZodiacSigns[idx]
}

func charSum(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseTimeOfDay converts "HH:MM" with an optional 12-hour AM/PM suffix into
// hours since midnight.
func parseTimeOfDay(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	upper := strings.ToUpper(s)
	meridiem := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(upper, suffix) {
			meridiem = suffix
			upper = strings.TrimSpace(strings.TrimSuffix(upper, suffix))
			break
		}
	}

	parts := strings.Split(upper, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	if minute < 0 || minute > 59 {
		return 0, false
	}

	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, false
		}
	}

	return float64(hour) + float64(minute)/60, true
}
