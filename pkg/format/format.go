package format

import (
	"fmt"
	"math"
	"strconv"
)

// Minutes renders a duration as "{H}h {M}m", dropping a zero term.
func Minutes(total int) string {
	negative := total < 0
	if negative {
		total = -total
	}

	h, m := total/60, total%60
	var s string
	switch {
	case h > 0 && m > 0:
		s = fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		s = fmt.Sprintf("%dh", h)
	default:
		s = fmt.Sprintf("%dm", m)
	}

	if negative {
		return "-" + s
	}
	return s
}

func DistanceKm(km float64) string {
	return addThousandsSeparator(strconv.FormatFloat(math.Round(km), 'f', 0, 64), ",") + " km"
}

// DayOffset annotates an arrival that lands on another calendar day.
func DayOffset(offset int) string {
	switch {
	case offset == 0:
		return ""
	case offset == 1:
		return "+1 day"
	case offset == -1:
		return "-1 day"
	case offset > 0:
		return fmt.Sprintf("+%d days", offset)
	default:
		return fmt.Sprintf("%d days", offset)
	}
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
