package date

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var toleranceRE = regexp.MustCompile(`^(\d+)([dw])$`)

// ParseTolerance parses the width of a tolerance window.
//
// Days and weeks are written "14d" or "2w"; anything else is read by
// [time.ParseDuration] ("36h", "1h30m"). A bare "0" or the empty string is a
// zero window. Negative windows are rejected.
func ParseTolerance(str string) (time.Duration, error) {
	str = strings.TrimSpace(str)
	if str == "" || str == "0" {
		return 0, nil
	}

	if match := toleranceRE.FindStringSubmatch(str); match != nil {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			// This should not happen given the regex
			return 0, fmt.Errorf("invalid number in tolerance %q: %w", str, err)
		}
		switch match[2] {
		case "d":
			return time.Duration(n) * Day, nil
		case "w":
			return time.Duration(n) * 7 * Day, nil
		}
	}

	d, err := time.ParseDuration(str)
	if err != nil {
		return 0, fmt.Errorf("invalid tolerance %q want days (14d), weeks (2w) or a duration (36h): %w", str, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid tolerance %q: must not be negative", str)
	}
	return d, nil
}

// FormatTolerance is the reverse of ParseTolerance, it prefers whole days.
func FormatTolerance(d time.Duration) string {
	switch {
	case d == 0:
		return "0"
	case d%(7*Day) == 0:
		return strconv.FormatInt(int64(d/(7*Day)), 10) + "w"
	case d%Day == 0:
		return strconv.FormatInt(int64(d/Day), 10) + "d"
	default:
		return d.String()
	}
}
