// Package duration parses the short window strings accepted by
// "sift history --since": "12h", "7d", "2w" or "3m".
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalid is returned for strings that are not a count followed by a unit.
var ErrInvalid = errors.New("invalid duration")

var pattern = regexp.MustCompile(`^(\d+)([hdwm])$`)

const day = 24 * time.Hour

// units maps each suffix to its length. A month is 30 days.
var units = map[string]time.Duration{
	"h": time.Hour,
	"d": day,
	"w": 7 * day,
	"m": 30 * day,
}

// Parse converts s to a time.Duration. The empty string parses as zero,
// meaning no window.
func Parse(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q (use 12h, 7d, 2w or 3m)", ErrInvalid, s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalid, s, err)
	}
	return time.Duration(n) * units[m[2]], nil
}
