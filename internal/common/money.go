package common

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMinorUnits renders a minor-unit amount as a decimal string with two
// places, the way totals are displayed to users.
func FormatMinorUnits(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// ParsePrice converts a decimal price string such as "1.99" into minor units.
// At most two fractional digits are accepted; missing digits are padded.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	whole, frac, _ := strings.Cut(s, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	if units < 0 {
		return 0, fmt.Errorf("negative price %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("too many decimal places in %q", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	return units*100 + cents, nil
}
