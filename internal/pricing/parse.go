package pricing

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// MaxQuantity is the ceiling applied to parsed and clamped quantities. It keeps
// every quantity times a bounded unit price, and their sum, inside int64.
const MaxQuantity = math.MaxInt32

// ClampQuantity pins n into [0, MaxQuantity].
func ClampQuantity(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return n
}

// ParseInt reads the leading integer of raw the way a browser number field is
// read: surrounding space is ignored, trailing garbage is dropped and input with
// no leading digits yields 0. The sign is preserved. Unlike a browser, values
// beyond ±MaxQuantity saturate at the ceiling rather than growing unbounded.
func ParseInt(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	// On ErrRange n already holds the signed int64 bound.
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	switch {
	case n > MaxQuantity:
		return MaxQuantity
	case n < -MaxQuantity:
		return -MaxQuantity
	}
	return int(n)
}

// ParseQuantity parses a quantity field and clamps it to [0, MaxQuantity].
func ParseQuantity(raw string) int {
	return ClampQuantity(ParseInt(raw))
}
