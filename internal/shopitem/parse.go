package shopitem

import (
	"strconv"
	"strings"
)

// ParseName trims surrounding whitespace. Blank input yields "".
func ParseName(raw string) string {
	return strings.TrimSpace(raw)
}

// ParseCount trims surrounding whitespace and parses a base-10 integer.
// Empty, non-numeric and out-of-range input all yield 0.
func ParseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// Validation is the outcome of checking a parsed name and count.
type Validation struct {
	NameInvalid  bool
	CountInvalid bool
}

// Valid reports whether both fields passed.
func (v Validation) Valid() bool {
	return !v.NameInvalid && !v.CountInvalid
}

// Validate checks the parsed fields. Both checks always run.
func Validate(name string, count int) Validation {
	return Validation{
		NameInvalid:  strings.TrimSpace(name) == "",
		CountInvalid: count <= 0,
	}
}
