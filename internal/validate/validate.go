package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ID parses a positive integer resource id.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

// OptionalID parses an optional id query value ("" means absent).
func OptionalID(s string) (*int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	n, ok := ID(s)
	if !ok {
		return nil, false
	}
	return &n, true
}

// OptionalPrice parses an optional price bound; prices must be
// strictly positive.
func OptionalPrice(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return nil, false
	}
	return &f, true
}

// Page parses a pagination value, falling back to def when absent.
func Page(s string, def int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Quantity parses a non-negative integer stock quantity.
func Quantity(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// SearchTerm trims and caps a free-text term; matching semantics are
// the store's concern.
func SearchTerm(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// Reason validates a rejection reason: required, bounded.
func Reason(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 500 {
		return "", false
	}
	return s, true
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}
