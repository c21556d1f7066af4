// Package utils holds parsing helpers for raw query-string values. They
// know nothing about HTTP or the domain; callers decide how a parse error
// is reported.
package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotPositive is returned by ParsePositiveUint for zero or negative input.
var ErrNotPositive = errors.New("must be a positive integer")

// AtoiDefault converts s with strconv.Atoi, returning def when s is empty
// or not an integer.
//
//	n := utils.AtoiDefault("42", 0) // 42
//	n = utils.AtoiDefault("x", 5)   // 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParsePositiveUint parses an optional identifier. Empty input yields
// (nil, nil).
func ParsePositiveUint(s string) (*uint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return nil, ErrNotPositive
	}
	v := uint(n)
	return &v, nil
}

// ParseBoolDefault parses s with strconv.ParseBool, returning def when s is
// empty.
func ParseBoolDefault(s string, def bool) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.ParseBool(s)
}
