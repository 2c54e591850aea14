package model

import (
	"math"
	"strconv"
	"strings"
)

// ParseLeadingInt reads an optionally signed run of decimal digits at the
// start of s, ignoring leading whitespace and anything after the digits.
// "2000", " 2000.0" and "2000abc" all yield 2000; "abc" and "" fail.
func ParseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseNumber parses a finite float, trimming surrounding whitespace.
func ParseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
