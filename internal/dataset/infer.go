// SPDX-License-Identifier: MPL-2.0

package dataset

import (
	"strconv"
	"strings"
	"time"
)

// InferValue converts a text cell to the most specific value it represents:
// nil for an empty cell, int64, float64, bool, time.Time (RFC 3339 or
// YYYY-MM-DD), and the trimmed text otherwise. Integers with a leading zero
// stay text so that codes like "007" keep their digits.
func InferValue(cell string) any {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	if looksNumeric(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	return s
}

// looksNumeric rejects words strconv would accept ("Inf", "NaN", "0x1p-2")
// and integers with a leading zero.
func looksNumeric(s string) bool {
	digits := strings.TrimLeft(s, "+-")
	if digits == "" {
		return false
	}
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return false
	}
	for _, r := range digits {
		switch {
		case r >= '0' && r <= '9', r == '.', r == 'e', r == 'E', r == '+', r == '-':
		default:
			return false
		}
	}
	return true
}
