// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// gate.go - Validity gate deciding which field text may trigger a fetch.
package tracker

import (
	"regexp"
	"strings"
)

// DefaultMinLength is the minimum trimmed length before a fetch is considered.
const DefaultMinLength = 10

var (
	digitsOnly  = regexp.MustCompile(`^[0-9]+$`)
	symbolsOnly = regexp.MustCompile(`^[^a-zA-Z0-9]+$`)
)

// Eligible reports whether the field text qualifies for a completion request.
// Text is ineligible when its trimmed form is shorter than minLength runes,
// consists solely of digits, or contains no alphanumeric characters at all.
// Ineligible text never causes a fetch and clears any visible suggestion.
func Eligible(text string, minLength int) bool {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minLength {
		return false
	}
	if digitsOnly.MatchString(trimmed) {
		return false
	}
	if symbolsOnly.MatchString(trimmed) {
		return false
	}
	return true
}
