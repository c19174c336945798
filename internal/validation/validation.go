// Package validation provides the field-level checks used by the entity
// input types. Each helper returns nil or a *apperr.ValidationError for a
// single field; callers run checks in a fixed order and stop at the first
// failure so error messages stay deterministic.
package validation

import (
	"strings"
	"time"
	"unicode"

	"booklib/internal/apperr"
)

// ISBN length constants. An ISBN is accepted with hyphens and spaces,
// which are stripped before checking.
const (
	ISBNShortLen = 10
	ISBNLongLen  = 13
)

// RequiredString fails when value is empty. The error carries the field
// name; display controls the message wording and is usually the field
// name itself.
func RequiredString(value, field, display string) error {
	if value == "" {
		return apperr.Validation(field, "Missing required field: %s", display)
	}
	return nil
}

// NotBlank fails when value is empty or whitespace only.
func NotBlank(value, field, display string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation(field, "%s cannot be empty", capitalize(display))
	}
	return nil
}

// StringLength checks length bounds. The minimum is measured on the
// trimmed value; the maximum on the raw value. Pass a negative bound to
// skip that side.
func StringLength(value, field, display string, min, max int) error {
	if min >= 0 && len(strings.TrimSpace(value)) < min {
		return apperr.Validation(field, "%s must be at least %d character(s) long", capitalize(display), min)
	}
	if max >= 0 && len(value) > max {
		return apperr.Validation(field, "%s must be %d characters or less", capitalize(display), max)
	}
	return nil
}

// NotAllDigits rejects values that consist entirely of digit characters,
// used for name-like fields.
func NotAllDigits(value, field, display string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	for _, r := range trimmed {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return apperr.Validation(field, "%s cannot contain only numbers", capitalize(display))
}

// IntRange checks inclusive integer bounds.
func IntRange(value int, field, display string, min, max int) error {
	if value < min {
		return apperr.Validation(field, "%s must be at least %d", capitalize(display), min)
	}
	if value > max {
		return apperr.Validation(field, "%s must be at most %d", capitalize(display), max)
	}
	return nil
}

// ISBN validates an ISBN after stripping hyphens and spaces: the result
// must be all digits and exactly 10 or 13 characters.
func ISBN(value string) error {
	clean := CleanISBN(value)
	for _, r := range clean {
		if r < '0' || r > '9' {
			return apperr.Validation("isbn", "ISBN must contain only digits (hyphens and spaces are allowed)")
		}
	}
	if len(clean) != ISBNShortLen && len(clean) != ISBNLongLen {
		return apperr.Validation("isbn", "ISBN must be %d or %d digits", ISBNShortLen, ISBNLongLen)
	}
	return nil
}

// CleanISBN strips the hyphens and spaces an ISBN may be written with.
func CleanISBN(value string) string {
	value = strings.ReplaceAll(value, "-", "")
	return strings.ReplaceAll(value, " ", "")
}

// Year validates a publication year: at least 1000 and no later than the
// current calendar year, evaluated at call time.
func Year(value int) error {
	return IntRange(value, "year", "year", 1000, time.Now().Year())
}

// UniqueInt64s fails when the slice contains a repeated value.
func UniqueInt64s(values []int64, field, display string) error {
	seen := make(map[int64]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return apperr.Validation(field, "Duplicate %s are not allowed", display)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
