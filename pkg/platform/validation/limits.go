package validation

import (
	"fmt"
	"unicode/utf8"

	dErrors "accreditation/pkg/domain-errors"
)

// MaxBodySize caps screening request bodies (64 KB).
const MaxBodySize = 64 * 1024

// Identity field length limits, counted in runes.
const (
	MaxNameLength       = 200
	MaxEmailLength      = 255
	MaxPhoneLength      = 32
	MaxExtraValueLength = 256
)

// MaxExtras bounds the extras map of a single snapshot.
const MaxExtras = 16

// CheckMapCount validates that a map does not exceed the maximum entry count.
func CheckMapCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed max runes.
func CheckStringLength(fieldName, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckEachValueLength validates every value of a string map.
func CheckEachValueLength[K ~string](fieldName string, values map[K]string, max int) error {
	for k, v := range values {
		if utf8.RuneCountInString(v) > max {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s.%s exceeds max length of %d", fieldName, k, max))
		}
	}
	return nil
}
