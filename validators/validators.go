// Package validators holds the field checks every entry surface runs before
// a donor record is submitted to the donation database.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyValue        = errors.New("value cannot be empty")
	ErrInvalidFormat     = errors.New("must be a valid number")
	ErrNotPositive       = errors.New("must be a positive value")
	ErrInvalidPanFormat  = errors.New("invalid PAN format. Must be 5 letters, 4 numbers, 1 letter (e.g., ABCDE1234F)")
	ErrInvalidDateFormat = errors.New("invalid date format. Please use dd.mm.yy")
)

var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// ValidateAmount checks that raw parses as a base-10 decimal and is
// strictly positive. Returns the parsed value.
func ValidateAmount(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("amount: %w", ErrEmptyValue)
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("amount: %w", ErrInvalidFormat)
	}

	if d.Sign() <= 0 {
		return 0, fmt.Errorf("amount: %w", ErrNotPositive)
	}

	return d.InexactFloat64(), nil
}

// ValidatePan accepts an empty PAN (the field is optional) or exactly
// 5 letters, 4 digits, 1 letter. Input is upper-cased before the check.
func ValidatePan(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if !panPattern.MatchString(strings.ToUpper(trimmed)) {
		return ErrInvalidPanFormat
	}

	return nil
}

// ValidateName only rejects blank names. Donor names routinely carry dots,
// digits and parentheses ("Aravind.S(HT)"), so no character-class check is
// applied.
func ValidateName(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("name: %w", ErrEmptyValue)
	}

	return nil
}

// ValidateDate parses raw as dd.mm.yy. Two-digit years follow Go's
// reference-layout pivot: 00-68 resolve to 20xx, 69-99 to 19xx.
// time.Parse range-checks the calendar, so 31.04.25 is rejected while
// 29.02.24 (leap year) passes.
func ValidateDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("date: %w", ErrEmptyValue)
	}

	parsed, err := time.Parse("02.01.06", trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("date: %w", ErrInvalidDateFormat)
	}

	return parsed, nil
}
