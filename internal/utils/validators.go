package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"carrental-backend/internal/domain"
)

var (
	nonDigits         = regexp.MustCompile(`[^0-9]`)
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	plateOldPattern   = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	plateMercoPattern = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// ValidateCPF checks a Brazilian CPF, with or without punctuation, including
// both checksum digits.
func ValidateCPF(cpf string) error {
	digits := nonDigits.ReplaceAllString(cpf, "")

	if len(digits) != 11 || strings.Count(digits, digits[:1]) == 11 {
		return fmt.Errorf("%w: invalid CPF", domain.ErrValidation)
	}

	if digits[9] != cpfDigit(digits[:9], 10) || digits[10] != cpfDigit(digits[:10], 11) {
		return fmt.Errorf("%w: invalid CPF", domain.ErrValidation)
	}
	return nil
}

func cpfDigit(partial string, multiplier int) byte {
	total := 0
	for i := 0; i < len(partial); i++ {
		total += int(partial[i]-'0') * (multiplier - i)
	}
	remainder := total % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + 11 - remainder)
}

// ValidateEmail checks an email address format.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	return nil
}

// ValidatePhone checks a Brazilian phone number (10 or 11 digits).
func ValidatePhone(phone string) error {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) < 10 || len(digits) > 11 {
		return fmt.Errorf("%w: invalid phone", domain.ErrValidation)
	}
	return nil
}

// ValidateLicensePlate accepts both the old Brazilian format (ABC1234) and
// the Mercosul format (ABC1D23), with or without a hyphen.
func ValidateLicensePlate(plate string) error {
	normalized := strings.ReplaceAll(strings.ToUpper(plate), "-", "")
	if !plateOldPattern.MatchString(normalized) && !plateMercoPattern.MatchString(normalized) {
		return fmt.Errorf("%w: invalid license plate", domain.ErrValidation)
	}
	return nil
}

// NormalizeLicensePlate uppercases a plate and strips the hyphen so the
// store's uniqueness check sees one spelling per plate.
func NormalizeLicensePlate(plate string) string {
	return strings.ReplaceAll(strings.ToUpper(plate), "-", "")
}

// ValidateDateRange checks that a rental window is ordered and does not
// start in the past.
func ValidateDateRange(startDate, endDate time.Time) error {
	if !startDate.Before(endDate) {
		return fmt.Errorf("%w: start date must be before end date", domain.ErrInvalidRange)
	}
	today := truncateToDay(time.Now())
	if truncateToDay(startDate).Before(today) {
		return fmt.Errorf("%w: start date cannot be in the past", domain.ErrInvalidRange)
	}
	return nil
}

// ValidatePositiveCents checks that a money amount is greater than zero.
func ValidatePositiveCents(value int64, field string) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s must be greater than zero", domain.ErrValidation, field)
	}
	return nil
}

// ValidateYear checks a vehicle fabrication year.
func ValidateYear(year int32) error {
	current := int32(time.Now().Year())
	if year < 1900 || year > current+1 {
		return fmt.Errorf("%w: year must be between 1900 and %d", domain.ErrValidation, current+1)
	}
	return nil
}
