// Package validate holds the applicant profile validation rules: Thai
// citizen ID with its mod-11 checksum, Thai mobile numbers, names in Thai
// or English letters, email shape and the GPAX grade range.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrNameTooShort     = errors.New("name must be at least 2 characters")
	ErrNameInvalidChars = errors.New("name may contain only Thai or English letters and spaces")
	ErrEmailInvalid     = errors.New("invalid email format")
	ErrPhoneInvalid     = errors.New("phone must be 10 digits starting with 06, 08 or 09")
	ErrCitizenIDFormat  = errors.New("citizen id must be 13 digits")
	ErrCitizenIDChecksum = errors.New("citizen id checksum is invalid")
	ErrGPAXNotANumber   = errors.New("gpax must be a number")
	ErrGPAXOutOfRange   = errors.New("gpax must be between 0.00 and 4.00")
)

var (
	nameRe  = regexp.MustCompile(`^[ก-๙a-zA-Z\s]+$`)
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe = regexp.MustCompile(`^(06|08|09)\d{8}$`)
	digitRe = regexp.MustCompile(`^\d{13}$`)
	sepRe   = regexp.MustCompile(`[\s-]`)
)

// Name checks a first or last name: at least two characters, Thai or
// English letters and spaces only.
func Name(name string) error {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < 2 {
		return ErrNameTooShort
	}
	if !nameRe.MatchString(trimmed) {
		return ErrNameInvalidChars
	}
	return nil
}

// Email checks the email shape.
func Email(email string) error {
	if !emailRe.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// Phone normalizes a Thai mobile number (spaces and dashes stripped) and
// checks the 10-digit 06/08/09 format. Returns the normalized number.
func Phone(phone string) (string, error) {
	normalized := sepRe.ReplaceAllString(phone, "")
	if !phoneRe.MatchString(normalized) {
		return "", ErrPhoneInvalid
	}
	return normalized, nil
}

// CitizenID normalizes a Thai citizen ID (spaces and dashes stripped) and
// verifies the 13-digit format and the mod-11 check digit. Returns the
// normalized ID.
func CitizenID(citizenID string) (string, error) {
	normalized := sepRe.ReplaceAllString(citizenID, "")
	if !digitRe.MatchString(normalized) {
		return "", ErrCitizenIDFormat
	}

	// Check digit: weighted sum of the first 12 digits with weights 13..2,
	// check = (11 - sum mod 11) mod 10.
	sum := 0
	for i := 0; i < 12; i++ {
		sum += int(normalized[i]-'0') * (13 - i)
	}
	check := (11 - sum%11) % 10
	if check != int(normalized[12]-'0') {
		return "", ErrCitizenIDChecksum
	}

	return normalized, nil
}

// GPAX parses and range-checks a grade point average.
func GPAX(gpax string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(gpax), 64)
	if err != nil {
		return 0, ErrGPAXNotANumber
	}
	if score < 0.0 || score > 4.0 {
		return 0, fmt.Errorf("%w: %.2f", ErrGPAXOutOfRange, score)
	}
	return score, nil
}
