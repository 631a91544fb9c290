package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/msomdec/taskboard/internal/domain"
)

// emailPattern requires local@domain.tld with at least one dot after the @.
// RE2's \s is ASCII only, so vertical tab, Unicode separators and the BOM are
// excluded explicitly.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// NormalizeEmail trims and lower-cases an email address.
// It fails with ErrInvalidInput when nothing is left.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", fmt.Errorf("%w: email required", domain.ErrInvalidInput)
	}
	return normalized, nil
}

// ValidateEmail checks the shape of an already normalized email address.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
	}
	return nil
}
