package validation

import (
	"errors"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	// ErrEmailRequired is returned for an empty address.
	ErrEmailRequired = errors.New("email is required")
	// ErrEmailInvalid is returned for an address that does not look like one.
	ErrEmailInvalid = errors.New("email is invalid")
)

// NormalizeEmail trims the address and checks it has a local part, a domain
// and a dot in the domain. It returns the trimmed address.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.TrimSpace(email)
	if normalized == "" {
		return "", ErrEmailRequired
	}
	if !emailPattern.MatchString(normalized) {
		return "", ErrEmailInvalid
	}
	return normalized, nil
}

// EmailMessage returns the user-facing (French) message for an email error.
func EmailMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmailRequired):
		return "Email requis."
	default:
		return "Email invalide."
	}
}
