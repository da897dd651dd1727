package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
)

// ContactField is the form field name contact errors are keyed by.
const ContactField = "contact"

var (
	ErrContactPhoneDigits       = errors.New("InvalidContact: phone digit count")
	ErrContactUnsupportedDomain = errors.New("InvalidContact: unsupported domain")
)

const phoneDigitCount = 10

// Phone-shaped input: digits, spaces, hyphens and parentheses, at least 10 characters.
var phonePattern = regexp.MustCompile(`^[\d\s\-()]{10,}$`)

type ContactKind string

const (
	ContactPhone ContactKind = "phone"
	ContactEmail ContactKind = "email"
)

// Contact is the validated phone number or email, stored exactly as entered.
type Contact string

func (c Contact) String() string {
	return string(c)
}

// ValidateContact classifies raw as phone or email and applies the matching rule.
// Emails are only accepted under emailDomain; there is no generic email fallback.
func ValidateContact(raw, emailDomain string) (Contact, ContactKind, error) {
	compact := stripWhitespace(raw)
	if phonePattern.MatchString(compact) {
		if countDigits(raw) != phoneDigitCount {
			return "", ContactPhone, &FieldError{
				Field:   ContactField,
				Message: fmt.Sprintf("Phone number must be exactly %d digits", phoneDigitCount),
				Err:     ErrContactPhoneDigits,
			}
		}
		return Contact(raw), ContactPhone, nil
	}

	if !emailPattern(emailDomain).MatchString(raw) {
		return "", ContactEmail, &FieldError{
			Field:   ContactField,
			Message: fmt.Sprintf("Email must be a valid @%s address", emailDomain),
			Err:     ErrContactUnsupportedDomain,
		}
	}
	return Contact(raw), ContactEmail, nil
}

// emailPatterns caches the compiled pattern per registered domain.
var emailPatterns sync.Map

func emailPattern(domain string) *regexp.Regexp {
	if cached, ok := emailPatterns.Load(domain); ok {
		return cached.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)^[^\s@]+@` + regexp.QuoteMeta(domain) + `$`)
	actual, _ := emailPatterns.LoadOrStore(domain, re)
	return actual.(*regexp.Regexp)
}

func stripWhitespace(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
}

func countDigits(value string) int {
	n := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
