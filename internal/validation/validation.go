package validation

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// MaxLen flags values longer than max runes.
func MaxLen(field, value string, max int, v Violations) {
	if utf8.RuneCountInString(value) > max {
		v[field] = "too_long"
	}
}

// OneOf flags a non-empty value outside allowed. Empty values are left to
// Required.
func OneOf(field, value string, allowed []string, v Violations) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "not_allowed"
}

// Email flags a non-empty value that is not a bare address. Empty values are
// left to Required.
func Email(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	a, err := mail.ParseAddress(value)
	if err != nil || a.Address != value {
		v[field] = "invalid_email"
	}
}
