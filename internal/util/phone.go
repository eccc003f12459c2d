package util

import (
	"regexp"
	"strings"
)

var nonDialable = regexp.MustCompile(`[^\d\+]+`)

// NormalizePhone turns user input into E.164 form, assuming Kenyan numbers
// when no country code is given. Empty input stays empty.
func NormalizePhone(raw string) string {
	s := nonDialable.ReplaceAllString(strings.TrimSpace(raw), "")

	switch {
	case strings.HasPrefix(s, "00"):
		s = "+" + s[2:]
	case strings.HasPrefix(s, "0") && len(s) == 10:
		s = "+254" + s[1:]
	case (strings.HasPrefix(s, "7") || strings.HasPrefix(s, "1")) && len(s) == 9:
		s = "+254" + s
	case strings.HasPrefix(s, "254"):
		s = "+" + s
	}

	return s
}
