package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	Required("email", "a@b.co", v)
	assert.Equal(t, Violations{"name": "required"}, v)
	assert.False(t, v.Empty())
}

func TestEmail(t *testing.T) {
	v := Violations{}
	Email("a", "", v)
	Email("b", "jane@example.com", v)
	Email("c", "Jane <jane@example.com>", v)
	Email("d", "not-an-email", v)
	assert.Equal(t, Violations{"c": "invalid_email", "d": "invalid_email"}, v)
}

func TestOneOf(t *testing.T) {
	v := Violations{}
	allowed := []string{"flexible", "1-month"}
	OneOf("timeline", "", allowed, v)
	OneOf("timeline", "flexible", allowed, v)
	assert.True(t, v.Empty())
	OneOf("timeline", strings.Repeat("x", 40), allowed, v)
	assert.Equal(t, Violations{"timeline": "not_allowed"}, v)
}

func TestMaxLen(t *testing.T) {
	v := Violations{}
	MaxLen("desc", strings.Repeat("é", 10), 10, v)
	assert.True(t, v.Empty())
	MaxLen("desc", strings.Repeat("é", 11), 10, v)
	assert.Equal(t, Violations{"desc": "too_long"}, v)
}
