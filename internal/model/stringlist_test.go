package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListScan(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["go","mysql"]`)))
	assert.Equal(t, StringList{"go", "mysql"}, l)

	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)

	assert.Error(t, l.Scan(42))
	assert.Error(t, l.Scan("not json"))
}

func TestStringListValue(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringList{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)
}

func TestStringListContains(t *testing.T) {
	l := StringList{"web-software-engineering", "it-consulting"}
	assert.True(t, l.Contains("it-consulting"))
	assert.False(t, l.Contains("seo"))
}
