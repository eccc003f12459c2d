package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelect(t *testing.T) {
	q := Query{}.
		Where(Eq("status", "published"), IsNull("archived_at")).
		OrderBy(Desc("created_at"), Asc("title")).
		Take(10).
		Skip(20)

	sql, args, err := buildSelect(Projects, q)
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM projects WHERE status = ? AND archived_at IS NULL")
	assert.Contains(t, sql, "ORDER BY created_at DESC, title ASC LIMIT ? OFFSET ?")
	assert.Equal(t, []any{"published", 10, 20}, args)
}

func TestBuildSelectOffsetNeedsLimit(t *testing.T) {
	sql, args, err := buildSelect(Services, Query{Offset: 5})
	require.NoError(t, err)
	assert.NotContains(t, sql, "OFFSET")
	assert.Empty(t, args)
}

func TestBuildSelectRejectsUnknownCollection(t *testing.T) {
	_, _, err := buildSelect(Collection("users"), Query{})
	assert.ErrorIs(t, err, ErrUnknownCollection)

	_, _, err = buildCount(Collection("admin_users"), Query{})
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestBuildSelectRejectsInjectedColumns(t *testing.T) {
	_, _, err := buildSelect(Projects, Query{}.Where(Eq("status = 1 OR 1", 1)))
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, _, err = buildSelect(Projects, Query{}.OrderBy(Desc("created_at; DROP TABLE projects")))
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestBuildCount(t *testing.T) {
	sql, args, err := buildCount(Inquiries, Query{}.Where(Eq("status", "new")))
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM inquiries WHERE status = ?", sql)
	assert.Equal(t, []any{"new"}, args)
}

func TestQueryBuildersDoNotAlias(t *testing.T) {
	base := Query{}.Where(Eq("a", 1))
	left := base.Where(Eq("b", 2))
	right := base.Where(Eq("c", 3))

	assert.Len(t, base.Filters, 1)
	assert.Equal(t, "b", left.Filters[1].Column)
	assert.Equal(t, "c", right.Filters[1].Column)
}
