package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(raw, "mysql")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

var projectCols = []string{
	"id", "title", "slug", "description", "long_description", "image_url", "gallery_urls", "technologies",
	"client_name", "problem_context", "approach", "delivered_impact", "service_tags", "featured", "status",
	"created_at", "updated_at",
}

func projectRow(rows *sqlmock.Rows, id, slug string, tags string) *sqlmock.Rows {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Title "+id, slug, "desc", "", "https://img/"+id, `[]`, `["Go","MySQL","Redis","Kafka"]`,
		"", "", "", "", tags, false, "published", now, now)
}

func TestProjectsListPublished(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProjectsRepository(NewStore(db))

	rows := sqlmock.NewRows(projectCols)
	projectRow(rows, "p1", "shop", `["ecommerce-automation"]`)
	projectRow(rows, "p2", "erp", `["it-consulting","web-software-engineering"]`)

	mock.ExpectQuery(`SELECT (.+) FROM projects WHERE status = \? ORDER BY created_at DESC`).
		WithArgs("published").
		WillReturnRows(rows)

	got, err := repo.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "shop", got[0].Slug)
	assert.Equal(t, model.StringList{"it-consulting", "web-software-engineering"}, got[1].ServiceTags)
	assert.Len(t, got[0].Technologies, 4)
}

func TestProjectsGetPublishedBySlugMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProjectsRepository(NewStore(db))

	mock.ExpectQuery(`SELECT (.+) FROM projects WHERE slug = \? AND status = \? LIMIT \?`).
		WithArgs("nope", "published", 1).
		WillReturnRows(sqlmock.NewRows(projectCols))

	got, err := repo.GetPublishedBySlug(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProjectsGetPublishedBySlugError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProjectsRepository(NewStore(db))

	mock.ExpectQuery(`FROM projects`).WillReturnError(errors.New("permission denied"))

	got, err := repo.GetPublishedBySlug(context.Background(), "shop")
	assert.Nil(t, got)
	assert.ErrorContains(t, err, "get projects: permission denied")
}

func TestTestimonialsListActiveFiltersArchived(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTestimonialsRepository(NewStore(db))

	mock.ExpectQuery(`SELECT (.+) FROM testimonials WHERE archived_at IS NULL ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "client_name", "client_role", "client_company", "client_image_url", "content", "rating",
			"project_id", "is_featured", "is_video", "video_url", "archived_at", "created_at",
		}).AddRow("t1", "Jane", "CTO", "Acme", "", "Great work", 5, nil, true, false, nil, nil, time.Now()))

	got, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].ArchivedAt)
	assert.Equal(t, "Jane", got[0].ClientName)
}

func TestServicesListActiveOrdered(t *testing.T) {
	db, mock := newMock(t)
	repo := NewServicesRepository(NewStore(db))

	mock.ExpectQuery(`SELECT (.+) FROM services WHERE is_active = \? ORDER BY order_position ASC`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "slug", "description", "icon_name", "order_position", "is_active", "created_at", "updated_at",
		}).AddRow("s1", "Web", "web", "", "Code2", 1, true, time.Now(), time.Now()))

	got, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStoreCount(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payments`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := store.Count(context.Background(), Payments, Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestInquiriesInsertUsesCallerTx(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInquiriesRepository(db, NewStore(db))

	svc := "it-consulting"
	inq := model.Inquiry{
		ID:                 "01J0000000000000000000000",
		ClientName:         "Jane",
		ClientEmail:        "jane@example.com",
		ServiceID:          &svc,
		ProjectDescription: "A shop",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO inquiries`).
		WithArgs(inq.ID, "Jane", "jane@example.com", "", "", &svc, "A shop", "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), tx, inq))
	require.NoError(t, tx.Commit())
}

func TestInquiriesBatchUpdateNotification(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInquiriesRepository(db, NewStore(db))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE inquiries SET notification_status = \? WHERE id IN \(\?, \?\)`).
		WithArgs("sent", "a", "b").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.BatchUpdateNotification(context.Background(), nil, []string{"a", "b"}, model.NotificationSent))
	require.NoError(t, repo.BatchUpdateNotification(context.Background(), nil, nil, model.NotificationSent))
}

func TestAdminsGetByEmailMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAdminsRepository(db)

	mock.ExpectQuery(`FROM admin_users WHERE email = \?`).
		WithArgs("who@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.GetByEmail(context.Background(), "who@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOutboxMarkPublished(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOutboxRepository(db)

	mock.ExpectExec(`UPDATE outbox SET published_at = NOW\(3\) WHERE id IN \(\?, \?, \?\)`).
		WithArgs(int64(1), int64(2), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.MarkPublished(context.Background(), []int64{1, 2, 3}))
}
