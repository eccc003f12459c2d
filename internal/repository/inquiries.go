package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/meki101/mekitech.co.ke/internal/model"
)

// InquiriesRepository defines persistence for the inquiries table.
type InquiriesRepository interface {
	Insert(ctx context.Context, tx *sqlx.Tx, inq model.Inquiry) error
	List(ctx context.Context) ([]model.Inquiry, error)
	BatchUpdateNotification(ctx context.Context, tx *sqlx.Tx, ids []string, status model.NotificationStatus) error
}

type InquiriesRepositoryImpl struct {
	db    *sqlx.DB
	store *Store
}

func NewInquiriesRepository(db *sqlx.DB, store *Store) *InquiriesRepositoryImpl {
	return &InquiriesRepositoryImpl{db: db, store: store}
}

var _ InquiriesRepository = (*InquiriesRepositoryImpl)(nil)

// Insert writes a new inquiry with status=new and notification_status=queued.
func (r *InquiriesRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, inq model.Inquiry) error {
	const q = `
		INSERT INTO inquiries
		    (id, client_name, client_email, client_phone, client_company, service_id,
		     project_description, budget_range, timeline, status, notification_status, created_at)
		VALUES
		    (?, ?, ?, ?, ?, ?, ?, ?, ?, 'new', 'queued', NOW(3))
	`
	return withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q,
			inq.ID, inq.ClientName, inq.ClientEmail, inq.ClientPhone, inq.ClientCompany, inq.ServiceID,
			inq.ProjectDescription, inq.BudgetRange, inq.Timeline,
		)
		return err
	})
}

// List returns every inquiry, newest first.
func (r *InquiriesRepositoryImpl) List(ctx context.Context) ([]model.Inquiry, error) {
	var out []model.Inquiry
	if err := r.store.Select(ctx, &out, Inquiries, Query{}.OrderBy(Desc("created_at"))); err != nil {
		return nil, err
	}
	return out, nil
}

// BatchUpdateNotification sets notification_status for many inquiries in one statement.
func (r *InquiriesRepositoryImpl) BatchUpdateNotification(ctx context.Context, tx *sqlx.Tx, ids []string, status model.NotificationStatus) error {
	if len(ids) == 0 {
		return nil
	}
	const base = `UPDATE inquiries SET notification_status = ? WHERE id IN (?)`
	query, args, err := sqlx.In(base, status.String(), ids)
	if err != nil {
		return err
	}
	query = r.db.Rebind(query)

	return withTx(ctx, r.db, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
}
