package repository

import (
	"context"

	"github.com/meki101/mekitech.co.ke/internal/model"
)

type PaymentsRepository interface {
	List(ctx context.Context) ([]model.Payment, error)
}

type PaymentsRepositoryImpl struct {
	store *Store
}

func NewPaymentsRepository(store *Store) *PaymentsRepositoryImpl {
	return &PaymentsRepositoryImpl{store: store}
}

func (r *PaymentsRepositoryImpl) List(ctx context.Context) ([]model.Payment, error) {
	var out []model.Payment
	if err := r.store.Select(ctx, &out, Payments, Query{}.OrderBy(Desc("created_at"))); err != nil {
		return nil, err
	}
	return out, nil
}
