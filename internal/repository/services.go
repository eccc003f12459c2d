package repository

import (
	"context"

	"github.com/meki101/mekitech.co.ke/internal/model"
)

// ServicesRepository reads the service catalogue and its pricing tiers.
type ServicesRepository interface {
	ListActive(ctx context.Context) ([]model.Service, error)
	ListTiers(ctx context.Context) ([]model.PricingTier, error)
}

type ServicesRepositoryImpl struct {
	store *Store
}

func NewServicesRepository(store *Store) *ServicesRepositoryImpl {
	return &ServicesRepositoryImpl{store: store}
}

var _ ServicesRepository = (*ServicesRepositoryImpl)(nil)

func (r *ServicesRepositoryImpl) ListActive(ctx context.Context) ([]model.Service, error) {
	var out []model.Service
	q := Query{}.
		Where(Eq("is_active", true)).
		OrderBy(Asc("order_position"))
	if err := r.store.Select(ctx, &out, Services, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ServicesRepositoryImpl) ListTiers(ctx context.Context) ([]model.PricingTier, error) {
	var out []model.PricingTier
	if err := r.store.Select(ctx, &out, PricingTiers, Query{}.OrderBy(Asc("order_position"))); err != nil {
		return nil, err
	}
	return out, nil
}
