package repository

import (
	"context"

	"github.com/meki101/mekitech.co.ke/internal/model"
)

type TestimonialsRepository interface {
	// ListActive returns non-archived testimonials, newest first.
	ListActive(ctx context.Context) ([]model.Testimonial, error)
	ListAll(ctx context.Context) ([]model.Testimonial, error)
}

type TestimonialsRepositoryImpl struct {
	store *Store
}

func NewTestimonialsRepository(store *Store) *TestimonialsRepositoryImpl {
	return &TestimonialsRepositoryImpl{store: store}
}

var _ TestimonialsRepository = (*TestimonialsRepositoryImpl)(nil)

func (r *TestimonialsRepositoryImpl) ListActive(ctx context.Context) ([]model.Testimonial, error) {
	var out []model.Testimonial
	q := Query{}.
		Where(IsNull("archived_at")).
		OrderBy(Desc("created_at"))
	if err := r.store.Select(ctx, &out, Testimonials, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TestimonialsRepositoryImpl) ListAll(ctx context.Context) ([]model.Testimonial, error) {
	var out []model.Testimonial
	if err := r.store.Select(ctx, &out, Testimonials, Query{}.OrderBy(Desc("created_at"))); err != nil {
		return nil, err
	}
	return out, nil
}
