package repository

import (
	"context"

	"github.com/meki101/mekitech.co.ke/internal/model"
)

type ProjectsRepository interface {
	ListPublished(ctx context.Context) ([]model.Project, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Project, error)
	ListAll(ctx context.Context) ([]model.Project, error)
}

type ProjectsRepositoryImpl struct {
	store *Store
}

func NewProjectsRepository(store *Store) *ProjectsRepositoryImpl {
	return &ProjectsRepositoryImpl{store: store}
}

var _ ProjectsRepository = (*ProjectsRepositoryImpl)(nil)

// ListPublished returns published projects, newest first.
func (r *ProjectsRepositoryImpl) ListPublished(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	q := Query{}.
		Where(Eq("status", model.ProjectStatusPublished)).
		OrderBy(Desc("created_at"))
	if err := r.store.Select(ctx, &out, Projects, q); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPublishedBySlug returns nil, nil when no published project has the slug.
func (r *ProjectsRepositoryImpl) GetPublishedBySlug(ctx context.Context, slug string) (*model.Project, error) {
	var p model.Project
	q := Query{}.Where(
		Eq("slug", slug),
		Eq("status", model.ProjectStatusPublished),
	)
	found, err := r.store.Get(ctx, &p, Projects, q)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectsRepositoryImpl) ListAll(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	if err := r.store.Select(ctx, &out, Projects, Query{}.OrderBy(Desc("created_at"))); err != nil {
		return nil, err
	}
	return out, nil
}
