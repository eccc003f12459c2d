package page

import (
	"context"

	"github.com/meki101/mekitech.co.ke/internal/repository"
	"golang.org/x/sync/errgroup"
)

// Counter counts rows in a collection.
type Counter interface {
	Count(ctx context.Context, c repository.Collection, q repository.Query) (int64, error)
}

type Stats struct {
	Projects     int64 `json:"projects"`
	Inquiries    int64 `json:"inquiries"`
	Payments     int64 `json:"payments"`
	Testimonials int64 `json:"testimonials"`
}

type Section struct {
	ID    string
	Label string
	Count int64
}

func (s Stats) Sections() []Section {
	return []Section{
		{"projects", "Projects", s.Projects},
		{"inquiries", "Inquiries", s.Inquiries},
		{"payments", "Payments", s.Payments},
		{"testimonials", "Testimonials", s.Testimonials},
	}
}

// LoadStats counts the four admin collections in parallel. Any failure fails
// the whole load.
func LoadStats(ctx context.Context, counter Counter) (Stats, error) {
	var s Stats
	g, ctx := errgroup.WithContext(ctx)
	targets := []struct {
		c   repository.Collection
		dst *int64
	}{
		{repository.Projects, &s.Projects},
		{repository.Inquiries, &s.Inquiries},
		{repository.Payments, &s.Payments},
		{repository.Testimonials, &s.Testimonials},
	}
	for _, t := range targets {
		t := t
		g.Go(func() error {
			n, err := counter.Count(ctx, t.c, repository.Query{})
			if err != nil {
				return err
			}
			*t.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return s, nil
}
