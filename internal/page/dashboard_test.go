package page

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/meki101/mekitech.co.ke/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	mu     sync.Mutex
	counts map[repository.Collection]int64
	fail   repository.Collection
	calls  []repository.Collection
}

func (f *fakeCounter) Count(_ context.Context, c repository.Collection, _ repository.Query) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	if c == f.fail {
		return 0, errors.New("connection refused")
	}
	return f.counts[c], nil
}

func TestLoadStats(t *testing.T) {
	fc := &fakeCounter{counts: map[repository.Collection]int64{
		repository.Projects:     12,
		repository.Inquiries:    40,
		repository.Payments:     3,
		repository.Testimonials: 9,
	}}

	s, err := LoadStats(context.Background(), fc)
	require.NoError(t, err)
	assert.Equal(t, Stats{Projects: 12, Inquiries: 40, Payments: 3, Testimonials: 9}, s)
	assert.ElementsMatch(t, []repository.Collection{
		repository.Projects, repository.Inquiries, repository.Payments, repository.Testimonials,
	}, fc.calls)

	sections := s.Sections()
	require.Len(t, sections, 4)
	assert.Equal(t, "inquiries", sections[1].ID)
	assert.Equal(t, int64(40), sections[1].Count)
}

func TestLoadStatsFailureReturnsZeros(t *testing.T) {
	fc := &fakeCounter{
		counts: map[repository.Collection]int64{repository.Projects: 12},
		fail:   repository.Payments,
	}
	s, err := LoadStats(context.Background(), fc)
	require.Error(t, err)
	assert.Equal(t, Stats{}, s)
}
