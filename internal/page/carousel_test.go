package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarouselRunAdvancesModLength(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		for _, ticks := range []int{0, 1, 5, 13} {
			c := NewCarousel(n, 0)
			ch := make(chan time.Time, ticks)
			for i := 0; i < ticks; i++ {
				ch <- time.Time{}
			}
			close(ch)

			var seen []int
			err := c.Run(context.Background(), ch, func(i int) error {
				seen = append(seen, i)
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, ticks%n, c.Index(), "n=%d ticks=%d", n, ticks)
			assert.Len(t, seen, ticks)
		}
	}
}

func TestCarouselPrevNextWrap(t *testing.T) {
	c := NewCarousel(3, 0)
	assert.Equal(t, 2, c.Prev())
	assert.Equal(t, 1, c.Prev())
	assert.Equal(t, 2, c.Next())
	assert.Equal(t, 0, c.Next())

	for i := -10; i <= 10; i++ {
		got := c.Select(i)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, 3)
	}
	assert.Equal(t, 1, NewCarousel(3, 4).Index())
	assert.Equal(t, 2, NewCarousel(3, -1).Index())
	assert.Equal(t, 0, c.NextOf(2))
	assert.Equal(t, 2, c.PrevOf(0))
}

func TestCarouselEmpty(t *testing.T) {
	c := NewCarousel(0, 3)
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 0, c.Next())
	assert.Equal(t, 0, c.Prev())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	called := false
	start := time.Now()
	require.NoError(t, c.AutoAdvance(ctx, 0, func(int) error { called = true; return nil }))
	assert.False(t, called)
	assert.Less(t, time.Since(start), CarouselInterval)
}

func TestCarouselStopsOnCancel(t *testing.T) {
	c := NewCarousel(4, 0)
	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan time.Time)
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx, ticks, nil)
	}()

	ticks <- time.Time{}
	ticks <- time.Time{}
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("carousel did not stop after cancel")
	}
	assert.Equal(t, 2, c.Index())
}

func TestCarouselManualDoesNotResetSchedule(t *testing.T) {
	c := NewCarousel(5, 0)
	ticks := make(chan time.Time)
	ticked := make(chan int, 2)
	done := make(chan error, 1)
	go func() {
		done <- c.Run(context.Background(), ticks, func(i int) error {
			ticked <- i
			return nil
		})
	}()

	ticks <- time.Time{}
	assert.Equal(t, 1, <-ticked)
	c.Prev()
	c.Prev()
	assert.Equal(t, 4, c.Index())
	ticks <- time.Time{}
	assert.Equal(t, 0, <-ticked)
	close(ticks)

	require.NoError(t, <-done)
}

func TestCarouselTickErrorStops(t *testing.T) {
	c := NewCarousel(2, 0)
	ticks := make(chan time.Time, 3)
	ticks <- time.Time{}
	ticks <- time.Time{}
	boom := errors.New("client gone")
	err := c.Run(context.Background(), ticks, func(int) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, c.Index())
}

func TestCarouselAutoAdvance(t *testing.T) {
	c := NewCarousel(3, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []int
	err := c.AutoAdvance(ctx, time.Millisecond, func(i int) error {
		if len(got) < 4 {
			got = append(got, i)
		}
		if len(got) == 4 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0, 1}, got)
}
