package page

import (
	"context"
	"sync"
	"time"
)

// CarouselInterval is the fixed auto-advance period.
const CarouselInterval = 5 * time.Second

// Carousel is a wrapping index over n items. It is safe for concurrent use so
// the auto-advance loop and manual navigation can share one instance.
type Carousel struct {
	mu  sync.Mutex
	n   int
	idx int
}

// NewCarousel starts at start, wrapped into range.
func NewCarousel(n, start int) *Carousel {
	c := &Carousel{n: n}
	c.idx = c.wrap(start)
	return c
}

func (c *Carousel) wrap(i int) int {
	if c.n <= 0 {
		return 0
	}
	return ((i % c.n) + c.n) % c.n
}

func (c *Carousel) Len() int { return c.n }

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx
}

func (c *Carousel) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx = c.wrap(c.idx + 1)
	return c.idx
}

func (c *Carousel) Prev() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx = c.wrap(c.idx - 1)
	return c.idx
}

// Select jumps to i, wrapped into range.
func (c *Carousel) Select(i int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idx = c.wrap(i)
	return c.idx
}

// NextOf and PrevOf compute neighbours without moving the carousel.
func (c *Carousel) NextOf(i int) int { return c.wrap(i + 1) }
func (c *Carousel) PrevOf(i int) int { return c.wrap(i - 1) }

// AutoAdvance advances every interval (CarouselInterval when interval <= 0)
// until ctx is done, calling onTick with the new index. It returns at once
// for an empty carousel.
func (c *Carousel) AutoAdvance(ctx context.Context, interval time.Duration, onTick func(int) error) error {
	if c.n == 0 {
		return nil
	}
	if interval <= 0 {
		interval = CarouselInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	return c.Run(ctx, t.C, onTick)
}

// Run advances once per tick. Manual Next/Prev calls do not reset the
// schedule. An error from onTick stops the loop and is returned.
func (c *Carousel) Run(ctx context.Context, ticks <-chan time.Time, onTick func(int) error) error {
	if c.n == 0 {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			i := c.Next()
			if onTick != nil {
				if err := onTick(i); err != nil {
					return err
				}
			}
		}
	}
}
