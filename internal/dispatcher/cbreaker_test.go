package dispatcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerTripsAndRecovers(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewBreaker(2, 10*time.Second)
	b.now = func() time.Time { return now }

	assert.True(t, b.Acquire())
	b.OnFailure()
	assert.Equal(t, Closed, b.State())
	b.OnFailure()
	assert.Equal(t, Open, b.State())
	assert.False(t, b.Ready())
	assert.False(t, b.Acquire())

	now = now.Add(10 * time.Second)
	assert.True(t, b.Ready())
	assert.True(t, b.Acquire())
	assert.Equal(t, HalfOpen, b.State())
	assert.False(t, b.Acquire(), "only one probe at a time")

	b.OnSuccess()
	assert.Equal(t, Closed, b.State())
	assert.True(t, b.Acquire())
}

func TestBreakerFailedProbeReopens(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewBreaker(1, time.Second)
	b.now = func() time.Time { return now }

	b.OnFailure()
	now = now.Add(time.Second)
	assert.True(t, b.Acquire())
	b.OnFailure()
	assert.Equal(t, Open, b.State())
	assert.False(t, b.Ready())
	assert.Equal(t, "open", b.State().String())
}
