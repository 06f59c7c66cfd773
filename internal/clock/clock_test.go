package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	c := NewFakeClock(start)

	c.Advance(36 * time.Hour)

	assert.Equal(t, start.Add(36*time.Hour), c.Now())
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	got := System().Now()
	assert.False(t, got.Before(before))
}
