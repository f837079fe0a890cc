package audio

import (
	"math"
	"sync"
)

// ----- Constant ----- //

// Constant publishes a single settable value as a one-sample block.
// SetValue may be called from any goroutine.
type Constant struct {
	mu    sync.Mutex
	cache cache
	value float64
	min   float64
	max   float64
}

func NewConstant(value float64) *Constant {
	return NewBoundedConstant(value, math.Inf(-1), math.Inf(1))
}

// NewBoundedConstant clips every value it receives into [min, max].
func NewBoundedConstant(value, min, max float64) *Constant {
	c := &Constant{
		cache: newCache(1),
		min:   min,
		max:   max,
	}
	c.value = c.clip(value)
	return c
}

func (c *Constant) clip(v float64) float64 {
	return math.Max(c.min, math.Min(v, c.max))
}

func (c *Constant) SetValue(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = c.clip(v)
	c.cache.tick = tickAlwaysStale
}

func (c *Constant) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *Constant) Evaluate(tick int64) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache.advance(tick) {
		c.cache.buf[0] = c.value
		c.cache.tick = tickNeverStale
	}
	return c.cache.buf
}
