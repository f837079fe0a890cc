package audio

import (
	"errors"
	"fmt"
	"math"
)

// ----- Node ----- //

// Node produces one block of samples per tick.
//
// Evaluate computes the block at most once per tick. Calling it again with the
// same (or a lower) tick returns the cached block without recomputation.
// The returned slice is owned by the node and is only valid until the next
// tick is evaluated.
type Node interface {
	Evaluate(tick int64) []float64
}

// Binder is implemented by nodes that accept producers on named slots.
// Binding nil restores the slot's default Constant.
type Binder interface {
	Bind(p Param, n Node) error
}

// ErrUnknownParam is returned when binding a slot the node does not have.
var ErrUnknownParam = errors.New("unknown param")

const (
	tickAlwaysStale int64 = math.MinInt64
	tickNeverStale  int64 = math.MaxInt64
)

// ----- Cache ----- //

type cache struct {
	tick int64
	buf  []float64
}

func newCache(size int) cache {
	return cache{
		tick: tickAlwaysStale,
		buf:  make([]float64, size),
	}
}

// advance reports whether tick has not been computed yet and records it.
func (c *cache) advance(tick int64) bool {
	if tick > c.tick {
		c.tick = tick
		return true
	}
	return false
}

// ----- Param ----- //

// Param names a binding slot on a consumer node.
type Param int

const (
	ParamFrequency Param = iota
	ParamAmplitude
	ParamSignal
	ParamAttack
	ParamDecay
	ParamSustain
	ParamRelease
)

var paramNames = [...]string{
	ParamFrequency: "frequency",
	ParamAmplitude: "amplitude",
	ParamSignal:    "signal",
	ParamAttack:    "attack",
	ParamDecay:     "decay",
	ParamSustain:   "sustain",
	ParamRelease:   "release",
}

func (p Param) String() string {
	if p < 0 || int(p) >= len(paramNames) {
		return fmt.Sprintf("param(%d)", int(p))
	}
	return paramNames[p]
}

// ParamFromString parses a slot name such as "attack".
func ParamFromString(s string) (Param, error) {
	for i, name := range paramNames {
		if name == s {
			return Param(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, s)
}

// ----- Slot ----- //

// slot holds the producer bound to one param. An empty slot lazily creates
// its own default node.
type slot struct {
	node       Node
	newDefault func() Node
}

func constantSlot(value float64) slot {
	return slot{newDefault: func() Node { return NewConstant(value) }}
}

func (s *slot) bind(n Node) {
	s.node = n
}

func (s *slot) source() Node {
	if s.node == nil {
		s.node = s.newDefault()
	}
	return s.node
}

// valueAt reads the slot's block at sample i, wrapping for shorter
// (control-rate) blocks.
func valueAt(buf []float64, i int) float64 {
	if len(buf) == 0 {
		return 0
	}
	return buf[i%len(buf)]
}
