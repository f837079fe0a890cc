package audio

import (
	"fmt"
	"math"
)

// ----- Stage ----- //

type Stage int

const (
	StageNone Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

var stageNames = [...]string{
	StageNone:    "none",
	StageAttack:  "attack",
	StageDecay:   "decay",
	StageSustain: "sustain",
	StageRelease: "release",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// ----- Envelope ----- //

/*
  1 +    x
    |   / \
    |  /   \
  s + /     x--------x
    |/                \
  0 +------+---+------+---x
    |a     |d  |      |r  |
*/

// Envelope multiplies its SIGNAL input by a linear attack/decay/sustain/
// release gain. ATTACK, DECAY and RELEASE are stage lengths in seconds, read
// per sample; SUSTAIN is a level.
//
// Attack and Release must not run concurrently with Evaluate.
type Envelope struct {
	settings  *Settings
	cache     cache
	signal    slot
	attack    slot
	decay     slot
	sustain   slot
	release   slot
	stage     Stage
	amplitude float64
}

func NewEnvelope(settings *Settings) *Envelope {
	return &Envelope{
		settings: settings,
		cache:    newCache(settings.BlockSize),
		signal:   constantSlot(0),
		attack:   constantSlot(0),
		decay:    constantSlot(0),
		sustain:  constantSlot(1),
		release:  constantSlot(0),
	}
}

func (e *Envelope) Bind(p Param, n Node) error {
	switch p {
	case ParamSignal:
		e.signal.bind(n)
	case ParamAttack:
		e.attack.bind(n)
	case ParamDecay:
		e.decay.bind(n)
	case ParamSustain:
		e.sustain.bind(n)
	case ParamRelease:
		e.release.bind(n)
	default:
		return fmt.Errorf("%w: envelope has no %v", ErrUnknownParam, p)
	}
	return nil
}

// Attack starts a note. A silent envelope ramps up from zero; a sounding one
// goes straight to decay from its current amplitude.
func (e *Envelope) Attack() {
	if !isFinite(e.amplitude) {
		e.amplitude = 0
	}
	if e.amplitude == 0 {
		e.stage = StageAttack
	} else {
		e.stage = StageDecay
	}
}

func (e *Envelope) Release() {
	e.stage = StageRelease
}

func (e *Envelope) Stage() Stage {
	return e.stage
}

func (e *Envelope) Amplitude() float64 {
	return e.amplitude
}

func (e *Envelope) Evaluate(tick int64) []float64 {
	if e.cache.advance(tick) {
		e.produce(tick)
	}
	return e.cache.buf
}

func (e *Envelope) produce(tick int64) {
	out := e.cache.buf
	if e.stage == StageNone {
		fill(out, 0, 0)
		return
	}
	src := e.signal.source().Evaluate(tick)
	for i := range out {
		out[i] = valueAt(src, i)
	}
	pos := 0
	for pos < len(out) {
		var done bool
		switch e.stage {
		case StageAttack:
			pos, done = e.ramp(tick, e.attack.source(), pos, 0, 1)
		case StageDecay:
			level := e.level(tick, pos)
			if level > e.amplitude && e.amplitude < 1 {
				e.stage = StageAttack
				continue
			}
			pos, done = e.ramp(tick, e.decay.source(), pos, 1, level)
		case StageSustain:
			e.applySustain(tick, pos)
			return
		case StageRelease:
			pos, done = e.ramp(tick, e.release.source(), pos, e.level(tick, pos), 0)
		default:
			fill(out, pos, 0)
			return
		}
		if !done {
			return
		}
		if e.stage == StageRelease {
			fill(out, pos, 0)
			e.stage = StageNone
			return
		}
		e.stage++
	}
}

// level reads the sustain level at pos. A non-finite level counts as 0.
func (e *Envelope) level(tick int64, pos int) float64 {
	v := valueAt(e.sustain.source().Evaluate(tick), pos)
	if !isFinite(v) {
		return 0
	}
	return v
}

// ramp moves the amplitude linearly from start toward target, scaling out
// from pos onward. The slope is recomputed each sample from the duration
// input, and the amplitude is clamped to target on the sample that reaches
// it. It returns the position after the last ramped sample and whether the
// target was reached.
func (e *Envelope) ramp(tick int64, duration Node, pos int, start, target float64) (int, bool) {
	out := e.cache.buf
	if !isFinite(e.amplitude) || (target-start)*(target-e.amplitude) <= 0 {
		e.amplitude = target
		return pos, true
	}
	durations := duration.Evaluate(tick)
	for i := pos; i < len(out); i++ {
		sec := valueAt(durations, i)
		if !(sec > 0) {
			e.amplitude = target
			return i, true
		}
		e.amplitude += (target - start) / (sec * e.settings.SampleRate)
		if !isFinite(e.amplitude) || (target-start)*(target-e.amplitude) <= 0 {
			e.amplitude = target
			out[i] *= e.amplitude
			return i + 1, true
		}
		out[i] *= e.amplitude
	}
	return len(out), false
}

func (e *Envelope) applySustain(tick int64, pos int) {
	out := e.cache.buf
	levels := e.sustain.source().Evaluate(tick)
	for i := pos; i < len(out); i++ {
		e.amplitude = valueAt(levels, i)
		if !isFinite(e.amplitude) {
			e.amplitude = 0
		}
		out[i] *= e.amplitude
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func fill(buf []float64, from int, value float64) {
	for i := from; i < len(buf); i++ {
		buf[i] = value
	}
}
