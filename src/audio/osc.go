package audio

import "fmt"

// ----- Table Oscillator ----- //

const (
	defaultFreq = 440.0
	minFreq     = 1.0
	maxFreq     = 96000.0
)

// TableOsc reads a wavetable at a rate set by its FREQUENCY input and scales
// it by its AMPLITUDE input. Both inputs may be one-sample control blocks or
// full audio-rate blocks.
type TableOsc struct {
	settings  *Settings
	cache     cache
	table     *Wavetable
	phase     float64
	freq      slot
	amplitude slot
}

func NewTableOsc(settings *Settings, tableSize int) *TableOsc {
	return NewTableOscWithTable(settings, NewSineWavetable(tableSize))
}

func NewTableOscWithTable(settings *Settings, table *Wavetable) *TableOsc {
	return &TableOsc{
		settings: settings,
		cache:    newCache(settings.BlockSize),
		table:    table,
		freq: slot{newDefault: func() Node {
			return NewBoundedConstant(defaultFreq, minFreq, maxFreq)
		}},
		amplitude: constantSlot(1),
	}
}

func (o *TableOsc) Bind(p Param, n Node) error {
	switch p {
	case ParamFrequency:
		o.freq.bind(n)
	case ParamAmplitude:
		o.amplitude.bind(n)
	default:
		return fmt.Errorf("%w: oscillator has no %v", ErrUnknownParam, p)
	}
	return nil
}

// ResetPhase restarts the waveform from its first sample.
func (o *TableOsc) ResetPhase() {
	o.phase = 0
}

func (o *TableOsc) Evaluate(tick int64) []float64 {
	if o.cache.advance(tick) {
		o.produce(tick)
	}
	return o.cache.buf
}

func (o *TableOsc) produce(tick int64) {
	out := o.cache.buf
	size := o.table.Len()
	if size == 0 {
		fill(out, 0, 0)
		return
	}
	freq := o.freq.source().Evaluate(tick)
	amp := o.amplitude.source().Evaluate(tick)
	incrBase := float64(size) / o.settings.SampleRate
	for i := range out {
		out[i] = o.table.at(o.phase) * valueAt(amp, i)
		o.phase += incrBase * valueAt(freq, i)
		if o.phase < 0 {
			o.phase = positiveMod(o.phase, float64(size))
		}
	}
}
