package audio

import (
	"math"
	"testing"
)

func collect(n Node, blocks int) []float64 {
	var out []float64
	for tick := int64(0); tick < int64(blocks); tick++ {
		out = append(out, n.Evaluate(tick)...)
	}
	return out
}

func TestOscPeriodicity(t *testing.T) {
	const tableSize = 64
	settings := newTestSettings(t, 1024, 32)
	o := NewTableOsc(settings, tableSize)
	expectNoError(t, o.Bind(ParamFrequency, NewConstant(settings.SampleRate/tableSize)))

	out := collect(o, 8)
	expectNearlyEqual(t, out[0], 0)
	expectNearlyEqual(t, out[16], 1)
	expectNearlyEqual(t, out[48], -1)
	for k := 0; k+tableSize < len(out); k++ {
		expectNearlyEqual(t, out[k+tableSize], out[k])
	}
}

func TestOscPeriodicityWithInexactIncrement(t *testing.T) {
	const tableSize = 100
	settings := newTestSettings(t, 48000, 50)
	o := NewTableOsc(settings, tableSize)
	expectNoError(t, o.Bind(ParamFrequency, NewConstant(settings.SampleRate/tableSize)))

	out := collect(o, 6)
	for k := 0; k+tableSize < len(out); k++ {
		expectNearlyEqual(t, out[k+tableSize], out[k])
	}
}

func TestOscInterpolates(t *testing.T) {
	settings := newTestSettings(t, 1024, 4)
	o := NewTableOsc(settings, 4)
	expectNoError(t, o.Bind(ParamFrequency, NewConstant(128)))
	// half a table step per sample: 0, (0+1)/2, 1, (1+0)/2
	expectBlock(t, o.Evaluate(0), 0, 0.5, 1, 0.5)
	expectBlock(t, o.Evaluate(1), 0, -0.5, -1, -0.5)
}

func TestOscAudioRateFrequency(t *testing.T) {
	settings := newTestSettings(t, 1024, 4)
	o := NewTableOsc(settings, 64)
	freqs := newSequenceNode(4, []float64{16, 0, 0, 16, 16, 16, 16, 16})
	expectNoError(t, o.Bind(ParamFrequency, freqs))
	step := math.Sin(2 * math.Pi / 64)
	expectBlock(t, o.Evaluate(0), 0, step, step, step)
}

func TestOscAmplitude(t *testing.T) {
	settings := newTestSettings(t, 1024, 4)
	o := NewTableOsc(settings, 4)
	expectNoError(t, o.Bind(ParamFrequency, NewConstant(256)))
	expectNoError(t, o.Bind(ParamAmplitude, NewConstant(0.5)))
	expectBlock(t, o.Evaluate(0), 0, 0.5, 0, -0.5)
}

func TestOscNegativeFrequencyWraps(t *testing.T) {
	settings := newTestSettings(t, 1024, 2)
	o := NewTableOsc(settings, 64)
	expectNoError(t, o.Bind(ParamFrequency, NewConstant(-16)))
	expectBlock(t, o.Evaluate(0), 0, math.Sin(2*math.Pi*63/64))
}

func TestOscResetPhase(t *testing.T) {
	settings := newTestSettings(t, 1024, 4)
	o := NewTableOsc(settings, 64)
	expectNoError(t, o.Bind(ParamFrequency, NewConstant(16)))
	first := append([]float64(nil), o.Evaluate(0)...)
	o.Evaluate(1)
	o.ResetPhase()
	expectBlock(t, o.Evaluate(2), first...)
}

func TestOscDefaultFrequency(t *testing.T) {
	settings := newTestSettings(t, 44000, 100)
	o := NewTableOsc(settings, 100)
	// 440Hz over 100 samples/cycle at 44kHz: one table step per sample.
	out := o.Evaluate(0)
	expectNearlyEqual(t, out[25], 1)

	expectNoError(t, o.Bind(ParamFrequency, NewConstant(0)))
	expectNoError(t, o.Bind(ParamFrequency, nil))
	o.ResetPhase()
	expectNearlyEqual(t, o.Evaluate(1)[25], 1)
}

func TestOscEmptyTableIsSilent(t *testing.T) {
	settings := newTestSettings(t, 1024, 4)
	o := NewTableOsc(settings, 0)
	expectBlock(t, o.Evaluate(0), 0, 0, 0, 0)
}
