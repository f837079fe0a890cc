package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// ----- Wavetable ----- //

// Wavetable holds one cycle of a periodic waveform.
type Wavetable struct {
	values []float64
}

func newWavetable(samples int) *Wavetable {
	if samples < 0 {
		samples = 0
	}
	return &Wavetable{
		values: make([]float64, samples),
	}
}

func (wt *Wavetable) generate(phaseToValue func(phase float64) float64) {
	samples := len(wt.values)
	for i := 0; i < samples; i++ {
		phase := 2.0 * math.Pi * float64(i) / float64(samples)
		wt.values[i] = phaseToValue(phase)
	}
}

// NewSineWavetable samples sin(2πi/size) for i in [0, size).
func NewSineWavetable(size int) *Wavetable {
	wt := newWavetable(size)
	wt.generate(math.Sin)
	return wt
}

// NewPartialWavetable sums partials 1..partials of an additive waveform.
func NewPartialWavetable(size int, partials int, calcFourierPartialAtPhase func(n int, phase float64) float64) *Wavetable {
	wt := newWavetable(size)
	wt.generate(func(phase float64) float64 {
		value := 0.0
		for i := 1; i <= partials; i++ {
			value += calcFourierPartialAtPhase(i, phase)
		}
		return value
	})
	return wt
}

func (wt *Wavetable) Len() int {
	return len(wt.values)
}

// at interpolates linearly between the two samples around index position pos.
// pos must be non-negative.
func (wt *Wavetable) at(pos float64) float64 {
	length := len(wt.values)
	floor := math.Floor(pos)
	index := int(math.Mod(floor, float64(length)))
	if index < 0 || index >= length {
		index = 0
	}
	nextIndex := index + 1
	if nextIndex >= length {
		nextIndex = 0
	}
	frac := pos - floor
	return wt.values[index]*(1-frac) + wt.values[nextIndex]*frac
}

// IO
//   table = { number_of_samples int32, samples []float64 }

func (wt *Wavetable) Save(path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer file.Close()
	numSamples := int32(len(wt.values))
	if err := binary.Write(file, binary.BigEndian, numSamples); err != nil {
		return err
	}
	if err := binary.Write(file, binary.BigEndian, wt.values); err != nil {
		return err
	}
	return file.Close()
}

func LoadWavetable(path string) (*Wavetable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	var numSamples int32
	if err := binary.Read(file, binary.BigEndian, &numSamples); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if numSamples < 0 {
		return nil, fmt.Errorf("read %s: negative sample count %d", path, numSamples)
	}
	wt := newWavetable(int(numSamples))
	if err := binary.Read(file, binary.BigEndian, wt.values); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return wt, nil
}
