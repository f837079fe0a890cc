package audio

import (
	"errors"
	"fmt"
)

// ----- Settings ----- //

// ErrInvalidSettings is returned for a non-positive sample rate or block size.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is shared by every node of one graph and never changes after the
// graph is built.
type Settings struct {
	SampleRate float64
	BlockSize  int
}

func NewSettings(sampleRate float64, blockSize int) (*Settings, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidSettings, sampleRate)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size %v", ErrInvalidSettings, blockSize)
	}
	return &Settings{
		SampleRate: sampleRate,
		BlockSize:  blockSize,
	}, nil
}

func (s *Settings) secondsToSamples(sec float64) int {
	return int(sec * s.SampleRate)
}
