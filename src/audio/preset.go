package audio

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
)

// ----- Preset ----- //

type Preset struct {
	TableSize int
	Wavetable string  // optional path of a saved table; overrides TableSize
	Attack    float64 // sec
	Decay     float64 // sec
	Sustain   float64 // 0-1
	Release   float64 // sec
	Gain      float64 // 0-1
	Filter    bool
}

type presetJSON struct {
	TableSize *int     `json:"tableSize"`
	Wavetable *string  `json:"wavetable"`
	Attack    *float64 `json:"attack"`
	Decay     *float64 `json:"decay"`
	Sustain   *float64 `json:"sustain"`
	Release   *float64 `json:"release"`
	Gain      *float64 `json:"gain"`
	Filter    *bool    `json:"filter"`
}

func DefaultPreset() *Preset {
	return &Preset{
		TableSize: 1024,
		Attack:    2,
		Decay:     2,
		Sustain:   0.5,
		Release:   2,
		Gain:      0.3,
	}
}

func LoadPreset(path string) (*Preset, error) {
	bytes, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := DefaultPreset()
	if err := p.applyJSON(bytes); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
}

// applyJSON overwrites only the fields present in data.
func (p *Preset) applyJSON(data []byte) error {
	var j presetJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if j.TableSize != nil {
		p.TableSize = *j.TableSize
	}
	if j.Wavetable != nil {
		p.Wavetable = *j.Wavetable
	}
	if j.Attack != nil {
		p.Attack = *j.Attack
	}
	if j.Decay != nil {
		p.Decay = *j.Decay
	}
	if j.Sustain != nil {
		p.Sustain = *j.Sustain
	}
	if j.Release != nil {
		p.Release = *j.Release
	}
	if j.Gain != nil {
		p.Gain = *j.Gain
	}
	if j.Filter != nil {
		p.Filter = *j.Filter
	}
	return nil
}

func (p *Preset) toJSON() ([]byte, error) {
	return json.Marshal(&presetJSON{
		TableSize: &p.TableSize,
		Wavetable: &p.Wavetable,
		Attack:    &p.Attack,
		Decay:     &p.Decay,
		Sustain:   &p.Sustain,
		Release:   &p.Release,
		Gain:      &p.Gain,
		Filter:    &p.Filter,
	})
}

func (p *Preset) String() string {
	bytes, err := p.toJSON()
	if err != nil {
		return fmt.Sprintf("%#v", *p)
	}
	return string(bytes)
}
