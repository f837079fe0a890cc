package audio

import (
	"errors"
	"fmt"
	"log"
)

// ErrInvalidValue is returned when a control receives NaN or an infinity.
var ErrInvalidValue = errors.New("invalid value")

// ----- Voice ----- //

// Voice is a monophonic graph:
//
//	freq -> osc (amplitude: gain) -> envelope (a/d/s/r) [-> filter]
type Voice struct {
	osc      *TableOsc
	env      *Envelope
	filter   *Filter
	root     Node
	controls map[Param]*Constant
	Router   *NoteRouter
}

func NewVoice(settings *Settings, p *Preset) (*Voice, error) {
	var osc *TableOsc
	if p.Wavetable != "" {
		table, err := LoadWavetable(p.Wavetable)
		if err != nil {
			return nil, err
		}
		osc = NewTableOscWithTable(settings, table)
	} else {
		osc = NewTableOsc(settings, p.TableSize)
	}
	v := &Voice{
		osc:    osc,
		env:    NewEnvelope(settings),
		filter: NewFilter(settings),
		controls: map[Param]*Constant{
			ParamFrequency: NewBoundedConstant(defaultFreq, minFreq, maxFreq),
			ParamAmplitude: NewConstant(p.Gain),
			ParamAttack:    NewConstant(p.Attack),
			ParamDecay:     NewConstant(p.Decay),
			ParamSustain:   NewBoundedConstant(p.Sustain, 0, 1),
			ParamRelease:   NewConstant(p.Release),
		},
	}
	bindings := []struct {
		to    Binder
		param Param
		from  Node
	}{
		{v.osc, ParamFrequency, v.controls[ParamFrequency]},
		{v.osc, ParamAmplitude, v.controls[ParamAmplitude]},
		{v.env, ParamSignal, v.osc},
		{v.env, ParamAttack, v.controls[ParamAttack]},
		{v.env, ParamDecay, v.controls[ParamDecay]},
		{v.env, ParamSustain, v.controls[ParamSustain]},
		{v.env, ParamRelease, v.controls[ParamRelease]},
		{v.filter, ParamSignal, v.env},
	}
	for _, b := range bindings {
		if err := b.to.Bind(b.param, b.from); err != nil {
			return nil, err
		}
	}
	v.SetFilter(p.Filter)
	v.Router = NewNoteRouter(v.controls[ParamFrequency], v.osc, v.env)
	return v, nil
}

// Root is the node the host pulls once per block.
func (v *Voice) Root() Node {
	return v.root
}

func (v *Voice) Envelope() *Envelope {
	return v.env
}

func (v *Voice) SetFilter(enabled bool) {
	if enabled {
		v.root = v.filter
	} else {
		v.root = v.env
	}
}

// Set pushes a value into the named control. Names are slot names, plus
// "gain" for the oscillator amplitude.
func (v *Voice) Set(name string, value float64) error {
	p, err := controlParam(name)
	if err != nil {
		return err
	}
	c, ok := v.controls[p]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if !isFinite(value) {
		return fmt.Errorf("%w: %s = %v", ErrInvalidValue, name, value)
	}
	c.SetValue(value)
	log.Printf("set %s = %v\n", p, value)
	return nil
}

func controlParam(name string) (Param, error) {
	if name == "gain" {
		return ParamAmplitude, nil
	}
	return ParamFromString(name)
}
