package audio

import (
	"log"
	"math"
)

// ----- Note Router ----- //

const baseFreq = 440.0

func NoteToFreq(note int) float64 {
	return baseFreq * math.Pow(2, float64(note-69)/12)
}

// NoteRouter turns note events into frequency pushes and envelope triggers.
// The most recently pressed held note sets the pitch.
type NoteRouter struct {
	freq        *Constant
	osc         *TableOsc
	env         *Envelope
	activeNotes []int
}

func NewNoteRouter(freq *Constant, osc *TableOsc, env *Envelope) *NoteRouter {
	return &NoteRouter{
		freq:        freq,
		osc:         osc,
		env:         env,
		activeNotes: make([]int, 0, 128),
	}
}

func (r *NoteRouter) ActiveNotes() []int {
	notes := make([]int, len(r.activeNotes))
	copy(notes, r.activeNotes)
	return notes
}

// NoteOn treats zero velocity as a note-off.
func (r *NoteRouter) NoteOn(note int, velocity int) {
	if velocity == 0 {
		r.NoteOff(note)
		return
	}
	if len(r.activeNotes) == 0 && r.env.Amplitude() == 0 && r.osc != nil {
		r.osc.ResetPhase()
	}
	r.activeNotes = append(r.activeNotes, note)
	r.update()
}

func (r *NoteRouter) NoteOff(note int) {
	for i, n := range r.activeNotes {
		if n == note {
			r.activeNotes = append(r.activeNotes[:i], r.activeNotes[i+1:]...)
			r.update()
			return
		}
	}
	log.Printf("[WARN] note-off for inactive note %d\n", note)
}

func (r *NoteRouter) update() {
	if len(r.activeNotes) == 0 {
		r.env.Release()
		return
	}
	r.freq.SetValue(NoteToFreq(r.activeNotes[len(r.activeNotes)-1]))
	r.env.Attack()
}

// HandleMessage routes a raw MIDI channel message. Anything other than
// note-on/note-off is ignored.
func (r *NoteRouter) HandleMessage(data []byte) {
	if len(data) < 3 {
		return
	}
	note := int(data[1])
	velocity := int(data[2])
	switch data[0] >> 4 {
	case 0x8:
		r.NoteOff(note)
	case 0x9:
		r.NoteOn(note, velocity)
	}
}
