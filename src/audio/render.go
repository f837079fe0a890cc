package audio

import (
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ----- Offline Rendering ----- //

// RenderNotes plays notes one after another, each held for noteSec, then
// keeps rendering for tailSec after the last note-off. Note events land on
// block boundaries.
func RenderNotes(settings *Settings, v *Voice, notes []int, noteSec float64, tailSec float64) []float64 {
	noteBlocks := blocksFor(settings, noteSec)
	tailBlocks := blocksFor(settings, tailSec)
	out := make([]float64, 0, (len(notes)*noteBlocks+tailBlocks)*settings.BlockSize)
	var tick int64
	render := func(blocks int) {
		for n := 0; n < blocks; n++ {
			block := v.Root().Evaluate(tick)
			tick++
			for i := 0; i < settings.BlockSize; i++ {
				out = append(out, valueAt(block, i))
			}
		}
	}
	for _, note := range notes {
		v.Router.NoteOn(note, 100)
		render(noteBlocks)
		v.Router.NoteOff(note)
	}
	render(tailBlocks)
	return out
}

func blocksFor(settings *Settings, sec float64) int {
	samples := settings.secondsToSamples(sec)
	if samples <= 0 {
		return 0
	}
	return (samples + settings.BlockSize - 1) / settings.BlockSize
}

// WriteWAV encodes mono samples as 16-bit PCM.
func WriteWAV(path string, sampleRate int, samples []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, sampleRate, 16, 1, 1)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(toPCM16(s))
	}
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return file.Close()
}
