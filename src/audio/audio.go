package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"sync"

	"github.com/hajimehoshi/oto"
)

const (
	channelNum      = 2
	bitDepthInBytes = 2
	bytesPerSample  = bitDepthInBytes * channelNum
)

// ErrUnknownCommand is returned by update for malformed control commands.
var ErrUnknownCommand = errors.New("unknown command")

// ----- Utility ----- //

func positiveMod(a float64, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

func clip(v, lower, upper float64) float64 {
	return math.Max(lower, math.Min(v, upper))
}

// toPCM16 scales a sample in [-1, 1] to a signed 16-bit value. NaN is silence.
func toPCM16(value float64) int16 {
	if math.IsNaN(value) {
		return 0
	}
	return int16(clip(value, -1, 1) * 32767)
}

// ----- Audio ----- //

// Audio drives a Voice from a device callback: every block is pulled from
// the voice's root with a strictly increasing tick. Control events are
// serialized with block evaluation.
type Audio struct {
	ctx        context.Context
	otoContext *oto.Context
	CommandCh  chan []string

	sync.Mutex
	settings *Settings
	voice    *Voice
	tick     int64
	block    []float64
	blockPos int
}

var _ io.Reader = (*Audio)(nil)

func newAudio(settings *Settings, voice *Voice) *Audio {
	return &Audio{
		ctx:       context.Background(),
		CommandCh: make(chan []string, 256),
		settings:  settings,
		voice:     voice,
		block:     make([]float64, settings.BlockSize),
		blockPos:  settings.BlockSize,
	}
}

// NewAudio opens the output device.
func NewAudio(settings *Settings, voice *Voice) (*Audio, error) {
	bufferSizeInBytes := settings.BlockSize * bytesPerSample
	if bufferSizeInBytes < 4096 {
		bufferSizeInBytes = 4096
	}
	otoContext, err := oto.NewContext(int(settings.SampleRate), channelNum, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return nil, err
	}
	audio := newAudio(settings, voice)
	audio.otoContext = otoContext
	go processCommands(audio, audio.CommandCh)
	return audio, nil
}

func (a *Audio) Read(buf []byte) (int, error) {
	select {
	case <-a.ctx.Done():
		log.Println("Read() interrupted.")
		return 0, io.EOF
	default:
	}
	a.Lock()
	defer a.Unlock()
	frames := len(buf) / bytesPerSample
	for i := 0; i < frames; i++ {
		if a.blockPos == len(a.block) {
			a.nextBlock()
		}
		writeFrame(buf[i*bytesPerSample:], a.block[a.blockPos])
		a.blockPos++
	}
	return frames * bytesPerSample, nil
}

// nextBlock evaluates the root for the next tick and copies the result out
// before the graph can overwrite it.
func (a *Audio) nextBlock() {
	out := a.voice.Root().Evaluate(a.tick)
	a.tick++
	for i := range a.block {
		a.block[i] = valueAt(out, i)
	}
	a.blockPos = 0
}

func writeFrame(buf []byte, value float64) {
	b := toPCM16(value)
	for ch := 0; ch < channelNum; ch++ {
		buf[2*ch] = byte(b)
		buf[2*ch+1] = byte(b >> 8)
	}
}

func processCommands(audio *Audio, commandCh <-chan []string) {
	for command := range commandCh {
		if err := audio.update(command); err != nil {
			log.Printf("error: %v\n", err)
		}
	}
	log.Println("processCommands() ended.")
}

func (a *Audio) update(command []string) error {
	a.Lock()
	defer a.Unlock()

	if len(command) == 0 {
		return fmt.Errorf("%w: empty", ErrUnknownCommand)
	}
	switch command[0] {
	case "set":
		if len(command) != 3 {
			return fmt.Errorf("invalid key-value pair %v", command[1:])
		}
		value, err := strconv.ParseFloat(command[2], 64)
		if err != nil {
			return err
		}
		return a.voice.Set(command[1], value)
	case "filter":
		if len(command) != 2 {
			return fmt.Errorf("%w: %v", ErrUnknownCommand, command)
		}
		switch command[1] {
		case "on":
			a.voice.SetFilter(true)
		case "off":
			a.voice.SetFilter(false)
		default:
			return fmt.Errorf("%w: %v", ErrUnknownCommand, command)
		}
	case "note_on":
		if len(command) < 2 {
			return fmt.Errorf("%w: %v", ErrUnknownCommand, command)
		}
		note, err := strconv.ParseInt(command[1], 10, 32)
		if err != nil {
			return err
		}
		velocity := int64(100)
		if len(command) > 2 {
			velocity, err = strconv.ParseInt(command[2], 10, 32)
			if err != nil {
				return err
			}
		}
		a.voice.Router.NoteOn(int(note), int(velocity))
	case "note_off":
		if len(command) < 2 {
			return fmt.Errorf("%w: %v", ErrUnknownCommand, command)
		}
		note, err := strconv.ParseInt(command[1], 10, 32)
		if err != nil {
			return err
		}
		a.voice.Router.NoteOff(int(note))
	default:
		return fmt.Errorf("%w: %v", ErrUnknownCommand, command[0])
	}
	return nil
}

// Close ...
func (a *Audio) Close() error {
	log.Println("Closing Audio...")
	close(a.CommandCh)
	if a.otoContext == nil {
		return nil
	}
	return a.otoContext.Close()
}

// Start blocks until ctx is done.
func (a *Audio) Start(ctx context.Context) error {
	p := a.otoContext.NewPlayer()
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("error: %v", err)
		}
	}()
	a.ctx = ctx

	if _, err := io.CopyBuffer(p, a, make([]byte, a.settings.BlockSize*bytesPerSample)); err != nil {
		return err
	}
	log.Println("Start() ended.")
	return nil
}

// AddMidiEvent ...
func (a *Audio) AddMidiEvent(data []byte) {
	a.Lock()
	defer a.Unlock()
	a.voice.Router.HandleMessage(data)
}
