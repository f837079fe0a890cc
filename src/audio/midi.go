package audio

import (
	"context"
	"fmt"
	"log"

	"gitlab.com/gomidi/midi"
	"gitlab.com/gomidi/rtmididrv"
)

// ListenToMidiIn forwards raw messages from the given MIDI IN port until ctx
// is done. The channel is closed when listening stops.
func ListenToMidiIn(ctx context.Context, port int) <-chan []byte {
	ch := make(chan []byte, 65536)
	go func() {
		defer close(ch)
		drv, err := rtmididrv.New()
		if err != nil {
			log.Printf("failed to initialize MIDI driver: %v\n", err)
			return
		}
		defer func() {
			err := drv.Close()
			if err != nil {
				log.Printf("failed to close MIDI driver: %v\n", err)
			}
		}()
		ins, err := drv.Ins()
		if err != nil {
			log.Printf("failed to get MIDI IN: %v\n", err)
			return
		}
		log.Printf("MIDI IN: %v\n", ins)
		in, err := selectMidiIn(ins, port)
		if err != nil {
			log.Printf("WARN: %v\n", err)
			return
		}
		if err := in.Open(); err != nil {
			log.Printf("failed to open MIDI IN: %v\n", err)
			return
		}
		log.Println("opened " + in.String())
		defer func() {
			err := in.Close()
			if err != nil {
				log.Printf("failed to close MIDI IN: %v\n", err)
			}
		}()
		log.Println("start listening MIDI IN...")
		if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
			msg := make([]byte, len(data))
			copy(msg, data)
			select {
			case ch <- msg:
			default:
				log.Println("[WARN] MIDI IN buffer full")
			}
		}); err != nil {
			log.Println("failed to set listener: " + err.Error())
			return
		}
		defer func() {
			log.Println("stop listening MIDI IN...")
			err := in.StopListening()
			if err != nil {
				log.Printf("failed to stop listening: %v\n", err)
			}
		}()
		<-ctx.Done()
	}()
	return ch
}

func selectMidiIn(ins []midi.In, port int) (midi.In, error) {
	if len(ins) == 0 {
		return nil, fmt.Errorf("MIDI IN not found")
	}
	if port < 0 || port >= len(ins) {
		return nil, fmt.Errorf("MIDI IN port %d out of range (0-%d)", port, len(ins)-1)
	}
	return ins[port], nil
}
