package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jinjor/pull-synth/src/audio"
	"golang.org/x/sync/errgroup"
)

func main() {
	sampleRate := flag.Float64("sample-rate", 48000, "Render sample rate in Hz")
	blockSize := flag.Int("block-size", 128, "Samples per block")
	notesFlag := flag.String("notes", "60,64,67,72", "Comma separated MIDI notes played in sequence")
	noteSec := flag.Float64("note-length", 0.5, "Seconds each note is held")
	tailSec := flag.Float64("tail", 1.0, "Seconds rendered after the last note-off")
	outDir := flag.String("out", ".", "Output directory")
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	notes, err := parseNotes(*notesFlag)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	settings, err := audio.NewSettings(*sampleRate, *blockSize)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	presets := flag.Args()
	if len(presets) == 0 {
		presets = []string{""}
	}

	g, _ := errgroup.WithContext(context.Background())
	for _, path := range presets {
		path := path
		g.Go(func() error {
			preset := audio.DefaultPreset()
			name := "default"
			if path != "" {
				p, err := audio.LoadPreset(path)
				if err != nil {
					return err
				}
				preset = p
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			voice, err := audio.NewVoice(settings, preset)
			if err != nil {
				return err
			}
			samples := audio.RenderNotes(settings, voice, notes, *noteSec, *tailSec)
			output := filepath.Join(*outDir, name+".wav")
			if err := audio.WriteWAV(output, int(*sampleRate), samples); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			log.Printf("wrote %s (%d samples)\n", output, len(samples))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
}

func parseNotes(s string) ([]int, error) {
	var notes []int
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		note, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid note %q: %w", item, err)
		}
		if note < 0 || note > 127 {
			return nil, fmt.Errorf("note %d out of range", note)
		}
		notes = append(notes, note)
	}
	return notes, nil
}
