package main

import (
	"context"
	"flag"
	"log"
	"math"
	"path/filepath"

	"github.com/jinjor/pull-synth/src/audio"
	"golang.org/x/sync/errgroup"
)

func main() {
	numSamples := flag.Int("samples", 4096, "Samples per table")
	partials := flag.Int("partials", 64, "Number of partials for saw and square")
	flag.Parse()
	dir := flag.Arg(0)
	if dir == "" {
		log.Fatalln("usage: gentables [flags] <dir>")
	}
	log.SetFlags(log.Lshortfile)

	tables := []struct {
		name string
		make func() *audio.Wavetable
	}{
		{"sine", func() *audio.Wavetable {
			return audio.NewSineWavetable(*numSamples)
		}},
		{"square", func() *audio.Wavetable {
			return audio.NewPartialWavetable(*numSamples, *partials, calcPartialSquareAtPhase)
		}},
		{"saw", func() *audio.Wavetable {
			return audio.NewPartialWavetable(*numSamples, *partials, calcPartialSawAtPhase)
		}},
	}
	g, _ := errgroup.WithContext(context.Background())
	for _, t := range tables {
		t := t
		g.Go(func() error {
			wt := t.make()
			log.Printf("generated %s wave\n", t.name)
			err := wt.Save(filepath.Join(dir, t.name+".wt"))
			log.Printf("saved %s wave\n", t.name)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("Successfully generated wavetables.")
}

func calcPartialSquareAtPhase(n int, phase float64) float64 {
	if n%2 == 1 {
		x := float64(n)
		return math.Sin(x*phase) / x
	}
	return 0.0
}
func calcPartialSawAtPhase(n int, phase float64) float64 {
	x := float64(n)
	return math.Sin(x*phase) / x
}
