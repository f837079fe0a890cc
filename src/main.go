package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"net"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/jinjor/pull-synth/src/audio"
	"golang.org/x/sync/errgroup"
)

const defaultSockFileName = "/tmp/pull-synth.sock"

func main() {
	sampleRate := flag.Float64("sample-rate", 48000, "Sample rate in Hz")
	blockSize := flag.Int("block-size", 512, "Samples per block")
	presetPath := flag.String("preset", "", "Preset JSON file path (optional)")
	midiPort := flag.Int("midi-port", 0, "MIDI IN port number")
	sock := flag.String("sock", defaultSockFileName, "Unix socket for control commands (empty to disable)")
	flag.Parse()
	log.SetFlags(log.Lshortfile)
	log.Printf("NumCPU: %v\n", runtime.NumCPU())

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	settings, err := audio.NewSettings(*sampleRate, *blockSize)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	preset := audio.DefaultPreset()
	if *presetPath != "" {
		preset, err = audio.LoadPreset(*presetPath)
		if err != nil {
			log.Fatalf("error: %v\n", err)
		}
	}
	log.Printf("preset: %v\n", preset)
	voice, err := audio.NewVoice(settings, preset)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	player, err := audio.NewAudio(settings, voice)
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	defer player.Close()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalCh)
		cancel()
	}()
	go func() {
		sig := <-signalCh
		log.Printf("Caught signal %s: shutting down...\n", sig)
		cancel()
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return player.Start(ctx)
	})
	g.Go(func() error {
		for data := range audio.ListenToMidiIn(ctx, *midiPort) {
			player.AddMidiEvent(data)
		}
		log.Println("MIDI IN ended.")
		return nil
	})
	if *sock != "" {
		g.Go(func() error {
			return withIPCConnection(ctx, *sock, func(conn net.Conn) error {
				return receiveCommands(ctx, conn, player.CommandCh)
			})
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}
	log.Println("main() ended.")
}

func withIPCConnection(ctx context.Context, sockFileName string, f func(net.Conn) error) error {
	os.Remove(sockFileName)
	listener, err := new(net.ListenConfig).Listen(ctx, "unix", sockFileName)
	if err != nil {
		return err
	}
	defer func() {
		log.Println("Closing IPC...")
		err := listener.Close()
		if err != nil {
			log.Printf("error while closing listener: %v", err)
		}
		os.Remove(sockFileName)
	}()
	log.Printf("start listening...\n")
	go func() {
		<-ctx.Done()
		listener.Close()
	}()
	conn, err := listener.Accept()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		err := conn.Close()
		if err != nil {
			log.Printf("error while closing connection: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		conn.SetReadDeadline(time.Now())
	}()
	return f(conn)
}

func receiveCommands(ctx context.Context, conn net.Conn, commandCh chan<- []string) error {
	reader := bufio.NewReader(conn)
	var line []byte
loop:
	for {
		select {
		case <-ctx.Done():
			log.Println("Connection interrupted")
			break loop
		default:
		}
		next, isPrefix, err := reader.ReadLine()
		if err == io.EOF || ctx.Err() != nil {
			break loop
		}
		if err != nil {
			return err
		}
		line = append(line, next...)
		if isPrefix {
			continue
		}
		command, err := parseCommand(string(line))
		if err != nil {
			return err
		}
		commandCh <- command
		log.Printf("received: %s\n", string(line))
		line = []byte{}
	}
	log.Println("receiveCommands() ended.")
	return nil
}

func parseCommand(line string) ([]string, error) {
	lineStr := strings.Split(line, " ")
	for i, item := range lineStr {
		escaped, err := url.QueryUnescape(item)
		if err != nil {
			return nil, err
		}
		lineStr[i] = escaped
	}
	return lineStr, nil
}
