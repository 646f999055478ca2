package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/fatih/color"
	"github.com/gordonklaus/portaudio"
	"github.com/synthlab/chipsynth"
	"github.com/synthlab/chipsynth/cmd/internal/config"
)

var (
	cyan   = color.New(color.FgCyan).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
	green  = color.New(color.FgGreen).SprintfFunc()
)

const (
	escape     = "\x1b["
	hideCursor = escape + "?25l"
	showCursor = escape + "?25h"
)

// pianoKeys maps the home row to semitones above middle C, tracker style:
// white notes on asdf, sharps on the row above.
var pianoKeys = map[rune]int{
	'a': 0, 'w': 1, 's': 2, 'e': 3, 'd': 4, 'f': 5,
	't': 6, 'g': 7, 'y': 8, 'h': 9, 'u': 10, 'j': 11, 'k': 12,
}

func noteHz(semitone int) float32 {
	return float32(261.63 * math.Pow(2, float64(semitone)/12))
}

func play(chip *chipsynth.Chip, patch *config.Patch) error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	defer portaudio.Terminate()

	var uiw io.Writer = os.Stdout
	if *flagNoUI {
		uiw = io.Discard
	}

	// The stream callback and the keyboard handler run on different
	// goroutines; the chip itself is single-owner, so all access funnels
	// through this mutex. Commands land between Generate calls, never
	// during one.
	var mu sync.Mutex
	tick := 0

	applyTick := func() {
		if !*flagScore {
			return
		}
		for _, ev := range patch.EventsAt(tick) {
			cmd, err := ev.Command()
			if err != nil {
				continue
			}
			chip.SendCommand(cmd, ev.Channel)
		}
	}
	applyTick()

	streamCB := func(out []float32) {
		mu.Lock()
		defer mu.Unlock()

		n := 0
		for n < len(out) {
			res, err := chip.Generate(out[n:])
			if err != nil || res.Generated == 0 {
				break
			}
			n += res.Generated
			if res.RemainingSamples == 0 {
				tick++
				applyTick()
			}
		}
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, float64(patch.SampleRate), 1024, streamCB)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return err
	}
	defer stream.Stop()

	stopFn := func() {
		stream.Stop()
		portaudio.Terminate()

		fmt.Fprint(uiw, showCursor)
		os.Exit(0)
	}

	sigch := make(chan os.Signal, 5)
	signal.Notify(sigch, syscall.SIGINT)
	go func() {
		for sig := range sigch {
			if sig == syscall.SIGINT {
				stopFn()
			}
		}
	}()

	fmt.Fprint(uiw, hideCursor)
	fmt.Fprintln(uiw, cyan("%d channels at %dHz, %g ticks/s", chip.NumChannels(), patch.SampleRate, patch.TickRate))
	fmt.Fprintln(uiw, green("a..k play notes on channel 0, space releases, esc quits"))

	return keyboard.Listen(func(key keys.Key) (bool, error) {
		switch key.Code {
		case keys.Escape, keys.CtrlC:
			fmt.Fprint(uiw, showCursor)
			return true, nil
		case keys.Space:
			mu.Lock()
			chip.SendCommand(chipsynth.AmplitudeSlide{Target: 0, Rate: 4}, 0)
			mu.Unlock()
			fmt.Fprint(uiw, yellow("\rrelease          "))
		case keys.RuneKey:
			for _, r := range key.Runes {
				semitone, ok := pianoKeys[r]
				if !ok {
					continue
				}
				hz := noteHz(semitone)
				mu.Lock()
				chip.SendCommand(chipsynth.SetFrequency{Hz: hz}, 0)
				chip.SendCommand(chipsynth.SetAmplitude{Amplitude: 0.8}, 0)
				mu.Unlock()
				fmt.Fprint(uiw, yellow("\rnote %7.2fHz", hz))
			}
		}
		return false, nil
	})
}
