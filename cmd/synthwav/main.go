// Renders a synth patch to a WAV file.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/synthlab/chipsynth/cmd/internal/config"
	"github.com/synthlab/chipsynth/wav"
)

var (
	flagOut     = flag.String("o", "out.wav", "output WAV filename")
	flagSeconds = flag.Float64("seconds", 0, "length of audio to render, 0 = play the score plus a second of tail")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("synthwav: ")
	flag.Parse()

	patch := config.Default()
	if len(flag.Args()) > 0 {
		var err error
		patch, err = config.Load(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
	}

	chip, err := patch.NewChip()
	if err != nil {
		log.Fatal(err)
	}

	totalFrames := int(*flagSeconds * float64(patch.SampleRate))
	if totalFrames <= 0 {
		// Render to one second past the final score event.
		ticks := float64(patch.LastTick() + 1)
		totalFrames = int(ticks*float64(chip.Params.TickFrames())) + patch.SampleRate
	}

	outF, err := os.Create(*flagOut)
	if err != nil {
		log.Fatal(err)
	}
	defer outF.Close()

	w, err := wav.NewWriter(outF, patch.SampleRate)
	if err != nil {
		log.Fatal(err)
	}

	applyTick := func(tick int) {
		for _, ev := range patch.EventsAt(tick) {
			cmd, err := ev.Command()
			if err != nil {
				log.Fatal(err)
			}
			if err := chip.SendCommand(cmd, ev.Channel); err != nil {
				log.Fatal(err)
			}
		}
	}

	buf := make([]float32, 2048)
	tick := 0
	applyTick(tick)
	for frames := 0; frames < totalFrames; {
		res, err := chip.Generate(buf)
		if err != nil {
			log.Fatal(err)
		}
		if err := w.WriteStereo(buf[:res.Generated]); err != nil {
			log.Fatal(err)
		}
		frames += res.Generated / 2

		// A completed tick is the moment to issue the next commands.
		if res.RemainingSamples == 0 {
			tick++
			applyTick(tick)
		}
	}

	if _, err := w.Finish(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d frames to %s", totalFrames, *flagOut)
}
