// Live synth demo. Plays a patch through portaudio and turns the keyboard
// into a one-octave piano on channel 0.
package main

import (
	"flag"
	"log"

	"github.com/synthlab/chipsynth/cmd/internal/config"
)

var (
	flagHz    = flag.Int("hz", 0, "output hz, 0 = use the patch sample rate")
	flagNoUI  = flag.Bool("noui", false, "turn off all UI, mostly useful in development")
	flagScore = flag.Bool("score", true, "run the patch score, false = keyboard only")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("synthplay: ")
	flag.Parse()

	patch := config.Default()
	if len(flag.Args()) > 0 {
		var err error
		patch, err = config.Load(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
	}
	if *flagHz > 0 {
		patch.SampleRate = *flagHz
	}

	chip, err := patch.NewChip()
	if err != nil {
		log.Fatal(err)
	}

	if err := play(chip, patch); err != nil {
		log.Fatal(err)
	}
}
