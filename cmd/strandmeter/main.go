// Command strandmeter drives a synthetic mixer on a background ticker —
// standing in for a real audio callback — and periodically reports live
// membership counts, for eyeballing dynamic-set growth and eviction
// behavior without wiring up an actual device.
package main

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/strand-audio/strand/strand"
	"github.com/strand-audio/strand/strandlog"
)

func main() {
	interval := flag.Duration("interval", time.Second, "reporting interval")
	capacity := flag.Int("capacity", 4, "initial mixer member capacity")
	rate := flag.Uint32("rate", 44100, "simulated sample rate in Hz")
	blockFrames := flag.Int("block", 128, "simulated frames per block")
	flag.Parse()

	logger := strandlog.New("strandmeter")
	mixer, handle := strand.NewMixer(*capacity, logger)

	for i := 0; i < *capacity; i++ {
		tone := strand.NewSine(0, 220+float64(i)*55)
		handle.Play(tone2stereo(tone))
	}

	scratch := make([]strand.Stereo, *blockFrames)
	blockPeriod := time.Duration(float64(*blockFrames) / float64(*rate) * float64(time.Second))
	driveTick := time.NewTicker(blockPeriod)
	defer driveTick.Stop()
	go func() {
		for range driveTick.C {
			strand.Driver(mixer, *rate, scratch)
		}
	}()

	reportTick := time.NewTicker(*interval)
	defer reportTick.Stop()
	for range reportTick.C {
		fmt.Printf("live members: %d\n", handle.Len())
	}
}

// tone2stereo upmixes a mono oscillator to stereo so it can join a
// Mixer, which only accepts stereo members.
func tone2stereo(inner strand.MonoSignal) strand.StereoSignal {
	return strand.NewMonoToStereo(inner)
}
