// Command strandplay drives a small demo scene — a sine tone orbiting
// the listener — through the default audio device via PortAudio.
package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/golang/geo/r3"
	"github.com/gordonklaus/portaudio"
	flag "github.com/spf13/pflag"

	"github.com/strand-audio/strand/strand"
	"github.com/strand-audio/strand/strandcfg"
	"github.com/strand-audio/strand/strandlog"
)

func main() {
	rate := flag.Uint32("rate", 0, "sample rate in Hz (0 = config default)")
	block := flag.Int("block", 0, "frames per device callback (0 = config default)")
	freq := flag.Float64("freq", 440, "tone frequency in Hz")
	duration := flag.Duration("duration", 8*time.Second, "how long to play before exiting")
	orbitRadius := flag.Float64("orbit-radius", 2.0, "orbit radius in meters")
	orbitPeriod := flag.Duration("orbit-period", 4*time.Second, "seconds per full orbit")
	flag.Parse()

	cfg := strandcfg.Default().WithDefaults()
	if *rate != 0 {
		cfg.SampleRate = *rate
	}
	if *block != 0 {
		cfg.BlockFrames = *block
	}

	logger := strandlog.New("strandplay")

	if err := run(cfg, logger, *freq, *duration, *orbitRadius, *orbitPeriod); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg strandcfg.Config, logger *strandlog.Logger, freq float64, duration time.Duration, orbitRadius float64, orbitPeriod time.Duration) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	defer portaudio.Terminate()

	mixer, mixerHandle := strand.NewMixer(2, logger)

	pad := strand.NewSine(0, freq/2)
	gain, gainCtrl := strand.NewGainWithWindow[strand.Mono](pad, cfg.GainSmoothWindow)
	gainCtrl.SetGain(0.15)
	mixerHandle.Play(strand.NewMonoToStereo(gain))

	scene, sceneHandle := strand.NewSpatialScene(4, cfg.MaxDelay, logger)
	mixerHandle.Play(scene)

	tone := strand.NewSine(0, freq)
	spatial, motion := strand.NewSpatial(tone, float64(cfg.SampleRate),
		float64(cfg.SpeedOfSound), float64(cfg.EarSeparation), float64(cfg.SmoothWindow), float64(cfg.MaxDelay))
	sceneHandle.Play(spatial)

	scratch := make([]strand.Stereo, cfg.BlockFrames)
	callback := func(outBuf [][]float32) {
		n := len(outBuf[0])
		strand.Driver(mixer, cfg.SampleRate, scratch[:n])
		for i := 0; i < n; i++ {
			outBuf[0][i] = scratch[i][0]
			outBuf[1][i] = scratch[i][1]
		}
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, float64(cfg.SampleRate), cfg.BlockFrames, callback)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	defer stream.Stop()

	logger.Info("playing", "freq", freq, "rate", cfg.SampleRate, "block", cfg.BlockFrames)

	start := time.Now()
	omega := 2 * math.Pi / orbitPeriod.Seconds()
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()

	for now := range tick.C {
		elapsed := now.Sub(start).Seconds()
		if elapsed > duration.Seconds() {
			return nil
		}
		angle := elapsed * omega
		pos := r3.Vector{X: orbitRadius * math.Cos(angle), Y: 0, Z: orbitRadius * math.Sin(angle)}
		vel := r3.Vector{
			X: -orbitRadius * omega * math.Sin(angle),
			Y: 0,
			Z: orbitRadius * omega * math.Cos(angle),
		}
		motion.SetMotion(pos, vel)
	}
	return nil
}
