// +build !noaudio

package main

import (
	"math"
	"os/exec"
	"strconv"
	"time"

	"github.com/bobertlo/go-mpg123/mpg123"
	"github.com/gordonklaus/portaudio"
)

func init() {
	features = append(features, "audio")
}

const sampleRate = 44100

// buffer margin between the last pattern sample and stream teardown
const dTeardownSlack = 250 * time.Millisecond

// two functions exist here:
//   playIt(rt, sfreqs, timing, stop, done)
//    given a series of frequencies/durations, play the pattern once through
//   playMP3(rt, file, loop, stop, done)
//    given an MP3 file, play it (optionally on repeat)

type soundSegment struct {
	frequencies []float64
	duration    time.Duration
	level       float64
	rampDown    time.Duration
}

// this is runtime info for generating the waves
type wave struct {
	step, phase float64
}

// a single segment of sounds, volume, and step information
type playSegment struct {
	steps    int64   // total steps
	level    float64 // volume multiplier
	waves    []wave  // runtime info on the sound
	rampDown int64   // # of steps below which we fade the level
}

type playbackPattern struct {
	*portaudio.Stream
	segments         []playSegment
	curSegment       int
	segmentRemaining int64
	finished         bool
}

type realSounds struct {
}

// call this as 'go playPattern()'.  The pattern plays through once and the
// goroutine leaves on its own; stop only cuts a cue short.
func playPattern(pattern []soundSegment, stop chan bool, done chan bool) {
	defer func() {
		done <- true
	}()

	var total time.Duration
	for i := range pattern {
		total += pattern[i].duration
	}

	portaudio.Initialize()
	defer portaudio.Terminate()
	s := newPlaySegments(pattern)
	if s == nil {
		return
	}
	defer s.Close()
	if err := s.Start(); err != nil {
		return
	}

	// the callback goes silent after the last segment; keep the stream up
	// long enough to drain it, then tear down
	select {
	case <-stop:
	case <-time.After(total + dTeardownSlack):
	}
	s.Stop()
}

func newPlaySegments(pattern []soundSegment) *playbackPattern {
	// turn pattern into an array of playSegment, stored in a playbackPattern
	var pb playbackPattern
	pb.curSegment = -1

	pb.segments = make([]playSegment, len(pattern))
	for i := range pattern {
		// turn the array of frequencies into a wave array stored in pb.segments[i]
		pb.segments[i].waves = make([]wave, len(pattern[i].frequencies))
		pb.segments[i].level = pattern[i].level
		pb.segments[i].steps = int64(pattern[i].duration * time.Duration(sampleRate) / time.Second)
		pb.segments[i].rampDown = int64(pattern[i].rampDown * time.Duration(sampleRate) / time.Second)
		// calculate the wave steps for each wave
		for w := range pattern[i].frequencies {
			pb.segments[i].waves[w].step = pattern[i].frequencies[w] / sampleRate
			// phase gets reset each time we start the pattern
		}
	}

	var err error
	pb.Stream, err = portaudio.OpenDefaultStream(0, 2, sampleRate, 0, pb.processAudio)
	if err != nil {
		return nil
	}
	return &pb
}

func (g *playbackPattern) segmentInit(seg *playSegment) {
	g.segmentRemaining = seg.steps
	// zero out all the wave phases
	for i := range seg.waves {
		seg.waves[i].phase = 0
	}
}

func (g *playbackPattern) processAudio(out [][]float32) {
	for i := range out[0] {
		// start the next segment?  past the last one, emit silence
		if g.segmentRemaining <= 0 && !g.finished {
			if g.curSegment+1 >= len(g.segments) {
				g.finished = true
			} else {
				g.curSegment++
				g.segmentInit(&g.segments[g.curSegment])
			}
		}
		if g.finished {
			out[0][i] = 0
			out[1][i] = 0
			continue
		}
		curSeg := &g.segments[g.curSegment]
		g.segmentRemaining--

		// ramp down from normal level to 0 near the end of the segment
		level := curSeg.level
		if curSeg.rampDown > 0 && g.segmentRemaining < curSeg.rampDown {
			level = level * float64(g.segmentRemaining) / float64(curSeg.rampDown)
		}
		// gather the relevant audio level for this segment and time
		var val float32 = 0
		for w := range curSeg.waves {
			val += float32(math.Sin(2*math.Pi*curSeg.waves[w].phase) * level)
			_, curSeg.waves[w].phase = math.Modf(curSeg.waves[w].phase + curSeg.waves[w].step)
		}

		// average out the signal (if any)
		if len(curSeg.waves) > 0 {
			val = val / float32(len(curSeg.waves))
		}

		out[0][i] = val // L
		out[1][i] = val // R
	}
}

func checkDecoder(fname string) error {
	decoder, err := mpg123.NewDecoder("")
	if err != nil {
		return err
	}
	defer decoder.Delete()

	if err = decoder.Open(fname); err != nil {
		return err
	}
	defer decoder.Close()

	// get audio format information
	rate, channels, _ := decoder.GetFormat()

	// make sure output format does not change
	decoder.FormatNone()
	decoder.Format(rate, channels, mpg123.ENC_SIGNED_16)

	return nil
}

func (rs *realSounds) playMP3(rt runtimeConfig, fName string, loop bool, stop chan bool, done chan bool) {
	go rs.playMP3Later(rt, fName, loop, stop, done)
}

func (rs *realSounds) playMP3Later(rt runtimeConfig, fName string, loop bool, stop chan bool, done chan bool) {
	// when we exit the function, tell someone that we're done
	defer func() {
		done <- true
	}()

	// sanity check the file before handing it off
	if err := checkDecoder(fName); err != nil {
		rt.logger.Printf("bad mp3 %s: %v", fName, err)
		return
	}

	// just run mpg123 or the pi fails to play
	cmd := exec.Command("mpg123", fName)
	completed := make(chan error, 1)
	replayMax := 5

	go func() {
		completed <- cmd.Run()
	}()

	stopPlayback := false

	for {
		rt.clock.Sleep(dScanSleep)
		select {
		case <-stop:
			stopPlayback = true
		case result := <-completed:
			rt.logger.Printf("%v", result)
			if !loop || replayMax < 0 {
				return
			}
			replayMax--
			rt.logger.Println("Replay")
			cmd = exec.Command("mpg123", fName)
			go func() {
				completed <- cmd.Run()
			}()
		default:
		}
		if stopPlayback {
			rt.logger.Println("Stopping playback")
			cmd.Process.Kill()
			return
		}
	}
}

func (rs *realSounds) playIt(rt runtimeConfig, sfreqs []string, timing []string, stop chan bool, done chan bool) {
	go playPattern(beepSegments(sfreqs, timing), stop, done)
}

func beepSegments(sfreqs []string, timing []string) []soundSegment {
	freqs := make([]float64, 0, len(sfreqs))
	for i := range sfreqs {
		f, e := strconv.ParseFloat(sfreqs[i], 64)
		if e != nil {
			continue
		}
		freqs = append(freqs, f)
	}

	timings := make([]time.Duration, 0, len(timing))
	for i := range timing {
		d, e := time.ParseDuration(timing[i])
		if e != nil {
			continue
		}
		timings = append(timings, d)
	}

	// alternate on/off segments so a single timing entry is one beep
	segs := make([]soundSegment, len(timings))

	for i := 0; i < len(segs); i++ {
		segs[i].level = float64((i + 1) % 2)
		segs[i].duration = timings[i]
		segs[i].frequencies = freqs
		segs[i].rampDown = 20 * time.Millisecond
	}

	return segs
}
