package main

import (
	"log"
	"time"
)

const (
	modeOff = iota
	modeOn
	modeBlink // 50% duty cycle, 1Hz
	modeUnset // undetermined state
)

type ledEffect struct {
	pin      int
	mode     int
	duration time.Duration
	// rt settings
	curMode    int
	lastUpdate time.Time
	startTime  time.Time
}

func init() {
	// for runLEDController
	wg.Add(1)
}

func ledMessage(pin int, mode int, duration time.Duration) ledEffect {
	return ledEffect{pin: pin, mode: mode, duration: duration}
}

func ledOn(pin int) ledEffect {
	return ledMessage(pin, modeOn, 0)
}

func ledOff(pin int) ledEffect {
	return ledMessage(pin, modeOff, 0)
}

func startLEDController(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "LEDs"}
	go runLEDController(rt)
}

// runLEDController owns the feedback LEDs.  Scan results arrive as
// ledEffect messages; blink cadence and duration expiry are handled here
// so the scanner loop never sleeps on LED business.
func runLEDController(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		log.Printf("exiting runLEDController")
	}()

	comms := rt.comms
	leds := make(map[int]ledEffect)

	if err := rt.led.init(); err != nil {
		// run headless; scans still work, the verdict just isn't lit
		log.Printf("Error: %s", err.Error())
		return
	}

	for true {
		// drain all pending messages first
		keepReading := true
		for keepReading {
			select {
			case <-comms.quit:
				log.Printf("quit from runLEDController")
				return
			case msg := <-comms.leds:
				log.Printf("led message: %+v", msg)
				msg.curMode = modeUnset
				leds[msg.pin] = msg
			default:
				keepReading = false
			}
		}

		now := rt.clock.Now()
		for pin, v := range leds {
			// negative duration means expired, nothing to do
			if v.duration < 0 {
				continue
			}

			if v.curMode == modeUnset {
				on := v.mode != modeOff
				rt.led.set(pin, on)
				v.curMode = modeOff
				if on {
					v.curMode = modeOn
				}
				v.startTime = now
				v.lastUpdate = now
				if v.mode == modeOff {
					v.duration = -1
				}
				leds[pin] = v
				continue
			}

			// timed effects turn off when the duration runs out
			if v.duration > 0 && now.Sub(v.startTime) >= v.duration {
				if v.curMode != modeOff {
					rt.led.off(pin)
				}
				v.duration = -1
				v.curMode = modeOff
				leds[pin] = v
				continue
			}

			if v.mode == modeBlink && now.Sub(v.lastUpdate) >= 500*time.Millisecond {
				if v.curMode == modeOn {
					rt.led.off(pin)
					v.curMode = modeOff
				} else {
					rt.led.on(pin)
					v.curMode = modeOn
				}
				v.lastUpdate = now
				leds[pin] = v
			}
		}

		rt.clock.Sleep(dLEDSleep)
	}
}
