package main

import (
	"fmt"
)

// logLed stands in for the verdict LEDs in tests: it keeps the level of
// every pin and an audit trail of the transitions
type logLed struct {
	leds       []bool
	audit      []string
	disableLog bool
	logger     flogger
}

func (ll *logLed) init() error {
	ll.leds = make([]bool, 32)
	ll.audit = make([]string, 0)
	ll.logger = &ThreadLogger{name: "LEDs"}
	return nil
}

func (ll *logLed) set(pinNum int, on bool) {
	ll.leds[pinNum] = on
	if !ll.disableLog {
		ll.logger.Printf("led %d -> %v", pinNum, on)
	}
	ll.audit = append(ll.audit, fmt.Sprintf("led %d -> %v", pinNum, on))
}

func (ll *logLed) on(pinNum int) {
	ll.set(pinNum, true)
}

func (ll *logLed) off(pinNum int) {
	ll.set(pinNum, false)
}
