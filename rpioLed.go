package main

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

// rpioLed drives the scan-verdict LEDs (accepted/denied) through the
// Pi's memory-mapped GPIO
type rpioLed struct {
	logger flogger
}

func (rpi *rpioLed) init() error {
	rpi.logger = &ThreadLogger{name: "LEDs"}
	if err := rpio.Open(); err != nil {
		return errors.Wrap(err, "led: gpio mem range unavailable")
	}
	return nil
}

func (rpi *rpioLed) set(pinNum int, on bool) {
	rpi.logger.Printf("led %d -> %v", pinNum, on)
	pin := rpio.Pin(pinNum)
	pin.Output()
	if on {
		pin.High()
	} else {
		pin.Low()
	}
}

func (rpi *rpioLed) on(pin int) {
	rpi.set(pin, true)
}

func (rpi *rpioLed) off(pin int) {
	rpi.set(pin, false)
}
