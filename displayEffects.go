package main

import (
	"fmt"
	"log"
	"time"
)

type displayEffect struct {
	id  int
	val interface{}
}

type displayPrint struct {
	s string
	d time.Duration
}

const (
	modeClock = iota
	modeOutput
)

const (
	eClock = iota
	ePrint
	eBacklight
	eTerminate
)

func init() {
	// runEffects wg
	wg.Add(1)
}

// channel messaging functions
func clockEffect(s string) displayEffect {
	return displayEffect{id: eClock, val: s}
}

func printEffect(s string, d time.Duration) displayEffect {
	return displayEffect{id: ePrint, val: displayPrint{s: s, d: d}}
}

func backlightEffect(on bool) displayEffect {
	return displayEffect{id: eBacklight, val: on}
}

func terminateEffect() displayEffect {
	return displayEffect{id: eTerminate}
}

func toBool(val interface{}) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("Bad type: %T", v)
	}
}

func toString(val interface{}) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("Bad type: %T", v)
	}
}

func toPrint(val interface{}) (*displayPrint, error) {
	switch v := val.(type) {
	case displayPrint:
		return &v, nil
	default:
		return nil, fmt.Errorf("Bad type: %T", v)
	}
}

func startEffects(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Effects"}
	go runEffects(rt)
}

// runEffects is the only goroutine that touches the display.  The clock
// and scanner workers talk to it through the effects channel; the driver
// underneath is not safe for concurrent writers.
func runEffects(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		log.Println("exiting runEffects")
	}()

	settings := rt.settings
	comms := rt.comms

	if err := rt.display.OpenDisplay(settings); err != nil {
		// no display, no appliance
		log.Printf("Error: %s", err.Error())
		return
	}
	defer rt.display.CloseDisplay()

	mode := modeClock

	for true {
		select {
		case <-comms.quit:
			log.Println("quit from runEffects")
			return
		case e := <-comms.effects:
			switch e.id {
			case eClock:
				if mode != modeClock {
					// a held message owns the display right now
					continue
				}
				s, _ := toString(e.val)
				if err := rt.display.Home(); err != nil {
					log.Printf("Error: %s", err.Error())
					continue
				}
				if err := rt.display.Print(s); err != nil {
					log.Printf("Error: %s", err.Error())
				}
			case ePrint:
				v, _ := toPrint(e.val)
				log.Printf("Print: %s (%v)", v.s, v.d)
				mode = modeOutput
				rt.display.Clear()
				if err := rt.display.Print(v.s); err != nil {
					log.Printf("Error: %s", err.Error())
				}
				rt.clock.Sleep(v.d)
				rt.display.Clear()
				mode = modeClock
				// put the time back up right away
				if err := rt.display.Print(rt.timeKeep.getCurrentTime()); err != nil {
					log.Printf("Error: %s", err.Error())
				}
			case eBacklight:
				on, _ := toBool(e.val)
				rt.display.Backlight(on)
			case eTerminate:
				log.Println("terminate")
				return
			default:
				log.Printf("Unhandled %d\n", e.id)
			}
		default:
			rt.clock.Sleep(dEffectSleep)
		}
	}
}
