package main

import (
	"github.com/pkg/errors"

	// keyboard for sim mode
	"github.com/nsf/termbox-go"
)

func init() {
	features = append(features, "key-scanner")
}

// simScanner fakes a badge reader with the keyboard: type an ID and
// press enter to "scan" it
type simScanner struct {
	partial []rune
}

func (ss *simScanner) initScanner(rt runtimeConfig) error {
	err := termbox.Init()
	if err != nil {
		return err
	}

	termbox.SetInputMode(termbox.InputEsc)
	termbox.Flush()

	// close it later
	return nil
}

func (ss *simScanner) readBadge(rt runtimeConfig) (string, error) {
	// poll with quick timeout
	// no key means "no scan"
	go func() {
		rt.clock.Sleep(dScanSleep)
		termbox.Interrupt()
	}()

	waitForInterrupt := true
	for waitForInterrupt {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			// add an exit key
			if ev.Key == termbox.KeyCtrlC {
				return "", errors.New("Exit termbox loop")
			}
			if ev.Key == termbox.KeyEnter {
				badge := string(ss.partial)
				ss.partial = nil
				termbox.Flush()
				return badge, nil
			}
			if ev.Ch != 0 {
				ss.partial = append(ss.partial, ev.Ch)
			}
		// wait for the interrupt to fire
		default:
			waitForInterrupt = false
			// no keys
		}
	}

	termbox.Flush()
	return "", nil
}

func (ss *simScanner) closeScanner() {
	termbox.Close()
}
