package main

import (
	"sync"
)

// matches the strftime format the old shell-script version of this
// appliance used: month/day, a gap, 12-hour time
const clockFormat = "01/02      03:04"

// timeKeeper holds the latest formatted timestamp.  Any goroutine may read
// a snapshot; only runClock writes.
type timeKeeper struct {
	mu      sync.Mutex
	current string
}

func (tk *timeKeeper) set(s string) {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	tk.current = s
}

func (tk *timeKeeper) getCurrentTime() string {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	return tk.current
}

func init() {
	// for runClock
	wg.Add(1)
}

func startClock(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Clock"}
	go runClock(rt)
}

// runClock samples the wall clock once a second and hands the formatted
// result to the effects worker.  The work per tick is a single Format
// call, so there is no skip handling.
func runClock(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runClock")
	}()

	comms := rt.comms

	for true {
		select {
		case <-comms.quit:
			rt.logger.Println("quit from runClock")
			return
		default:
		}
		stamp := rt.clock.Now().Format(clockFormat)
		rt.timeKeep.set(stamp)
		comms.effects <- clockEffect(stamp)
		rt.clock.Sleep(dClockSleep)
	}
}
