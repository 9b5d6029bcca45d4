package main

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

/* different modes to test via effects channel
case eClock:
case ePrint:
case eBacklight:
case eTerminate:
*/

func TestEffectsClockMode(t *testing.T) {
	rt, clock, comms := testRuntime()
	ld := rt.display.(*logDisplay)

	go runEffects(rt)
	testBlockDuration(clock, dEffectSleep, dEffectSleep)

	comms.effects <- clockEffect("08/30      09:15")
	testBlockDuration(clock, dEffectSleep, 2*dEffectSleep)

	assert.Equal(t, ld.curDisplay, "08/30      09:15")
	// clock updates rewrite in place from home, no clear
	assert.Equal(t, ld.row, 0)
	assert.Equal(t, ld.col, 0)

	// done
	testQuit(rt)
}

func TestEffectsPrintHold(t *testing.T) {
	rt, clock, comms := testRuntime()
	ld := rt.display.(*logDisplay)

	go runEffects(rt)
	testBlockDuration(clock, dEffectSleep, dEffectSleep)

	// seed the time keeper so the display has something to restore
	rt.timeKeep.set("08/30      09:15")

	comms.effects <- printEffect("WELCOME BOB", 3*time.Second)
	// the print holds for its duration on the worker's clock
	testBlockDuration(clock, dEffectSleep, dEffectSleep)
	clock.BlockUntil(1)
	assert.Equal(t, ld.curDisplay, "WELCOME BOB")

	// after the hold the time goes back up
	clock.Advance(3 * time.Second)
	testBlockDuration(clock, dEffectSleep, 2*dEffectSleep)
	assert.Equal(t, ld.curDisplay, "08/30      09:15")

	// done
	testQuit(rt)
}

func TestEffectsPrintBlocksClock(t *testing.T) {
	rt, clock, comms := testRuntime()
	ld := rt.display.(*logDisplay)

	go runEffects(rt)
	testBlockDuration(clock, dEffectSleep, dEffectSleep)

	rt.timeKeep.set("08/30      09:15")
	comms.effects <- printEffect("AUTH FAILED", 3*time.Second)
	// a clock tick that lands during the hold must not overwrite it
	comms.effects <- clockEffect("08/30      09:16")

	testBlockDuration(clock, dEffectSleep, dEffectSleep)
	clock.BlockUntil(1)
	assert.Equal(t, ld.curDisplay, "AUTH FAILED")

	clock.Advance(3 * time.Second)
	testBlockDuration(clock, dEffectSleep, 3*dEffectSleep)
	// held message ended, then the queued tick applied
	assert.Equal(t, ld.curDisplay, "08/30      09:16")

	// done
	testQuit(rt)
}

func TestEffectsBacklight(t *testing.T) {
	rt, clock, comms := testRuntime()
	ld := rt.display.(*logDisplay)

	go runEffects(rt)
	testBlockDuration(clock, dEffectSleep, dEffectSleep)

	comms.effects <- backlightEffect(false)
	testBlockDuration(clock, dEffectSleep, 2*dEffectSleep)
	assert.Equal(t, ld.backlight, false)

	comms.effects <- backlightEffect(true)
	testBlockDuration(clock, dEffectSleep, 2*dEffectSleep)
	assert.Equal(t, ld.backlight, true)

	// done
	testQuit(rt)
}

func TestEffectsTerminate(t *testing.T) {
	rt, clock, comms := testRuntime()
	ld := rt.display.(*logDisplay)

	go runEffects(rt)

	comms.effects <- terminateEffect()
	clock.BlockUntil(1)
	clock.Advance(dEffectSleep)

	// worker exits and releases the panel
	for i := 0; i < 100 && ld.open; i++ {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, ld.open, false)

	// balance the Done from the worker that just left
	wg.Add(1)
}
