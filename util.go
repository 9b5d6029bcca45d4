// utility functions
package main

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// worker loop cadences
const (
	dClockSleep     = 1 * time.Second
	dEffectSleep    = 250 * time.Millisecond
	dScanSleep      = 100 * time.Millisecond
	dLEDSleep       = 100 * time.Millisecond
	dTimeCheckSleep = 1 * time.Hour
)

// display strings
const (
	sNeedSync   = "CLOCK NEEDS SYNC"
	sAuthFailed = "AUTH FAILED"
)

var wg sync.WaitGroup

// build-tag variants register themselves here
var features []string

type commChannels struct {
	quit    chan struct{}
	effects chan displayEffect
	leds    chan ledEffect
}

type runtimeConfig struct {
	settings  configSettings
	comms     commChannels
	clock     clockwork.Clock
	display   display
	scanner   scanner
	auth      authenticator
	led       led
	sounds    sounds
	timeCheck timeChecker
	timeKeep  *timeKeeper
	scans     *scanLog
	started   time.Time
	logger    flogger
}

func initCommChannels() commChannels {
	quit := make(chan struct{})
	effectChannel := make(chan displayEffect, 20)
	leds := make(chan ledEffect, 20)

	return commChannels{
		quit:    quit,
		effects: effectChannel,
		leds:    leds}
}

func initRuntime(settings configSettings) runtimeConfig {
	clock := clockwork.NewRealClock()
	return runtimeConfig{
		settings:  settings,
		comms:     initCommChannels(),
		clock:     clock,
		started:   clock.Now(),
		display:   &lcdShim{},
		scanner:   pickScanner(settings),
		auth:      newAuthClient(settings),
		led:       &rpioLed{},
		sounds:    pickSounds(settings),
		timeCheck: &ipTimeChecker{},
		timeKeep:  &timeKeeper{},
		scans:     &scanLog{},
		logger:    &ThreadLogger{name: "main"},
	}
}

func pickScanner(settings configSettings) scanner {
	if settings.GetBool(sScanSim) {
		return &simScanner{}
	}
	return &deviceScanner{}
}

func pickSounds(settings configSettings) sounds {
	if settings.GetBool(sAudio) {
		return &realSounds{}
	}
	return &noSounds{}
}
