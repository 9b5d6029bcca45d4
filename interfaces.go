package main

import "time"

type display interface {
	OpenDisplay(settings configSettings) error
	CloseDisplay() error
	Print(msg string) error
	Clear() error
	Home() error
	GoTo(row, col int) error
	Backlight(on bool) error
}

type scanner interface {
	initScanner(rt runtimeConfig) error
	// readBadge polls for a scanned identifier; empty string means
	// nothing was scanned yet
	readBadge(rt runtimeConfig) (string, error)
	closeScanner()
}

type authenticator interface {
	authenticate(userID string) (string, error)
}

type sounds interface {
	playIt(rt runtimeConfig, sfreqs []string, timing []string, stop chan bool, done chan bool)
	playMP3(rt runtimeConfig, fName string, loop bool, stop chan bool, done chan bool)
}

type led interface {
	init() error
	set(pin int, on bool)
	on(pin int)
	off(pin int)
}

type timeChecker interface {
	getIPDateTime(rt runtimeConfig) time.Time
}
