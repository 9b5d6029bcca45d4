package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// deviceScanner reads newline-terminated badge IDs from a character
// device (an HID badge reader exposed as a tty)
type deviceScanner struct {
	dev    *os.File
	badges chan string
	errs   chan error
}

func (ds *deviceScanner) initScanner(rt runtimeConfig) error {
	devName := rt.settings.GetString(sScanDevice)
	dev, err := os.Open(devName)
	if err != nil {
		return errors.Wrapf(err, "scanner: open %s failed", devName)
	}
	ds.dev = dev
	ds.badges = make(chan string, 5)
	ds.errs = make(chan error, 1)

	// the device read blocks, so pump lines from a helper goroutine
	go ds.pump(rt)
	return nil
}

func (ds *deviceScanner) pump(rt runtimeConfig) {
	reader := bufio.NewReader(ds.dev)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			ds.errs <- errors.Wrap(err, "scanner: device read failed")
			return
		}
		badge := strings.TrimSpace(line)
		if badge == "" {
			continue
		}
		ds.badges <- badge
	}
}

func (ds *deviceScanner) readBadge(rt runtimeConfig) (string, error) {
	select {
	case badge := <-ds.badges:
		return badge, nil
	case err := <-ds.errs:
		return "", err
	default:
		return "", nil
	}
}

func (ds *deviceScanner) closeScanner() {
	ds.dev.Close()
}
