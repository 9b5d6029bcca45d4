package main

import (
	"strings"
	"sync"
	"time"
)

// scanRecord is what the status API reports about the most recent badge
type scanRecord struct {
	When    time.Time `json:"when"`
	ID      string    `json:"id"`
	OK      bool      `json:"ok"`
	Message string    `json:"message"`
}

type scanLog struct {
	mu   sync.Mutex
	last scanRecord
	seen int
}

func (sl *scanLog) note(rec scanRecord) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.last = rec
	sl.seen++
}

func (sl *scanLog) snapshot() (scanRecord, int) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.last, sl.seen
}

func init() {
	// for runScanner
	wg.Add(1)
}

func startScanner(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Scanner"}
	go runScanner(rt)
}

// runScanner is the foreground control flow: poll the badge reader, post
// the id to the auth server, and report the verdict on the display, the
// LEDs, and the speaker
func runScanner(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runScanner")
	}()

	if err := rt.scanner.initScanner(rt); err != nil {
		rt.logger.Printf("Error: %s", err.Error())
		return
	}
	defer rt.scanner.closeScanner()

	for true {
		select {
		case <-rt.comms.quit:
			rt.logger.Println("quit from runScanner")
			return
		default:
		}

		id, err := rt.scanner.readBadge(rt)
		if err != nil {
			rt.logger.Printf("scanner stopped: %s", err.Error())
			return
		}
		if id == "" {
			rt.clock.Sleep(dScanSleep)
			continue
		}
		handleScan(rt, id)
	}
}

func handleScan(rt runtimeConfig, id string) {
	rt.logger.Printf("scanned badge %q", id)
	settings := rt.settings
	comms := rt.comms
	hold := settings.GetDuration(sMsgHold)

	stop := make(chan bool, 1)
	done := make(chan bool, 1)

	// blocks for up to the auth timeout; the clock keeps running because
	// the display belongs to runEffects
	body, err := rt.auth.authenticate(id)
	if err != nil {
		rt.logger.Printf("auth failed: %s", err.Error())
		rt.scans.note(scanRecord{When: rt.clock.Now(), ID: id, OK: false, Message: err.Error()})
		comms.effects <- printEffect(sAuthFailed, hold)
		comms.leds <- ledMessage(settings.GetInt(sLedErr), modeBlink, hold)
		denied := settings.GetString(sDeniedMP3)
		if denied != "" {
			rt.sounds.playMP3(rt, denied, false, stop, done)
		} else {
			rt.sounds.playIt(rt, []string{"220"}, []string{"400ms"}, stop, done)
		}
		return
	}

	msg := firstLine(body)
	rt.logger.Printf("auth ok: %q", msg)
	rt.scans.note(scanRecord{When: rt.clock.Now(), ID: id, OK: true, Message: msg})
	comms.effects <- printEffect(msg, hold)
	comms.leds <- ledMessage(settings.GetInt(sLedOK), modeOn, hold)
	rt.sounds.playIt(rt, []string{"880"}, []string{"150ms"}, stop, done)
}

// firstLine trims the server's response down to something that fits a
// 16x2 panel
func firstLine(body string) string {
	s := strings.TrimSpace(body)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	if len(s) > 16 {
		s = s[:16]
	}
	return s
}
