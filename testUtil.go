package main

import (
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

// test doubles for the scanner, auth, and time-check interfaces live
// here with the runtime builders; the display/led/sound fakes have
// their own files

type testScanner struct {
	badges  []string
	err     error
	initCnt int
	readCnt int
	closed  bool
}

func (ts *testScanner) initScanner(rt runtimeConfig) error {
	ts.initCnt++
	return nil
}

func (ts *testScanner) readBadge(rt runtimeConfig) (string, error) {
	ts.readCnt++
	if len(ts.badges) > 0 {
		badge := ts.badges[0]
		ts.badges = ts.badges[1:]
		return badge, nil
	}
	if ts.err != nil {
		return "", ts.err
	}
	return "", nil
}

func (ts *testScanner) closeScanner() {
	ts.closed = true
}

type testAuth struct {
	body    string
	err     error
	lastID  string
	authCnt int
}

func (ta *testAuth) authenticate(userID string) (string, error) {
	ta.authCnt++
	ta.lastID = userID
	if ta.err != nil {
		return "", ta.err
	}
	return ta.body, nil
}

type testTimeChecker struct {
	reply time.Time
}

func (tt *testTimeChecker) getIPDateTime(rt runtimeConfig) time.Time {
	return tt.reply
}

func testSettings() configSettings {
	s := defaultSettings()
	s.settings[sI2CSim] = true
	s.settings[sScanSim] = true
	s.settings[sAudio] = false
	s.settings[sLogFile] = ""
	return s
}

func initTestRuntime(settings configSettings) runtimeConfig {
	clock := clockwork.NewFakeClock()
	return runtimeConfig{
		settings:  settings,
		comms:     initCommChannels(),
		clock:     clock,
		started:   clock.Now(),
		display:   &logDisplay{},
		scanner:   &testScanner{},
		auth:      &testAuth{body: "WELCOME"},
		led:       &logLed{},
		sounds:    &noSounds{},
		timeCheck: &testTimeChecker{},
		timeKeep:  &timeKeeper{},
		scans:     &scanLog{},
		logger:    &ThreadLogger{name: "test"},
	}
}

func logCaller(pc uintptr, file string, line int, ok bool) {
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn == nil {
		fnName = "?()"
	} else {
		dotName := filepath.Ext(fn.Name())
		fnName = strings.TrimLeft(dotName, ".") + "()"
	}

	log.Printf("Starting %s (%s:%d)", fnName, filepath.Base(file), line)
}

func testRuntime() (runtimeConfig, clockwork.FakeClock, commChannels) {
	// make rt for test, log the start of the test
	logCaller(runtime.Caller(1))
	rt := initTestRuntime(testSettings())
	return rt, rt.clock.(clockwork.FakeClock), rt.comms
}

// testBlockDuration advances the fake clock one worker sleep at a time so
// the goroutine under test gets a chance to run between steps
func testBlockDuration(clock clockwork.FakeClock, step time.Duration, total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		clock.BlockUntil(1)
		clock.Advance(step)
	}
}

// testQuit stops the worker started by the test.  Each worker file arms
// the waitgroup once in init() but tests start workers repeatedly, so
// re-arm to balance the Done the exiting worker fires.
func testQuit(rt runtimeConfig) {
	close(rt.comms.quit)
	if clock, ok := rt.clock.(clockwork.FakeClock); ok {
		// release a worker parked in Sleep
		clock.Advance(dTimeCheckSleep + time.Second)
	}
	wg.Add(1)
}

func ledRead(t *testing.T, c chan ledEffect) (ledEffect, error) {
	select {
	case e := <-c:
		return e, nil
	default:
		assert.Assert(t, false, "Nothing to read from led channel")
	}
	return ledEffect{}, nil
}

func ledNoRead(t *testing.T, c chan ledEffect) (ledEffect, error) {
	select {
	case e := <-c:
		assert.Assert(t, e == ledEffect{}, "Got an unexpected value from led channel")
	default:
	}
	return ledEffect{}, nil
}

func effectRead(t *testing.T, c chan displayEffect) (displayEffect, error) {
	select {
	case e := <-c:
		return e, nil
	default:
		assert.Assert(t, false, "Nothing to read from effect channel")
	}
	return displayEffect{}, nil
}

func effectReadAll(c chan displayEffect) []displayEffect {
	es := make([]displayEffect, 0)
	for {
		select {
		case e := <-c:
			es = append(es, e)
		default:
			return es
		}
	}
}

func effectNoRead(t *testing.T, c chan displayEffect) (displayEffect, error) {
	select {
	case e := <-c:
		assert.Assert(t, e == displayEffect{}, "Got an unexpected value from effect channel")
	default:
	}
	return displayEffect{}, nil
}
