package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

func testHandler() (APIHandler, runtimeConfig) {
	s := testSettings()
	s.settings[sAPISecret] = "hunter2"
	rt := initTestRuntime(s)
	return NewHandler(rt), rt
}

func TestAPIStatus(t *testing.T) {
	h, rt := testHandler()

	rt.timeKeep.set("08/30      09:15")
	rt.scans.note(scanRecord{When: rt.clock.Now(), ID: "12345", OK: true, Message: "Welcome, Bob"})

	req := httptest.NewRequest("GET", "/api/status", nil)
	w := httptest.NewRecorder()
	h.apiStatus(w, req)

	var status statusResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, status.Response, "OK")
	assert.Equal(t, status.Clock, "08/30      09:15")
	assert.Equal(t, status.ScanCount, 1)
	assert.Equal(t, status.LastScan.ID, "12345")
	assert.Equal(t, status.LastScan.OK, true)
}

func TestAPIStatusNoScans(t *testing.T) {
	h, _ := testHandler()

	req := httptest.NewRequest("GET", "/api/status", nil)
	w := httptest.NewRecorder()
	h.apiStatus(w, req)

	var status statusResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, status.ScanCount, 0)
	assert.Assert(t, status.LastScan == nil)
}

func TestAPIMessage(t *testing.T) {
	h, rt := testHandler()

	req := httptest.NewRequest("POST", "/api/message", strings.NewReader("LUNCH AT NOON"))
	w := httptest.NewRecorder()
	h.apiMessage(w, req)

	e, _ := effectRead(t, rt.comms.effects)
	assert.Equal(t, e.id, ePrint)
	assert.Equal(t, e.val.(displayPrint).s, "LUNCH AT NOON")
	assert.Equal(t, e.val.(displayPrint).d, rt.settings.GetDuration(sMsgHold))
}

func TestAPIMessageEmpty(t *testing.T) {
	h, rt := testHandler()

	req := httptest.NewRequest("POST", "/api/message", strings.NewReader(""))
	w := httptest.NewRecorder()
	h.apiMessage(w, req)

	var status statusResponse
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, status.Response, "BAD")
	effectNoRead(t, rt.comms.effects)
}

func TestAPIBasicAuth(t *testing.T) {
	h, _ := testHandler()

	wrapped := h.BasicAuth(http.HandlerFunc(h.apiStatus))

	// no credentials
	req := httptest.NewRequest("GET", "/api/status", nil)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	assert.Equal(t, w.Code, 401)
	assert.Assert(t, strings.Contains(w.Header().Get("WWW-Authenticate"), "attendpi"))

	// wrong password
	req = httptest.NewRequest("GET", "/api/status", nil)
	req.SetBasicAuth("attendpi", "wrong")
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	assert.Equal(t, w.Code, 401)

	// right password
	req = httptest.NewRequest("GET", "/api/status", nil)
	req.SetBasicAuth("attendpi", "hunter2")
	w = httptest.NewRecorder()
	wrapped.ServeHTTP(w, req)
	assert.Equal(t, w.Code, 200)
}

func TestHandlerGeneratedSecret(t *testing.T) {
	s := testSettings()
	rt := initTestRuntime(s)
	h := NewHandler(rt)
	h2 := NewHandler(rt)

	// per-boot secret is random, not derivable from boot time
	assert.Equal(t, len(h.getSecret()), 32)
	assert.Assert(t, h.getSecret() != h2.getSecret())
	assert.Assert(t, h.getSecret() != rt.clock.Now().String())
}

func TestStatusUptime(t *testing.T) {
	h, rt := testHandler()
	clock := rt.clock.(clockwork.FakeClock)
	clock.Advance(90 * time.Second)

	status := h.getStatus()
	assert.Equal(t, status.Uptime, "1m30s")
}
