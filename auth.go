package main

import (
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// what went wrong talking to the attendance server
const (
	authErrNetwork = iota
	authErrStatus
	authErrTimeout
)

type authError struct {
	kind   int
	status int
	cause  error
}

func (e *authError) Error() string {
	switch e.kind {
	case authErrStatus:
		return fmt.Sprintf("auth: server returned status %d", e.status)
	case authErrTimeout:
		return fmt.Sprintf("auth: request timed out: %v", e.cause)
	default:
		return fmt.Sprintf("auth: network error: %v", e.cause)
	}
}

func (e *authError) Cause() error {
	return e.cause
}

// authClient posts scanned identifiers to the attendance server.  The
// mutex keeps it to one exchange in flight at a time: the server side is
// a single PHP script on a shared host, and hammering it with concurrent
// posts from one little box buys nothing.
type authClient struct {
	mu      sync.Mutex
	client  *http.Client
	url     string
	retries int
}

func newAuthClient(settings configSettings) *authClient {
	return &authClient{
		client:  &http.Client{Timeout: settings.GetDuration(sAuthTimeout)},
		url:     "http://" + settings.GetString(sAuthHost) + settings.GetString(sAuthPath),
		retries: settings.GetInt(sAuthRetries),
	}
}

// authenticate blocks until the server answers (or the timeout fires) and
// returns the response body verbatim.  Transient network errors get a
// bounded number of retries; HTTP-level rejections do not.
func (ac *authClient) authenticate(userID string) (string, error) {
	// make sure we don't do 2 of these at the same time
	ac.mu.Lock()
	defer ac.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt <= ac.retries; attempt++ {
		body, err := ac.post(userID)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ae, ok := err.(*authError); !ok || ae.kind != authErrNetwork {
			break
		}
	}
	return "", lastErr
}

func (ac *authClient) post(userID string) (string, error) {
	// the id goes out as the raw body, no URL encoding
	req, err := http.NewRequest("POST", ac.url, strings.NewReader(userID))
	if err != nil {
		return "", &authError{kind: authErrNetwork, cause: err}
	}
	req.Header.Set("Connection", "close")
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "text/plain")

	resp, err := ac.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", &authError{kind: authErrTimeout, cause: err}
		}
		return "", &authError{kind: authErrNetwork, cause: err}
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", &authError{kind: authErrNetwork, cause: errors.Wrap(err, "reading response")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &authError{kind: authErrStatus, status: resp.StatusCode}
	}
	return string(data), nil
}

func isTimeout(err error) bool {
	if uerr, ok := err.(*url.Error); ok && uerr.Timeout() {
		return true
	}
	if nerr, ok := errors.Cause(err).(net.Error); ok && nerr.Timeout() {
		return true
	}
	return false
}
