package main

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/net/context"
)

type statusResponse struct {
	Response  string      `json:"response"`
	Error     string      `json:"error,omitempty"`
	Clock     string      `json:"clock"`
	Uptime    string      `json:"uptime"`
	ScanCount int         `json:"scanCount"`
	LastScan  *scanRecord `json:"lastScan,omitempty"`
}

// APIHandler - settings for the thing that handles HTTP requests
type APIHandler struct {
	rt     runtimeConfig
	secret string
	user   string
	realm  string
}

// randomSecret draws a fresh 128-bit hex token for the per-boot case
func randomSecret() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// no entropy source means no safe secret to hand out
		log.Fatal(err)
	}
	return hex.EncodeToString(b)
}

// NewHandler - create a new API handler
func NewHandler(rt runtimeConfig) APIHandler {
	secret := rt.settings.GetString(sAPISecret)
	if secret == "" {
		// no configured secret means a per-boot one; it gets logged so
		// whoever is at the console can use it
		secret = randomSecret()
		rt.logger.Printf("api secret for this run: %s", secret)
	}
	return APIHandler{
		rt:     rt,
		secret: secret,
		user:   rt.settings.GetString(sAPIUser),
		realm:  "attendpi",
	}
}

// BasicAuth binds to a object instance, and without accessors it
// will bind the string values instead of references
func (m *APIHandler) getUser() string {
	return m.user
}

func (m *APIHandler) getSecret() string {
	return m.secret
}

func (m *APIHandler) getRealm() string {
	return m.realm
}

// BasicAuth - provide a middleware to authenticate users
func (m *APIHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(m.getUser())) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(m.getSecret())) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+m.getRealm()+`"`)
			w.WriteHeader(401)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *APIHandler) getStatus() statusResponse {
	last, count := m.rt.scans.snapshot()
	resp := statusResponse{
		Response:  "OK",
		Clock:     m.rt.timeKeep.getCurrentTime(),
		Uptime:    m.rt.clock.Now().Sub(m.rt.started).String(),
		ScanCount: count,
	}
	if count > 0 {
		resp.LastScan = &last
	}
	return resp
}

func writeAnswer(w http.ResponseWriter, sr statusResponse) {
	output, _ := json.Marshal(sr)
	w.Header().Set("Content-Type", "application/json")
	w.Write(output)
}

func (m *APIHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	writeAnswer(w, m.getStatus())
}

// apiMessage pushes a plain-text body onto the panel for the usual
// message hold time
func (m *APIHandler) apiMessage(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		writeAnswer(w, statusResponse{Response: "BAD", Error: "empty message"})
		return
	}
	msg := firstLine(string(body))
	hold := m.rt.settings.GetDuration(sMsgHold)
	m.rt.comms.effects <- printEffect(msg, hold)
	writeAnswer(w, m.getStatus())
}

type statusService struct {
	srv *http.Server
}

func (h *statusService) launch(handler *APIHandler, addr string) {
	r := mux.NewRouter()

	// auth middleware
	r.Use(handler.BasicAuth)
	// api server
	r.HandleFunc("/api/status", handler.apiStatus).Methods("GET")
	r.HandleFunc("/api/message", handler.apiMessage).Methods("POST")

	h.srv = &http.Server{Addr: addr, Handler: r}

	// add to the wg
	wg.Add(1)

	// launch the server
	go func() {
		defer wg.Done()
		handler.rt.logger.Println("starting status service http server")
		err := h.srv.ListenAndServe()
		handler.rt.logger.Printf("%v", err)
		handler.rt.logger.Println("Exiting status service")
	}()
}

func (h *statusService) stop() {
	if h.srv != nil {
		h.srv.Shutdown(context.Background())
	}
}
