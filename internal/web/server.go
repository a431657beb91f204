package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gnssfix/internal/gps"
	"gnssfix/internal/nmea"
)

// Session is what the HTTP layer needs from the receiver session.
// Implementations must be safe to call concurrently.
type Session interface {
	Status() gps.Status
	Reset()
	DistanceFrom(p nmea.Point) (meters float64, ok bool, err error)
}

func Handler(sess Session) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/fix", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, sess.Status().Fix)
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/status", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, sess.Status())
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/reset", func(w http.ResponseWriter, req *http.Request) {
		sess.Reset()
		writeJSON(w, map[string]bool{"ok": true})
	}).Methods(http.MethodPost)

	r.HandleFunc("/api/distance", func(w http.ResponseWriter, req *http.Request) {
		handleDistance(sess, w, req)
	}).Methods(http.MethodPost)

	r.HandleFunc("/api/fix/live", func(w http.ResponseWriter, req *http.Request) {
		handleLive(sess, w, req)
	}).Methods(http.MethodGet)

	return r
}

type distanceRequest struct {
	// From is optional; when nil the live fix position is used.
	From *nmea.Point `json:"from"`
	To   *nmea.Point `json:"to"`
}

type distanceResponse struct {
	Available bool     `json:"available"`
	Meters    *float64 `json:"meters,omitempty"`
}

func handleDistance(sess Session, w http.ResponseWriter, req *http.Request) {
	var dr distanceRequest
	if err := json.NewDecoder(req.Body).Decode(&dr); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	if dr.To == nil {
		http.Error(w, "\"to\" point is required", http.StatusBadRequest)
		return
	}

	var (
		meters float64
		ok     bool
		err    error
	)
	if dr.From != nil {
		meters, err = nmea.Distance(*dr.From, *dr.To)
		ok = err == nil
	} else {
		meters, ok, err = sess.DistanceFrom(*dr.To)
	}
	if err != nil {
		if errors.Is(err, nmea.ErrOutOfRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := distanceResponse{Available: ok}
	if ok {
		resp.Meters = &meters
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, "marshal failed", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(b)
	_, _ = w.Write([]byte("\n"))
}
