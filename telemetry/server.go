// Package telemetry serves a single live page showing the evolution
// loop's progress (best/median/worst fitness per generation) over a
// websocket, the way the teacher's server package served racetrack
// value-function views. Entirely optional: evolve.Loop runs the same
// whether or not anything is listening on the hook channel.
package telemetry

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"

	"github.com/niceyeti/lgp/atomicfloat"
	"github.com/niceyeti/lgp/telemetry/fastview"
	"github.com/niceyeti/lgp/telemetry/rootview"
	"github.com/niceyeti/lgp/telemetry/statviews"

	"github.com/gorilla/mux"
)

// Server serves the fitness-history dashboard to a single client over a
// single websocket. Like the teacher's prototype, this is intentionally
// minimal: one client at a time, no auth, no reconnection state beyond
// what the browser itself retries.
type Server struct {
	addr        string
	last        statviews.Stat
	rootView    *rootview.RootView
	bestFitness *atomicfloat.Float64
}

// NewServer builds the root view and returns a server ready to Serve.
// statUpdates is typically fed by an evolve.Hook. bestFitness may be nil;
// when set, it is polled independently of statUpdates by /bestfitness, so
// a caller can observe progress between generation boundaries.
func NewServer(
	ctx context.Context,
	addr string,
	statUpdates <-chan statviews.Stat,
	bestFitness *atomicfloat.Float64,
) *Server {
	return &Server{
		addr:        addr,
		rootView:    rootview.NewRootView(ctx, statUpdates),
		bestFitness: bestFitness,
	}
}

// Serve blocks, serving the dashboard and its websocket until the
// listener fails.
func (s *Server) Serve() error {
	r := mux.NewRouter()
	r.HandleFunc("/", s.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.serveWebsocket)
	r.HandleFunc("/bestfitness", s.serveBestFitness).Methods(http.MethodGet)

	if err := http.ListenAndServe(s.addr, r); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// serveBestFitness reports the current running-best fitness on demand,
// independent of the per-generation hook: a poller can hit this mid
// generation and see a value evaluation workers raised moments earlier.
func (s *Server) serveBestFitness(w http.ResponseWriter, r *http.Request) {
	if s.bestFitness == nil {
		http.Error(w, "best fitness tracking disabled", http.StatusNotFound)
		return
	}
	fmt.Fprintf(w, "%f", s.bestFitness.Read())
}

// serveWebsocket upgrades the request and hands it to a fastview pusher,
// which owns the ping/pong liveness check and rate-limited publish loop.
func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	pusher, err := fastview.NewPusher(s.rootView.Updates(), w, r)
	if err != nil {
		log.Println("websocket upgrade failed:", err)
		return
	}

	if err := pusher.Stream(); err != nil {
		log.Println("dashboard stream ended:", err)
	}
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if err := renderTemplate(w, s.rootView, s.last); err != nil {
		_, _ = w.Write([]byte(err.Error()))
	}
}

func renderTemplate(
	w io.Writer,
	vc fastview.ViewComponent,
	data interface{},
) (err error) {
	t := template.New("index.html")
	var tname string
	if tname, err = vc.Parse(t); err != nil {
		return
	}
	if _, err = t.Parse(`{{ template "` + tname + `" . }}`); err != nil {
		return
	}
	return t.Execute(w, data)
}
