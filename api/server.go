// Package api exposes the running light programme over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/matt-g-everett/ledanim/driver"
	"github.com/matt-g-everett/ledanim/stream"
)

var logger = logxi.New("api")

// FrameSource provides the frame most recently sent to the strip.
type FrameSource interface {
	Latest() *stream.Frame
	Sent() (sent int, failed int)
}

// StatsSource reports what the animation driver is doing.
type StatsSource interface {
	Stats() driver.Stats
}

// Api routes requests to the streamer and driver.
type Api struct {
	router  chi.Router
	log     logxi.Logger
	frames  FrameSource
	stats   StatsSource
	trigger func()
	static  string
}

type frameResponse struct {
	Pixels []string `json:"pixels"`
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
}

// NewApi builds the router. trigger is called for each POST /trigger. When
// static is not empty the files under it are served from /.
func NewApi(frames FrameSource, stats StatsSource, trigger func(), static string) *Api {
	a := &Api{log: logger, frames: frames, stats: stats, trigger: trigger, static: static}
	a.router = a.buildRouter()
	return a
}

func (a *Api) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(a.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", a.handleHealth)
	r.Get("/frame", a.handleFrame)
	r.Get("/stats", a.handleStats)
	r.Post("/trigger", a.handleTrigger)

	if a.static != "" {
		r.Handle("/*", http.FileServer(http.Dir(a.static)))
	}
	return r
}

// logRequests logs each request once its response has been written.
func (a *Api) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			a.log.Info("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(),
				"bytes", ww.BytesWritten(), "elapsed", time.Since(start).String())
		}()
		next.ServeHTTP(ww, r)
	})
}

// ServeHTTP delegates to the chi router.
func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Serve listens on addr until ctx is cancelled.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errC <- srv.ListenAndServe()
	}()

	select {
	case errGo := <-errC:
		return errors.Wrap(errGo).With("addr", addr).With("stack", stack.Trace().TrimRuntime())
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if errGo := srv.Shutdown(shutdownCtx); errGo != nil {
		return errors.Wrap(errGo).With("addr", addr).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

func (a *Api) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *Api) handleFrame(w http.ResponseWriter, r *http.Request) {
	sent, failed := a.frames.Sent()
	writeJSON(w, http.StatusOK, frameResponse{
		Pixels: a.frames.Latest().Hex(),
		Sent:   sent,
		Failed: failed,
	})
}

func (a *Api) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.stats.Stats())
}

func (a *Api) handleTrigger(w http.ResponseWriter, r *http.Request) {
	a.trigger()
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if errGo := json.NewEncoder(w).Encode(v); errGo != nil {
		logger.Warn("encoding response failed", "error", errGo.Error())
	}
}
