package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/matt-g-everett/ledanim/driver"
	"github.com/matt-g-everett/ledanim/stream"
)

type fakeFrames struct {
	frame *stream.Frame
}

func (f *fakeFrames) Latest() *stream.Frame { return f.frame.Clone() }

func (f *fakeFrames) Sent() (int, int) { return 7, 1 }

type fakeStats struct{}

func (fakeStats) Stats() driver.Stats {
	return driver.Stats{Active: 2, Pending: 1, Ticks: 40}
}

func newTestApi(t *testing.T, static string) (*Api, *int) {
	t.Helper()
	f := stream.NewFrame(3)
	f.SetPixel(1, colorful.Color{R: 1})
	triggered := 0
	return NewApi(&fakeFrames{frame: f}, fakeStats{}, func() { triggered++ }, static), &triggered
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	a, _ := newTestApi(t, "")
	rec := get(t, a, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestFrame(t *testing.T) {
	a, _ := newTestApi(t, "")
	rec := get(t, a, "/frame")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var got frameResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := []string{"#000000", "#ff0000", "#000000"}
	if strings.Join(got.Pixels, ",") != strings.Join(want, ",") {
		t.Errorf("pixels = %v, want %v", got.Pixels, want)
	}
	if got.Sent != 7 || got.Failed != 1 {
		t.Errorf("sent = %d, failed = %d", got.Sent, got.Failed)
	}
}

func TestStats(t *testing.T) {
	a, _ := newTestApi(t, "")
	rec := get(t, a, "/stats")
	var got driver.Stats
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Active != 2 || got.Pending != 1 || got.Ticks != 40 {
		t.Errorf("stats = %+v", got)
	}
}

func TestTrigger(t *testing.T) {
	a, triggered := newTestApi(t, "")

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trigger", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
	if *triggered != 1 {
		t.Errorf("triggered %d times", *triggered)
	}

	if rec := get(t, a, "/trigger"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /trigger status = %d", rec.Code)
	}
	if *triggered != 1 {
		t.Errorf("GET should not trigger")
	}
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<p>tree</p>"), 0o600); err != nil {
		t.Fatal(err)
	}
	a, _ := newTestApi(t, dir)
	rec := get(t, a, "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "tree") {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	a, _ = newTestApi(t, "")
	if rec := get(t, a, "/"); rec.Code != http.StatusNotFound {
		t.Errorf("status without static dir = %d", rec.Code)
	}
}

func TestRequestsAreLogged(t *testing.T) {
	a, _ := newTestApi(t, "")
	var buf bytes.Buffer
	a.log = logxi.NewLogger(&buf, "api")
	a.log.SetLevel(logxi.LevelInfo)

	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trigger", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
	logged := buf.String()
	for _, want := range []string{"POST", "/trigger", "202"} {
		if !strings.Contains(logged, want) {
			t.Errorf("log %q does not mention %s", logged, want)
		}
	}
}
