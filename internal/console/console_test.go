package console

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/0nxb/my-weather-app/internal/memstore"
	"github.com/0nxb/my-weather-app/internal/models"
	"github.com/0nxb/my-weather-app/internal/view"
	"github.com/0nxb/my-weather-app/internal/weatherapi"
	"github.com/0nxb/my-weather-app/internal/widget"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		city := q.Get("city")
		if city == "" && q.Get("lat") != "" {
			city = "Jung-gu"
		}
		if strings.EqualFold(city, "atlantis") {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: weatherapi.MsgCityNotFound})
			return
		}
		temp := 22.5
		if q.Get("units") == string(models.Imperial) {
			temp = 72.5
		}
		_ = json.NewEncoder(w).Encode(models.WeatherResponse{
			Current: models.Current{
				Name:    city,
				Main:    models.Main{Temp: temp, Humidity: 40},
				Weather: []models.Condition{{Icon: "01d", Description: "맑음"}},
				Wind:    models.Wind{Speed: 2},
			},
			Forecast: models.Forecast{List: []models.ForecastEntry{
				{Dt: 1760778000, DtTxt: "2026-10-18 09:00:00", Main: models.Main{Temp: 18}, Weather: []models.Condition{{Icon: "02d"}}},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newSession(t *testing.T, locator widget.Locator) (*Session, *bytes.Buffer, *widget.Controller) {
	t.Helper()
	s, out, ctrl, _ := startSession(t, newBackend(t).URL, locator)
	return s, out, ctrl
}

// startSession runs a controller against backendURL. The returned cancel stops
// its loop the way an interrupt stops the terminal front end.
func startSession(t *testing.T, backendURL string, locator widget.Locator) (*Session, *bytes.Buffer, *widget.Controller, context.CancelFunc) {
	t.Helper()
	v := view.NewMemoryView()
	ctrl := widget.New(v, weatherapi.New(backendURL), memstore.New(), widget.Options{
		Locator: locator,
		Now:     func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	var out bytes.Buffer
	return New(ctrl, v, &out), &out, ctrl, cancel
}

func TestInterruptDuringLookupReturns(t *testing.T) {
	started := make(chan struct{}, 1)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-r.Context().Done()
	}))
	t.Cleanup(backend.Close)

	s, _, _, cancel := startSession(t, backend.URL, nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Exec("Seoul")
		done <- err
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("lookup never reached the backend")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("exec: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Exec did not return after the loop stopped")
	}
}

func TestRunStopsOnCancelWhileReading(t *testing.T) {
	s, _, _ := newSession(t, nil)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, pr) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run kept waiting for input after cancel")
	}
}

func TestSessionSearchScenario(t *testing.T) {
	s, out, ctrl := newSession(t, nil)

	in := strings.NewReader("seoul\n:unit\n:recent\n:quit\nnever reached\n")
	if err := s.Run(context.Background(), in); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"== Seoul  10월 18일 (일) ==",
		"22.5° °C  맑음",
		"72.5° °F  맑음",
		"풍속 2 mph",
		"[최근 검색어]",
		"1. seoul",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "never reached") {
		t.Fatal("input after :quit was processed")
	}
	if st := ctrl.State(); st.Units != models.Imperial || st.LastCity != "seoul" {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestSessionShowsServerError(t *testing.T) {
	s, out, _ := newSession(t, nil)
	if _, err := s.Exec("Atlantis"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "! "+weatherapi.MsgCityNotFound) {
		t.Fatalf("expected error banner, got:\n%s", out.String())
	}
}

func TestSessionLocate(t *testing.T) {
	s, out, ctrl := newSession(t, StaticLocator{Lat: 37.5, Lon: 127})
	if _, err := s.Exec(":loc"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "== Jung-gu") {
		t.Fatalf("expected located city, got:\n%s", out.String())
	}
	if got := ctrl.State().Recent; len(got) != 1 || got[0] != "Jung-gu" {
		t.Fatalf("recent %v", got)
	}
}

func TestSessionLocateUnsupported(t *testing.T) {
	s, out, _ := newSession(t, nil)
	if _, err := s.Exec(":loc"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), widget.MsgGeoUnsupported) {
		t.Fatalf("expected unsupported banner, got:\n%s", out.String())
	}
}

func TestSessionPick(t *testing.T) {
	s, out, ctrl := newSession(t, nil)
	for _, line := range []string{"Paris", "Rome", ":pick 2"} {
		if _, err := s.Exec(line); err != nil {
			t.Fatal(err)
		}
	}
	if got := ctrl.State(); got.LastCity != "Paris" || got.Recent[0] != "Paris" {
		t.Fatalf("unexpected state %+v", got)
	}

	out.Reset()
	if _, err := s.Exec(":pick 9"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `no recent city "9"`) {
		t.Fatalf("got %q", out.String())
	}
}

func TestSessionUnknownCommand(t *testing.T) {
	s, out, _ := newSession(t, nil)
	quit, err := s.Exec(":dance")
	if err != nil || quit {
		t.Fatalf("quit=%v err=%v", quit, err)
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("got %q", out.String())
	}
}

func TestPrintHidesEmptySections(t *testing.T) {
	var b bytes.Buffer
	if err := Print(&b, view.NewMemoryView()); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 {
		t.Fatalf("expected nothing, got %q", b.String())
	}
}
