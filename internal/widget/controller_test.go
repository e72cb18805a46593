package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/0nxb/my-weather-app/internal/memstore"
	"github.com/0nxb/my-weather-app/internal/models"
	"github.com/0nxb/my-weather-app/internal/recent"
	"github.com/0nxb/my-weather-app/internal/view"
	"github.com/0nxb/my-weather-app/internal/weatherapi"
)

type call struct {
	City     string
	Lat, Lon float64
	Units    models.Units
}

type fakeSource struct {
	mu       sync.Mutex
	calls    []call
	data     models.WeatherResponse
	cityErr  error
	coordErr error
}

func (f *fakeSource) FetchByCity(_ context.Context, city string, units models.Units) (models.WeatherResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{City: city, Units: units})
	if f.cityErr != nil {
		return models.WeatherResponse{}, f.cityErr
	}
	return f.data, nil
}

func (f *fakeSource) FetchByCoords(_ context.Context, lat, lon float64, units models.Units) (models.WeatherResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Lat: lat, Lon: lon, Units: units})
	if f.coordErr != nil {
		return models.WeatherResponse{}, f.coordErr
	}
	return f.data, nil
}

func (f *fakeSource) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

type fakeLocator struct {
	lat, lon float64
	err      error
}

func (l fakeLocator) Locate(context.Context) (float64, float64, error) {
	return l.lat, l.lon, l.err
}

func payload(name string, temp float64, icon string) models.WeatherResponse {
	return models.WeatherResponse{
		Current: models.Current{
			Name:    name,
			Main:    models.Main{Temp: temp, Humidity: 55},
			Weather: []models.Condition{{Icon: icon, Description: "맑음"}},
			Wind:    models.Wind{Speed: 1.5},
		},
		Forecast: models.Forecast{List: []models.ForecastEntry{
			{Dt: 1760778000, DtTxt: "2026-10-18 09:00:00", Main: models.Main{Temp: 18}, Weather: []models.Condition{{Icon: "02d"}}},
			{Dt: 1760864400, DtTxt: "2026-10-19 09:00:00", Main: models.Main{Temp: 16}, Weather: []models.Condition{{Icon: "10d"}}},
		}},
	}
}

type harness struct {
	c     *Controller
	view  *view.MemoryView
	src   *fakeSource
	store *memstore.Store
}

func start(t *testing.T, src *fakeSource, kv *memstore.Store, opts Options) *harness {
	t.Helper()
	if kv == nil {
		kv = memstore.New()
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }
	}
	v := view.NewMemoryView()
	c := New(v, src, kv, opts)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	c.Wait()
	return &harness{c: c, view: v, src: src, store: kv}
}

func (h *harness) submit(city string) {
	h.view.SetValue(view.CityInput, city)
	h.c.Trigger(Search, Event{})
	h.c.Wait()
}

func TestEmptyInputShowsErrorWithoutFetching(t *testing.T) {
	h := start(t, &fakeSource{}, nil, Options{})
	h.submit("   ")

	if got := h.view.Text(view.ErrorDisplay); got != MsgEmptyCity || h.view.Hidden(view.ErrorDisplay) {
		t.Fatalf("expected empty-city banner, got %q", got)
	}
	if n := len(h.src.Calls()); n != 0 {
		t.Fatalf("expected no fetch, got %d", n)
	}
}

func TestSearchSeoulRendersAndRemembers(t *testing.T) {
	src := &fakeSource{data: payload("Seoul", 22.5, "01d")}
	h := start(t, src, nil, Options{})
	h.view.SetHidden(view.RecentSearches, false)

	h.submit("  seoul ")

	calls := src.Calls()
	if len(calls) != 1 || calls[0].City != "seoul" || calls[0].Units != models.Metric {
		t.Fatalf("unexpected calls %+v", calls)
	}
	if got := h.view.Text(view.CurrentTemp); got != "22.5°" {
		t.Fatalf("temp %q", got)
	}
	if got := h.view.Image(view.WeatherIcon).Src; !strings.HasSuffix(got, "clear-day.svg") {
		t.Fatalf("icon %q", got)
	}
	if got := h.view.Text(view.OutfitText); !strings.Contains(got, "얇은 가디건") {
		t.Fatalf("outfit %q", got)
	}
	if h.view.Text(view.CityName) != "Seoul" {
		t.Fatalf("city %q", h.view.Text(view.CityName))
	}
	if h.view.Value(view.CityInput) != "" || !h.view.Hidden(view.RecentSearches) {
		t.Fatal("input should be cleared and recent list hidden")
	}
	if h.view.Hidden(view.CurrentSection) || h.view.Hidden(view.ForecastSection) {
		t.Fatal("sections should be visible")
	}
	if n := len(h.view.Children(view.ForecastContainer)); n != 2 {
		t.Fatalf("expected 2 forecast cards, got %d", n)
	}

	st := h.c.State()
	if st.LastCity != "seoul" || fmt.Sprint(st.Recent) != "[seoul]" {
		t.Fatalf("unexpected state %+v", st)
	}
	raw, ok, _ := h.store.Get(context.Background(), recent.StorageKey)
	if !ok || raw != `["seoul"]` {
		t.Fatalf("recent list not persisted: %q", raw)
	}
	if got := h.view.Actions(view.RecentSearches); fmt.Sprint(got) != "[seoul]" {
		t.Fatalf("recent list not rendered: %v", got)
	}
}

func TestEnterKeySearches(t *testing.T) {
	src := &fakeSource{data: payload("Busan", 18, "02d")}
	h := start(t, src, nil, Options{})

	h.view.SetValue(view.CityInput, "Busan")
	h.c.Trigger(InputKey, Event{Key: "a"})
	h.c.Wait()
	if len(src.Calls()) != 0 {
		t.Fatal("non-enter keys must not search")
	}
	h.c.Trigger(InputKey, Event{Key: "Enter"})
	h.c.Wait()
	if len(src.Calls()) != 1 {
		t.Fatal("enter should search")
	}
}

func TestCitySearchFailureShowsMessage(t *testing.T) {
	src := &fakeSource{cityErr: &weatherapi.StatusError{Status: 404, Message: weatherapi.MsgCityNotFound}}
	h := start(t, src, nil, Options{})
	h.view.SetHidden(view.CurrentSection, false)

	h.submit("Atlantis")

	if got := h.view.Text(view.ErrorDisplay); got != weatherapi.MsgCityNotFound {
		t.Fatalf("banner %q", got)
	}
	if !h.view.Hidden(view.CurrentSection) || !h.view.Hidden(view.ForecastSection) {
		t.Fatal("sections should be hidden")
	}
	if st := h.c.State(); st.LastCity != "" || len(st.Recent) != 0 {
		t.Fatalf("failed search must not change state: %+v", st)
	}
}

func TestCoordinateNetworkFailureShowsGenericMessage(t *testing.T) {
	src := &fakeSource{coordErr: errors.New("dial tcp: connection refused")}
	h := start(t, src, nil, Options{Locator: fakeLocator{lat: 37.56, lon: 126.97}})

	h.c.Trigger(Locate, Event{})
	h.c.Wait()

	if got := h.view.Text(view.ErrorDisplay); got != MsgCoordSearchFailed {
		t.Fatalf("banner %q", got)
	}
	if !h.view.Hidden(view.CurrentSection) || !h.view.Hidden(view.ForecastSection) {
		t.Fatal("sections should stay hidden")
	}
	calls := src.Calls()
	if len(calls) != 1 || calls[0].Lat != 37.56 || calls[0].Lon != 126.97 {
		t.Fatalf("unexpected calls %+v", calls)
	}
}

func TestLocateRecordsServerCityName(t *testing.T) {
	src := &fakeSource{data: payload("Jung-gu", 12, "04n")}
	h := start(t, src, nil, Options{Locator: fakeLocator{lat: 37.56, lon: 126.97}})

	h.c.Trigger(Locate, Event{})
	h.c.Wait()

	st := h.c.State()
	if st.LastCity != "Jung-gu" || fmt.Sprint(st.Recent) != "[Jung-gu]" {
		t.Fatalf("unexpected state %+v", st)
	}
	if h.view.Text(view.CityName) != "Jung-gu" {
		t.Fatalf("city %q", h.view.Text(view.CityName))
	}
}

func TestLocateWithoutGeolocation(t *testing.T) {
	h := start(t, &fakeSource{}, nil, Options{})
	h.c.Trigger(Locate, Event{})
	h.c.Wait()
	if got := h.view.Text(view.ErrorDisplay); got != MsgGeoUnsupported {
		t.Fatalf("banner %q", got)
	}

	h2 := start(t, &fakeSource{}, nil, Options{Locator: fakeLocator{err: ErrGeolocationUnsupported}})
	h2.c.Trigger(Locate, Event{})
	h2.c.Wait()
	if got := h2.view.Text(view.ErrorDisplay); got != MsgGeoUnsupported {
		t.Fatalf("banner %q", got)
	}
}

func TestLocatePermissionDenied(t *testing.T) {
	src := &fakeSource{}
	h := start(t, src, nil, Options{Locator: fakeLocator{err: ErrPermissionDenied}})
	h.c.Trigger(Locate, Event{})
	h.c.Wait()
	if got := h.view.Text(view.ErrorDisplay); got != MsgGeoDenied {
		t.Fatalf("banner %q", got)
	}
	if len(src.Calls()) != 0 {
		t.Fatal("no fetch expected")
	}
}

func TestToggleUnitsRepeatsLastSearch(t *testing.T) {
	src := &fakeSource{data: payload("Tokyo", 20, "01d")}
	h := start(t, src, nil, Options{})

	h.submit("Tokyo")
	h.c.Trigger(ToggleUnits, Event{})
	h.c.Wait()

	calls := src.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 fetches, got %+v", calls)
	}
	if calls[1].City != "Tokyo" || calls[1].Units != models.Imperial {
		t.Fatalf("unexpected re-fetch %+v", calls[1])
	}
	if h.view.Text(view.UnitToggleButton) != "°F" || h.view.Text(view.WindUnit) != " mph" {
		t.Fatal("labels should follow the new units")
	}
	if st := h.c.State(); st.Units != models.Imperial || fmt.Sprint(st.Recent) != "[Tokyo]" {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestToggleUnitsWithoutSearch(t *testing.T) {
	src := &fakeSource{}
	h := start(t, src, nil, Options{})
	h.c.Trigger(ToggleUnits, Event{})
	h.c.Wait()
	if len(src.Calls()) != 0 {
		t.Fatal("toggle without a previous city must not fetch")
	}
	if h.c.State().Units != models.Imperial {
		t.Fatal("units should flip")
	}
}

func TestRestoresRecentAndDropdownVisibility(t *testing.T) {
	kv := memstore.New()
	_ = kv.Set(context.Background(), recent.StorageKey, `["Paris","Rome"]`)
	src := &fakeSource{data: payload("Rome", 25, "01d")}
	h := start(t, src, kv, Options{})

	if got := h.view.Actions(view.RecentSearches); fmt.Sprint(got) != "[Paris Rome]" {
		t.Fatalf("restored list %v", got)
	}

	h.c.Trigger(FocusInput, Event{})
	h.c.Wait()
	if h.view.Hidden(view.RecentSearches) {
		t.Fatal("focus should reveal the list")
	}
	h.c.Trigger(OutsideClick, Event{Inside: true})
	h.c.Wait()
	if h.view.Hidden(view.RecentSearches) {
		t.Fatal("clicks inside the search box keep the list open")
	}
	h.c.Trigger(OutsideClick, Event{})
	h.c.Wait()
	if !h.view.Hidden(view.RecentSearches) {
		t.Fatal("outside click should hide the list")
	}

	h.view.SetValue(view.CityInput, "half typed")
	if !h.view.Activate(view.RecentSearches, 1) {
		t.Fatal("expected a second entry")
	}
	h.c.Wait()
	calls := src.Calls()
	if len(calls) != 1 || calls[0].City != "Rome" {
		t.Fatalf("unexpected calls %+v", calls)
	}
	if h.view.Value(view.CityInput) != "" {
		t.Fatal("selecting a recent city clears the input")
	}
	if got := h.c.State().Recent; fmt.Sprint(got) != "[Rome Paris]" {
		t.Fatalf("recent order %v", got)
	}
}

func TestFocusWithNoRecentKeepsListHidden(t *testing.T) {
	h := start(t, &fakeSource{}, nil, Options{})
	h.c.Trigger(FocusInput, Event{})
	h.c.Wait()
	if !h.view.Hidden(view.RecentSearches) {
		t.Fatal("empty list must stay hidden")
	}
}

func TestRecentListCappedAcrossSearches(t *testing.T) {
	src := &fakeSource{data: payload("x", 10, "01d")}
	h := start(t, src, nil, Options{})
	for _, c := range []string{"A", "B", "C", "D", "E", "F", "c"} {
		h.submit(c)
	}
	if got := h.c.State().Recent; fmt.Sprint(got) != "[c F E D B]" {
		t.Fatalf("unexpected recent %v", got)
	}
}

func TestCorruptStoredRecentIsIgnored(t *testing.T) {
	kv := memstore.New()
	_ = kv.Set(context.Background(), recent.StorageKey, `{oops`)
	h := start(t, &fakeSource{}, kv, Options{})
	if len(h.c.State().Recent) != 0 || len(h.view.Children(view.RecentSearches)) != 0 {
		t.Fatal("corrupt value should be ignored")
	}
}

func TestUnknownInteractionIsIgnored(t *testing.T) {
	h := start(t, &fakeSource{}, nil, Options{})
	h.c.Trigger("dance", Event{})
	h.c.Wait()
}
