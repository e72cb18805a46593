// Package widget wires user interactions to weather lookups and rendering.
package widget

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/0nxb/my-weather-app/internal/models"
	"github.com/0nxb/my-weather-app/internal/recent"
	"github.com/0nxb/my-weather-app/internal/view"
)

const (
	MsgEmptyCity         = "도시 이름을 입력하세요."
	MsgGeoUnsupported    = "위치 정보를 지원하지 않습니다."
	MsgGeoDenied         = "위치 권한이 필요합니다."
	MsgCoordSearchFailed = "날씨 정보를 가져오는데 실패했습니다."
)

var (
	ErrGeolocationUnsupported = errors.New("geolocation unsupported")
	ErrPermissionDenied       = errors.New("geolocation permission denied")
)

type WeatherSource interface {
	FetchByCity(ctx context.Context, city string, units models.Units) (models.WeatherResponse, error)
	FetchByCoords(ctx context.Context, lat, lon float64, units models.Units) (models.WeatherResponse, error)
}

// Locator resolves the device position. Implementations return
// ErrGeolocationUnsupported when the platform has no position source.
type Locator interface {
	Locate(ctx context.Context) (lat, lon float64, err error)
}

type State struct {
	Units    models.Units
	LastCity string
	Recent   recent.List
}

type Options struct {
	Units   models.Units
	Locator Locator
	Now     func() time.Time
	Logger  *slog.Logger
}

type Controller struct {
	state    State
	renderer *view.Renderer
	view     view.View
	source   WeatherSource
	store    recent.Store
	locator  Locator
	loop     *Loop
	handlers map[Interaction]Handler
	log      *slog.Logger
	ctx      context.Context
}

func New(v view.View, source WeatherSource, store recent.Store, opts Options) *Controller {
	if !opts.Units.Valid() {
		opts.Units = models.Metric
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	c := &Controller{
		state:    State{Units: opts.Units},
		renderer: view.NewRenderer(v, opts.Now),
		view:     v,
		source:   source,
		store:    store,
		locator:  opts.Locator,
		loop:     NewLoop(),
		log:      opts.Logger,
		ctx:      context.Background(),
	}
	c.handlers = c.dispatchTable()
	c.loop.Post(c.restoreRecent)
	return c
}

// Run restores the persisted recent searches and then handles interactions
// until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	c.ctx = ctx
	return c.loop.Run(ctx)
}

// Trigger queues the named interaction for the loop. It is safe to call from
// any goroutine.
func (c *Controller) Trigger(name Interaction, ev Event) {
	c.loop.Post(func() { c.dispatch(name, ev) })
}

// Wait blocks until queued interactions and the lookups they started are done.
func (c *Controller) Wait() {
	c.loop.Wait()
}

// State returns a copy of the session state. It must be called from the loop
// or after Wait.
func (c *Controller) State() State {
	s := c.state
	s.Recent = append(recent.List(nil), c.state.Recent...)
	return s
}

func (c *Controller) dispatch(name Interaction, ev Event) {
	h, ok := c.handlers[name]
	if !ok {
		c.log.Warn("unknown interaction", "name", name)
		return
	}
	h(ev)
}

func (c *Controller) restoreRecent() {
	list, found, err := recent.Load(c.ctx, c.store)
	if err != nil {
		c.log.Warn("failed to load recent cities", "error", err)
		return
	}
	if !found {
		return
	}
	c.state.Recent = list
	c.renderRecent()
}

func (c *Controller) submitInput() {
	city := strings.TrimSpace(c.view.Value(view.CityInput))
	if city == "" {
		c.renderer.ShowError(MsgEmptyCity)
		return
	}
	c.searchCity(city)
	c.view.SetValue(view.CityInput, "")
	c.view.SetHidden(view.RecentSearches, true)
}

func (c *Controller) locate() {
	if c.locator == nil {
		c.renderer.ShowError(MsgGeoUnsupported)
		return
	}
	ctx := c.ctx
	c.loop.Go(func() func() {
		lat, lon, err := c.locator.Locate(ctx)
		return func() {
			switch {
			case errors.Is(err, ErrGeolocationUnsupported):
				c.renderer.ShowError(MsgGeoUnsupported)
			case err != nil:
				c.log.Info("geolocation failed", "error", err)
				c.renderer.ShowError(MsgGeoDenied)
			default:
				c.searchCoords(lat, lon)
			}
		}
	})
}

func (c *Controller) toggleUnits() {
	c.state.Units = c.state.Units.Toggle()
	if c.state.LastCity != "" {
		c.searchCity(c.state.LastCity)
	}
}

func (c *Controller) showRecent() {
	if len(c.state.Recent) > 0 {
		c.view.SetHidden(view.RecentSearches, false)
	}
}

func (c *Controller) selectRecent(city string) {
	c.searchCity(city)
	c.view.SetValue(view.CityInput, "")
	c.view.SetHidden(view.RecentSearches, true)
}

func (c *Controller) searchCity(city string) {
	c.renderer.ShowError("")
	ctx, units := c.ctx, c.state.Units

	c.loop.Go(func() func() {
		data, err := c.source.FetchByCity(ctx, city, units)
		return func() {
			if err != nil {
				c.log.Info("city search failed", "city", city, "error", err)
				c.renderer.ShowError(err.Error())
				return
			}
			c.state.LastCity = city
			c.remember(city)
			c.render(data)
		}
	})
}

func (c *Controller) searchCoords(lat, lon float64) {
	c.renderer.ShowError("")
	ctx, units := c.ctx, c.state.Units

	c.loop.Go(func() func() {
		data, err := c.source.FetchByCoords(ctx, lat, lon, units)
		return func() {
			if err != nil {
				c.log.Info("coordinate search failed", "lat", lat, "lon", lon, "error", err)
				c.renderer.ShowError(MsgCoordSearchFailed)
				return
			}
			name := data.Current.Name
			c.state.LastCity = name
			if name != "" {
				c.remember(name)
			}
			c.render(data)
		}
	})
}

func (c *Controller) render(data models.WeatherResponse) {
	c.renderer.RenderCurrent(data.Current, c.state.LastCity, c.state.Units)
	c.renderer.RenderForecast(data.Forecast)
}

func (c *Controller) remember(city string) {
	c.state.Recent = c.state.Recent.Add(city)
	if err := recent.Save(c.ctx, c.store, c.state.Recent); err != nil {
		c.log.Warn("failed to persist recent cities", "error", err)
	}
	c.renderRecent()
}

func (c *Controller) renderRecent() {
	c.renderer.RenderRecent(c.state.Recent, func(city string) {
		c.Trigger(SelectRecent, Event{City: city})
	})
}
