package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/0nxb/my-weather-app/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	WeatherPath = "/api/weather"

	MsgCityNotFound       = "도시를 찾을 수 없습니다."
	MsgWeatherUnavailable = "날씨 정보를 가져올 수 없습니다."
)

// StatusError is returned when the weather endpoint answers with a non-2xx
// status. Its message is meant to be shown to the user as is.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	tracer     trace.Tracer
}

type Option func(*Client)

// WithHTTPClient sends requests through hc. The client is copied, not
// modified, when a timeout is also set.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Without it requests may wait forever.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a client for the widget backend at baseURL, for example
// "http://localhost:8080" or the page origin in the browser.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tracer:     otel.Tracer("weatherapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

func (c *Client) FetchByCity(ctx context.Context, city string, units models.Units) (models.WeatherResponse, error) {
	ctx, span := c.tracer.Start(ctx, "weatherapi.FetchByCity",
		trace.WithAttributes(attribute.String("city", city), attribute.String("units", string(units))))
	defer span.End()

	params := url.Values{}
	params.Set("city", city)
	params.Set("units", string(units))

	data, err := c.fetch(ctx, params, func(body models.ErrorResponse) string {
		if body.Error != "" {
			return body.Error
		}
		return MsgCityNotFound
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return data, err
}

func (c *Client) FetchByCoords(ctx context.Context, lat, lon float64, units models.Units) (models.WeatherResponse, error) {
	ctx, span := c.tracer.Start(ctx, "weatherapi.FetchByCoords",
		trace.WithAttributes(attribute.Float64("lat", lat), attribute.Float64("lon", lon), attribute.String("units", string(units))))
	defer span.End()

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("units", string(units))

	// Server-provided details are deliberately not surfaced for coordinate lookups.
	data, err := c.fetch(ctx, params, func(models.ErrorResponse) string {
		return MsgWeatherUnavailable
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return data, err
}

func (c *Client) fetch(ctx context.Context, params url.Values, failure func(models.ErrorResponse) string) (models.WeatherResponse, error) {
	u := c.baseURL + WeatherPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.WeatherResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.WeatherResponse{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.WeatherResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody models.ErrorResponse
		_ = json.Unmarshal(body, &errBody)
		return models.WeatherResponse{}, &StatusError{Status: resp.StatusCode, Message: failure(errBody)}
	}

	var data models.WeatherResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return models.WeatherResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return data, nil
}
