package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/0nxb/my-weather-app/internal/models"
	"github.com/0nxb/my-weather-app/internal/observability"
	"github.com/0nxb/my-weather-app/internal/ratelimit"
	"github.com/0nxb/my-weather-app/internal/weatherapi"
)

type Options struct {
	// Upstream is the base URL of the weather backend. Lookups answer 503
	// while it is empty.
	Upstream string
	// Assets holds the page, stylesheet and loader script.
	Assets fs.FS
	// DistDir holds the compiled widget bundle, served under /dist/.
	DistDir string
	Limiter *ratelimit.RateLimiter
	// ClientKey picks the rate limit key for a request. Defaults to the
	// socket peer address.
	ClientKey func(r *http.Request) string
	Telemetry *observability.Telemetry
}

type Server struct {
	opts  Options
	proxy *httputil.ReverseProxy
}

func NewServer(opts Options) (*Server, error) {
	s := &Server{opts: opts}
	if opts.Upstream == "" {
		return s, nil
	}

	target, err := url.Parse(opts.Upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream %q: %w", opts.Upstream, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid upstream %q: scheme and host are required", opts.Upstream)
	}

	s.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ModifyResponse: func(resp *http.Response) error {
			if resp.StatusCode >= http.StatusInternalServerError {
				s.observe("upstream_error")
			} else {
				s.observe("ok")
			}
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("weather upstream failed",
				"upstream", target.Host,
				"query", r.URL.RawQuery,
				"correlation_id", CorrelationIDFrom(r.Context()),
				"error", err)
			s.observe("error")
			writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: weatherapi.MsgWeatherUnavailable})
		},
	}
	return s, nil
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		if s.opts.Limiter != nil {
			key := s.opts.ClientKey
			if key == nil {
				key = ratelimit.KeyByIP
			}
			r.Use(s.opts.Limiter.Middleware(key))
		}
		r.Get(weatherapi.WeatherPath, s.handleWeather)
	})

	if s.opts.DistDir != "" {
		r.Handle("/dist/*", http.StripPrefix("/dist/", http.FileServer(http.Dir(s.opts.DistDir))))
	}
	if s.opts.Assets != nil {
		r.Handle("/*", http.FileServerFS(s.opts.Assets))
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	if err := validateQuery(r.URL.Query()); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	if s.proxy == nil {
		s.observe("unconfigured")
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: weatherapi.MsgWeatherUnavailable})
		return
	}
	s.proxy.ServeHTTP(w, r)
}

var errLocationRequired = errors.New("location is required (provide lat/lon or city)")

func validateQuery(q url.Values) error {
	if strings.TrimSpace(q.Get("city")) != "" {
		return nil
	}
	if q.Get("lat") != "" && q.Get("lon") != "" {
		return nil
	}
	return errLocationRequired
}

func (s *Server) observe(outcome string) {
	if s.opts.Telemetry != nil {
		s.opts.Telemetry.ObserveUpstream(outcome)
	}
}
