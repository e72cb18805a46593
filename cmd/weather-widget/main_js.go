//go:build js && wasm

package main

import (
	"context"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/0nxb/my-weather-app/internal/dom"
	"github.com/0nxb/my-weather-app/internal/memstore"
	"github.com/0nxb/my-weather-app/internal/recent"
	"github.com/0nxb/my-weather-app/internal/weatherapi"
	"github.com/0nxb/my-weather-app/internal/widget"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
	slog.SetDefault(logger)

	v, err := dom.NewView(js.Global().Get("document"))
	if err != nil {
		slog.Error("page is missing widget elements", "error", err)
		return
	}

	var kv recent.Store
	if ls, err := dom.NewLocalStorage(); err != nil {
		slog.Warn("recent searches will not persist", "error", err)
		kv = memstore.New()
	} else {
		kv = ls
	}

	origin := js.Global().Get("location").Get("origin").String()
	ctrl := widget.New(v, weatherapi.New(origin), kv, widget.Options{
		Locator: dom.Geolocator{},
		Logger:  logger,
	})

	release := dom.Bind(ctrl, v)
	defer release()

	if err := ctrl.Run(context.Background()); err != nil {
		slog.Error("widget stopped", "error", err)
	}
}
