package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/0nxb/my-weather-app/internal/config"
	"github.com/0nxb/my-weather-app/internal/console"
	"github.com/0nxb/my-weather-app/internal/observability"
	"github.com/0nxb/my-weather-app/internal/store"
	"github.com/0nxb/my-weather-app/internal/view"
	"github.com/0nxb/my-weather-app/internal/weatherapi"
	"github.com/0nxb/my-weather-app/internal/widget"
)

func main() {
	cfgPath := flag.String("config", "", "path to a YAML config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] [command...]\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Without commands, reads one command per line from stdin.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*cfgPath, flag.Args()); err != nil {
		slog.Error("weather-cli failed", "error", err)
		os.Exit(1)
	}
}

func run(cfgPath string, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		tel, err := observability.Setup(ctx, "weather-cli", cfg.OTLPEndpoint)
		if err != nil {
			return err
		}
		defer func() { _ = tel.Shutdown(context.Background()) }()
	}

	kv, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return err
	}
	defer kv.Close()

	var locator widget.Locator
	if cfg.Location.Set {
		locator = console.StaticLocator{Lat: cfg.Location.Lat, Lon: cfg.Location.Lon}
	}

	v := view.NewMemoryView()
	client := weatherapi.New(cfg.API.BaseURL, weatherapi.WithTimeout(cfg.API.Timeout))
	ctrl := widget.New(v, client, kv, widget.Options{
		Units:   cfg.Units,
		Locator: locator,
		Logger:  logger,
	})

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.Run(loopCtx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	session := console.New(ctrl, v, os.Stdout)
	if len(args) > 0 {
		return session.Run(ctx, strings.NewReader(strings.Join(args, "\n")))
	}
	return session.Run(ctx, os.Stdin)
}
