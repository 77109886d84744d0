package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"studiocal/internal/admin"
	"studiocal/internal/capture"
	"studiocal/internal/config"
	"studiocal/internal/courses"
	"studiocal/internal/ics"
	appLog "studiocal/internal/log"
	"studiocal/internal/refresh"
	"studiocal/internal/store"
	"studiocal/internal/web"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	envPath    string
	listen     string
	once       bool
	snapshot   string
}

func main() {
	appLog.Info("studiocal starting", "version", "0.1.0")

	flags := parseFlags()

	conf, err := config.Load(flags.configPath, flags.envPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	appLog.Info("effective config",
		"listen", conf.Listen,
		"data_dir", conf.DataDir,
		"years", fmt.Sprint(conf.Years),
		"refresh", conf.RefreshCron,
		"admin", conf.Admin.Enabled(),
		"ics_count", len(conf.ICS),
		"once", flags.once,
		"snapshot", flags.snapshot,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := buildService(conf)
	if err != nil {
		appLog.Error("failed to build course service", err)
		os.Exit(1)
	}
	srv := web.NewServer(conf, svc)

	switch {
	case flags.once:
		if err := srv.ExportStatic(ctx, conf.OutputDir); err != nil {
			appLog.Error("static export failed", err, "output_dir", conf.OutputDir)
			os.Exit(1)
		}
	case flags.snapshot != "":
		if err := runSnapshot(ctx, conf, srv, flags.snapshot); err != nil {
			appLog.Error("snapshot failed", err, "path", flags.snapshot)
			os.Exit(1)
		}
	default:
		if err := runServer(ctx, conf, srv, svc); err != nil {
			appLog.Error("server failed", err)
			os.Exit(1)
		}
	}
	appLog.Info("studiocal exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "config.yaml", "Path to config file")
	flag.StringVar(&cfg.envPath, "env", ".env", "Path to .env file with EMAIL / PASSWORD")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Write {year}.html and {year}.ics for every configured year and exit")
	flag.StringVar(&cfg.snapshot, "snapshot", "", "Capture the current year page as PNG to this path and exit")

	flag.Parse()

	return cfg
}

func buildService(conf *config.Config) (*courses.Service, error) {
	var sources []courses.Source

	if conf.Admin.Enabled() {
		client, err := admin.NewClient(admin.Options{
			BaseURL:     conf.Admin.BaseURL,
			Email:       conf.Admin.Email,
			Password:    conf.Admin.Password,
			LoginPath:   conf.Admin.LoginPath,
			CoursesPath: conf.Admin.CoursesPath,
		})
		if err != nil {
			return nil, err
		}
		sources = append(sources, client)
	} else {
		appLog.Warn("admin portal not configured; only feeds and manual entries are shown")
	}

	if len(conf.ICS) > 0 {
		feeds := make([]ics.Feed, 0, len(conf.ICS))
		for _, f := range conf.ICS {
			if f.URL == "" {
				continue
			}
			id := f.ID
			if id == "" {
				id = f.URL
			}
			feeds = append(feeds, ics.Feed{ID: id, URL: f.URL})
		}
		fetcher := ics.NewFetcher(filepath.Join(conf.DataDir, "ics-cache"))
		sources = append(sources, ics.NewFeedSource(fetcher, feeds, resolveLocationOrLocal(conf.Timezone)))
	}

	return courses.NewService(store.NewFileStore(conf.DataDir), sources...), nil
}

func resolveLocationOrLocal(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", name)
		return time.Local
	}
	return loc
}

// runServer serves HTTP and runs the refresh schedule until ctx is done.
func runServer(ctx context.Context, conf *config.Config, srv *web.Server, svc *courses.Service) error {
	sched, err := refresh.New(svc, conf.RefreshCron)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	httpSrv := &http.Server{
		Addr:              conf.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+conf.Listen)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		appLog.Info("signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// runSnapshot serves the pages on a loopback port just long enough for
// Chromium to capture the current year.
func runSnapshot(ctx context.Context, conf *config.Config, srv *web.Server, path string) error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	httpSrv := &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("snapshot server stopped", err)
		}
	}()
	defer httpSrv.Close()

	year := time.Now().Year()
	if len(conf.Years) > 0 {
		year = conf.Years[len(conf.Years)-1]
		for _, y := range conf.Years {
			if y == time.Now().Year() {
				year = y
			}
		}
	}

	url := fmt.Sprintf("http://%s/%d.html", ln.Addr().String(), year)
	appLog.Info("capturing year page", "url", url, "path", path)
	return capture.CapturePagePNG(ctx, capture.Options{URL: url, OutputPath: path})
}
