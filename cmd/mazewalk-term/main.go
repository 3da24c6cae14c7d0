// Command mazewalk-term plays the maze in a terminal. Logs go to a rotating
// file since the screen owns stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/mazewalk"
	"github.com/phanxgames/mazewalk/term"
)

var (
	log = logrus.New()

	envFiles string
)

func init() {
	flag.StringVar(&envFiles, "env", ".env", "comma separated .env files")
}

func setupLogging(cfg mazewalk.Config) error {
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.LogFile,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     7, // days
		Level:      cfg.Level(),
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.SetLevel(cfg.Level())
	log.SetOutput(io.Discard)
	log.AddHook(hook)
	return nil
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	cfg, err := mazewalk.LoadConfig(strings.Split(envFiles, ",")...)
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}
	if err := setupLogging(cfg); err != nil {
		log.Fatal("unable to open log file: ", err)
	}
	log.WithFields(cfg.Fields()).Info("starting up")

	reg := prometheus.NewRegistry()

	var eng *mazewalk.Engine
	opts := cfg.Options()
	opts.Logger = log
	opts.Metrics = mazewalk.NewMetrics(reg)
	opts.Navigator = mazewalk.NavigatorFunc(func(dest string) {
		log.WithField("destination", dest).Info("arrived")
		eng.Regenerate()
	})
	eng = mazewalk.NewEngine(opts)

	app, err := term.New(eng, term.Options{Dark: cfg.Dark, Sound: cfg.Sound, Logger: log})
	if err != nil {
		log.Fatal("unable to open terminal: ", err)
	}
	defer app.Close()

	ctx, cancel := context.WithCancel(mainCtx)
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return app.Run(gCtx)
	})

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		g.Go(func() error {
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			return server.Shutdown(context.Background())
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("exit")
	}
	log.Info("shut down")
}
