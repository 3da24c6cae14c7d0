// Command mazewalk opens a window with a maze that regenerates after every
// win. Settings come from MAZEWALK_* environment variables and .env files.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/mazewalk"
	"github.com/phanxgames/mazewalk/canvas"
)

const windowTitle = "mazewalk"

var (
	log = logrus.New()

	envFiles   string
	scriptPath string
	fullscreen bool
)

func init() {
	flag.StringVar(&envFiles, "env", ".env", "comma separated .env files")
	flag.StringVar(&scriptPath, "script", "", "JSON test script to play, then exit")
	flag.BoolVar(&fullscreen, "fullscreen", false, "open fullscreen")
}

func setupLogging(cfg mazewalk.Config) {
	log.SetLevel(cfg.Level())
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
}

// metricsServer exposes reg on /metrics.
func metricsServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &http.Server{Addr: addr, Handler: mux}
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
	setupLogging(cfg)
	log.WithFields(cfg.Fields()).Debug("config")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	var eng *mazewalk.Engine
	opts := cfg.Options()
	opts.Logger = log
	opts.Metrics = mazewalk.NewMetrics(reg)
	// There is no next page in a standalone window: arriving means a new maze.
	opts.Navigator = mazewalk.NavigatorFunc(func(dest string) {
		log.WithField("destination", dest).Info("arrived")
		eng.Regenerate()
	})
	eng = mazewalk.NewEngine(opts)

	scene := canvas.NewScene(eng, canvas.ConfigFrom(cfg))

	var runner *canvas.TestRunner
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			log.Fatalf("unable to read script %s: %s", scriptPath, err)
		}
		if runner, err = canvas.LoadTestScript(data); err != nil {
			log.Fatal(err)
		}
		scene.SetTestRunner(runner)
	}
	scene.SetUpdateFunc(func() error {
		if mainCtx.Err() != nil || (runner != nil && runner.Done()) {
			return ebiten.Termination
		}
		return nil
	})

	g, gCtx := errgroup.WithContext(mainCtx)
	if cfg.MetricsAddr != "" {
		server := metricsServer(cfg.MetricsAddr, reg)
		log.Infof("metrics @ %s/metrics", cfg.MetricsAddr)
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

	// ebiten owns the main goroutine until the window closes.
	runErr := canvas.Run(scene, canvas.RunConfig{
		Title:      windowTitle,
		Width:      cfg.WindowWidth,
		Height:     cfg.WindowHeight,
		Fullscreen: fullscreen,
	})
	stop()

	if err := g.Wait(); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
