// petd is the pet engine daemon: it wires the metric source, time provider,
// and interaction socket into one arbitrator, and fans resolved transitions
// out to the journal, the NATS bus, and Prometheus.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"

	"github.com/danielpatrickdp/deskpet/internal/arbiter"
	"github.com/danielpatrickdp/deskpet/internal/bus"
	"github.com/danielpatrickdp/deskpet/internal/classify"
	"github.com/danielpatrickdp/deskpet/internal/config"
	"github.com/danielpatrickdp/deskpet/internal/journal"
	"github.com/danielpatrickdp/deskpet/internal/source"
	"github.com/danielpatrickdp/deskpet/internal/telemetry"
	"github.com/danielpatrickdp/deskpet/internal/timewheel"
)

// #region cli

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" type:"path"`
	NoBus   bool   `help:"Disable the NATS change notifier regardless of config"`
	Journal string `help:"Override journal database path"`
}

// #endregion cli

// #region main

func main() {
	_ = godotenv.Load()
	kong.Parse(&CLI)

	if err := run(); err != nil {
		log.Fatalf("[PETD] %v", err)
	}
}

func run() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	if CLI.Journal != "" {
		cfg.Journal.Path = CLI.Journal
	}
	if CLI.NoBus {
		cfg.Bus.Enabled = false
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Engine core.
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}
	cls, err := classify.NewClassifier(cfg.Thresholds, reg)
	if err != nil {
		return err
	}
	collector := telemetry.NewCollector()
	arb, err := arbiter.New(reg, cls,
		arbiter.WithObserver(collector),
		arbiter.WithFallback(cfg.Fallback),
	)
	if err != nil {
		return err
	}

	// Consumers.
	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer j.Close()
	arb.Subscribe(func(ev arbiter.Event) {
		if err := j.Record(ev); err != nil {
			log.Printf("[PETD] journal: %v", err)
		}
	})

	if cfg.Bus.Enabled {
		pub, err := bus.NewPublisher(cfg.Bus.URL, cfg.Bus.Subject)
		if err != nil {
			return err
		}
		defer pub.Close()
		arb.Subscribe(pub.Notify)
	}

	// Producers.
	provider := timewheel.NewProvider(cfg.SpecialDates, nil)
	provider.Apply(arb)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Daemon.TimeInterval.Std()),
		gocron.NewTask(func() { provider.Apply(arb) }),
		gocron.WithName("time-tick"),
	)
	if err != nil {
		return fmt.Errorf("time job: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Daemon.SampleInterval.Std()),
		gocron.NewTask(func() { pollSamples(cfg.Daemon.SamplesPath, arb) }),
		gocron.WithName("sample-poll"),
	)
	if err != nil {
		return fmt.Errorf("sample job: %w", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("[PETD] scheduler shutdown: %v", err)
		}
	}()

	// Push-based sample pickup between polls.
	if watcher, err := source.NewWatcher(cfg.Daemon.SamplesPath, func(m classify.Metrics) {
		arb.UpdateSystem(m)
	}); err == nil {
		go watcher.Run(ctx)
	} else {
		log.Printf("[PETD] sample watcher unavailable, polling only: %v", err)
	}

	// Metrics endpoint.
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	mux.HandleFunc("/state", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, arb.Current())
	})
	srv := &http.Server{Addr: cfg.Daemon.MetricsAddr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[PETD] metrics server: %v", err)
		}
	}()

	log.Printf("[PETD] ready: journal=%s metrics=%s state=%s",
		cfg.Journal.Path, cfg.Daemon.MetricsAddr, arb.Current())

	<-ctx.Done()
	log.Println("[PETD] shutting down")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := srv.Shutdown(stopCtx); err != nil {
		log.Printf("[PETD] metrics server shutdown: %v", err)
	}
	return nil
}

// #endregion main

// #region helpers

func pollSamples(path string, arb *arbiter.Arbitrator) {
	m, err := source.Load(path)
	if err != nil {
		// The monitor may simply not have written yet.
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[PETD] samples: %v", err)
		}
		return
	}
	arb.UpdateSystem(m)
}

// #endregion helpers
