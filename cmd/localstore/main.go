// localstore runs one data access operation against the local database
// and prints the result as JSON.
//
// Usage:
//
//	localstore [-config path] [-timeout 30s] <command> [args]
//
// Commands:
//
//	query "<sql>"
//	get <table>
//	get-where <table> "<condition>"
//	insert <table> '<json object>'
//	insert-batch <table> '<json array>'
//	update <table> '<json object with id>'
//	remove <table> "<condition>"
//	health
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nerrad567/localstore/internal/bridge"
	"github.com/nerrad567/localstore/internal/infrastructure/config"
	"github.com/nerrad567/localstore/internal/infrastructure/influxdb"
	"github.com/nerrad567/localstore/internal/infrastructure/logging"
	"github.com/nerrad567/localstore/internal/infrastructure/mqtt"
	"github.com/nerrad567/localstore/internal/readiness"
	"github.com/nerrad567/localstore/internal/store"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
)

const (
	defaultConfigPath = "configs/localstore.yaml"
	defaultEnvFile    = ".env"
	defaultTimeout    = 30 * time.Second
)

// errUsage marks command line mistakes.
var errUsage = errors.New("usage")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("localstore", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", getConfigPath(), "path to the YAML config file")
	timeout := fs.Duration("timeout", defaultTimeout, "how long to wait for the operation")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	inv, err := parseCommand(fs.Args())
	if err != nil {
		return err
	}

	if err := config.LoadEnvFile(defaultEnvFile); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logging.New(cfg.Logging, version)
	log.Debug("starting localstore",
		"version", version,
		"commit", commit,
		"command", inv.name,
	)

	app, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer app.close()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	result, err := inv.run(ctx, app)
	if err != nil {
		return fmt.Errorf("%s: %w", inv.name, err)
	}

	return writeJSON(stdout, result)
}

// getConfigPath returns the config path from LOCALSTORE_CONFIG or the default.
func getConfigPath() string {
	if path := os.Getenv("LOCALSTORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// app holds the wired service and its optional sinks.
type app struct {
	log    *logging.Logger
	svc    *store.Service
	mqtt   *mqtt.Client
	influx *influxdb.Client
}

// newApp connects the optional sinks, builds the service and then opens
// the readiness gate.
func newApp(cfg *config.Config, log *logging.Logger) (*app, error) {
	a := &app{log: log}

	sqlite := bridge.NewSQLite(bridge.Options{
		Dir:         cfg.Database.Dir,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	sqlite.SetLogger(log)

	opts := store.Options{
		Name:     cfg.Database.Name,
		Opener:   sqlite,
		Executor: sqlite,
		Logger:   log,
	}

	if cfg.MQTT.Enabled {
		client, err := mqtt.Connect(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("connecting to MQTT: %w", err)
		}
		client.SetLogger(log)
		a.mqtt = client
		opts.Observer = mqtt.NewChangePublisher(client)
		log.Debug("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	}

	if cfg.InfluxDB.Enabled {
		client, err := influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		client.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		a.influx = client
		opts.Recorder = influxdb.NewOperationRecorder(client)
		log.Debug("InfluxDB connected", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)
	}

	gate := readiness.NewGate()
	opts.Gate = gate

	svc, err := store.New(opts)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("creating store: %w", err)
	}
	a.svc = svc

	gate.Open()
	return a, nil
}

// close shuts down in reverse start order.
func (a *app) close() {
	if a.svc != nil {
		if err := a.svc.Close(); err != nil {
			a.log.Error("error closing store", "error", err)
		}
	}
	if a.influx != nil {
		if err := a.influx.Close(); err != nil {
			a.log.Error("error closing InfluxDB", "error", err)
		}
	}
	if a.mqtt != nil {
		if err := a.mqtt.Close(); err != nil {
			a.log.Error("error closing MQTT", "error", err)
		}
	}
}
