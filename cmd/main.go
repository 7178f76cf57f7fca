package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sslab_simulator/internal/config"
	"sslab_simulator/internal/handlers"
	"sslab_simulator/internal/logger"
	"sslab_simulator/internal/publisher"
	"sslab_simulator/internal/repository"
	"sslab_simulator/internal/repository/db"
	"sslab_simulator/internal/server"
	"sslab_simulator/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title        SSLAB Device Simulator API
// @version      1.0
// @description  Simulated laboratory control panel: status, devices, environment, safety and control actions.
// @BasePath     /
func main() {
	// load config.yml (optional) + SSLAB_* env
	loader := config.NewLoader("configs", ".")
	cfg, err := loader.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)
	if f := loader.File(); f != "" {
		log.Infow("config loaded", "file", f)
	}

	// open event log DB
	conn, dialect, err := openDB(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to init event database", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close event database", "err", cerr)
		}
	}()

	// optional MQTT telemetry
	var pub service.Publisher
	var mq *publisher.MQTT
	if cfg.MQTT.Enabled {
		mq, err = connectMQTT(cfg.MQTT, log)
		if err != nil {
			log.Fatalw("failed to connect MQTT broker", "err", err, "broker", cfg.MQTT.Broker)
		}
		defer mq.Close()
		pub = mq
	}

	// wire dependencies
	repos := repository.NewRepository(conn, dialect)
	services := service.NewService(repos, service.Options{
		Random:       newRandom(cfg.Simulator.Seed),
		ControlDelay: cfg.Control.Delay,
		Publisher:    pub,
		Log:          log,
	})
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if mq != nil {
		go services.Telemetry.Run(ctx, cfg.MQTT.PublishInterval)
	}

	watchConfig(loader, services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	logBanner(log, cfg)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the control event log database using configuration.
func openDB(cfg config.DBConfig, log *logger.Logger) (*sql.DB, db.Dialect, error) {
	dialect, err := db.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", err
	}
	if dialect == db.SQLite && cfg.DSN == "" {
		log.Infow("db.dsn not set; control events kept in memory")
	}
	conn, err := db.InitDB(dialect, cfg.DSN)
	if err != nil {
		return nil, "", err
	}
	return conn, dialect, nil
}

func connectMQTT(cfg config.MQTTConfig, log *logger.Logger) (*publisher.MQTT, error) {
	mq, err := publisher.NewMQTT(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := mq.Connect(); err != nil {
		return nil, err
	}
	return mq, nil
}

func newRandom(seed uint64) service.Random {
	if seed == 0 {
		return service.GlobalRandom()
	}
	return service.NewSeededRandom(seed)
}

// watchConfig applies control.delay and log.level edits without a restart.
func watchConfig(loader *config.Loader, services *service.Service, log *logger.Logger) {
	watching := loader.Watch(func(cfg *config.Config, err error) {
		if err != nil {
			log.Warnw("config reload rejected", "err", err)
			return
		}
		services.Control.SetDelay(cfg.Control.Delay)
		log.SetLevel(cfg.Log.Level)
		log.Infow("config reloaded", "control_delay", cfg.Control.Delay, "log_level", log.Level())
	})
	if watching {
		log.Infow("watching config file for changes", "file", loader.File())
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

func logBanner(log *logger.Logger, cfg *config.Config) {
	port := cfg.Port
	if port == "" {
		port = server.DefaultPort
	}
	log.Infow("device simulator started",
		"port", port,
		"control_delay", cfg.Control.Delay,
		"mqtt", cfg.MQTT.Enabled,
	)
	for _, ep := range []string{
		"GET  /api/status",
		"GET  /api/devices",
		"GET  /api/environment",
		"GET  /api/safety",
		"POST /api/control",
		"GET  /api/events",
		"GET  /health",
		"GET  /ws",
		"GET  /swagger/index.html",
	} {
		log.Infow("endpoint", "route", ep)
	}
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
