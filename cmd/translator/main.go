// translator: webhook service for live two-party phone call translation.
// Receives telephony events, tracks per-call language sessions, and
// drives LLM detection/translation plus speech delivery.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/virio-ai/go-translator/internal/config"
	"github.com/virio-ai/go-translator/internal/log"
	"github.com/virio-ai/go-translator/pkg/oracle"
	"github.com/virio-ai/go-translator/pkg/session"
	"github.com/virio-ai/go-translator/pkg/telephony"
	"github.com/virio-ai/go-translator/pkg/tracker"
	"github.com/virio-ai/go-translator/pkg/web"
)

var version = "1.0.0"

func main() {
	port := pflag.String("port", "", "HTTP listen port (overrides PORT)")
	debug := pflag.Bool("debug", false, "enable debug logging")
	logLevel := pflag.String("log-level", "info", "log level: debug, info, warn, error")
	pflag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if *debug {
		*logLevel = "debug"
	}
	log.Init(*logLevel)

	listenPort := config.Port()
	if *port != "" {
		listenPort = *port
	}

	oracleClient, err := oracle.NewClient(
		oracle.WithAPIKey(config.OracleAPIKey()),
		oracle.WithBaseURL(config.OracleBaseURL()),
		oracle.WithModel(config.OracleModel()),
		oracle.WithLogger(log.L()),
	)
	if err != nil {
		log.Error("create oracle client", "error", err)
		os.Exit(1)
	}
	defer oracleClient.Close()

	telephonyOpts := []telephony.Option{
		telephony.WithAPIKey(config.TelephonyAPIKey()),
		telephony.WithLogger(log.L()),
	}
	if url := config.TelephonyBaseURL(); url != "" {
		telephonyOpts = append(telephonyOpts, telephony.WithBaseURL(url))
	}
	if id := config.PhoneNumberID(); id != "" {
		telephonyOpts = append(telephonyOpts, telephony.WithPhoneNumberID(id))
	}
	speaker, err := telephony.NewClient(telephonyOpts...)
	if err != nil {
		log.Error("create telephony client", "error", err)
		os.Exit(1)
	}

	store := session.NewStore(log.L())
	tr := tracker.New(store, oracleClient, speaker, log.L())
	server := web.NewServer(web.Config{
		Port:    listenPort,
		Version: version,
		Debug:   *debug,
		Logger:  log.L(),
	}, tr, store)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go store.StartSweeper(sweepCtx, config.SweepInterval(), config.MaxIdle())

	go func() {
		log.Info("starting server",
			"version", version,
			"port", listenPort,
			"webhook", fmt.Sprintf("http://localhost:%s/vapi/events", listenPort),
		)
		if err := server.Start(); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
