// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// The glueup-circle-bridge service.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/middleware"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/log"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/utils"
)

const (
	defaultListenPort = "8080"
	// gracefulShutdownSeconds should be lower than the pod or liveness
	// probe's terminationGracePeriodSeconds.
	gracefulShutdownSeconds = 25
)

// main parses optional flags, wires the sync services, and serves the HTTP API.
func main() {
	// Optional .env file for local development; real environment wins.
	_ = godotenv.Load()

	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", envOrDefault("PORT", defaultListenPort), "listen port")
	var bind = flag.String("bind", envOrDefault("BIND", "*"), "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	if *debug {
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("LOG_ADD_SOURCE", "true")
	}
	log.InitStructureLogConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, err := utils.SetupOTelSDK(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "error setting up OpenTelemetry SDK", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			slog.Error("error shutting down OpenTelemetry SDK", "error", err)
		}
	}()

	bridge, err := initBridge(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "error initializing bridge services", "error", err)
		os.Exit(1)
	}
	defer bridge.close()

	mux := http.NewServeMux()
	registerRoutes(mux, bridge)

	var handler http.Handler = mux
	handler = middleware.WebhookBodyCaptureMiddleware()(handler)
	handler = requestIDMiddleware()(handler)
	handler = otelhttp.NewHandler(handler, constants.ServiceName)

	var addr string
	if *bind == "*" {
		addr = ":" + *port
	} else {
		addr = *bind + ":" + *port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}

	// Support graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.InfoContext(ctx, "http server listening", "addr", addr)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http listener error", "error", err)
			os.Exit(1)
		}
	}()

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done
	slog.InfoContext(ctx, "beginning graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownSeconds*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "error shutting down http server", "error", err)
	}

	cancel()
	slog.Info("graceful shutdown complete")
}

// requestIDMiddleware tags each request with an ID for log correlation,
// propagating the caller's X-Request-Id when present.
func requestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(constants.RequestIDHeader, requestID)
			ctx := log.AppendCtx(r.Context(), slog.String("request_id", requestID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
