package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/jusunglee/bahn-go/api/handlers"
	"github.com/jusunglee/bahn-go/internal/logging"
	"github.com/jusunglee/bahn-go/pkg/bahn"
	"github.com/rs/zerolog/log"

	_ "time/tzdata"
)

func main() {
	var (
		port         = flag.String("port", "8080", "Server port")
		configFile   = flag.String("config", "", "YAML config file")
		stationsFile = flag.String("stations-file", "", "Stations protobuf snapshot")
		timezone     = flag.String("timezone", "Europe/Berlin", "Timezone for plan dates")
	)
	flag.Parse()

	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")
	logging.Setup()

	config := bahn.ConfigFromEnv()
	if *configFile != "" {
		var err error
		config, err = bahn.LoadConfigFile(*configFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load config")
		}
	}
	if *stationsFile != "" {
		config.StationsFile = *stationsFile
	}

	// Only station search and plans need credentials
	if err := config.Validate(); err != nil {
		log.Warn().Err(err).Msg("Upstream requests will fail")
	}

	location, err := time.LoadLocation(*timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", *timezone).Msg("Unknown timezone")
	}

	client := bahn.New(config)

	// Create HTTP server
	r := mux.NewRouter()
	h := handlers.NewHandler(client, location)
	h.RegisterRoutes(r)

	// Add middleware
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: config.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Info().Str("port", *port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		logger := log.With().Str("request_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Dur("duration", time.Since(start)).
			Msg("Request")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
