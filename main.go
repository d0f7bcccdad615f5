package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/envelope-zero/payoff/internal/cache"
	v1 "github.com/envelope-zero/payoff/internal/controllers/v1"
	"github.com/envelope-zero/payoff/internal/models"
	"github.com/envelope-zero/payoff/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//	@title			Envelope Zero Payoff
//	@description	Debt payoff planning for Envelope Zero
//	@BasePath		/api
func main() {
	// A missing .env file is fine, the environment is used as it is
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "could not load .env: %v\n", err)
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		log.Fatal().Msg("environment variable API_URL must be set")
	}

	url, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Msg("environment variable API_URL must be a valid URL")
	}

	// Create data directory
	dataDir, ok := os.LookupEnv("DATA_DIR")
	if !ok {
		dataDir = "data"
	}

	err = os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = models.Connect(filepath.Join(dataDir, "payoff.db"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	closeCache := configureCache()
	defer closeCache()

	r, teardown, err := router.Config(url)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(r.Group(url.Path))

	port, ok := os.LookupEnv("PORT")
	if !ok {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("listen: %s\n", err)
		}
	}()
	log.Info().Str("addr", srv.Addr).Msg("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Server is shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shut down")
	}

	log.Info().Msg("Server exited")
}

// configureCache sets up the cache for simulation results if REDIS_ADDR is set.
// The returned function closes the connection.
func configureCache() func() {
	ttl := time.Hour
	if s, ok := os.LookupEnv("SIMULATION_CACHE_TTL"); ok {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			log.Fatal().Str("SIMULATION_CACHE_TTL", s).Msg("the simulation cache TTL must be a duration, e.g. 30m")
		}
		ttl = parsed
	}

	addr, ok := os.LookupEnv("REDIS_ADDR")
	if !ok {
		log.Info().Msg("REDIS_ADDR is not set, simulation results are not cached")
		return func() {}
	}

	redis := cache.NewRedis(addr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redis.Ping(ctx); err != nil {
		log.Warn().Str("addr", addr).Err(err).Msg("Redis is not reachable, simulation results are cached once it is")
	}

	v1.UseCache(redis, ttl)
	log.Info().Str("addr", addr).Dur("ttl", ttl).Msg("Simulation cache")

	return func() {
		if err := redis.Close(); err != nil {
			log.Error().Err(err).Msg("Closing the simulation cache failed")
		}
	}
}
