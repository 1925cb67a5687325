package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/justinas/alice"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/config"
	"github.com/domino14/classic_crypto/internal/modelstore"
	"github.com/domino14/classic_crypto/internal/solvelog"
	"github.com/domino14/classic_crypto/internal/solverserver"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-config")
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug || strings.ToLower(cfg.LogLevel) == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var models modelstore.Source
	if cfg.ModelDBPath != "" {
		store, err := modelstore.OpenSQLite(cfg.ModelDBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ModelDBPath).Msg("opening-model-db")
		}
		defer store.Close()
		models = store
	} else {
		models = &modelstore.Dir{Path: cfg.DataPath}
	}

	server := solverserver.NewServer(cfg, models, nil)
	if cfg.DBConnURI != "" {
		if err := solvelog.Migrate(cfg.DBMigrationsPath, cfg.DBConnURI); err != nil {
			log.Fatal().Err(err).Msg("migrating-solve-log")
		}
		journal, err := solvelog.Connect(context.Background(), cfg.DBConnURI)
		if err != nil {
			log.Fatal().Err(err).Msg("connecting-solve-log")
		}
		defer journal.Close()
		server.Journal = journal
	}

	var opts []connect.HandlerOption
	if cfg.SecretKey != "" {
		opts = append(opts, connect.WithInterceptors(NewAuthInterceptor([]byte(cfg.SecretKey))))
	} else {
		log.Warn().Msg("no secret key; solver is unauthenticated")
	}
	mux := http.NewServeMux()
	server.Register(mux, opts...)

	chain := alice.New(
		hlog.NewHandler(log.Logger),
		hlog.RequestIDHandler("req_id", "X-Request-Id"),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("path", r.URL.Path).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		}),
	)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: chain.Then(mux),
	}
	idleConnsClosed := make(chan struct{})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("got quit signal...")
		ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)

		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Msgf("HTTP server Shutdown: %v", err)
		}
		cancel()
		close(idleConnsClosed)
	}()

	log.Info().Str("addr", cfg.ListenAddr).Msg("solver-listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("")
	}
	<-idleConnsClosed
	log.Info().Msg("server gracefully shutting down")
}
