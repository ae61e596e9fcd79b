package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/repository/postgres"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/transport"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var version = "dev"

var config struct {
	Addr    string        `long:"addr" env:"RUNES_API_ADDR" description:"http listen addr" default:":8000"`
	DSN     string        `long:"dsn" env:"RUNES_API_DSN" description:"storage DSN, clickhouse:// or postgres://" required:"true"`
	Network model.Network `long:"network" env:"RUNES_API_NETWORK" description:"network name" choice:"mainnet" choice:"testnet" choice:"regtest" choice:"signet" default:"mainnet"`
}

type store interface {
	transport.Reader
	Close() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	repo, err := openRepository(ctx, config.DSN)
	if err != nil {
		logger.Fatal("Open repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("Close repository", zap.Error(err))
		}
	}()

	handler, err := transport.NewHandler(repo, config.Network, version, logger.Named("api"))
	if err != nil {
		logger.Fatal("Init handler", zap.Error(err))
	}

	router := handler.Router()
	router.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(router),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr), zap.String("network", string(config.Network)))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}

func openRepository(ctx context.Context, dsn string) (store, error) {
	switch {
	case strings.HasPrefix(dsn, "clickhouse://"), strings.HasPrefix(dsn, "tcp://"):
		return clickhouse.NewRepository(dsn, metrics.NewRepository("clickhouse"))
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.NewRepository(ctx, dsn, metrics.NewRepository("postgres"))
	default:
		if parsed, err := url.Parse(dsn); err == nil {
			dsn = parsed.Redacted()
		}
		return nil, fmt.Errorf("unsupported dsn scheme in %q", dsn)
	}
}
