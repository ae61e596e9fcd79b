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

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/publisher"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/repository/postgres"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/service/ingester"
	"github.com/goodnatureofminers/blockinsight7000-runes/pkg/retry"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type config struct {
	RPCURL        string        `long:"rpc-url" env:"RUNES_INDEXER_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string        `long:"rpc-user" env:"RUNES_INDEXER_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword   string        `long:"rpc-password" env:"RUNES_INDEXER_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCTimeout    time.Duration `long:"rpc-timeout" env:"RUNES_INDEXER_RPC_TIMEOUT" description:"timeout for a single RPC call" default:"30s"`
	Network       model.Network `long:"network" env:"RUNES_INDEXER_NETWORK" description:"network name" choice:"mainnet" choice:"testnet" choice:"regtest" choice:"signet" default:"mainnet"`
	StartHeight   uint64        `long:"start-height" env:"RUNES_INDEXER_START_HEIGHT" description:"first height to index when storage is empty" default:"840000"`
	BatchSize     uint64        `long:"batch-size" env:"RUNES_INDEXER_BATCH_SIZE" description:"heights per catch-up batch" default:"10"`
	PollInterval  time.Duration `long:"poll-interval" env:"RUNES_INDEXER_POLL_INTERVAL" description:"wait between head checks when caught up" default:"10s"`
	BlockRetries  int           `long:"block-retries" env:"RUNES_INDEXER_BLOCK_RETRIES" description:"attempts per block before it is queued as pending" default:"3"`
	DSN           string        `long:"dsn" env:"RUNES_INDEXER_DSN" description:"storage DSN, clickhouse:// or postgres://" required:"true"`
	RedisAddr     string        `long:"redis-addr" env:"RUNES_INDEXER_REDIS_ADDR" description:"redis address for publishing token operations, empty disables"`
	RedisPassword string        `long:"redis-password" env:"RUNES_INDEXER_REDIS_PASSWORD" description:"redis password"`
	RedisStream   string        `long:"redis-stream" env:"RUNES_INDEXER_REDIS_STREAM" description:"redis stream name, defaults to runes:<network>:operations"`
	RedisMaxLen   int64         `long:"redis-max-len" env:"RUNES_INDEXER_REDIS_MAX_LEN" description:"approximate stream length cap" default:"100000"`
	ZMQAddr       string        `long:"zmq-addr" env:"RUNES_INDEXER_ZMQ_ADDR" description:"node zmq hashblock endpoint, empty disables"`
	MetricsAddr   string        `long:"metrics-addr" env:"RUNES_INDEXER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

// store is implemented by every storage backend.
type store interface {
	ingester.Repository
	Close() error
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}
	if cfg.BatchSize == 0 {
		logger.Fatal("batch size must be positive")
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("runes indexer failed", zap.Error(err))
	}
	logger.Info("runes indexer stopped")
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := openRepository(ctx, cfg.DSN)
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close repository", zap.Error(err))
		}
	}()

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()

	decoder, err := bitcoin.NewScriptDecoder(cfg.Network)
	if err != nil {
		return fmt.Errorf("init script decoder: %w", err)
	}
	source := bitcoin.NewSource(
		bitcoin.NewOutputConverter(decoder, cfg.Network),
		bitcoin.NewRPCClient(rpcClient, metrics.NewRPCClient(cfg.Network), cfg.RPCTimeout),
		cfg.Network,
	)

	var pub ingester.Publisher
	if cfg.RedisAddr != "" {
		stream, closeRedis, err := newStreamPublisher(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("init publisher: %w", err)
		}
		defer closeRedis()
		stream.Start(ctx)
		defer stream.Stop()
		pub = stream
	}

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger.Named("zmq"))
	if err != nil {
		return fmt.Errorf("init block signal: %w", err)
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.BlockRetries

	svc, err := ingester.NewService(
		ingester.Config{
			Network:      cfg.Network,
			StartHeight:  cfg.StartHeight,
			BatchSize:    cfg.BatchSize,
			PollInterval: cfg.PollInterval,
		},
		repo,
		source,
		pub,
		retry.New(retryCfg, logger.Named("retry")),
		metrics.NewIndexer(cfg.Network),
		logger.Named("indexer"),
		blockSignal,
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func openRepository(ctx context.Context, dsn string) (store, error) {
	switch {
	case strings.HasPrefix(dsn, "clickhouse://"), strings.HasPrefix(dsn, "tcp://"):
		return clickhouse.NewRepository(dsn, metrics.NewRepository("clickhouse"))
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.NewRepository(ctx, dsn, metrics.NewRepository("postgres"))
	default:
		return nil, fmt.Errorf("unsupported dsn scheme in %q", redactDSN(dsn))
	}
}

func newStreamPublisher(ctx context.Context, cfg config, logger *zap.Logger) (*publisher.Stream, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Warn("close redis client", zap.Error(err))
		}
	}

	if err := client.Ping(ctx).Err(); err != nil {
		closeClient()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	stream, err := publisher.NewStream(client, publisher.Config{
		Network: cfg.Network,
		Stream:  cfg.RedisStream,
		MaxLen:  cfg.RedisMaxLen,
	}, metrics.NewPublisher(cfg.Network), logger.Named("publisher"))
	if err != nil {
		closeClient()
		return nil, nil, err
	}
	return stream, closeClient, nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}

func redactDSN(dsn string) string {
	parsed, err := url.Parse(dsn)
	if err != nil {
		return "<malformed>"
	}
	return parsed.Redacted()
}
