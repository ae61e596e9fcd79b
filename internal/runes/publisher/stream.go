// Package publisher forwards decoded runes operations to a Redis stream.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/goodnatureofminers/blockinsight7000-runes/pkg/batcher"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// DefaultStreamMaxLen caps stream entries; trimming is approximate.
	DefaultStreamMaxLen int64 = 100_000

	flushSize        = 500
	flushInterval    = time.Second
	flushesPerSecond = 50
)

// Config controls the target stream.
type Config struct {
	Network model.Network
	// Stream defaults to runes:<network>:operations.
	Stream string
	MaxLen int64
}

// Stream publishes token operations with XADD. Delivery is best effort: entries
// are buffered and failures are logged and counted, never returned to the indexer.
type Stream struct {
	client  StreamClient
	stream  string
	maxLen  int64
	metrics Metrics
	logger  *zap.Logger
	buffer  *batcher.Batcher[model.TokenOperation]
}

// NewStream constructs a Stream publisher. Call Start before Publish.
func NewStream(client StreamClient, cfg Config, metrics Metrics, logger *zap.Logger) (*Stream, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if metrics == nil {
		return nil, errors.New("publisher metrics is required")
	}
	stream := cfg.Stream
	if stream == "" {
		stream = fmt.Sprintf("runes:%s:operations", cfg.Network)
	}
	s := &Stream{
		client:  client,
		stream:  stream,
		maxLen:  cfg.MaxLen,
		metrics: metrics,
		logger:  logger.With(zap.String("stream", stream)),
	}
	s.buffer = batcher.New(logger.Named("streamBatcher"), batcher.Config{
		FlushSize:        flushSize,
		FlushInterval:    flushInterval,
		FlushesPerSecond: flushesPerSecond,
	}, s.flush)
	return s, nil
}

// Start begins background delivery.
func (s *Stream) Start(ctx context.Context) {
	s.buffer.Start(ctx)
}

// Stop delivers buffered entries and stops background delivery.
func (s *Stream) Stop() {
	s.buffer.Stop()
}

// Publish queues ops for delivery.
func (s *Stream) Publish(ctx context.Context, ops []model.TokenOperation) error {
	for _, op := range ops {
		if err := s.buffer.Add(ctx, op); err != nil {
			return fmt.Errorf("queue operation %s: %w", op.TxID, err)
		}
	}
	return nil
}

func (s *Stream) flush(ctx context.Context, ops []model.TokenOperation) error {
	var errs []error
	delivered := 0
	for _, op := range ops {
		if err := s.add(ctx, op); err != nil {
			errs = append(errs, err)
			continue
		}
		delivered++
	}
	s.metrics.ObservePublish(nil, delivered)
	if len(errs) > 0 {
		s.metrics.ObservePublish(errs[0], len(errs))
		return errors.Join(errs...)
	}
	return nil
}

func (s *Stream) add(ctx context.Context, op model.TokenOperation) error {
	payload, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("encode operation %s: %w", op.TxID, err)
	}
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"txid":         op.TxID,
			"operation":    string(op.Kind),
			"block_height": strconv.FormatUint(op.BlockHeight, 10),
			"payload":      string(payload),
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", op.TxID, err)
	}
	return nil
}
