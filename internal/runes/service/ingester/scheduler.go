// Package ingester follows the chain head and persists blocks and runes operations.
package ingester

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/protocol"
	"go.uber.org/zap"
)

// Config holds scheduler settings.
type Config struct {
	Network      model.Network
	StartHeight  uint64
	BatchSize    uint64
	PollInterval time.Duration
}

// Service runs the catch-up and polling loop over a single cursor.
type Service struct {
	logger         *zap.Logger
	network        model.Network
	startHeight    uint64
	batchSize      uint64
	pollInterval   time.Duration
	errorSleep     time.Duration
	pendingLimit   int
	repo           Repository
	source         Source
	metrics        Metrics
	retrier        Retrier
	blockProcessor BlockProcessor
	sleep          func(context.Context, time.Duration) error
	blockSignal    <-chan struct{}
}

// NewService wires the scheduler with a block processor built from repo, source and publisher.
// publisher may be nil; blockSignal may be nil to rely on polling alone.
func NewService(
	cfg Config,
	repo Repository,
	source Source,
	publisher Publisher,
	retrier Retrier,
	metrics Metrics,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*Service, error) {
	if metrics == nil {
		return nil, errors.New("indexer metrics is required")
	}
	if retrier == nil {
		return nil, errors.New("retrier is required")
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	logger = logger.With(zap.String("network", string(cfg.Network)))

	return &Service{
		logger:       logger,
		network:      cfg.Network,
		startHeight:  cfg.StartHeight,
		batchSize:    cfg.BatchSize,
		pollInterval: cfg.PollInterval,
		errorSleep:   errorSleepDuration,
		pendingLimit: maxPendingHeights,
		repo:         repo,
		source:       source,
		metrics:      metrics,
		retrier:      retrier,
		sleep:        clock.SleepWithContext,
		blockSignal:  blockSignal,
		blockProcessor: &blockProcessor{
			source:    source,
			repo:      repo,
			publisher: publisher,
			decode:    protocol.Decode,
			network:   cfg.Network,
			metrics:   metrics,
			logger:    logger.Named("blockProcessor"),
		},
	}, nil
}

// Run resumes the cursor from storage and ingests until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	var cursor Cursor
	for {
		var err error
		if cursor, err = s.resume(ctx); err == nil {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("resume cursor failed, backing off", zap.Error(err), zap.Duration("sleep", s.errorSleep))
		if sleepErr := s.sleep(ctx, s.errorSleep); sleepErr != nil {
			return sleepErr
		}
	}
	s.logger.Info("cursor resumed", zap.Uint64("next", cursor.Next), zap.Int("pending", len(cursor.Pending)))

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		next, err := s.iterate(ctx, cursor)
		cursor = next
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.errorSleep))
			if sleepErr := s.sleep(ctx, s.errorSleep); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

// resume derives the starting cursor: one past the highest stored block, or
// the configured start height on an empty store. Unprocessed or absent heights
// between the start height and the stored maximum are queued as pending.
func (s *Service) resume(ctx context.Context) (Cursor, error) {
	maxHeight, ok, err := s.repo.MaxBlockHeight(ctx, s.network)
	if err != nil {
		return Cursor{}, fmt.Errorf("max block height: %w", err)
	}
	if !ok || maxHeight < s.startHeight {
		return Cursor{Next: s.startHeight}, nil
	}

	missing, err := s.repo.MissingBlockHeights(ctx, s.network, s.startHeight, maxHeight, missingHeightLimit)
	if err != nil {
		return Cursor{}, fmt.Errorf("missing block heights: %w", err)
	}
	return s.queuePending(Cursor{Next: maxHeight + 1}, missing...), nil
}

// iterate performs one scheduler step and returns the updated cursor.
func (s *Service) iterate(ctx context.Context, cursor Cursor) (Cursor, error) {
	cursor = s.retryPending(ctx, cursor)
	if err := ctx.Err(); err != nil {
		return cursor, err
	}

	head, err := s.source.CurrentHeight(ctx)
	if err != nil {
		return cursor, fmt.Errorf("current height: %w", err)
	}

	heights, ok := cursor.batch(head, s.batchSize)
	if !ok {
		s.metrics.SetCursor(cursor.Next, len(cursor.Pending))
		s.logger.Debug("caught up with head, waiting",
			zap.Uint64("cursor", cursor.Next),
			zap.Uint64("head", head),
			zap.Duration("poll_interval", s.pollInterval))
		return cursor, s.wait(ctx, s.pollInterval)
	}

	s.logger.Info("processing batch",
		zap.Uint64("from", heights[0]),
		zap.Uint64("to", heights[len(heights)-1]),
		zap.Uint64("head", head))

	started := time.Now()
	var failed []uint64
	var batchErr error
	for _, height := range heights {
		if err := ctx.Err(); err != nil {
			cursor.Next = height
			return s.queuePending(cursor, failed...), err
		}
		if err := s.processHeight(ctx, height); err != nil {
			if ctx.Err() != nil {
				cursor.Next = height
				return s.queuePending(cursor, failed...), ctx.Err()
			}
			s.logger.Error("block failed, queued for retry", zap.Uint64("height", height), zap.Error(err))
			failed = append(failed, height)
			batchErr = err
		}
	}
	s.metrics.ObserveProcessBatch(batchErr, len(heights), started)

	cursor.Next = heights[len(heights)-1] + 1
	cursor = s.queuePending(cursor, failed...)
	s.metrics.SetCursor(cursor.Next, len(cursor.Pending))
	return cursor, nil
}

// queuePending adds heights to the retry set. Heights beyond the set's capacity
// are only found again by the startup gap scan.
func (s *Service) queuePending(cursor Cursor, heights ...uint64) Cursor {
	cursor, dropped := cursor.withPending(s.pendingLimit, heights...)
	if len(dropped) > 0 {
		s.logger.Warn("pending set full, dropping failed heights until restart",
			zap.Int("dropped", len(dropped)),
			zap.Uint64("lowest", dropped[0]),
			zap.Uint64("highest", dropped[len(dropped)-1]),
			zap.Int("limit", s.pendingLimit))
		s.metrics.ObservePendingDropped(len(dropped))
	}
	return cursor
}

// retryPending makes one attempt round over pending heights and keeps those still failing.
func (s *Service) retryPending(ctx context.Context, cursor Cursor) Cursor {
	if len(cursor.Pending) == 0 {
		return cursor
	}
	remaining := make([]uint64, 0, len(cursor.Pending))
	for i, height := range cursor.Pending {
		if ctx.Err() != nil {
			remaining = append(remaining, cursor.Pending[i:]...)
			break
		}
		if err := s.processHeight(ctx, height); err != nil {
			s.logger.Warn("pending block still failing", zap.Uint64("height", height), zap.Error(err))
			remaining = append(remaining, height)
			continue
		}
		s.logger.Info("pending block recovered", zap.Uint64("height", height))
	}
	return Cursor{Next: cursor.Next, Pending: remaining}
}

func (s *Service) processHeight(ctx context.Context, height uint64) error {
	return s.retrier.Do(ctx, fmt.Sprintf("process block %d", height), func(ctx context.Context) error {
		return s.blockProcessor.Process(ctx, height)
	})
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}
	return clock.Wait(ctx, d, s.blockSignal)
}
