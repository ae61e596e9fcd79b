package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-zeromq/zmq4"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/clock"
	"go.uber.org/zap"
)

const (
	hashBlockTopic    = "hashblock"
	reconnectInterval = 5 * time.Second
)

type blockSubscriber struct {
	addr      string
	logger    *zap.Logger
	dial      func(ctx context.Context, addr string) (zmq4.Socket, error)
	retryWait time.Duration
	notify    chan struct{}
}

// startBlockSignal subscribes to node hashblock notifications and emits a coalesced
// wake-up per new block. A nil channel is returned when addr is empty.
func startBlockSignal(ctx context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}

	s := &blockSubscriber{
		addr:      addr,
		logger:    logger,
		dial:      dialHashBlock,
		retryWait: reconnectInterval,
		notify:    make(chan struct{}, 1),
	}

	sock, err := s.dial(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("connect zmq: %w", err)
	}

	go s.run(ctx, sock)
	return s.notify, nil
}

// run owns sock and every socket it reconnects to; the current one is closed on return.
func (s *blockSubscriber) run(ctx context.Context, sock zmq4.Socket) {
	defer func() {
		if sock != nil {
			_ = sock.Close()
		}
	}()

	for ctx.Err() == nil {
		msg, err := sock.Recv()
		if err != nil {
			_ = sock.Close()
			sock = nil
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("zmq recv failed, reconnecting", zap.Error(err))
			if sock = s.reconnect(ctx); sock == nil {
				return
			}
			continue
		}
		if len(msg.Frames) < 2 {
			s.logger.Warn("skip malformed zmq message", zap.Int("parts", len(msg.Frames)))
			continue
		}

		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
}

// reconnect dials until it succeeds; nil means ctx ended first.
func (s *blockSubscriber) reconnect(ctx context.Context) zmq4.Socket {
	for ctx.Err() == nil {
		if err := clock.SleepWithContext(ctx, s.retryWait); err != nil {
			return nil
		}

		sock, err := s.dial(ctx, s.addr)
		if err != nil {
			s.logger.Warn("zmq reconnect failed", zap.Error(err))
			continue
		}
		return sock
	}
	return nil
}

func dialHashBlock(ctx context.Context, addr string) (zmq4.Socket, error) {
	sub := zmq4.NewSub(ctx)

	if err := sub.Dial(addr); err != nil {
		_ = sub.Close()
		return nil, err
	}
	if err := sub.SetOption(zmq4.OptionSubscribe, hashBlockTopic); err != nil {
		_ = sub.Close()
		return nil, err
	}
	return sub, nil
}
