package publisher

import (
	"context"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// StreamClient is the subset of redis.Cmdable used for publishing.
	StreamClient interface {
		XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	}

	Metrics interface {
		ObservePublish(err error, events int)
	}
)
