package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Pinger is the minimal interface for a database pool capable of Ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BrokerPinger is the minimal interface for the event producer's health probe.
type BrokerPinger interface {
	Ping(ctx context.Context) error
}

// BuildReadinessChecks returns three readiness checks: db, redis and the
// event broker. The broker check is nil when events are disabled so the
// readiness handler skips it.
func BuildReadinessChecks(pool Pinger, rdb *redis.Client, broker BrokerPinger) (
	func(ctx context.Context) error,
	func(ctx context.Context) error,
	func(ctx context.Context) error,
) {
	dbCheck := func(ctx context.Context) error {
		if pool == nil {
			return fmt.Errorf("db not configured")
		}
		return pool.Ping(ctx)
	}
	redisCheck := func(ctx context.Context) error {
		if rdb == nil {
			return fmt.Errorf("redis not configured")
		}
		return rdb.Ping(ctx).Err()
	}
	var brokerCheck func(ctx context.Context) error
	if broker != nil {
		brokerCheck = func(ctx context.Context) error { return broker.Ping(ctx) }
	}
	return dbCheck, redisCheck, brokerCheck
}
