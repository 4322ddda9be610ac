package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// pingTimeout bounds the reachability check so a down cache cannot
// stall startup.
const pingTimeout = 2 * time.Second

// Client owns the connection pool the signal cache reads through.
type Client struct {
	rdb *goredis.Client
}

func New(addr, password string, db int) *Client {
	return &Client{rdb: goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Ping reports whether the cache is reachable. Bootstrap treats a
// failure as "run without the cache", not as a startup error.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error { return c.rdb.Close() }
