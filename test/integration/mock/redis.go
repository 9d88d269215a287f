package mock

import (
	"fmt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis wraps a miniredis server and a client connected to it.
type Redis struct {
	Client *redis.Client
	server *miniredis.Miniredis
}

// NewRedis starts a miniredis server and connects a client to it.
func NewRedis() (*Redis, error) {
	server, err := miniredis.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start miniredis: %w", err)
	}

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	return &Redis{
		Client: client,
		server: server,
	}, nil
}

// HSet writes a hash into the underlying server.
func (r *Redis) HSet(key string, fields ...string) {
	r.server.HSet(key, fields...)
}

// FlushAll clears the keyspace.
func (r *Redis) FlushAll() {
	r.server.FlushAll()
}

// Close stops the client and the server.
func (r *Redis) Close() {
	_ = r.Client.Close()
	r.server.Close()
}
