package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisMock *Redis

// Redis wraps an in-memory Redis server shared by every scenario.
type Redis struct {
	Client *redis.Client
	server *miniredis.Miniredis
}

func NewRedis() *Redis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}

		redisMock = &Redis{
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
			server: server,
		}
	})

	return redisMock
}

func (r *Redis) Clear() {
	r.server.FlushAll()
}

// Keys lists the keys matching a glob pattern.
func (r *Redis) Keys(pattern string) ([]string, error) {
	return r.Client.Keys(context.Background(), pattern).Result()
}
