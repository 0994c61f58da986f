package lobby

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
}

func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

// key layout: dz:player:{playerID} -> lobbyID, with a TTL so abandoned
// sessions cannot wedge a player out of matchmaking forever.
func playerKey(playerID string) string {
	return fmt.Sprintf("dz:player:%s", playerID)
}

func (r *redisRepo) Assign(ctx context.Context, playerID, lobbyID string, ttlSeconds int) error {
	return r.rdb.Set(ctx, playerKey(playerID), lobbyID, time.Duration(ttlSeconds)*time.Second).Err()
}

func (r *redisRepo) Release(ctx context.Context, playerID string) error {
	return r.rdb.Del(ctx, playerKey(playerID)).Err()
}

func (r *redisRepo) LobbyOf(ctx context.Context, playerID string) (string, error) {
	val, err := r.rdb.Get(ctx, playerKey(playerID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}
