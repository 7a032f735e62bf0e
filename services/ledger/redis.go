package ledger

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "known_ids:"

// RedisLedger implements Ledger using one Redis set per subscriber
type RedisLedger struct {
	client *redis.Client
}

// NewRedisLedger creates a new Redis-backed ledger
func NewRedisLedger(addr string, db int) *RedisLedger {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisLedger{client: client}
}

// Load returns the subscriber's known item ids
func (l *RedisLedger) Load(ctx context.Context, chatID int64) (map[string]struct{}, error) {
	members, err := l.client.SMembers(ctx, key(chatID)).Result()
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(members))
	for _, m := range members {
		ids[m] = struct{}{}
	}
	return ids, nil
}

// Replace overwrites the subscriber's known item ids wholesale. The delete
// and re-add run in one pipeline so a concurrent Load never observes an
// empty set mid-replace.
func (l *RedisLedger) Replace(ctx context.Context, chatID int64, ids map[string]struct{}) error {
	members := make([]interface{}, 0, len(ids))
	for id := range ids {
		members = append(members, id)
	}

	pipe := l.client.TxPipeline()
	pipe.Del(ctx, key(chatID))
	if len(members) > 0 {
		pipe.SAdd(ctx, key(chatID), members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the Redis connection
func (l *RedisLedger) Close() error {
	return l.client.Close()
}

func key(chatID int64) string {
	return keyPrefix + strconv.FormatInt(chatID, 10)
}
