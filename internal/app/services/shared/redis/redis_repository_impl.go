package redis

import (
	"context"
	"konsulin-assessment-engine/internal/app/contracts"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var compareAndDeleteScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then
	return 0
end
if current == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return -1
`)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return nil
}

// Set stores value as JSON. Strings and byte slices are stored as is.
func (r *redisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	var payload interface{}
	switch v := value.(type) {
	case string, []byte:
		payload = v
	default:
		jsonValue, err := json.Marshal(value)
		if err != nil {
			return exceptions.ErrCannotMarshalJSON(err)
		}
		payload = jsonValue
	}

	err := r.client.Set(ctx, key, payload, exp).Err()
	if err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

// Get returns an empty string without error when the key does not exist.
func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrRedisGet(err)
	}
	return data, nil
}

// TrySetNX sets key only when it does not exist yet and reports whether it did.
func (r *redisRepository) TrySetNX(ctx context.Context, key, value string, exp time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, value, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return ok, nil
}

func (r *redisRepository) CompareAndDelete(ctx context.Context, key, value string) (bool, bool, error) {
	result, err := compareAndDeleteScript.Run(ctx, r.client, []string{key}, value).Int64()
	if err != nil {
		return false, false, exceptions.ErrRedisDelete(err)
	}
	switch {
	case result > 0:
		return true, true, nil
	case result < 0:
		return false, true, nil
	default:
		return false, false, nil
	}
}
