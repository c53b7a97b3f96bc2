package memory

import (
	"context"
	"encoding/json"
	"strings"

	"sales-assistant-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const fastResponseHashKey = "fast_responses"

// FastResponseRepositoryRedis keeps the curated responses in a redis
// hash so multiple instances share one catalogue.
type FastResponseRepositoryRedis struct {
	client *redis.Client
}

func NewFastResponseRepositoryRedis(client *redis.Client) FastResponseRepository {
	return &FastResponseRepositoryRedis{
		client: client,
	}
}

func (r *FastResponseRepositoryRedis) Get(ctx context.Context, query string) (*store.FastResponse, bool) {
	normalized := strings.ToLower(strings.TrimSpace(query))

	raw, err := r.client.HGet(ctx, fastResponseHashKey, normalized).Result()
	if err == nil {
		if resp := decodeFastResponse(raw); resp != nil {
			return resp, true
		}
	}

	all, err := r.client.HGetAll(ctx, fastResponseHashKey).Result()
	if err != nil {
		return nil, false
	}
	for key, raw := range all {
		if isQueryMatch(normalized, key) {
			if resp := decodeFastResponse(raw); resp != nil {
				return resp, true
			}
		}
	}

	return nil, false
}

func (r *FastResponseRepositoryRedis) Add(ctx context.Context, key string, response *store.FastResponse) error {
	raw, err := json.Marshal(response)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, fastResponseHashKey, strings.ToLower(key), raw).Err()
}

func (r *FastResponseRepositoryRedis) Keys(ctx context.Context) ([]string, error) {
	return r.client.HKeys(ctx, fastResponseHashKey).Result()
}

func decodeFastResponse(raw string) *store.FastResponse {
	var resp store.FastResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}
	return &resp
}
