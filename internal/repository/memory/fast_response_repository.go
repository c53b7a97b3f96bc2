package memory

import (
	"context"
	"strings"

	"sales-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// FastResponseRepository holds pre-computed answers keyed by a template
// phrase. Lookups tolerate partial matches so close variants of a common
// question still hit.
type FastResponseRepository interface {
	Get(ctx context.Context, query string) (*store.FastResponse, bool)
	Add(ctx context.Context, key string, response *store.FastResponse) error
	Keys(ctx context.Context) ([]string, error)
}

type FastResponseRepositoryImpl struct {
	cache *cache.Cache
}

func NewFastResponseRepository() FastResponseRepository {
	// Fast responses are curated, not derived, so they never expire.
	c := cache.New(cache.NoExpiration, 0)
	return &FastResponseRepositoryImpl{
		cache: c,
	}
}

func (r *FastResponseRepositoryImpl) Get(ctx context.Context, query string) (*store.FastResponse, bool) {
	normalized := strings.ToLower(strings.TrimSpace(query))

	if x, found := r.cache.Get(normalized); found {
		return x.(*store.FastResponse), true
	}

	// Partial matches for flexibility.
	for key, item := range r.cache.Items() {
		if isQueryMatch(normalized, key) {
			return item.Object.(*store.FastResponse), true
		}
	}

	return nil, false
}

func (r *FastResponseRepositoryImpl) Add(ctx context.Context, key string, response *store.FastResponse) error {
	r.cache.Set(strings.ToLower(key), response, cache.NoExpiration)
	return nil
}

func (r *FastResponseRepositoryImpl) Keys(ctx context.Context) ([]string, error) {
	items := r.cache.Items()
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	return keys, nil
}

// isQueryMatch reports whether the query shares at least half of the
// template key's words (substring match in either direction).
func isQueryMatch(query, templateKey string) bool {
	queryWords := strings.Split(query, " ")
	keyWords := strings.Split(templateKey, " ")

	matches := 0
	for _, keyWord := range keyWords {
		for _, queryWord := range queryWords {
			if strings.Contains(queryWord, keyWord) || strings.Contains(keyWord, queryWord) {
				matches++
				break
			}
		}
	}

	return matches >= (len(keyWords)+1)/2
}
