package cache

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one cached retrieval result: the document ids that answered
// a query plus access bookkeeping for eviction and stats.
type Entry struct {
	Id           string
	Query        string
	QueryHash    string
	DocumentIds  []string
	Score        float64
	Metadata     map[string]interface{}
	HitCount     int
	LastAccessed time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Stats is a point-in-time snapshot of cache effectiveness. A miss that
// filled an entry counts as one query, so hitRate = hits / (hits + fills).
type Stats struct {
	Size         int     `json:"size"`
	MaxSize      int     `json:"max_size"`
	HitRate      float64 `json:"hit_rate"`
	TotalHits    int     `json:"total_hits"`
	TotalQueries int     `json:"total_queries"`
}

// ResultCache memoizes retrieval results keyed by the canonical query
// hash. All methods are safe for concurrent use, and none return
// errors, because a cache problem must never fail a request.
type ResultCache struct {
	mu      sync.Mutex
	entries map[string]*Entry
	maxSize int
	ttl     time.Duration
	logger  *log.Logger
}

func NewResultCache(maxSize int, ttl time.Duration, logger *log.Logger) *ResultCache {
	return &ResultCache{
		entries: make(map[string]*Entry),
		maxSize: maxSize,
		ttl:     ttl,
		logger:  logger,
	}
}

// Get returns the live entry for the query, bumping its hit count and
// recency. Expired entries are deleted on sight.
func (c *ResultCache) Get(query string) *Entry {
	queryHash := HashQuery(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[queryHash]
	if !ok {
		return nil
	}

	if time.Now().After(entry.ExpiresAt) {
		delete(c.entries, queryHash)
		return nil
	}

	entry.HitCount++
	entry.LastAccessed = time.Now()

	c.logger.Printf("[CACHE] Hit for query %q (hits: %d)", query, entry.HitCount)
	snapshot := *entry
	return &snapshot
}

// Set stores a retrieval result, evicting the least recently accessed
// entry when full.
func (c *ResultCache) Set(query string, documentIds []string, score float64, metadata map[string]interface{}) {
	queryHash := HashQuery(query)
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Refreshing an existing key must not evict an unrelated entry.
	if _, exists := c.entries[queryHash]; !exists && len(c.entries) >= c.maxSize {
		c.evictLeastUsed()
	}

	c.entries[queryHash] = &Entry{
		Id:           uuid.NewString(),
		Query:        query,
		QueryHash:    queryHash,
		DocumentIds:  documentIds,
		Score:        score,
		Metadata:     metadata,
		HitCount:     0,
		LastAccessed: now,
		CreatedAt:    now,
		ExpiresAt:    now.Add(c.ttl),
	}
}

// evictLeastUsed scans for the oldest lastAccessed entry. Linear, which
// is fine at the configured sizes (<= 10k entries).
func (c *ResultCache) evictLeastUsed() {
	var leastUsedKey string
	var leastUsed *Entry

	for key, entry := range c.entries {
		if leastUsed == nil || entry.LastAccessed.Before(leastUsed.LastAccessed) {
			leastUsed = entry
			leastUsedKey = key
		}
	}

	if leastUsedKey != "" {
		delete(c.entries, leastUsedKey)
		c.logger.Printf("[CACHE] Evicted entry for %q", leastUsed.Query)
	}
}

// FindSimilar returns a live entry whose query's word set overlaps the
// given query with Jaccard similarity at or above threshold. When
// several entries qualify the one returned is unspecified.
func (c *ResultCache) FindSimilar(query string, threshold float64) *Entry {
	normalized := strings.ToLower(strings.TrimSpace(query))
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			continue
		}
		similarity := jaccardSimilarity(normalized, strings.ToLower(strings.TrimSpace(entry.Query)))
		if similarity >= threshold {
			c.logger.Printf("[CACHE] Similar cached query %q (similarity: %.2f)", entry.Query, similarity)
			snapshot := *entry
			return &snapshot
		}
	}
	return nil
}

// Cleanup removes expired entries and reports how many were dropped.
func (c *ResultCache) Cleanup() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	cleaned := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			cleaned++
		}
	}
	return cleaned
}

func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	totalHits := 0
	totalQueries := 0
	for _, entry := range c.entries {
		totalHits += entry.HitCount
		totalQueries += entry.HitCount + 1 // the fill itself counts as a query
	}

	stats := Stats{
		Size:         len(c.entries),
		MaxSize:      c.maxSize,
		TotalHits:    totalHits,
		TotalQueries: totalQueries,
	}
	if totalQueries > 0 {
		stats.HitRate = float64(totalHits) / float64(totalQueries)
	}
	return stats
}

func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
}

// jaccardSimilarity compares the word sets of two strings.
func jaccardSimilarity(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	intersection := 0
	for word := range setA {
		if setB[word] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Split(s, " ") {
		set[word] = true
	}
	return set
}
