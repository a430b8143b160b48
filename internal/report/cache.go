package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

const defaultCompareTTL = time.Hour

// CompareCache keeps recent comparison results in Redis so re-viewing the
// same pair of reports does not re-spend embedding calls. All operations are
// soft: a miss, a broken payload, or a Redis outage just means recomputing.
// A nil *CompareCache disables caching entirely.
type CompareCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewCompareCache builds a cache around an existing Redis client.
func NewCompareCache(client *redis.Client, ttl time.Duration, logger *logging.Logger) *CompareCache {
	if client == nil {
		panic("report: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultCompareTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CompareCache{redis: client, ttl: ttl, logger: logger}
}

// Get returns a cached result for the text pair, if any.
func (c *CompareCache) Get(ctx context.Context, aiText, doctorText string) (*ComparisonResult, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, compareKey(aiText, doctorText)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("comparison cache read failed", "error", err)
		}
		return nil, false
	}

	var result ComparisonResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("comparison cache entry corrupt", "error", err)
		return nil, false
	}
	return &result, true
}

// Set stores a result for the text pair.
func (c *CompareCache) Set(ctx context.Context, aiText, doctorText string, result *ComparisonResult) {
	if c == nil || result == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("comparison cache marshal failed", "error", err)
		return
	}
	if err := c.redis.Set(ctx, compareKey(aiText, doctorText), data, c.ttl).Err(); err != nil {
		c.logger.Warn("comparison cache write failed", "error", err)
	}
}

func compareKey(aiText, doctorText string) string {
	h := sha256.New()
	h.Write([]byte(aiText))
	h.Write([]byte{0})
	h.Write([]byte(doctorText))
	return "compare:" + hex.EncodeToString(h.Sum(nil))
}
