package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ruta593/fleet-console/internal/config"
)

// tokenBucketScript refills and takes one token atomically.
// KEYS[1] bucket; ARGV now_ms, capacity, refill, interval_ms, ttl_s.
// Returns {allowed, remaining, retry_ms}.
var tokenBucketScript = redis.NewScript(`
local now, cap, refill, every, ttl =
  tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3]), tonumber(ARGV[4]), tonumber(ARGV[5])
local st = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens, ts = tonumber(st[1]), tonumber(st[2])
if tokens == nil or ts == nil then
  tokens, ts = cap, now
end
if every > 0 then
  local n = math.floor(math.max(0, now - ts) / every)
  if n > 0 then
    tokens = math.min(cap, tokens + n * refill)
    ts = ts + n * every
  end
end
local allowed, retry = 0, 0
if tokens > 0 then
  allowed, tokens = 1, tokens - 1
else
  retry = math.max(0, every - (now - ts))
end
redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', ts)
redis.call('EXPIRE', KEYS[1], ttl)
return {allowed, tokens, retry}
`)

type bucketResult struct {
	allowed   bool
	remaining int64
	retry     time.Duration
}

// parseBucketResult decodes the script reply.  ok is false for any shape
// other than three integers.
func parseBucketResult(v interface{}) (bucketResult, bool) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 3 {
		return bucketResult{}, false
	}
	var n [3]int64
	for i, x := range arr {
		if n[i], ok = x.(int64); !ok {
			return bucketResult{}, false
		}
	}
	return bucketResult{allowed: n[0] == 1, remaining: n[1], retry: time.Duration(n[2]) * time.Millisecond}, true
}

// NewTokenBucket limits requests per key (see buildRateKey) with a token
// bucket kept in Redis, so every API instance draws from the same bucket.
// It must run after JWTAuth to key by operator.  Redis errors fail open.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := buildRateKey(cfg, c)
			reply, err := tokenBucketScript.Run(c.Request().Context(), rdb, []string{key},
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL/time.Second),
			).Result()
			if err != nil {
				if cfg.Debug {
					c.Logger().Warnf("[ratelimit] %s: %v", key, err)
				}
				return next(c)
			}
			res, ok := parseBucketResult(reply)
			if !ok {
				c.Logger().Warnf("[ratelimit] %s: unexpected reply %#v", key, reply)
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.remaining, 10))
			if res.allowed {
				return next(c)
			}

			secs := int(math.Ceil(res.retry.Seconds()))
			h.Set("Retry-After", strconv.Itoa(secs))
			if cfg.Debug {
				c.Logger().Infof("[ratelimit] blocked %s for %s", key, res.retry)
			}
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error":       "too_many_requests",
				"retry_after": secs,
			})
		}
	}
}

// buildRateKey joins the prefix with the parts named by the strategy.
// Routes use the registered path so /trips/1 and /trips/2 share a bucket.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	route := c.Request().Method + " " + c.Path()
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}

	parts := []string{cfg.Prefix}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "user":
		parts = append(parts, "user", userID(c))
	case "route":
		parts = append(parts, "route", route)
	case "coop":
		parts = append(parts, "coop", cooperativeKey(c))
	case "coop_route":
		parts = append(parts, "coop", cooperativeKey(c), "route", route)
	default: // "user_route"
		parts = append(parts, "user", userID(c), "route", route)
	}
	return strings.Join(parts, ":")
}
