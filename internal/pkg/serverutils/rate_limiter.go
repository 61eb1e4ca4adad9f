package serverutils

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"studynotes-be/internal/config"
	"studynotes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// tokenBucketScript refills in whole intervals and takes one token per call.
// Returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + (intervals * refill_tokens))
		last_refill = last_refill + (intervals * interval_ms)
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// NewRateLimiter limits requests per client IP and route with a Redis token
// bucket. Without Redis, or when disabled, it passes everything through. Redis
// failures fail open.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client, log logger.ILogger) fiber.Handler {
	if !cfg.Enabled || rdb == nil {
		return func(ctx *fiber.Ctx) error { return ctx.Next() }
	}

	return func(ctx *fiber.Ctx) error {
		key := fmt.Sprintf("%s:ip:%s:route:%s %s", cfg.Prefix, ctx.IP(), ctx.Method(), ctx.Route().Path)

		vals, err := tokenBucketScript.Run(ctx.UserContext(), rdb, []string{key},
			time.Now().UnixMilli(),
			cfg.Capacity,
			cfg.RefillTokens,
			cfg.RefillInterval.Milliseconds(),
			int64(cfg.TTL/time.Second),
		).Int64Slice()
		if err != nil || len(vals) != 3 {
			log.Warn("RateLimiter", "rate limit check skipped", map[string]interface{}{"key": key, "error": err})
			return ctx.Next()
		}

		ctx.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
		ctx.Set("X-RateLimit-Remaining", strconv.FormatInt(vals[1], 10))

		if vals[0] != 1 {
			secs := int(math.Ceil(float64(vals[2]) / 1000.0))
			ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(ErrorResponse(fiber.StatusTooManyRequests, "too many requests, please retry later"))
		}
		return ctx.Next()
	}
}
