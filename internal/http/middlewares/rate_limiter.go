package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles a derived key over a fixed window. With a redis
// client it counts in redis so the limit holds across replicas; without
// one it falls back to per-process buckets.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	rdb     *redis.Client
	clients map[string]*clientBucket
}

type clientBucket struct {
	count     int
	windowEnd time.Time
}

func NewRateLimiter(limit int, window time.Duration, rdb *redis.Client) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		rdb:     rdb,
		clients: make(map[string]*clientBucket),
	}
}

// Middleware enforces the limit for a derived key.
func (rl *RateLimiter) Middleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			// fallback to IP if key cannot be derived
			key = clientIP(c)
		}

		ok, retryAfter := rl.allow(c, key)

		if !ok {
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"msg": "Too many requests. Please try again shortly.",
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(c *gin.Context, key string) (bool, int) {
	if rl.rdb != nil {
		ok, retryAfter, err := rl.allowRedis(c, key)
		if err == nil {
			return ok, retryAfter
		}
		// redis unreachable: degrade to local buckets rather than blocking logins
	}

	return rl.allowLocal(key)
}

func (rl *RateLimiter) allowRedis(c *gin.Context, key string) (bool, int, error) {
	ctx := c.Request.Context()
	k := "ratelimit:" + key

	n, err := rl.rdb.Incr(ctx, k).Result()

	if err != nil {
		return false, 0, err
	}

	if n == 1 {
		_ = rl.rdb.Expire(ctx, k, rl.window).Err()
	}

	if n > int64(rl.limit) {
		ttl, err := rl.rdb.TTL(ctx, k).Result()

		retryAfter := int(rl.window.Seconds())
		if err == nil && ttl > 0 {
			retryAfter = int(ttl.Seconds())
		}

		return false, retryAfter, nil
	}

	return true, 0, nil
}

func (rl *RateLimiter) allowLocal(key string) (bool, int) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[key]

	if !ok || now.After(b.windowEnd) {
		rl.clients[key] = &clientBucket{
			count:     1,
			windowEnd: now.Add(rl.window),
		}

		return true, 0
	}

	if b.count >= rl.limit {
		retryAfter := int(time.Until(b.windowEnd).Seconds())

		if retryAfter < 0 {
			retryAfter = 0
		}

		return false, retryAfter
	}

	b.count++
	return true, 0
}

// for unauthenticated endpoints: rate limit by IP
func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

func clientIP(c *gin.Context) string {
	ip := c.ClientIP()

	// Normalize away a port if one is present
	host, _, err := net.SplitHostPort(ip)

	if err == nil && host != "" {
		return host
	}

	return ip
}
