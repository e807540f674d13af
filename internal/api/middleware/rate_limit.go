package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"daily-checkin/pkg/redis"
	"daily-checkin/pkg/response"
)

const msgTooManyRequests = "请求过于频繁，请稍后再试"

// RateLimit 速率限制中间件
// limit: 窗口内允许的最大请求数
// window: 窗口时长
// rdb 不为 nil 时使用 Redis 滑动窗口；为 nil 或 Redis 出错时退回进程内令牌桶
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	local := newLocalLimiter(limit, window)

	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s:%s", c.ClientIP(), c.Request.Method, c.FullPath())

		if rdb != nil {
			allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
			if err == nil {
				if !allowed {
					response.TooManyRequests(c, msgTooManyRequests)
					c.Abort()
					return
				}
				c.Next()
				return
			}
			_ = c.Error(err)
		}

		if !local.allow(key) {
			response.TooManyRequests(c, msgTooManyRequests)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ── 进程内令牌桶 ──

const localLimiterTTL = 30 * time.Minute

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

type localLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	every     rate.Limit
	burst     int
	lastSweep time.Time
}

func newLocalLimiter(limit int, window time.Duration) *localLimiter {
	return &localLimiter{
		entries:   make(map[string]*limiterEntry),
		every:     rate.Every(window / time.Duration(limit)),
		burst:     limit,
		lastSweep: time.Now(),
	}
}

func (l *localLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > localLimiterTTL {
		for k, e := range l.entries {
			if now.Sub(e.lastUse) > localLimiterTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.entries[key] = e
	}
	e.lastUse = now
	return e.limiter.AllowN(now, 1)
}
