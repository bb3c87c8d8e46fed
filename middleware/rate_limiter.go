package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
	}
	go l.cleanup()
	return l
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (l *ipLimiter) cleanup() {
	for range time.Tick(10 * time.Minute) {
		l.mu.Lock()
		for ip, v := range l.visitors {
			if time.Since(v.lastSeen) > 30*time.Minute {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit allows `max` requests per `window` per client IP, replying 429
// with the given message once the budget is spent.
func RateLimit(max int, window time.Duration, message string) gin.HandlerFunc {
	limiter := newIPLimiter(rate.Every(window/time.Duration(max)), max)
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
			return
		}
		c.Next()
	}
}

// Limits mirror the public site's abuse budgets.
func AuthRateLimit() gin.HandlerFunc {
	return RateLimit(5, 15*time.Minute, "Too many login attempts, please try again after 15 minutes")
}

func QuotationRateLimit() gin.HandlerFunc {
	return RateLimit(5, time.Hour, "Too many quotation requests, please try again after an hour")
}

func UploadRateLimit() gin.HandlerFunc {
	return RateLimit(10, time.Hour, "Too many uploads, please try again after an hour")
}

func UnsplashRateLimit() gin.HandlerFunc {
	return RateLimit(100, 15*time.Minute, "Too many requests from this IP. Please try again in 15 minutes.")
}
