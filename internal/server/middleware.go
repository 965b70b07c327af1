package server

import (
	"errors"
	"log"
	"math"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 10 << 20

func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				log.Printf("[ERROR] panic serving %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, r, stack)
				body := gin.H{"error": "Internal Server Error"}
				if s.cfg.Development() {
					body["stack"] = string(stack)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, body)
			}
		}()
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[INFO] %s %s %d %v %s", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start).Round(time.Millisecond), c.ClientIP())
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("X-DNS-Prefetch-Control", "off")
		c.Next()
	}
}

func bodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		d := s.limiter.Allow(c.ClientIP())
		if d.Limit > 0 {
			h := c.Writer.Header()
			h.Set("RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("RateLimit-Reset", strconv.Itoa(seconds(d.Reset)))
		}
		if !d.Allowed {
			retry := seconds(d.Reset)
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too many requests from this IP, please try again later.",
				"retryAfter": retry,
			})
			return
		}
		c.Next()
	}
}

func seconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// bindError reports a failed JSON bind, distinguishing oversized bodies.
func bindError(c *gin.Context, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":   "Payload too large",
			"message": "Request body must not exceed 10MB",
		})
		return
	}
	badRequest(c, "Invalid input", "Request body must be valid JSON")
}

func badRequest(c *gin.Context, title, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": title, "message": message})
}
