package middleware

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"github.com/adscript/adscript-backend/pkg/cache"
	"github.com/gin-gonic/gin"
)

// reportCachePrefix namespaces cached report responses
const reportCachePrefix = "adscript:report:"

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// ResponseCache caches successful GET responses for ttl.
// Reads fall through to the handler whenever the cache misses or is unavailable.
func ResponseCache(cacheService cache.Service, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || cacheService == nil || !cacheService.IsAvailable() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := reportCachePrefix + cacheKey(c.Request.URL.Path, c.Request.URL.RawQuery)

		var cached cachedResponse
		if err := cacheService.Get(ctx, key, &cached); err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(cached.Status, cached.ContentType, []byte(cached.Body))
			c.Abort()
			return
		}

		w := &responseWriter{ResponseWriter: c.Writer, status: http.StatusOK}
		c.Writer = w
		c.Header("X-Cache", "MISS")

		c.Next()

		if w.status >= 200 && w.status < 300 {
			_ = cacheService.Set(ctx, key, cachedResponse{
				Status:      w.status,
				ContentType: w.Header().Get("Content-Type"),
				Body:        string(w.body),
			}, ttl)
		}
	}
}

func cacheKey(path, query string) string {
	raw := path
	if query != "" {
		raw += "?" + query
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

// responseWriter captures the response body
type responseWriter struct {
	gin.ResponseWriter
	body   []byte
	status int
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}
