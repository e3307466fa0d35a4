package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	httpCachePrefix     = "qm:api_cache:"
	defaultHTTPCacheTTL = 15 * time.Second
	httpCacheMaxBody    = 1 << 20 // 1 MiB
)

// cachedResponse is the redis payload for a cached GET. Body is
// base64-encoded by encoding/json.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType,omitempty"`
	Body        []byte `json:"body"`
}

// cacheWriter tees the response body into a buffer so it can be stored after
// the handler runs. Bodies past the size cap are passed through uncached.
type cacheWriter struct {
	gin.ResponseWriter
	body     []byte
	overflow bool
}

func (w *cacheWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *cacheWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *cacheWriter) capture(data []byte) {
	if w.overflow || len(data) == 0 {
		return
	}
	if len(w.body)+len(data) > httpCacheMaxBody {
		w.overflow = true
		return
	}
	w.body = append(w.body, data...)
}

// HTTPCache caches successful anonymous GET responses in redis for a short
// window. Authenticated requests bypass the cache in both directions: their
// responses are neither served from it nor stored in it.
func HTTPCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = defaultHTTPCacheTTL
	}
	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method != http.MethodGet || IsAuthenticated(c) {
			c.Next()
			return
		}

		key := httpCachePrefix + c.Request.URL.RequestURI()
		ctx := c.Request.Context()

		if raw, err := rdb.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
			var payload cachedResponse
			if json.Unmarshal(raw, &payload) == nil && payload.Status > 0 {
				contentType := payload.ContentType
				if contentType == "" {
					contentType = "application/json; charset=utf-8"
				}
				c.Data(payload.Status, contentType, payload.Body)
				c.Abort()
				return
			}
		}

		writer := &cacheWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if c.Writer.Status() != http.StatusOK || writer.overflow || len(writer.body) == 0 {
			return
		}

		payload := cachedResponse{
			Status:      http.StatusOK,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        writer.body,
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return
		}
		rdb.Set(ctx, key, raw, ttl)
	}
}
