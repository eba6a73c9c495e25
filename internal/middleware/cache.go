package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alucardavid/samplemed-blog/internal/cache"
	"github.com/alucardavid/samplemed-blog/internal/metrics"
)

// CachePage serves GET responses from the shared store, keyed by the
// full request URI so every filter/page combination caches separately.
// Only 200 responses are stored; entries live until the TTL or until a
// write flushes the store.
func CachePage(store *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if body, ok := store.Get(key); ok {
			metrics.CacheHit()
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}
		metrics.CacheMiss()

		writer := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if writer.Status() == http.StatusOK {
			store.Set(key, writer.body.Bytes())
		}
	}
}

// captureWriter tees the response body so a successful render can be
// stored after the handler runs.
type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
