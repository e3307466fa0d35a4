package middleware

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheWriterCapturesBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	w := &cacheWriter{ResponseWriter: c.Writer}
	_, err := w.Write([]byte(`{"ok":1,`))
	require.NoError(t, err)
	_, err = w.WriteString(`"data":"pong"}`)
	require.NoError(t, err)

	assert.Equal(t, `{"ok":1,"data":"pong"}`, string(w.body))
	assert.Equal(t, `{"ok":1,"data":"pong"}`, rec.Body.String())
	assert.False(t, w.overflow)
}

func TestCacheWriterOverflowStopsCapture(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	w := &cacheWriter{ResponseWriter: c.Writer}
	_, err := w.Write(bytes.Repeat([]byte("a"), httpCacheMaxBody+1))
	require.NoError(t, err)

	// The oversized response still reaches the client but is not cached.
	assert.True(t, w.overflow)
	assert.Empty(t, w.body)
	assert.Equal(t, httpCacheMaxBody+1, rec.Body.Len())
}
