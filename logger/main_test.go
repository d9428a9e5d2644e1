package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/rs/zerolog"
)

func newEngine(cfg Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SetLogger(cfg))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/health/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/maintenance", func(c *gin.Context) {
		c.Set("maintenance_reason", "manual")
		c.Status(http.StatusServiceUnavailable)
	})
	return r
}

func TestSetLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l := zerolog.New(buf).Level(zerolog.InfoLevel)
	r := newEngine(Config{Logger: &l, SkipPathRegexp: regexp.MustCompile(`^/health`)})

	tests := []struct {
		path   string
		logged bool
	}{
		{"/ok", false},
		{"/fail", true},
		{"/health/fail", false},
		{"/maintenance", false},
	}
	for _, test := range tests {
		buf.Reset()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, test.path, nil))
		assert.NotEqual(t, "", w.Header().Get("X-Request-Id"))
		assert.Equal(t, test.logged, buf.Len() > 0)
	}
}

func TestGetLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	buf := &bytes.Buffer{}
	l := zerolog.New(buf)
	c.Set("_log", l)
	l2 := GetLogger(c)
	l2.Info().Msg("from context")
	assert.Equal(t, true, bytes.Contains(buf.Bytes(), []byte("from context")))
}
