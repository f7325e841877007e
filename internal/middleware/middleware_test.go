package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/config"
)

func TestWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("inner"), mark("outer"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestLogging(t *testing.T) {
	log, hook := test.NewNullLogger()

	tests := []struct {
		name   string
		status int
		level  logrus.Level
	}{
		{"ok", http.StatusOK, logrus.InfoLevel},
		{"client error", http.StatusTeapot, logrus.WarnLevel},
		{"server error", http.StatusBadGateway, logrus.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("hello"))
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/game?rows=3", nil))

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, "handled request", entry.Message)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.status, entry.Data["status"])
			assert.Equal(t, 5, entry.Data["bytes"])
			assert.Equal(t, "/v1/game?rows=3", entry.Data["uri"])
			assert.Equal(t, false, entry.Data["upgraded"])
		})
	}
}

func TestLoggingImplicitStatus(t *testing.T) {
	log, hook := test.NewNullLogger()
	for _, handler := range []http.HandlerFunc{
		func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) },
		func(w http.ResponseWriter, r *http.Request) {},
	} {
		Logging(log)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, http.StatusOK, entry.Data["status"])
	}
}

func TestCors(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"wildcard", []string{"*"}, "http://a.example", "http://a.example"},
		{"listed", []string{"http://a.example"}, "http://a.example", "http://a.example"},
		{"unlisted", []string{"http://a.example"}, "http://b.example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Cors(config.CorsConfig{AllowedOrigins: tt.allowed})(ok)
			r := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
			r.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
