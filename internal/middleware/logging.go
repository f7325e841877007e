package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// responseRecorder remembers what a handler sent so the request can be
// logged once it is done. Websocket upgrades go through Hijack.
type responseRecorder struct {
	http.ResponseWriter
	status   int
	size     int
	upgraded bool
}

func (rr *responseRecorder) WriteHeader(status int) {
	if rr.status == 0 {
		rr.status = status
	}
	rr.ResponseWriter.WriteHeader(status)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	if rr.status == 0 {
		rr.status = http.StatusOK
	}
	n, err := rr.ResponseWriter.Write(b)
	rr.size += n
	return n, err
}

func (rr *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rr.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer cannot be hijacked")
	}
	rr.upgraded = true
	return hj.Hijack()
}

func (rr *responseRecorder) level() logrus.Level {
	switch {
	case rr.status >= http.StatusInternalServerError:
		return logrus.ErrorLevel
	case rr.status >= http.StatusBadRequest:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

func Logging(log logrus.FieldLogger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rr := &responseRecorder{ResponseWriter: w}

			next.ServeHTTP(rr, r)

			if rr.status == 0 && !rr.upgraded {
				rr.status = http.StatusOK
			}
			log.WithFields(logrus.Fields{
				"status":      rr.status,
				"bytes":       rr.size,
				"upgraded":    rr.upgraded,
				"remote_addr": r.RemoteAddr,
				"xff":         r.Header.Get("X-Forwarded-For"),
				"method":      r.Method,
				"uri":         r.URL.RequestURI(),
				"duration_ms": time.Since(start).Milliseconds(),
			}).Log(rr.level(), "handled request")
		})
	}
}
