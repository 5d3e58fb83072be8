package middleware

import (
	"net/http"
	"time"
)

// SimulatedLatency delays each response by a fixed duration, reproducing the
// network-feel of the original demo UI. The handler (and any mutation it
// performs) completes before the delay, so this never affects correctness.
func SimulatedLatency(delay time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if delay <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := newBufferedResponse()
			next.ServeHTTP(recorder, r)

			select {
			case <-time.After(delay):
			case <-r.Context().Done():
			}

			recorder.flushTo(w)
		})
	}
}

// bufferedResponse holds the full response until the delay elapses.
type bufferedResponse struct {
	header     http.Header
	body       []byte
	statusCode int
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(code int) { b.statusCode = code }

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.body = append(b.body, p...)
	return len(p), nil
}

func (b *bufferedResponse) flushTo(w http.ResponseWriter) {
	for k, vals := range b.header {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(b.statusCode)
	w.Write(b.body)
}
