package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// X-Request-ID middleware
// Struct for reqIDKey to prevent it from being overwritten
type requestIDKey struct{}

// Function for creating a new request ID as a hex string
func newReqID() string {
	buf := make([]byte, 16)

	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(buf)
}

func storeReqID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func reqIDFromCtx(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey{})
	s, ok := v.(string)
	return s, ok
}

// reqID ensures every request has an ID:
// - uses incoming X-Request-ID if present
// - otherwise generates one
// - sets the response header so clients can see it
func reqID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")

		if len(strings.TrimSpace(id)) == 0 || len(id) > 128 {
			id = newReqID()
		}

		w.Header().Set("X-Request-ID", id)
		r = r.WithContext(storeReqID(r.Context(), id))

		next.ServeHTTP(w, r)
	})
}

// Logger middleware
// Struct for http response metadata
type resMeta struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *resMeta) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *resMeta) Write(p []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(p)
	rw.bytes += n
	return n, err
}

// Logs request metadata as a JSON line on stdout
func logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &resMeta{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		id, _ := reqIDFromCtx(r.Context())
		rec := map[string]any{
			"ts":         time.Now().Format(time.RFC3339Nano),
			"level":      "info",
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     wrapped.status,
			"bytes":      wrapped.bytes,
			"latency_ms": time.Since(start).Milliseconds(),
			"remote_ip":  r.RemoteAddr,
			"user_agent": r.UserAgent(),
		}
		_ = json.NewEncoder(os.Stdout).Encode(rec)
	})
}

// recoverer keeps a handler panic from taking the server down
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				id, _ := reqIDFromCtx(r.Context())
				_ = json.NewEncoder(os.Stderr).Encode(map[string]any{
					"ts":         time.Now().Format(time.RFC3339Nano),
					"level":      "error",
					"request_id": id,
					"panic":      rec,
				})
				writeError(w, http.StatusInternalServerError, "internal_error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
