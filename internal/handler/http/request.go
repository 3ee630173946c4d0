package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/office-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/office-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/office-backend-go/internal/handler/http/response"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Debug("request decode error", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

func callerOf(w http.ResponseWriter, r *http.Request) (user.Caller, bool) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return user.Caller{}, false
	}
	return caller, true
}

// queryPtr returns a pointer to the query value, or nil when absent.
func queryPtr(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// pageParams reads page and limit. Unparseable values become zero so the
// filter's Validate applies defaults.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
