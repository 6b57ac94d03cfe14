package pkgrouter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/travelbuddy/gotravelbuddy/internal/pkg/pkgerror"
	"github.com/travelbuddy/gotravelbuddy/internal/pkg/pkguid"
)

// Handler is the shape every endpoint implements: return a payload to be
// rendered as JSON, or an error to be mapped to a status code.
type Handler func(ctx context.Context, r *http.Request) (any, error)

type Router struct {
	mux *mux.Router
	uid pkguid.StringID
}

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID returns the id assigned to the request, empty outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func NewRouter(uid pkguid.StringID) *Router {
	r := &Router{mux: mux.NewRouter(), uid: uid}
	r.mux.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found", Code: "NOT_FOUND"})
	})
	return r
}

func (r *Router) GET(path string, h Handler) {
	r.handle(http.MethodGet, path, h)
}

func (r *Router) POST(path string, h Handler) {
	r.handle(http.MethodPost, path, h)
}

func (r *Router) DELETE(path string, h Handler) {
	r.handle(http.MethodDelete, path, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) handle(method, path string, h Handler) {
	r.mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		requestID := r.uid.Generate()
		ctx := context.WithValue(req.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-Id", requestID)

		payload, err := h(ctx, req)
		status := http.StatusOK
		if err != nil {
			status = statusFromError(err)
			writeJSON(w, status, errorBody{Error: err.Error(), Code: codeLabel(pkgerror.CodeOf(err))})
		} else {
			writeJSON(w, status, payload)
		}

		slog.InfoContext(ctx, "http request",
			"request_id", requestID,
			"method", method,
			"path", req.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}).Methods(method)
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func statusFromError(err error) int {
	switch pkgerror.CodeOf(err) {
	case pkgerror.CodeInvalidInput:
		return http.StatusBadRequest
	case pkgerror.CodeNotFound:
		return http.StatusNotFound
	case pkgerror.CodeUnauthenticated:
		return http.StatusUnauthorized
	case pkgerror.CodeUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func codeLabel(code pkgerror.Code) string {
	switch code {
	case pkgerror.CodeInvalidInput:
		return "INVALID_INPUT"
	case pkgerror.CodeNotFound:
		return "NOT_FOUND"
	case pkgerror.CodeUnauthenticated:
		return "UNAUTHENTICATED"
	case pkgerror.CodeUpstreamUnavailable:
		return "UPSTREAM_UNAVAILABLE"
	case pkgerror.CodeInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
