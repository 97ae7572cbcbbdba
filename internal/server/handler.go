// Package server exposes the qxad front end over HTTP. The same handler is
// served over TCP and, optionally, HTTP/3.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/qxad-lang/qxad/internal/cli"
	"github.com/qxad-lang/qxad/internal/frontend"
)

// MaxSourceBytes bounds the request body
const MaxSourceBytes = 1 << 20

// RequestIDHeader carries the per-request id in responses
const RequestIDHeader = "X-Request-Id"

// Handler serves the tokenize and parse endpoints
type Handler struct {
	logger    *cli.Logger
	peDefault bool
	mux       *http.ServeMux
}

// NewHandler creates the HTTP handler. peDefault is the initial PE mode when
// a request does not set ?pe=.
func NewHandler(logger *cli.Logger, peDefault bool) *Handler {
	h := &Handler{logger: logger, peDefault: peDefault, mux: http.NewServeMux()}
	h.mux.HandleFunc("POST /v1/tokens", h.handleTokens)
	h.mux.HandleFunc("POST /v1/ast", h.handleAST)
	h.mux.HandleFunc("GET /healthz", h.handleHealth)
	return h
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// ServeHTTP tags the request with an id and logs it
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set(RequestIDHeader, id)

	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(rec, r)
	h.logger.Info("%s %s %s %d %s %s", id, r.Method, r.URL.Path, rec.status, r.Proto, time.Since(start))
}

// TokensResponse is the body of a successful /v1/tokens call
type TokensResponse struct {
	Tokens []frontend.TokenView `json:"tokens"`
}

func (h *Handler) handleTokens(w http.ResponseWriter, r *http.Request) {
	src, opts, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, TokensResponse{Tokens: frontend.TokenViews(frontend.Tokenize(src, opts))})
}

func (h *Handler) handleAST(w http.ResponseWriter, r *http.Request) {
	src, opts, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	program, err := frontend.Parse(src, opts)
	if err != nil {
		h.logger.Debug("parse failed: %v", err)
		writeJSON(w, http.StatusUnprocessableEntity, frontend.NewErrorView(err))
		return
	}
	writeJSON(w, http.StatusOK, frontend.NewProgramView(program))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": cli.Version})
}

func (h *Handler) readRequest(w http.ResponseWriter, r *http.Request) (string, frontend.Options, bool) {
	opts := frontend.DefaultOptions()
	opts.PE = h.peDefault
	opts.Filename = r.URL.Query().Get("filename")
	if v := r.URL.Query().Get("pe"); v != "" {
		pe, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, frontend.ErrorView{Error: "invalid pe parameter: " + v})
			return "", opts, false
		}
		opts.PE = pe
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxSourceBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, frontend.ErrorView{Error: "source exceeds 1 MiB"})
		} else {
			writeJSON(w, http.StatusBadRequest, frontend.ErrorView{Error: err.Error()})
		}
		return "", opts, false
	}
	return string(body), opts, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
