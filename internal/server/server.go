// Package server exposes the calculation facade over HTTP as a thin JSON
// layer. Calculation responses are cached by request hash since identical
// inputs always produce identical results.
package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/maplerates/mortgage-engine/internal/cache"
	"github.com/maplerates/mortgage-engine/pkg/engine"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	facade         *engine.Facade
	cache          cache.Repository
	cacheTTL       time.Duration
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler serving the calculator API.
func NewHandler(logger *zap.Logger, facade *engine.Facade, cacheRepo cache.Repository, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if facade == nil {
		facade = engine.New(logger)
	}
	if cacheRepo == nil {
		cacheRepo = cache.NewMemory()
	}
	if cfg == nil {
		cfg = defaultConfig()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		facade:         facade,
		cache:          cacheRepo,
		cacheTTL:       cfg.ResponseCacheTTL(),
		maxRequestSize: cfg.RequestSizeBytes(),
		version:        trimmedVersion,
	}

	r := chi.NewRouter()
	r.Get("/healthz", h.handleHealth)
	r.Get("/api/version", h.handleVersion)
	r.Get("/api/jurisdictions", h.handleJurisdictions)
	r.Post("/api/calculate/{kind}", h.handleCalculate)
	return r
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleJurisdictions(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, h.facade.Jurisdictions())
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	kind := engine.Kind(chi.URLParam(r, "kind"))

	if h.maxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err))
		return
	}

	var req engine.Request
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	// The URL segment, not the body, decides the calculator.
	req.Kind = kind

	key := cacheKey(kind, body)
	if cached, ok := h.cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, cached)
		return
	}

	result := h.facade.Calculate(req)

	payload, err := json.Marshal(result)
	if err != nil {
		h.logger.Error("failed to marshal calculation result",
			zap.String("op", "server.handleCalculate"),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}

	status := http.StatusOK
	if result.OK() {
		if err := h.cache.Set(r.Context(), key, string(payload), h.cacheTTL); err != nil {
			h.logger.Warn("failed to cache calculation result",
				zap.String("op", "server.handleCalculate"),
				zap.Error(err),
			)
		}
	} else {
		status = http.StatusUnprocessableEntity
	}

	h.logger.Debug("calculation served",
		zap.String("op", "server.handleCalculate"),
		zap.String("kind", string(kind)),
		zap.Bool("ok", result.OK()),
		zap.Duration("duration", time.Since(start)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func cacheKey(kind engine.Kind, body []byte) string {
	sum := sha256.Sum256(body)
	return "calc:" + string(kind) + ":" + hex.EncodeToString(sum[:])
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
