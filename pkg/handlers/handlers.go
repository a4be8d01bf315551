package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"bus-route/pkg/content"
)

const memoKey = "content"

// ContentHandler serves the raw content document, memoizing the source read
type ContentHandler struct {
	source content.Source
	memo   *cache.Cache
	logger *zap.Logger
}

// NewContentHandler creates a handler serving the document read from source
func NewContentHandler(source content.Source, logger *zap.Logger) *ContentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentHandler{
		source: source,
		memo:   cache.New(5*time.Minute, 10*time.Minute),
		logger: logger,
	}
}

// Flush drops the memoized document so the next request reads the source again
func (h *ContentHandler) Flush() {
	h.memo.Flush()
}

// ServeHTTP handles requests for the content feed (JSON)
func (h *ContentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := h.document(r)
	if err != nil {
		h.logger.Error("Content read failed", zap.Error(err))
		http.Error(w, "Content unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(body); err != nil {
		h.logger.Debug("Content write failed", zap.Error(err))
	}
}

func (h *ContentHandler) document(r *http.Request) ([]byte, error) {
	if cached, found := h.memo.Get(memoKey); found {
		return cached.([]byte), nil
	}

	h.logger.Info("Reading content", zap.String("path", r.URL.Path))
	body, err := h.source.Fetch(r.Context())
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, content.ErrFetch
	}

	h.memo.Set(memoKey, body, cache.DefaultExpiration)
	return body, nil
}
