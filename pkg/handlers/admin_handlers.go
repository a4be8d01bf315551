package handlers

import (
	"encoding/json"
	"net/http"
)

// RefreshHandler handles API requests to drop the memoized content document
func RefreshHandler(h *ContentHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		h.logger.Info("Refreshing content")
		h.Flush()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Content refreshed successfully",
		})
	}
}
