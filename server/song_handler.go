package server

import (
	"errors"
	"net/http"

	"MeloFM/core/catalog"
	"MeloFM/logger"

	"github.com/gorilla/mux"
)

// SongsHandler returns the catalog listing as JSON. The directory is re-read
// and every file's tags re-parsed on each call.
func (h *APIHandler) SongsHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.catalog.ListSongs(r.Context())
	if err != nil {
		logger.Error("Failed to list songs", logger.ErrorField(err))
		http.Error(w, "Failed to list songs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, songs)
}

// StreamHandler serves the raw bytes of one catalog file. The name must
// resolve inside the songs directory; anything else is a 404.
func (h *APIHandler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	fullPath, err := h.catalog.Resolve(name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, "Song not found", http.StatusNotFound)
			return
		}
		logger.Error("Failed to resolve song", logger.String("name", name), logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// ServeFile infers the content type from the extension.
	http.ServeFile(w, r, fullPath)
}
