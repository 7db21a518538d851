package server

import (
	"net/http"
	"strconv"

	"MeloFM/logger"
	"MeloFM/model"

	"github.com/gorilla/mux"
)

// PlaylistsHandler lists the current user's playlists and creates new ones.
// Both GET and POST answer with the full [{id, name}] list.
func (h *APIHandler) PlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if r.Method == http.MethodPost {
		form, err := decodeBody(r)
		if err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		name := form("name")
		if name == "" {
			http.Error(w, "Playlist name is required", http.StatusBadRequest)
			return
		}

		playlist := &model.Playlist{
			UserID: userID,
			Name:   name,
		}
		if err := h.playlistRepo.CreatePlaylist(r.Context(), playlist); err != nil {
			logger.Error("Failed to create playlist",
				logger.Int64("userId", userID),
				logger.ErrorField(err),
			)
			http.Error(w, "Failed to create playlist", http.StatusInternalServerError)
			return
		}
		logger.Info("Playlist created",
			logger.Int64("userId", userID),
			logger.Int64("playlistId", playlist.ID),
			logger.String("name", playlist.Name),
		)
	}

	playlists, err := h.playlistRepo.GetPlaylistsByUserID(r.Context(), userID)
	if err != nil {
		logger.Error("Failed to list playlists", logger.Int64("userId", userID), logger.ErrorField(err))
		http.Error(w, "Failed to list playlists", http.StatusInternalServerError)
		return
	}

	summaries := make([]model.PlaylistSummary, 0, len(playlists))
	for _, p := range playlists {
		summaries = append(summaries, model.PlaylistSummary{ID: p.ID, Name: p.Name})
	}
	writeJSON(w, http.StatusOK, summaries)
}

// PlaylistSongsHandler lists and appends the song paths of one playlist.
// Playlists that do not exist or belong to another user answer 404, so
// playlist IDs cannot be probed across accounts.
func (h *APIHandler) PlaylistSongsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	playlistID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid playlist ID", http.StatusBadRequest)
		return
	}

	playlist, err := h.playlistRepo.GetPlaylistByID(r.Context(), playlistID)
	if err != nil {
		logger.Error("Failed to get playlist", logger.Int64("playlistId", playlistID), logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if playlist == nil || playlist.UserID != userID {
		http.Error(w, "Playlist not found", http.StatusNotFound)
		return
	}

	if r.Method == http.MethodPost {
		form, err := decodeBody(r)
		if err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		songPath := form("song_path")
		if songPath == "" {
			http.Error(w, "song_path is required", http.StatusBadRequest)
			return
		}

		// No check against the catalog, and duplicates are allowed.
		entry := &model.PlaylistSong{
			PlaylistID: playlistID,
			SongPath:   songPath,
		}
		if err := h.playlistRepo.AddSong(r.Context(), entry); err != nil {
			logger.Error("Failed to add song to playlist",
				logger.Int64("playlistId", playlistID),
				logger.ErrorField(err),
			)
			http.Error(w, "Failed to add song", http.StatusInternalServerError)
			return
		}
		logger.Info("Song added to playlist",
			logger.Int64("playlistId", playlistID),
			logger.String("songPath", songPath),
		)
	}

	entries, err := h.playlistRepo.GetSongsByPlaylistID(r.Context(), playlistID)
	if err != nil {
		logger.Error("Failed to list playlist songs", logger.Int64("playlistId", playlistID), logger.ErrorField(err))
		http.Error(w, "Failed to list playlist songs", http.StatusInternalServerError)
		return
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.SongPath)
	}
	writeJSON(w, http.StatusOK, paths)
}
