package repository

import (
	"context"

	"MeloFM/model"

	"gorm.io/gorm"
)

// PlaylistRepository defines playlist and playlist-song data operations.
// All queries take the owning IDs explicitly; there is no lazy relationship
// traversal.
type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) error
	GetPlaylistByID(ctx context.Context, id int64) (*model.Playlist, error)
	GetPlaylistsByUserID(ctx context.Context, userID int64) ([]*model.Playlist, error)
	AddSong(ctx context.Context, song *model.PlaylistSong) error
	GetSongsByPlaylistID(ctx context.Context, playlistID int64) ([]*model.PlaylistSong, error)
}

// gormPlaylistRepository implements PlaylistRepository with GORM.
type gormPlaylistRepository struct {
	db *gorm.DB
}

// NewGormPlaylistRepository creates a GORM playlist repository.
func NewGormPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &gormPlaylistRepository{db: db}
}

// CreatePlaylist creates a playlist. Duplicate names are allowed.
func (r *gormPlaylistRepository) CreatePlaylist(ctx context.Context, playlist *model.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

// GetPlaylistByID returns a playlist by ID, or nil when it does not exist.
func (r *gormPlaylistRepository) GetPlaylistByID(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.WithContext(ctx).First(&playlist, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &playlist, nil
}

// GetPlaylistsByUserID returns all playlists owned by the user, oldest first.
func (r *gormPlaylistRepository) GetPlaylistsByUserID(ctx context.Context, userID int64) ([]*model.Playlist, error) {
	var playlists []*model.Playlist
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&playlists).Error
	if err != nil {
		return nil, err
	}
	return playlists, nil
}

// AddSong appends a song entry to a playlist. The same path may be appended
// more than once.
func (r *gormPlaylistRepository) AddSong(ctx context.Context, song *model.PlaylistSong) error {
	return r.db.WithContext(ctx).Create(song).Error
}

// GetSongsByPlaylistID returns the playlist's entries in insertion order.
func (r *gormPlaylistRepository) GetSongsByPlaylistID(ctx context.Context, playlistID int64) ([]*model.PlaylistSong, error) {
	var songs []*model.PlaylistSong
	err := r.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID).
		Order("id ASC").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	return songs, nil
}
