package model

import "time"

// Playlist is a named, user-owned collection of song references.
type Playlist struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"userId" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:80;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for GORM.
func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistSong is one entry of a playlist. SongPath points at a file name in
// the songs directory; there is no referential integrity to files on disk and
// the same path may appear more than once in a playlist.
type PlaylistSong struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	PlaylistID int64     `json:"playlistId" gorm:"not null;index"`
	SongPath   string    `json:"songPath" gorm:"size:200;not null"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName sets the table name for GORM.
func (PlaylistSong) TableName() string {
	return "playlist_songs"
}

// PlaylistSummary is the {id, name} shape returned by the playlists endpoint.
type PlaylistSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
