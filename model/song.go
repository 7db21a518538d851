package model

// SongMetadata is the tag-derived description of one catalog file.
type SongMetadata struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"` // rounded seconds, 0 when not computable
	Artist   string `json:"artist"`
	Album    string `json:"album"`
}
