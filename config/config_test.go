package config

import "testing"

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := Load()

		if cfg.ServerAddr != ":8080" {
			t.Errorf("expected default server addr :8080, got %s", cfg.ServerAddr)
		}
		if cfg.SongsDir != "static/songs" {
			t.Errorf("expected default songs dir static/songs, got %s", cfg.SongsDir)
		}
		if cfg.SessionTTLHours != 24 {
			t.Errorf("expected default session TTL 24h, got %d", cfg.SessionTTLHours)
		}
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("SONGS_DIR", "/srv/music")
		t.Setenv("SESSION_TTL_HOURS", "2")

		cfg := Load()
		if cfg.SongsDir != "/srv/music" {
			t.Errorf("expected songs dir /srv/music, got %s", cfg.SongsDir)
		}
		if cfg.SessionTTLHours != 2 {
			t.Errorf("expected session TTL 2, got %d", cfg.SessionTTLHours)
		}
	})

	t.Run("BadIntFallsBack", func(t *testing.T) {
		t.Setenv("SESSION_TTL_HOURS", "not-a-number")

		cfg := Load()
		if cfg.SessionTTLHours != 24 {
			t.Errorf("expected fallback TTL 24, got %d", cfg.SessionTTLHours)
		}
	})
}
