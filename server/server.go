package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MeloFM/config"
	"MeloFM/core/auth"
	"MeloFM/core/catalog"
	"MeloFM/core/metadata"
	"MeloFM/db"
	"MeloFM/logger"
	"MeloFM/model"
	"MeloFM/repository"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogPath,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.DB.Close()

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database with GORM", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	// Connect to Redis for the session store
	if err := db.ConnectRedis(cfg); err != nil {
		logger.Fatal("Failed to connect to Redis", logger.ErrorField(err))
	}
	defer db.CloseRedis()
	logger.Info("Successfully connected to Redis")

	// Initialize database schema
	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if err := db.AutoMigrateModels(&model.Playlist{}, &model.PlaylistSong{}); err != nil {
		logger.Fatal("Failed to migrate playlist tables", logger.ErrorField(err))
	}

	ensureDirExists(cfg.SongsDir)

	prober := metadata.NewFFprobeProber(cfg.FFprobePath)
	extractor := metadata.NewExtractor(cfg.SongsDir, prober)
	cat := catalog.New(cfg.SongsDir, extractor)

	watcher, err := catalog.NewWatcher(cfg.SongsDir)
	if err != nil {
		logger.Warn("Songs directory watcher unavailable", logger.ErrorField(err))
	} else {
		defer watcher.Close()
	}

	userRepo := repository.NewMySQLUserRepository(db.DB)
	playlistRepo := repository.NewGormPlaylistRepository(db.GormDB)
	sessions := auth.NewRedisSessionStore(db.RedisClient, time.Duration(cfg.SessionTTLHours)*time.Hour)

	renderer, err := NewRenderer(cfg.TemplatesDir)
	if err != nil {
		logger.Fatal("Failed to load templates", logger.ErrorField(err))
	}

	apiHandler := NewAPIHandler(userRepo, playlistRepo, cat, sessions, renderer, cfg)

	server.Handler = NewRouter(apiHandler)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", logger.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}

// NewRouter builds the full route table around the handler.
func NewRouter(apiHandler *APIHandler) *mux.Router {
	router := mux.NewRouter()

	// CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Form-based pages
	router.HandleFunc("/", apiHandler.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/login", apiHandler.LoginHandler).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/register", apiHandler.RegisterHandler).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/logout", apiHandler.LogoutHandler).Methods(http.MethodGet)
	router.HandleFunc("/settings", apiHandler.PageAuthMiddleware(apiHandler.SettingsHandler)).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/contact", apiHandler.ContactHandler).Methods(http.MethodGet, http.MethodPost)

	// Catalog endpoints
	router.HandleFunc("/songs", apiHandler.SongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/stream/{name}", apiHandler.StreamHandler).Methods(http.MethodGet)

	// Playlist endpoints
	router.HandleFunc("/playlists", apiHandler.AuthMiddleware(apiHandler.PlaylistsHandler)).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/playlist/{id}/songs", apiHandler.AuthMiddleware(apiHandler.PlaylistSongsHandler)).Methods(http.MethodGet, http.MethodPost)

	return router
}

func ensureDirExists(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info("Creating directory", logger.String("path", path))
		if err := os.MkdirAll(path, 0755); err != nil {
			logger.Fatal("Failed to create directory", logger.String("path", path), logger.ErrorField(err))
		}
	} else if err != nil {
		logger.Fatal("Failed to check directory", logger.String("path", path), logger.ErrorField(err))
	}
}
