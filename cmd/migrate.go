package cmd

import (
	"MeloFM/config"
	"MeloFM/db"
	"MeloFM/logger"
	"MeloFM/model"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		logger.Init(logger.Config{Level: cfg.LogLevel})

		if err := db.ConnectDB(cfg); err != nil {
			logger.Fatal("Failed to connect to database", logger.ErrorField(err))
		}
		defer db.DB.Close()

		if err := db.ConnectGormDB(cfg); err != nil {
			logger.Fatal("Failed to connect to database with GORM", logger.ErrorField(err))
		}
		defer db.CloseGormDB()

		if err := db.InitDB(); err != nil {
			logger.Fatal("Failed to initialize users table", logger.ErrorField(err))
		}
		if err := db.AutoMigrateModels(&model.Playlist{}, &model.PlaylistSong{}); err != nil {
			logger.Fatal("Failed to migrate playlist tables", logger.ErrorField(err))
		}

		logger.Info("Migration completed")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
