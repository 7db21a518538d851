package cmd

import (
	"MeloFM/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the MeloFM server",
	Long:  `Start the MeloFM HTTP server, serving the catalog, streaming and playlist APIs.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
