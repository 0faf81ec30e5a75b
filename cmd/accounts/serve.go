package main

import (
	"github.com/spf13/cobra"
)

// serveCmd starts the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the accounts API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := initializeApp()
		if err != nil {
			return err
		}

		router := app.setupRouter()
		return app.startHTTPServer(cmd.Context(), router)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
