package cmd

import (
	"fmt"
	"lesson_quiz_backend/internal/app"
	"lesson_quiz_backend/internal/config"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Override server.port")
}

func runServe(cmd *cobra.Command) error {
	configDir, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if f := cmd.Flags().Lookup("port"); f != nil && f.Value.String() != "" {
		cfg.Server.Port = f.Value.String()
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	return application.Run()
}
