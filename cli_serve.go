package main

import (
	"github.com/locvowork/sheetpreview/internal/bootstrap"
	"github.com/locvowork/sheetpreview/internal/logger"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the upload and preview web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app := bootstrap.NewApp()
			if err := app.Initialize(ctx); err != nil {
				logger.ErrorLog(ctx, "Failed to initialize application: %v", err)
				return err
			}

			if err := app.Run(); err != nil {
				logger.ErrorLog(ctx, "Application failed: %v", err)
				return err
			}
			return nil
		},
	}
}
