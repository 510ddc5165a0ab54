package cmd

import (
	"fmt"

	"skill_matrix_backend/internal/app"
	"skill_matrix_backend/pkg/logger"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Auto-submit every overdue assessment once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		report, err := app.SweepOnce(cmd.Context(), cfg)
		defer logger.Log.Sync()
		if err != nil {
			return err
		}
		fmt.Printf("found %d, submitted %d, failed %d\n", report.Found, report.Submitted, report.Failed)
		return nil
	},
}
