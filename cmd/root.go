package cmd

import (
	"skill_matrix_backend/internal/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skill-matrix",
	Short: "Skill matrix assessment engine",
	Long:  "Runs timed employee skill assessments: start, answer, submit and score.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "configs", "Directory containing config.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(sweepCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	dir, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, "", err
	}
	return cfg, dir, nil
}
