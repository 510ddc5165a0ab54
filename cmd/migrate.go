package cmd

import (
	"context"

	"skill_matrix_backend/internal/repository"
	"skill_matrix_backend/internal/seed"
	"skill_matrix_backend/pkg/database"
	"skill_matrix_backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema, optionally loading a catalog seed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger.InitLogger(cfg)
		defer logger.Log.Sync()

		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
		if err != nil {
			return err
		}
		seedPath, _ := cmd.Flags().GetString("seed")
		return migrateAndSeed(cmd.Context(), db, seedPath)
	},
}

// migrateAndSeed migrates the schema and loads seedPath when it is set.
func migrateAndSeed(ctx context.Context, db *gorm.DB, seedPath string) error {
	if err := database.Migrate(db); err != nil {
		return err
	}
	if seedPath == "" {
		return nil
	}
	file, err := seed.LoadFile(seedPath)
	if err != nil {
		return err
	}
	n, err := seed.Apply(ctx, repository.NewCatalogRepository(db, nil, 0), file)
	if err != nil {
		return err
	}
	logger.Log.Info("Catalog seed applied", zap.String("file", seedPath), zap.Int("templates", n))
	return nil
}

func init() {
	migrateCmd.Flags().String("seed", "", "YAML catalog seed to load after migrating")
}
