package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"skill_matrix_backend/internal/model"
	"skill_matrix_backend/internal/testutil"
	"skill_matrix_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const seedFile = `
templates:
  - id: tpl-sql
    title: SQL screening
    sections:
      - title: Queries
        questions:
          - type: ShortAnswer
            content: Name a join type.
`

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestMigrateAndSeed_LogsCompletionOnce(t *testing.T) {
	db := testutil.NewDB(t)
	logs := observeLogs(t)

	require.NoError(t, migrateAndSeed(context.Background(), db, ""))

	assert.Equal(t, 1, logs.FilterMessage("Database migration completed").Len())
	assert.Zero(t, logs.FilterMessage("Catalog seed applied").Len())
}

func TestMigrateAndSeed_AppliesSeed(t *testing.T) {
	db := testutil.NewDB(t)
	logs := observeLogs(t)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedFile), 0o600))

	require.NoError(t, migrateAndSeed(context.Background(), db, path))

	var tpl model.TestTemplate
	require.NoError(t, db.First(&tpl, "id = ?", "tpl-sql").Error)
	assert.Equal(t, "SQL screening", tpl.Title)
	assert.Equal(t, 1, logs.FilterMessage("Catalog seed applied").Len())
}
