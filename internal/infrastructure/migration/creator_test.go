package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("writes a matching up and down pair", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "Add Stage Costs", "per-stage cost rollup columns")
		require.NoError(t, err)

		assert.Equal(t, "Add Stage Costs", mf.Name)
		assert.Len(t, mf.Version, 14)
		assert.Equal(t, filepath.Join(dir, mf.Version+"_add_stage_costs.up.sql"), mf.UpPath)
		assert.Equal(t, filepath.Join(dir, mf.Version+"_add_stage_costs.down.sql"), mf.DownPath)

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "Add Stage Costs (up)")
		assert.Contains(t, string(up), "per-stage cost rollup columns")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "Add Stage Costs (down)")
	})

	t.Run("creates the directory when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")

		mf, err := CreateMigration(dir, "create production orders", "")
		require.NoError(t, err)
		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)
	})

	t.Run("empty description is omitted from the header", func(t *testing.T) {
		mf, err := CreateMigration(t.TempDir(), "drop legacy index", "")
		require.NoError(t, err)

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.NotContains(t, string(up), "-- \n")
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Add Production Orders", "add_production_orders"},
		{"add-stage-costs", "add_stage_costs"},
		{"already_sane", "already_sane"},
		{"Mixed  --  Separators", "mixed_separators"},
		{"  leading and trailing  ", "leading_and_trailing"},
		{"drop index #3!", "drop_index_3"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.name))
		})
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("lists pairs sorted by version", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"20260901010101_add_stage_costs.up.sql",
			"20260901010101_add_stage_costs.down.sql",
			"20260101010101_create_production_orders.up.sql",
			"20260101010101_create_production_orders.down.sql",
			"notes.txt",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql\n"), 0644))
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"20260101010101_create_production_orders",
			"20260901010101_add_stage_costs",
		}, migrations)
	})

	t.Run("missing directory is empty, not an error", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
