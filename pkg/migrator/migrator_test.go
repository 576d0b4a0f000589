package migrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SortsByVersionAndSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"002_indexes.sql": "CREATE INDEX ...;",
		"001_init.sql":    "CREATE TABLE ...;",
		"README.md":       "docs",
		"notes.sql":       "-- no version prefix",
		"abc_bad.sql":     "-- non numeric prefix",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	migrations, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "001_init.sql", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)
	assert.Equal(t, "CREATE INDEX ...;", migrations[1].SQL)
}

func TestLoad_RepositoryMigrations(t *testing.T) {
	migrations, err := Load("../../migrations")
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, 1, migrations[0].Version)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
