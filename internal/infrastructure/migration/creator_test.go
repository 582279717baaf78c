package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWritesFilePair(t *testing.T) {
	dir := t.TempDir()

	pair, err := Create(dir, "Add contract tables")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(pair.UpPath, "_add_contract_tables.up.sql"))
	assert.True(t, strings.HasSuffix(pair.DownPath, "_add_contract_tables.down.sql"))

	up, err := os.ReadFile(pair.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add contract tables")

	_, err = os.Stat(pair.DownPath)
	require.NoError(t, err)
}

func TestListReturnsBaseNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"0001_init.up.sql",
		"0001_init.down.sql",
		"0002_indexes.up.sql",
		"0002_indexes.down.sql",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init", "0002_indexes"}, names)
}

func TestListMissingDirectory(t *testing.T) {
	names, err := List(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Contract Tables", "add_contract_tables"},
		{"fix--spacing  issues", "fix_spacing_issues"},
		{"v2", "v2"},
		{"trailing ", "trailing"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), tt.in)
	}
}
