package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", VersionOf("001_init.sql"))
	assert.Equal(t, "002", VersionOf("/srv/migrations/002_user_accounts_index.sql"))
	assert.Equal(t, "003.sql", VersionOf("003.sql"))
}

func TestPendingFilesSortsSQLFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "README.md", "010_c.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- noop"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "999_dir.sql"), 0o700))

	files, err := PendingFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "001_a.sql"),
		filepath.Join(dir, "002_b.sql"),
		filepath.Join(dir, "010_c.sql"),
	}, files)
}

func TestPendingFilesMissingDirectory(t *testing.T) {
	_, err := PendingFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestInitMigrationDefinesEngineConstraints(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	sql := string(content)

	for _, want := range []string{
		"CONSTRAINT enrollments_pkey PRIMARY KEY (student_id, course_id)",
		"CONSTRAINT courses_code_key UNIQUE (code)",
		"course_id BIGINT PRIMARY KEY REFERENCES courses(id) ON DELETE CASCADE",
		"REFERENCES instructors(id) ON DELETE CASCADE",
		"CREATE TABLE IF NOT EXISTS user_accounts",
	} {
		assert.Contains(t, sql, want)
	}
}
