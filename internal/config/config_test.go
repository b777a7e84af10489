package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxQuestions)
	assert.Equal(t, 5, cfg.Quota.Limit)
	assert.Equal(t, 24*time.Hour, cfg.Quota.Window)
	assert.Equal(t, 0.90, cfg.Quiz.RecallThreshold)
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.CorpusPath)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	body := "max_questions: 8\nquota:\n  limit: 3\n  window: 12h\nquiz:\n  recall_threshold: 0.85\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.MaxQuestions)
	assert.Equal(t, 3, cfg.Quota.Limit)
	assert.Equal(t, 12*time.Hour, cfg.Quota.Window)
	assert.Equal(t, 0.85, cfg.Quiz.RecallThreshold)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("VERSEQUEST_DB", "/tmp/custom.db")
	t.Setenv("VERSEQUEST_CORPUS", "/tmp/corpus.json")
	t.Setenv("VERSEQUEST_MAX_QUESTIONS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "/tmp/corpus.json", cfg.CorpusPath)
	assert.Equal(t, 7, cfg.MaxQuestions)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero max_questions", "max_questions: 0\n"},
		{"zero quota limit", "quota:\n  limit: 0\n"},
		{"negative window", "quota:\n  window: -1h\n"},
		{"threshold above one", "quiz:\n  recall_threshold: 1.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.body), 0o644))
			chdir(t, dir)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
