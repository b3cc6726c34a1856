package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Empty(t, cfg.DB.Path)
	assert.Empty(t, cfg.Corpus.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, uint64(0), cfg.Quiz.Seed)
	assert.Equal(t, "simple", cfg.Quiz.Difficulty)
	assert.Equal(t, "C", cfg.Quiz.QuestionType)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("HANZIQUIZ_DB_DRIVER", "memory")
	t.Setenv("HANZIQUIZ_LOG_LEVEL", "debug")
	t.Setenv("HANZIQUIZ_QUIZ_SEED", "42")
	t.Setenv("HANZIQUIZ_QUIZ_QUESTION_TYPE", "B")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, uint64(42), cfg.Quiz.Seed)
	assert.Equal(t, "B", cfg.Quiz.QuestionType)
}

func TestLoad_ExplicitValueWins(t *testing.T) {
	t.Setenv("HANZIQUIZ_CORPUS_PATH", "/from/env.json")
	v := New()
	v.Set("corpus.path", "/from/flag.json")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag.json", cfg.Corpus.Path)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HANZIQUIZ_DB_PATH=/tmp/from-dotenv.db\n"), 0o600))
	t.Setenv("HANZIQUIZ_DB_PATH", "")
	os.Unsetenv("HANZIQUIZ_DB_PATH")

	require.NoError(t, LoadDotEnv(envFile))
	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-dotenv.db", cfg.DB.Path)

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
