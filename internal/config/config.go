// Package config loads hanziquiz settings from defaults, an optional .env
// file, HANZIQUIZ_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. HANZIQUIZ_DB_DRIVER.
const EnvPrefix = "HANZIQUIZ"

// Config holds all configuration for the application.
type Config struct {
	DB     DBConfig     `mapstructure:"db"`
	Corpus CorpusConfig `mapstructure:"corpus"`
	Log    LogConfig    `mapstructure:"log"`
	Quiz   QuizConfig   `mapstructure:"quiz"`
}

// DBConfig selects the store backend.
type DBConfig struct {
	Driver string `mapstructure:"driver"` // sqlite, postgres or memory
	Path   string `mapstructure:"path"`   // SQLite file; empty means the XDG data dir
	URL    string `mapstructure:"url"`    // Postgres DSN
}

// CorpusConfig locates the word corpus.
type CorpusConfig struct {
	// Path to a corpus JSON file. Empty uses the built-in sample.
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives log output while the full-screen UI runs.
	File string `mapstructure:"file"`
}

// QuizConfig holds play defaults.
type QuizConfig struct {
	// Seed fixes question order when non-zero.
	Seed         uint64 `mapstructure:"seed"`
	Difficulty   string `mapstructure:"difficulty"`
	Mode         string `mapstructure:"mode"`
	QuestionType string `mapstructure:"question_type"`
}

// New returns a viper instance with defaults and environment binding set up.
// Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load unmarshals v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "")
	v.SetDefault("db.url", "")

	v.SetDefault("corpus.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("quiz.seed", 0)
	v.SetDefault("quiz.difficulty", "simple")
	v.SetDefault("quiz.mode", "all")
	v.SetDefault("quiz.question_type", "C")
}
