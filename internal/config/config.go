package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Log         LogConfig        `yaml:"log"`
	Allocation  AllocationConfig `yaml:"allocation"`
	Transcripts TranscriptConfig `yaml:"transcripts"`
	Split       SplitConfig      `yaml:"split"`
	Archive     ArchiveConfig    `yaml:"archive"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// AllocationConfig holds the allocate job's inputs, outputs and column names
type AllocationConfig struct {
	UsersPath       string `yaml:"users_path"`
	ProjectsPath    string `yaml:"projects_path"`
	PreferencesPath string `yaml:"preferences_path"`

	AssignmentsPath string `yaml:"assignments_path"`
	RostersPath     string `yaml:"rosters_path"`
	SummaryPath     string `yaml:"summary_path"`
	UnassignedPath  string `yaml:"unassigned_path"`

	UserIDColumn    string `yaml:"user_id_column"`
	ScoreColumn     string `yaml:"score_column"`
	ProjectIDColumn string `yaml:"project_id_column"`
	CapacityColumn  string `yaml:"capacity_column"`

	TieBreak    string `yaml:"tie_break"`
	ImproveOnce bool   `yaml:"improve_once"`

	// SkipIncomplete drops users whose id or score reads "Not Found"
	SkipIncomplete bool `yaml:"skip_incomplete"`
}

// TranscriptConfig holds the transcripts job settings
type TranscriptConfig struct {
	Dir        string `yaml:"dir"`
	Extension  string `yaml:"extension"`
	OutputPath string `yaml:"output_path"`
	Workers    int    `yaml:"workers"`
}

// SplitConfig holds the split job settings
type SplitConfig struct {
	InputPath string `yaml:"input_path"`
	Column    string `yaml:"column"`
	OutputDir string `yaml:"output_dir"`
	Format    string `yaml:"format"` // xlsx or csv
	Sheet     string `yaml:"sheet"`
}

// ArchiveConfig holds SurrealDB settings for archiving allocation runs
type ArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Host      string `yaml:"host"`
	Port      string `yaml:"port"`
	Namespace string `yaml:"namespace"`
	Database  string `yaml:"database"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Allocation: AllocationConfig{
			UsersPath:       "users.csv",
			ProjectsPath:    "projects.csv",
			PreferencesPath: "preferences.csv",
			AssignmentsPath: "out/assignments.csv",
			RostersPath:     "out/rosters.csv",
			SummaryPath:     "out/summary.csv",
			UnassignedPath:  "out/unassigned.csv",
			UserIDColumn:    "user_id",
			ScoreColumn:     "score",
			ProjectIDColumn: "project_id",
			CapacityColumn:  "capacity",
			TieBreak:        "id",
		},
		Transcripts: TranscriptConfig{
			Dir:        "transcripts",
			Extension:  ".pdf",
			OutputPath: "out/parsed_transcripts.csv",
			Workers:    4,
		},
		Split: SplitConfig{
			InputPath: "out/assignments.csv",
			Column:    "project_id",
			OutputDir: "out/split",
			Format:    "xlsx",
		},
		Archive: ArchiveConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "gradproj",
			Database:  "main",
			User:      "root",
			Password:  "root",
		},
	}
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads an optional YAML file over the defaults, then applies
// environment variables on top
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)

	a := &c.Allocation
	a.UsersPath = getEnv("ALLOCATION_USERS_PATH", a.UsersPath)
	a.ProjectsPath = getEnv("ALLOCATION_PROJECTS_PATH", a.ProjectsPath)
	a.PreferencesPath = getEnv("ALLOCATION_PREFERENCES_PATH", a.PreferencesPath)
	a.AssignmentsPath = getEnv("ALLOCATION_ASSIGNMENTS_PATH", a.AssignmentsPath)
	a.RostersPath = getEnv("ALLOCATION_ROSTERS_PATH", a.RostersPath)
	a.SummaryPath = getEnv("ALLOCATION_SUMMARY_PATH", a.SummaryPath)
	a.UnassignedPath = getEnv("ALLOCATION_UNASSIGNED_PATH", a.UnassignedPath)
	a.UserIDColumn = getEnv("ALLOCATION_USER_ID_COLUMN", a.UserIDColumn)
	a.ScoreColumn = getEnv("ALLOCATION_SCORE_COLUMN", a.ScoreColumn)
	a.ProjectIDColumn = getEnv("ALLOCATION_PROJECT_ID_COLUMN", a.ProjectIDColumn)
	a.CapacityColumn = getEnv("ALLOCATION_CAPACITY_COLUMN", a.CapacityColumn)
	a.TieBreak = getEnv("ALLOCATION_TIE_BREAK", a.TieBreak)
	a.ImproveOnce = getBoolEnv("ALLOCATION_IMPROVE_ONCE", a.ImproveOnce)
	a.SkipIncomplete = getBoolEnv("ALLOCATION_SKIP_INCOMPLETE", a.SkipIncomplete)

	tr := &c.Transcripts
	tr.Dir = getEnv("TRANSCRIPTS_DIR", tr.Dir)
	tr.Extension = getEnv("TRANSCRIPTS_EXTENSION", tr.Extension)
	tr.OutputPath = getEnv("TRANSCRIPTS_OUTPUT_PATH", tr.OutputPath)
	tr.Workers = getIntEnv("TRANSCRIPTS_WORKERS", tr.Workers)

	s := &c.Split
	s.InputPath = getEnv("SPLIT_INPUT_PATH", s.InputPath)
	s.Column = getEnv("SPLIT_COLUMN", s.Column)
	s.OutputDir = getEnv("SPLIT_OUTPUT_DIR", s.OutputDir)
	s.Format = getEnv("SPLIT_FORMAT", s.Format)
	s.Sheet = getEnv("SPLIT_SHEET", s.Sheet)

	ar := &c.Archive
	ar.Enabled = getBoolEnv("ARCHIVE_ENABLED", ar.Enabled)
	ar.Host = getEnv("DB_HOST", ar.Host)
	ar.Port = getEnv("DB_PORT", ar.Port)
	ar.Namespace = getEnv("DB_NAMESPACE", ar.Namespace)
	ar.Database = getEnv("DB_DATABASE", ar.Database)
	ar.User = getEnv("DB_USER", ar.User)
	ar.Password = getEnv("DB_PASSWORD", ar.Password)
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got '%s'", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got '%s'", c.Log.Format))
	}

	if err := c.Allocation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("allocation: %w", err))
	}
	if err := c.Transcripts.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("transcripts: %w", err))
	}
	if err := c.Split.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("split: %w", err))
	}
	if c.Archive.Enabled {
		if err := c.Archive.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("archive: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks the allocate job settings
func (a AllocationConfig) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"ALLOCATION_USERS_PATH", a.UsersPath},
		{"ALLOCATION_PROJECTS_PATH", a.ProjectsPath},
		{"ALLOCATION_PREFERENCES_PATH", a.PreferencesPath},
		{"ALLOCATION_ASSIGNMENTS_PATH", a.AssignmentsPath},
		{"ALLOCATION_USER_ID_COLUMN", a.UserIDColumn},
		{"ALLOCATION_SCORE_COLUMN", a.ScoreColumn},
		{"ALLOCATION_PROJECT_ID_COLUMN", a.ProjectIDColumn},
		{"ALLOCATION_CAPACITY_COLUMN", a.CapacityColumn},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", ")))
	}
	if a.TieBreak != "id" && a.TieBreak != "input" {
		errs = append(errs, fmt.Errorf("ALLOCATION_TIE_BREAK must be 'id' or 'input', got '%s'", a.TieBreak))
	}
	return errors.Join(errs...)
}

// Validate checks the transcripts job settings
func (t TranscriptConfig) Validate() error {
	var errs []error
	if t.Dir == "" {
		errs = append(errs, errors.New("TRANSCRIPTS_DIR is required"))
	}
	if t.OutputPath == "" {
		errs = append(errs, errors.New("TRANSCRIPTS_OUTPUT_PATH is required"))
	}
	if t.Workers <= 0 {
		errs = append(errs, errors.New("TRANSCRIPTS_WORKERS must be positive"))
	}
	return errors.Join(errs...)
}

// Validate checks the split job settings
func (s SplitConfig) Validate() error {
	var errs []error
	if s.InputPath == "" {
		errs = append(errs, errors.New("SPLIT_INPUT_PATH is required"))
	}
	if s.Column == "" {
		errs = append(errs, errors.New("SPLIT_COLUMN is required"))
	}
	if s.OutputDir == "" {
		errs = append(errs, errors.New("SPLIT_OUTPUT_DIR is required"))
	}
	if s.Format != "xlsx" && s.Format != "csv" {
		errs = append(errs, fmt.Errorf("SPLIT_FORMAT must be 'xlsx' or 'csv', got '%s'", s.Format))
	}
	return errors.Join(errs...)
}

// Validate checks that all required archive fields are present
func (a ArchiveConfig) Validate() error {
	var missing []string
	if a.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if a.Port == "" {
		missing = append(missing, "DB_PORT")
	}
	if a.Namespace == "" {
		missing = append(missing, "DB_NAMESPACE")
	}
	if a.Database == "" {
		missing = append(missing, "DB_DATABASE")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
