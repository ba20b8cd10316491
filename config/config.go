package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env      string // "development" or "production"
	LogLevel string

	// Directory layout
	WorkspaceDir string
	BrainDir     string
	ConfigDir    string
	SessionsDir  string
	SessionsGlob string

	// Run ledger; empty disables it
	DatabasePath string

	// Loaded from the schedule document
	Timezone        string
	TimezoneOffsets map[string]int
	ArchiveDays     int

	// Loaded from the categories document
	Categories      CategorySet
	DefaultCategory string
}

// Load reads the optional .env file, the environment and the config
// documents. Missing documents fall back to defaults.
func Load() (*Config, error) {
	loadEnvFile()

	workspace := getEnv("MYBRAIN_WORKSPACE", ".")
	brainDir := getEnv("MYBRAIN_DIR", filepath.Join(workspace, "brain"))
	configDir := getEnv("MYBRAIN_CONFIG_DIR", filepath.Join(brainDir, "config"))

	dbPath := getEnv("MYBRAIN_DB_PATH", filepath.Join(brainDir, "data", "mybrain.sqlite"))
	if dbPath == "off" {
		dbPath = ""
	}

	cfg := &Config{
		Env:          getEnv("ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		WorkspaceDir: workspace,
		BrainDir:     brainDir,
		ConfigDir:    configDir,
		SessionsDir:  getEnv("MYBRAIN_SESSIONS_DIR", defaultSessionsDir()),
		SessionsGlob: getEnv("MYBRAIN_SESSIONS_GLOB", "*.jsonl"),
		DatabasePath: dbPath,
	}

	if err := cfg.loadDocuments(); err != nil {
		return nil, err
	}
	cfg.ArchiveDays = getEnvInt("MYBRAIN_ARCHIVE_DAYS", cfg.ArchiveDays)
	return cfg, nil
}

// Default returns a configuration rooted at workspace with built-in
// schedule and category defaults. No environment or files are read.
func Default(workspace string) *Config {
	brainDir := filepath.Join(workspace, "brain")
	cfg := &Config{
		Env:          "development",
		LogLevel:     "info",
		WorkspaceDir: workspace,
		BrainDir:     brainDir,
		ConfigDir:    filepath.Join(brainDir, "config"),
		SessionsDir:  filepath.Join(workspace, "sessions"),
		SessionsGlob: "*.jsonl",
	}
	cfg.applySchedule(scheduleDocument{})
	cfg.applyCategories(nil)
	return cfg
}

func (c *Config) loadDocuments() error {
	var sched scheduleDocument
	if _, err := readDocument(c.ConfigDir, "schedule", &sched); err != nil {
		return fmt.Errorf("failed to load schedule config: %w", err)
	}
	c.applySchedule(sched)

	var cats categoriesDocument
	found, err := readDocument(c.ConfigDir, "categories", &cats)
	if err != nil {
		return fmt.Errorf("failed to load categories config: %w", err)
	}
	if found {
		c.applyCategories(&cats)
	} else {
		c.applyCategories(nil)
	}
	return nil
}

func (c *Config) applySchedule(doc scheduleDocument) {
	c.Timezone = doc.Timezone
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	c.ArchiveDays = doc.ArchiveDays
	if c.ArchiveDays == 0 {
		c.ArchiveDays = 90
	}
	c.TimezoneOffsets = DefaultTimezoneOffsets()
	for name, hours := range doc.TimezoneOffsets {
		c.TimezoneOffsets[name] = hours
	}
}

func (c *Config) applyCategories(doc *categoriesDocument) {
	if doc == nil {
		c.Categories = defaultCategories()
		c.DefaultCategory = "work"
		return
	}
	c.Categories = doc.Categories
	c.DefaultCategory = doc.DefaultCategory
	if c.DefaultCategory == "" {
		c.DefaultCategory = "work"
	}
}

// Location returns the fixed-offset zone used for local calendar dates.
func (c *Config) Location() *time.Location {
	return Location(c.Timezone, c.TimezoneOffsets)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// MemoryDir holds daily memory files.
func (c *Config) MemoryDir() string { return filepath.Join(c.WorkspaceDir, "memory") }

// DigestDir holds one rendered digest per date.
func (c *Config) DigestDir() string { return filepath.Join(c.MemoryDir(), "sessions-digest") }

// ArchiveDir receives files past the retention window.
func (c *Config) ArchiveDir() string { return filepath.Join(c.MemoryDir(), "archive") }

// MonthlyDir holds the monthly rollups.
func (c *Config) MonthlyDir() string { return filepath.Join(c.MemoryDir(), "monthly-summary") }

// NeuronsDir holds one folder per category.
func (c *Config) NeuronsDir() string { return filepath.Join(c.WorkspaceDir, "neurons") }

// Helper functions

func loadEnvFile() {
	path := os.Getenv("MYBRAIN_ENV_FILE")
	if path == "" {
		brainDir := getEnv("MYBRAIN_DIR", filepath.Join(getEnv("MYBRAIN_WORKSPACE", "."), "brain"))
		path = filepath.Join(brainDir, ".env")
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	// Existing environment variables win over the file.
	_ = godotenv.Load(path)
}

func defaultSessionsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".openclaw", "agents", "main", "sessions")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
