// internal/config/config.go
//
// This package handles configuration and the .casebook directory structure.
// Every project that opens a board gets a .casebook/ folder created in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kingrea/casebook/internal/session"
	"github.com/kingrea/casebook/internal/store"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the name of the directory we create in each project
	Dir = ".casebook"

	// BoardFile is the default board document, relative to Dir.
	BoardFile = "board.yaml"

	// EnvStore overrides store.backend.
	EnvStore = "CASEBOOK_STORE"
	// EnvBoard overrides board.
	EnvBoard = "CASEBOOK_BOARD"
)

const defaultProjectConfigYAML = `# casebook project configuration
version: 1

# Board document to open. Relative paths resolve against the project directory.
board: .casebook/board.yaml

# Where session state is kept between runs.
# backend: badger | sqlite | memory
store:
  backend: badger
  # path: .casebook/store

# Deferred behaviour, in milliseconds.
timings:
  reveal_stagger_ms: 100
  startup_delay_ms: 300
  autosave_ms: 2000
  save_ack_ms: 1500
  celebration_ms: 3000

# Store keys. Change them to keep several sessions in one store.
keys:
  progress: investigation-progress
  notes: investigation-notes
  theory: investigation-theory
`

// StoreConfig selects the durable store.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

// TimingsConfig holds session timings in milliseconds.
type TimingsConfig struct {
	RevealStaggerMS int `yaml:"reveal_stagger_ms"`
	StartupDelayMS  int `yaml:"startup_delay_ms"`
	AutosaveMS      int `yaml:"autosave_ms"`
	SaveAckMS       int `yaml:"save_ack_ms"`
	CelebrationMS   int `yaml:"celebration_ms"`
}

// KeysConfig names the store entries.
type KeysConfig struct {
	Progress string `yaml:"progress"`
	Notes    string `yaml:"notes"`
	Theory   string `yaml:"theory"`
}

// ProjectConfig models .casebook/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Board   string        `yaml:"board"`
	Store   StoreConfig   `yaml:"store"`
	Timings TimingsConfig `yaml:"timings"`
	Keys    KeysConfig    `yaml:"keys"`
}

// Config holds the runtime configuration for casebook.
type Config struct {
	// ProjectDir is the directory where the user ran `casebook` from
	ProjectDir string

	// CasebookDir is ProjectDir/.casebook
	CasebookDir string

	Project ProjectConfig

	// onDisk is Project before environment overrides; it is what gets saved.
	onDisk ProjectConfig
}

// InitDir creates the .casebook directory structure in the given project directory.
//
// Structure created:
// .casebook/
// ├── config.yaml
// ├── logs/       <- diagnostics and the session journal
// └── store/      <- durable session state
func InitDir(projectDir string) error {
	dir := filepath.Join(projectDir, Dir)
	for _, sub := range []string{
		filepath.Join(dir, "logs"),
		filepath.Join(dir, "store"),
	} {
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(dir, "config.yaml"))
}

// NewConfig loads the project settings, falling back to defaults when no
// config file exists. Environment overrides are applied last.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:  projectDir,
		CasebookDir: filepath.Join(projectDir, Dir),
		Project:     defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.onDisk = cfg.Project
	cfg.applyEnvOverrides()
	if err := cfg.Project.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.CasebookDir, "logs")
}

// JournalPath returns the session journal file.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "journal.log")
}

// StoreDir returns the directory holding the durable store.
func (c *Config) StoreDir() string {
	if c.Project.Store.Path != "" {
		return c.Project.Store.Path
	}
	return filepath.Join(c.CasebookDir, "store")
}

// BoardPath returns the board document to open.
func (c *Config) BoardPath() string {
	return c.Project.Board
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.CasebookDir, "config.yaml")
}

// StoreOptions returns the options for store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend: c.Project.Store.Backend,
		Dir:     c.StoreDir(),
	}
}

// Timings converts the configured timings.
func (c *Config) Timings() session.Timings {
	t := c.Project.Timings
	return session.Timings{
		RevealStagger: ms(t.RevealStaggerMS),
		StartupDelay:  ms(t.StartupDelayMS),
		AutosaveDelay: ms(t.AutosaveMS),
		SaveAck:       ms(t.SaveAckMS),
		Celebration:   ms(t.CelebrationMS),
	}
}

// Keys returns the configured store keys.
func (c *Config) Keys() session.Keys {
	return session.Keys{
		Progress: c.Project.Keys.Progress,
		Notes:    c.Project.Keys.Notes,
		Theory:   c.Project.Keys.Theory,
	}
}

// SetBoard updates the board path and persists the value back to
// .casebook/config.yaml so the next launch opens the same board.
func (c *Config) SetBoard(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("config: board path is required")
	}
	c.Project.Board = resolvePath(c.ProjectDir, path)
	c.onDisk.Board = c.Project.Board
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.Project.normalize(c.ProjectDir)
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnvOverrides() {
	if backend := strings.TrimSpace(os.Getenv(EnvStore)); backend != "" {
		c.Project.Store.Backend = strings.ToLower(backend)
	}
	if board := strings.TrimSpace(os.Getenv(EnvBoard)); board != "" {
		c.Project.Board = resolvePath(c.ProjectDir, board)
	}
}

func defaultProjectConfig() ProjectConfig {
	var pc ProjectConfig
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Board) == "" {
		pc.Board = filepath.Join(Dir, BoardFile)
	}
	if strings.TrimSpace(pc.Store.Backend) == "" {
		pc.Store.Backend = store.BackendBadger
	}
	def := session.DefaultTimings()
	t := &pc.Timings
	defaultMS(&t.RevealStaggerMS, def.RevealStagger)
	defaultMS(&t.StartupDelayMS, def.StartupDelay)
	defaultMS(&t.AutosaveMS, def.AutosaveDelay)
	defaultMS(&t.SaveAckMS, def.SaveAck)
	defaultMS(&t.CelebrationMS, def.Celebration)

	keys := session.DefaultKeys()
	if strings.TrimSpace(pc.Keys.Progress) == "" {
		pc.Keys.Progress = keys.Progress
	}
	if strings.TrimSpace(pc.Keys.Notes) == "" {
		pc.Keys.Notes = keys.Notes
	}
	if strings.TrimSpace(pc.Keys.Theory) == "" {
		pc.Keys.Theory = keys.Theory
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Board = resolvePath(base, pc.Board)
	pc.Store.Backend = strings.ToLower(strings.TrimSpace(pc.Store.Backend))
	pc.Store.Path = resolvePath(base, pc.Store.Path)
	pc.Keys.Progress = strings.TrimSpace(pc.Keys.Progress)
	pc.Keys.Notes = strings.TrimSpace(pc.Keys.Notes)
	pc.Keys.Theory = strings.TrimSpace(pc.Keys.Theory)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	switch pc.Store.Backend {
	case store.BackendBadger, store.BackendSQLite, store.BackendMemory:
	default:
		return fmt.Errorf("store.backend must be one of badger, sqlite, memory (got %q)", pc.Store.Backend)
	}
	for name, value := range map[string]int{
		"reveal_stagger_ms": pc.Timings.RevealStaggerMS,
		"startup_delay_ms":  pc.Timings.StartupDelayMS,
		"autosave_ms":       pc.Timings.AutosaveMS,
		"save_ack_ms":       pc.Timings.SaveAckMS,
		"celebration_ms":    pc.Timings.CelebrationMS,
	} {
		if value < 0 {
			return fmt.Errorf("timings.%s must be >= 0", name)
		}
	}
	seen := map[string]string{}
	for name, key := range map[string]string{
		"progress": pc.Keys.Progress,
		"notes":    pc.Keys.Notes,
		"theory":   pc.Keys.Theory,
	} {
		if other, dup := seen[key]; dup {
			return fmt.Errorf("keys.%s and keys.%s must differ", other, name)
		}
		seen[key] = name
	}
	return nil
}

func defaultMS(field *int, d time.Duration) {
	if *field == 0 {
		*field = int(d / time.Millisecond)
	}
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.onDisk.applyDefaults()
	c.onDisk.normalize(c.ProjectDir)
	if err := c.onDisk.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.CasebookDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure casebook dir: %w", err)
	}
	data, err := yaml.Marshal(c.onDisk)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
