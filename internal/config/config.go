package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete docmind configuration.
// It holds every setting a watched root can tune: where the store lives,
// which paths to watch, ingestion limits, ranking weights, and encryption.
type Config struct {
	Version int `yaml:"version" json:"version"`

	// DBPath is the directory holding the embedded store for a watched root.
	DBPath string `yaml:"db_path" json:"db_path"`

	// WatchPaths is the list of root directories to watch and ingest.
	WatchPaths []string `yaml:"watch_paths" json:"watch_paths"`

	// FilePatterns is a glob allow-list; empty means all files are candidates.
	FilePatterns []string `yaml:"file_patterns" json:"file_patterns"`

	// ExcludePatterns is a glob deny-list, checked after FilePatterns.
	ExcludePatterns []string `yaml:"exclude_patterns" json:"exclude_patterns"`

	// MaxFileSize is the largest file, in bytes, the pipeline will ingest.
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size"`

	// ChunkSize is the chunk window size in words.
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`

	// ChunkOverlap is the number of words shared between adjacent chunks.
	ChunkOverlap int `yaml:"chunk_overlap" json:"chunk_overlap"`

	// SupportedExtensions lists the file extensions routed to a decoder.
	// Empty means the ingestion pipeline's DefaultSupportedExtensions
	// (.md, .markdown, .mdx, .txt).
	SupportedExtensions []string `yaml:"supported_extensions" json:"supported_extensions"`

	// ExtractEntities enables the entity-extraction stage of ingestion.
	ExtractEntities bool `yaml:"extract_entities" json:"extract_entities"`

	// ExtractRelationships enables relationship derivation from co-occurring entities.
	ExtractRelationships bool `yaml:"extract_relationships" json:"extract_relationships"`

	// OCREnabled is reserved; OCR of images is a stated non-goal.
	OCREnabled bool `yaml:"ocr_enabled" json:"ocr_enabled"`

	Encryption EncryptionConfig `yaml:"encryption" json:"encryption"`
	Ranking    RankingConfig    `yaml:"ranking_weights" json:"ranking_weights"`
	Watcher    WatcherConfig    `yaml:"watcher" json:"watcher"`
	Index      IndexConfig      `yaml:"index" json:"index"`
}

// EncryptionConfig configures at-rest encryption of document content.
// Indices remain in cleartext even when this is enabled.
type EncryptionConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Algorithm string `yaml:"algorithm" json:"algorithm"`
	KDF       string `yaml:"kdf" json:"kdf"`
}

// RankingConfig holds the three ranking weights, normalized to sum to 1.0.
type RankingConfig struct {
	Relevance  float64 `yaml:"relevance" json:"relevance"`
	Freshness  float64 `yaml:"freshness" json:"freshness"`
	Popularity float64 `yaml:"popularity" json:"popularity"`
}

// WatcherConfig tunes the file-watcher dispatch.
type WatcherConfig struct {
	DebounceWindow  string `yaml:"debounce_window" json:"debounce_window"`
	PollInterval    string `yaml:"poll_interval" json:"poll_interval"`
	EventBufferSize int    `yaml:"event_buffer_size" json:"event_buffer_size"`
}

// IndexConfig tunes ingestion worker concurrency and index-side behavior.
type IndexConfig struct {
	Workers           int `yaml:"workers" json:"workers"`
	MaxResults        int `yaml:"max_results" json:"max_results"`
	FuzzyMaxDistance  int `yaml:"fuzzy_max_distance" json:"fuzzy_max_distance"`
}

// defaultExcludePatterns are always excluded from ingestion.
var defaultExcludePatterns = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/vendor/**",
	"**/__pycache__/**",
	"**/dist/**",
	"**/build/**",
}

// NewConfig returns a Config populated with built-in defaults.
func NewConfig() *Config {
	return &Config{
		Version:              1,
		DBPath:               "",
		WatchPaths:           []string{},
		FilePatterns:         []string{},
		ExcludePatterns:      append([]string{}, defaultExcludePatterns...),
		MaxFileSize:          100 * 1024 * 1024, // 100 MiB
		ChunkSize:            1000,
		ChunkOverlap:         200,
		SupportedExtensions:  []string{".txt", ".md", ".markdown"},
		ExtractEntities:      true,
		ExtractRelationships: true,
		OCREnabled:           false,
		Encryption: EncryptionConfig{
			Enabled:   false,
			Algorithm: "XSalsa20-Poly1305",
			KDF:       "Argon2i",
		},
		Ranking: RankingConfig{
			Relevance:  0.6,
			Freshness:  0.2,
			Popularity: 0.2,
		},
		Watcher: WatcherConfig{
			DebounceWindow:  "200ms",
			PollInterval:    "5s",
			EventBufferSize: 1000,
		},
		Index: IndexConfig{
			Workers:          runtime.NumCPU(),
			MaxResults:       20,
			FuzzyMaxDistance: 2,
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// Follows the XDG Base Directory spec:
//   - $XDG_CONFIG_HOME/docmind/config.yaml (if set)
//   - ~/.config/docmind/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "docmind", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "docmind", "config.yaml")
	}
	return filepath.Join(home, ".config", "docmind", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists reports whether the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// loadUserConfig loads the user/global configuration file if present.
// Returns a nil config and nil error if no such file exists.
func loadUserConfig() (*Config, error) {
	path := GetUserConfigPath()
	if !fileExists(path) {
		return nil, nil
	}

	cfg := NewConfig()
	if err := cfg.loadYAML(path); err != nil {
		return nil, fmt.Errorf("failed to load user config from %s: %w", path, err)
	}
	return cfg, nil
}

// LoadUserConfig loads the user configuration file.
// Returns a nil config and nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	return loadUserConfig()
}

// Load loads configuration for a watched root, in order of increasing
// precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/docmind/config.yaml)
//  3. Project config (.docmind.yaml in dir)
//  4. Environment variables (DOCMIND_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads .docmind.yaml or .docmind.yml from dir, if present.
func (c *Config) loadFromFile(dir string) error {
	yamlPath := filepath.Join(dir, ".docmind.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return c.loadYAML(yamlPath)
	}

	ymlPath := filepath.Join(dir, ".docmind.yml")
	if _, err := os.Stat(ymlPath); err == nil {
		return c.loadYAML(ymlPath)
	}

	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if other.DBPath != "" {
		c.DBPath = other.DBPath
	}
	if len(other.WatchPaths) > 0 {
		c.WatchPaths = other.WatchPaths
	}
	if len(other.FilePatterns) > 0 {
		c.FilePatterns = other.FilePatterns
	}
	if len(other.ExcludePatterns) > 0 {
		c.ExcludePatterns = append(c.ExcludePatterns, other.ExcludePatterns...)
	}
	if other.MaxFileSize != 0 {
		c.MaxFileSize = other.MaxFileSize
	}
	if other.ChunkSize != 0 {
		c.ChunkSize = other.ChunkSize
	}
	if other.ChunkOverlap != 0 {
		c.ChunkOverlap = other.ChunkOverlap
	}
	if len(other.SupportedExtensions) > 0 {
		c.SupportedExtensions = other.SupportedExtensions
	}

	if other.Encryption.Algorithm != "" {
		c.Encryption = other.Encryption
	} else {
		c.Encryption.Enabled = other.Encryption.Enabled || c.Encryption.Enabled
	}

	if other.Ranking.Relevance != 0 || other.Ranking.Freshness != 0 || other.Ranking.Popularity != 0 {
		c.Ranking = other.Ranking
	}

	if other.Watcher.DebounceWindow != "" {
		c.Watcher.DebounceWindow = other.Watcher.DebounceWindow
	}
	if other.Watcher.PollInterval != "" {
		c.Watcher.PollInterval = other.Watcher.PollInterval
	}
	if other.Watcher.EventBufferSize != 0 {
		c.Watcher.EventBufferSize = other.Watcher.EventBufferSize
	}

	if other.Index.Workers != 0 {
		c.Index.Workers = other.Index.Workers
	}
	if other.Index.MaxResults != 0 {
		c.Index.MaxResults = other.Index.MaxResults
	}
	if other.Index.FuzzyMaxDistance != 0 {
		c.Index.FuzzyMaxDistance = other.Index.FuzzyMaxDistance
	}
}

// applyEnvOverrides applies DOCMIND_* environment variables, which take
// precedence over every file-based source.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DOCMIND_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("DOCMIND_MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxFileSize = n
		}
	}
	if v := os.Getenv("DOCMIND_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.ChunkSize = n
		}
	}
	if v := os.Getenv("DOCMIND_CHUNK_OVERLAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.ChunkOverlap = n
		}
	}
	if v := os.Getenv("DOCMIND_ENCRYPTION_ENABLED"); v != "" {
		c.Encryption.Enabled = strings.ToLower(v) == "true" || v == "1"
	}
	if v := os.Getenv("DOCMIND_RELEVANCE_WEIGHT"); v != "" {
		if w, err := parseFloat64(v); err == nil && w >= 0 && w <= 1 {
			c.Ranking.Relevance = w
		}
	}
	if v := os.Getenv("DOCMIND_FRESHNESS_WEIGHT"); v != "" {
		if w, err := parseFloat64(v); err == nil && w >= 0 && w <= 1 {
			c.Ranking.Freshness = w
		}
	}
	if v := os.Getenv("DOCMIND_POPULARITY_WEIGHT"); v != "" {
		if w, err := parseFloat64(v); err == nil && w >= 0 && w <= 1 {
			c.Ranking.Popularity = w
		}
	}
	if v := os.Getenv("DOCMIND_INDEX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Index.Workers = n
		}
	}
}

// parseFloat64 parses a string to float64.
func parseFloat64(s string) (float64, error) {
	var f float64
	_, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &f)
	return f, err
}

// Validate checks invariants the rest of the package assumes hold.
func (c *Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be positive, got %d", c.MaxFileSize)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk_overlap must be non-negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap (%d) must be smaller than chunk_size (%d)", c.ChunkOverlap, c.ChunkSize)
	}

	sum := c.Ranking.Relevance + c.Ranking.Freshness + c.Ranking.Popularity
	if math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("ranking_weights must sum to 1.0, got %.2f", sum)
	}
	if c.Ranking.Relevance < 0 || c.Ranking.Freshness < 0 || c.Ranking.Popularity < 0 {
		return fmt.Errorf("ranking_weights must be non-negative")
	}

	if c.Encryption.Enabled {
		if c.Encryption.Algorithm != "XSalsa20-Poly1305" {
			return fmt.Errorf("encryption.algorithm must be 'XSalsa20-Poly1305', got %q", c.Encryption.Algorithm)
		}
		if c.Encryption.KDF != "Argon2i" {
			return fmt.Errorf("encryption.kdf must be 'Argon2i', got %q", c.Encryption.KDF)
		}
	}

	if c.Index.Workers <= 0 {
		return fmt.Errorf("index.workers must be positive, got %d", c.Index.Workers)
	}
	if c.Index.MaxResults < 0 {
		return fmt.Errorf("index.max_results must be non-negative, got %d", c.Index.MaxResults)
	}

	return nil
}

// MergeNewDefaults fills in zero-valued fields added to Config after a user's
// config file was first written, so upgrading doesn't silently disable
// features that now expect a non-zero default. Returns the dotted field
// names that were filled in.
func (c *Config) MergeNewDefaults() []string {
	defaults := NewConfig()
	var added []string

	if c.Ranking.Relevance == 0 && c.Ranking.Freshness == 0 && c.Ranking.Popularity == 0 {
		c.Ranking = defaults.Ranking
		added = append(added, "ranking_weights.relevance", "ranking_weights.freshness", "ranking_weights.popularity")
	}
	if c.Watcher.DebounceWindow == "" {
		c.Watcher.DebounceWindow = defaults.Watcher.DebounceWindow
		added = append(added, "watcher.debounce_window")
	}
	if c.Watcher.PollInterval == "" {
		c.Watcher.PollInterval = defaults.Watcher.PollInterval
		added = append(added, "watcher.poll_interval")
	}
	if c.Watcher.EventBufferSize == 0 {
		c.Watcher.EventBufferSize = defaults.Watcher.EventBufferSize
		added = append(added, "watcher.event_buffer_size")
	}
	if c.Index.Workers == 0 {
		c.Index.Workers = defaults.Index.Workers
		added = append(added, "index.workers")
	}
	if c.Index.MaxResults == 0 {
		c.Index.MaxResults = defaults.Index.MaxResults
		added = append(added, "index.max_results")
	}
	if c.Index.FuzzyMaxDistance == 0 {
		c.Index.FuzzyMaxDistance = defaults.Index.FuzzyMaxDistance
		added = append(added, "index.fuzzy_max_distance")
	}
	if c.Encryption.Algorithm == "" {
		c.Encryption.Algorithm = defaults.Encryption.Algorithm
		added = append(added, "encryption.algorithm")
	}
	if c.Encryption.KDF == "" {
		c.Encryption.KDF = defaults.Encryption.KDF
		added = append(added, "encryption.kdf")
	}

	return added
}

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// FindProjectRoot walks upward from path looking for a .docmind.yaml,
// .docmind.yml, or .git marker, returning the first directory that has
// one. If none is found, path itself (made absolute) is returned.
func FindProjectRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, marker := range []string{".docmind.yaml", ".docmind.yml", ".git"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}
