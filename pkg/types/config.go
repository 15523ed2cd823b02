package types

// EngineConfig holds settings for the session engine core.
type EngineConfig struct {
	// ClusterThreshold is the minimum pairwise similarity for an idea to
	// join a cluster during finalization (default 0.3).
	ClusterThreshold float64 `json:"cluster_threshold" yaml:"cluster_threshold"`

	// Seed fixes the random source for word draws; 0 seeds from the clock.
	// Per prd001-session-engine R7.3.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Participants is the default participant list for new sessions when
	// the caller supplies none.
	Participants []string `json:"participants,omitempty" yaml:"participants,omitempty"`
}

// WordBankConfig holds settings for the stimulus word pool.
// Per prd007-word-bank R2.1-R2.2.
type WordBankConfig struct {
	// Path points to a YAML word bank file. Empty selects the built-in pool.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ArchiveConfig holds settings for the completed-session archive.
// Per prd004-session-archive R1.1.
type ArchiveConfig struct {
	// Path is the SQLite database file. Empty disables archiving.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ExportConfig holds settings for session exports.
type ExportConfig struct {
	// Dir is the directory export files are written to (default "exports").
	Dir string `json:"dir" yaml:"dir"`

	// Format is the default export format: json, markdown, or csv.
	Format string `json:"format" yaml:"format"`
}

// Config groups all configuration for the ideation-engine CLI.
type Config struct {
	Engine   EngineConfig   `json:"engine" yaml:"engine"`
	WordBank WordBankConfig `json:"word_bank" yaml:"word_bank"`
	Archive  ArchiveConfig  `json:"archive" yaml:"archive"`
	Export   ExportConfig   `json:"export" yaml:"export"`

	// LogLevel sets the zap level: debug, info, warn, or error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file or flags
// override it.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			ClusterThreshold: 0.3,
		},
		Export: ExportConfig{
			Dir:    "exports",
			Format: "markdown",
		},
		LogLevel: "info",
	}
}
