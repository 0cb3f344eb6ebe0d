package types

// OutputFormat selects what the generate stage emits.
type OutputFormat string

const (
	OutputLaTeX OutputFormat = "latex"
	OutputYAML  OutputFormat = "yaml"
	OutputJSON  OutputFormat = "json"
)

// Extension returns the conventional file extension for the format.
func (f OutputFormat) Extension() string {
	switch f {
	case OutputYAML:
		return ".yaml"
	case OutputJSON:
		return ".json"
	default:
		return ".tex"
	}
}

// RenderConfig holds settings for the generate stage.
type RenderConfig struct {
	// Format selects the output: latex (default), yaml, or json.
	Format OutputFormat `json:"format" yaml:"format"`

	// Force regenerates outputs that already exist during batch runs.
	Force bool `json:"force" yaml:"force"`
}

// SplitConfig holds settings for the chunking utility.
type SplitConfig struct {
	// Lines is the target number of lines per chunk (default 7000).
	Lines int `json:"lines" yaml:"lines"`

	// Prefix is the chunk filename prefix (default "split").
	Prefix string `json:"prefix" yaml:"prefix"`

	// Lookahead is how many lines past the target cut point are searched
	// for an anchor marker (default 200).
	Lookahead int `json:"lookahead" yaml:"lookahead"`
}

// CatalogConfig holds settings for the SQLite person catalog.
type CatalogConfig struct {
	// Dir is the directory holding catalog.db and exports.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig selects the structured logger level and handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level" yaml:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format"`
}

// Config groups all stage configurations.
type Config struct {
	Render  RenderConfig  `json:"render" yaml:"render"`
	Split   SplitConfig   `json:"split" yaml:"split"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
