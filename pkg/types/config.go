package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-tools/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings shared by the API clients. Each client
// instance owns one rate limiter and one retry schedule.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// RateLimitDelay is the minimum spacing between outgoing requests
	// (default 1s).
	RateLimitDelay time.Duration `json:"rate_limit_delay" yaml:"rate_limit_delay"`

	// MaxRetries is the number of retry attempts after a rate-limited
	// response or transport failure (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// BackoffFactor is the base of the exponential retry wait, indexed
	// by zero-based attempt number (default 2).
	BackoffFactor float64 `json:"backoff_factor" yaml:"backoff_factor"`

	// APIKey is an optional key for higher rate limits. An empty key is
	// a fully supported unauthenticated mode.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// LibraryConfig holds settings for the markdown note library.
type LibraryConfig struct {
	// NotesDir is the base directory for topic-organized markdown notes.
	NotesDir string `json:"notes_dir" yaml:"notes_dir"`

	// JSONDir is the directory for timestamped JSON snapshots
	// (citation analyses, raw batch responses).
	JSONDir string `json:"json_dir" yaml:"json_dir"`

	// MaxResults is the default maximum number of index query results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PDFConfig holds settings for PDF download and text extraction.
type PDFConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDir is the default directory for downloaded PDFs.
	DownloadDir string `json:"download_dir" yaml:"download_dir"`
}

// ToolsConfig groups all component configurations.
type ToolsConfig struct {
	Scholar ClientConfig  `json:"scholar" yaml:"scholar"`
	Arxiv   ClientConfig  `json:"arxiv" yaml:"arxiv"`
	Library LibraryConfig `json:"library" yaml:"library"`
	PDF     PDFConfig     `json:"pdf" yaml:"pdf"`
}
