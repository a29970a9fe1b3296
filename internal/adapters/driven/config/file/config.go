// Package file loads the application configuration from a TOML file, a
// .env file and environment variables. Precedence is env var over TOML
// over built-in default; secrets only ever come from the environment.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigDir is the directory under the user's home that holds the
// config file and snapshot database.
const DefaultConfigDir = ".huddle"

// Config is the full application configuration.
type Config struct {
	Data      DataConfig     `toml:"data"`
	Index     IndexConfig    `toml:"index"`
	Embedding ProviderConfig `toml:"embedding"`
	LLM       ProviderConfig `toml:"llm"`
	Yahoo     YahooConfig    `toml:"yahoo"`
}

// DataConfig locates the source CSV tables.
type DataConfig struct {
	// CombineCSV, InjuryCSV and RushingCSV are paths to the stat tables.
	CombineCSV string `toml:"combine_csv"`
	InjuryCSV  string `toml:"injury_csv"`
	RushingCSV string `toml:"rushing_csv"`
}

// IndexConfig tunes the semantic index.
type IndexConfig struct {
	// SnapshotPath is the SQLite snapshot file. Empty disables persistence.
	SnapshotPath string `toml:"snapshot_path"`

	// Workers bounds build-time embedding concurrency.
	Workers int `toml:"workers"`

	// TopK is how many documents retrieval returns per question.
	TopK int `toml:"top_k"`
}

// ProviderConfig selects and tunes an embedding or LLM backend.
type ProviderConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// Dimensions overrides the embedding vector size (embedding only).
	Dimensions int `toml:"dimensions"`

	// APIKey is never read from TOML; it comes from the environment.
	APIKey string `toml:"-"`
}

// YahooConfig identifies the user's Yahoo fantasy league. Credentials come
// from the environment, not from the file.
type YahooConfig struct {
	LeagueKey string `toml:"league_key"`
	TeamKey   string `toml:"team_key"`

	ClientID     string `toml:"-"`
	ClientSecret string `toml:"-"`
	RefreshToken string `toml:"-"`
}

// Configured reports whether enough is present to build a league client.
func (y YahooConfig) Configured() bool {
	return y.LeagueKey != "" && y.TeamKey != "" && y.ClientID != "" && y.RefreshToken != ""
}

// Default returns the built-in configuration, rooted under the user's home
// directory.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Data: DataConfig{
			CombineCSV: "data/combine_data.csv",
			InjuryCSV:  "data/injuries.csv",
			RushingCSV: "data/rush.csv",
		},
		Index: IndexConfig{
			SnapshotPath: filepath.Join(home, DefaultConfigDir, "data", "index.db"),
		},
		Embedding: ProviderConfig{Provider: "ollama"},
		LLM:       ProviderConfig{Provider: "ollama"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, DefaultConfigDir, "config.toml")
}

// Load reads the configuration. A missing config file is not an error; the
// defaults plus environment carry a zero-setup ollama run. A present but
// malformed file is.
func Load(path string) (Config, error) {
	// Best effort; running without a .env file is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv folds environment overrides into the configuration.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Embedding.APIKey = v
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		if c.Embedding.Provider == "ollama" && c.Embedding.BaseURL == "" {
			c.Embedding.BaseURL = v
		}
		if c.LLM.Provider == "ollama" && c.LLM.BaseURL == "" {
			c.LLM.BaseURL = v
		}
	}
	c.Yahoo.ClientID = os.Getenv("YAHOO_CLIENT_ID")
	c.Yahoo.ClientSecret = os.Getenv("YAHOO_CLIENT_SECRET")
	c.Yahoo.RefreshToken = os.Getenv("YAHOO_REFRESH_TOKEN")
	if v := os.Getenv("YAHOO_LEAGUE_KEY"); v != "" {
		c.Yahoo.LeagueKey = v
	}
	if v := os.Getenv("YAHOO_TEAM_KEY"); v != "" {
		c.Yahoo.TeamKey = v
	}
}
