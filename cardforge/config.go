package cardforge

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log      LogConfig      `toml:"log"`
	DB       DBConfig       `toml:"db"`
	Web      WebConfig      `toml:"web"`
	Renderer RendererConfig `toml:"renderer"`
	Spaces   SpacesConfig   `toml:"spaces"`
	Auth     AuthConfig     `toml:"auth"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type WebConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// RendererConfig points the API at the rendering service and bounds how long
// one export may wait for it.
type RendererConfig struct {
	Host    string        `toml:"host"`
	Port    int           `toml:"port"`
	URL     string        `toml:"url"`
	Timeout time.Duration `toml:"timeout"`
}

// BaseURL returns the rendering service endpoint the API should call.
func (c RendererConfig) BaseURL() string {
	if c.URL != "" {
		return c.URL
	}
	return "http://localhost:3002"
}

// RequestTimeout bounds one render round trip.
func (c RendererConfig) RequestTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 60 * time.Second
}

type SpacesConfig struct {
	Key       string `toml:"key"`
	Secret    string `toml:"secret"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	AssetRoot string `toml:"asset_root"`
}

type AuthConfig struct {
	SessionSecret string `toml:"session_secret"`
}
