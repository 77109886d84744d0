package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AdminConfig points at the course administration portal.
type AdminConfig struct {
	BaseURL     string `yaml:"base_url" json:"base_url"`
	Email       string `yaml:"email" json:"email"`
	Password    string `yaml:"password" json:"password"`
	LoginPath   string `yaml:"login_path" json:"login_path"`
	CoursesPath string `yaml:"courses_path" json:"courses_path"`
}

// Enabled reports whether the portal is configured well enough to log in.
func (a AdminConfig) Enabled() bool {
	return a.BaseURL != "" && a.Email != "" && a.Password != ""
}

// FeedConfig describes a single iCalendar subscription merged into the
// admin snapshot.
type FeedConfig struct {
	ID  string `yaml:"id" json:"id"`
	URL string `yaml:"url" json:"url"`
}

// BasicAuthConfig protects the event submission endpoint.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen" json:"listen"`

	// DataDir holds month JSON files and the feed cache.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// OutputDir receives static {year}.html pages in one-shot mode.
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// Timezone is the IANA zone in which feed events are read.
	Timezone string `yaml:"timezone" json:"timezone"`

	// Years offered in the year switcher and refreshed by the scheduler.
	Years []int `yaml:"years" json:"years"`

	// RefreshCron is the cron schedule for re-fetching admin data.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Teachers offered by the form, "Surname Name".
	Teachers []string `yaml:"teachers" json:"teachers"`

	Admin AdminConfig  `yaml:"admin" json:"admin"`
	ICS   []FeedConfig `yaml:"ics" json:"ics"`

	// BasicAuth, if set, is required for POST /events/.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:      "127.0.0.1:8080",
		DataDir:     "data",
		OutputDir:   "out",
		Timezone:    "Europe/Moscow",
		Years:       []int{2025, 2026},
		RefreshCron: "0 */6 * * *",
		LogLevel:    "info",
		Teachers:    []string{},
		ICS:         []FeedConfig{},
	}
}

// Normalize fills in missing values with defaults.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if len(c.Years) == 0 {
		c.Years = d.Years
	}
	if c.RefreshCron == "" {
		c.RefreshCron = d.RefreshCron
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Teachers == nil {
		c.Teachers = []string{}
	}
	if c.ICS == nil {
		c.ICS = []FeedConfig{}
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written there with
//     0600 perms and returned.
//   - Otherwise the YAML is read and normalized.
//
// Admin credentials are then overlaid from EMAIL / PASSWORD, first from
// envPath (a .env file, optional) and then from the process environment.
func Load(path, envPath string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	cfg, err := loadFile(path)
	if err != nil {
		return cfg, err
	}
	applyEnv(cfg, envPath)
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

func applyEnv(cfg *Config, envPath string) {
	if envPath != "" {
		if vals, err := godotenv.Read(envPath); err == nil {
			if v := vals["EMAIL"]; v != "" {
				cfg.Admin.Email = v
			}
			if v := vals["PASSWORD"]; v != "" {
				cfg.Admin.Password = v
			}
		}
	}
	if v := os.Getenv("EMAIL"); v != "" {
		cfg.Admin.Email = v
	}
	if v := os.Getenv("PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
}

// Save writes cfg to path atomically via a temp file and rename, with the
// final file at 0600. Parent directories are created with 0700.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".studiocal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
