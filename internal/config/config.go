package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the full blogforge configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Theme   ThemeConfig   `yaml:"theme"`
	Output  OutputConfig  `yaml:"output"`
	Serve   ServeConfig   `yaml:"serve"`
	Daemon  DaemonConfig  `yaml:"daemon,omitempty"`
	Notify  NotifyConfig  `yaml:"notify,omitempty"`
	History HistoryConfig `yaml:"history,omitempty"`
}

// SiteConfig describes the site-wide metadata forwarded to the generator.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Author      string `yaml:"author,omitempty"`
	Language    string `yaml:"language,omitempty"`
}

// ContentConfig controls which posts are included in a build.
type ContentConfig struct {
	Dir    string `yaml:"dir"`
	Drafts bool   `yaml:"drafts"` // include posts marked draft: true
	Future bool   `yaml:"future"` // include posts dated in the future
}

// ThemeConfig identifies the theme repository installed by `blogforge install`.
type ThemeConfig struct {
	Name   string `yaml:"name"`
	Repo   string `yaml:"repo,omitempty"`
	Branch string `yaml:"branch,omitempty"`
}

// OutputConfig controls the generated site location.
type OutputConfig struct {
	Directory  string `yaml:"directory"`
	Clean      bool   `yaml:"clean"`                 // clean output directory before build
	StagingDir string `yaml:"staging_dir,omitempty"` // keep the staging tree between builds
}

// ServeConfig controls the local preview server.
type ServeConfig struct {
	Port       int  `yaml:"port"`
	LiveReload bool `yaml:"live_reload"`
	Metrics    bool `yaml:"metrics"`
}

// DaemonConfig controls long-running rebuild mode.
type DaemonConfig struct {
	RebuildInterval time.Duration `yaml:"rebuild_interval"`
}

// NotifyConfig configures optional build-event publishing over NATS.
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// HistoryConfig locates the build history database.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// DefaultPort is the conventional local preview port.
const DefaultPort = 1313

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
	if c.Site.Language == "" {
		c.Site.Language = "en"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "content/posts"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./public"
		c.Output.Clean = true
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
	if c.Theme.Branch == "" && c.Theme.Repo != "" {
		c.Theme.Branch = "main"
	}
	if c.Daemon.RebuildInterval == 0 {
		c.Daemon.RebuildInterval = time.Hour
	}
	if c.Notify.Subject == "" {
		c.Notify.Subject = "blogforge.builds"
	}
	if c.History.Path == "" {
		c.History.Path = ".blogforge/history.db"
	}
}

// Validate rejects configurations the build pipeline cannot act on.
func (c *Config) Validate() error {
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port out of range: %d", c.Serve.Port)
	}
	if c.Notify.Enabled && c.Notify.URL == "" {
		return fmt.Errorf("notify.enabled requires notify.url")
	}
	if c.Daemon.RebuildInterval < time.Minute {
		return fmt.Errorf("daemon.rebuild_interval must be at least 1m, got %s", c.Daemon.RebuildInterval)
	}
	return nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Site: SiteConfig{
			Title:       "My Blog",
			Description: "Notes on infrastructure and tooling",
			BaseURL:     "https://example.com",
		},
		Content: ContentConfig{Dir: "content/posts"},
		Theme: ThemeConfig{
			Name:   "paper",
			Repo:   "https://github.com/nanxiaobei/hugo-paper.git",
			Branch: "main",
		},
		Output: OutputConfig{Directory: "./public", Clean: true},
		Serve:  ServeConfig{Port: DefaultPort, LiveReload: true},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
