package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"atelier/internal/domain/content"
	domainerr "atelier/internal/domain/errors"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Content ContentConfig `yaml:"content"`
	Query   QueryConfig   `yaml:"query"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// CORSOrigins lists allowed origins for the JSON API. "*" is the
	// development default.
	CORSOrigins []string `yaml:"cors_origins"`
	// Language is the fallback display language when a request carries no
	// usable Accept-Language. "en" or "ru".
	Language string `yaml:"language"`
}

type ContentConfig struct {
	BlogDir   string `yaml:"blog_dir"`
	MarketDir string `yaml:"market_dir"`
	WorkDir   string `yaml:"work_dir"`
	IndexPath string `yaml:"index_path"`
}

// Dir maps a collection onto its source directory.
func (c ContentConfig) Dir(col content.Collection) string {
	switch col {
	case content.CollectionBlog:
		return c.BlogDir
	case content.CollectionMarket:
		return c.MarketDir
	case content.CollectionWork:
		return c.WorkDir
	}
	return ""
}

type QueryConfig struct {
	PageSize     int `yaml:"page_size"`
	MaxPageSize  int `yaml:"max_page_size"`
	RelatedLimit int `yaml:"related_limit"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
			Language:    "en",
		},
		Content: ContentConfig{
			BlogDir:   "content/blog",
			MarketDir: "content/market",
			WorkDir:   "content/work",
			IndexPath: ".atelier/index.db",
		},
		Query: QueryConfig{
			PageSize:     10,
			MaxPageSize:  100,
			RelatedLimit: 3,
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Server.Addr) == "" {
		ve.Add("server.addr", "must not be empty")
	}
	switch c.Server.Language {
	case "en", "ru":
	default:
		ve.Add("server.language", "must be 'en' or 'ru'")
	}

	if strings.TrimSpace(c.Content.BlogDir) == "" {
		ve.Add("content.blog_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Content.MarketDir) == "" {
		ve.Add("content.market_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Content.WorkDir) == "" {
		ve.Add("content.work_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Content.IndexPath) == "" {
		ve.Add("content.index_path", "must not be empty")
	}

	if c.Query.PageSize <= 0 {
		ve.Add("query.page_size", "must be positive")
	}
	if c.Query.MaxPageSize < c.Query.PageSize {
		ve.Add("query.max_page_size", "must be >= page_size")
	}
	if c.Query.RelatedLimit <= 0 {
		ve.Add("query.related_limit", "must be positive")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

// Load reads the config file on top of the defaults: fields present in the
// file override, everything else keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load except a missing file is not an error.
func LoadOrDefault(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
