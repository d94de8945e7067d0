package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"feedfilter/internal/domain"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Name     string        `yaml:"name"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type DBConfig struct {
	DSN string `yaml:"dsn"`
}

type KafkaTopics struct {
	FeedBuilt string `yaml:"feed_built"`
}

type KafkaConfig struct {
	Brokers []string    `yaml:"brokers"`
	Topics  KafkaTopics `yaml:"topics"`
}

type FeedConfig struct {
	Name               string   `yaml:"name"`
	URL                string   `yaml:"url"`
	TitleDisqualifiers []string `yaml:"title_disqualifiers"`
	TitleQualifiers    []string `yaml:"title_qualifiers"`
	RuleOrder          string   `yaml:"rule_order"`
	GUID               string   `yaml:"guid"`
}

type Config struct {
	App       AppConfig       `yaml:"app"`
	HTTP      HTTPConfig      `yaml:"http"`
	Logging   LoggingConfig   `yaml:"logging"`
	Fetch     FetchConfig     `yaml:"fetch"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	DB        DBConfig        `yaml:"db"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Feeds     []FeedConfig    `yaml:"feeds"`
}

func (c *Config) GetAppName() string {
	return c.App.Name
}

func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0 && c.Kafka.Topics.FeedBuilt != ""
}

func (c *Config) DBEnabled() bool {
	return c.DB.DSN != ""
}

// FeedConfigs переводит секцию feeds в доменные конфигурации.
func (c *Config) FeedConfigs() []domain.FeedConfig {
	out := make([]domain.FeedConfig, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		out = append(out, domain.FeedConfig{
			Name:               f.Name,
			SourceURL:          f.URL,
			TitleDisqualifiers: f.TitleDisqualifiers,
			TitleQualifiers:    f.TitleQualifiers,
			RuleOrder:          domain.RuleOrder(f.RuleOrder),
			GUID:               domain.GUIDPolicy(f.GUID),
		})
	}
	return out
}

func (c *Config) expandEnv() {
	c.App.Name = os.ExpandEnv(c.App.Name)
	c.HTTP.Host = os.ExpandEnv(c.HTTP.Host)
	c.Logging.Level = os.ExpandEnv(c.Logging.Level)
	c.Logging.Format = os.ExpandEnv(c.Logging.Format)
	c.Fetch.UserAgent = os.ExpandEnv(c.Fetch.UserAgent)
	c.DB.DSN = os.ExpandEnv(c.DB.DSN)
	c.Kafka.Topics.FeedBuilt = os.ExpandEnv(c.Kafka.Topics.FeedBuilt)
	brokers := make([]string, 0, len(c.Kafka.Brokers))
	for _, b := range c.Kafka.Brokers {
		if b = os.ExpandEnv(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	c.Kafka.Brokers = brokers
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "feedfilter"
	}
	if c.App.CacheTTL == 0 {
		c.App.CacheTTL = 15 * time.Minute
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 30 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 20 * time.Second
	}
	for i := range c.Feeds {
		if c.Feeds[i].RuleOrder == "" {
			c.Feeds[i].RuleOrder = string(domain.DisqualifyFirst)
		}
		if c.Feeds[i].GUID == "" {
			c.Feeds[i].GUID = string(domain.GUIDNone)
		}
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.App.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("app.cache_ttl must not be negative"))
	}
	if len(c.Feeds) == 0 {
		errs = append(errs, fmt.Errorf("no feeds configured"))
	}
	seen := make(map[string]struct{}, len(c.Feeds))
	for i, f := range c.Feeds {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("feeds[%d]: empty name", i))
		} else if _, ok := seen[f.Name]; ok {
			errs = append(errs, fmt.Errorf("feeds[%d]: duplicate name %q", i, f.Name))
		}
		seen[f.Name] = struct{}{}
		if f.URL == "" {
			errs = append(errs, fmt.Errorf("feeds[%d] %q: empty url", i, f.Name))
		}
		switch domain.RuleOrder(f.RuleOrder) {
		case domain.DisqualifyFirst, domain.QualifyFirst:
		default:
			errs = append(errs, fmt.Errorf("feeds[%d] %q: unknown rule_order %q", i, f.Name, f.RuleOrder))
		}
		switch domain.GUIDPolicy(f.GUID) {
		case domain.GUIDNone, domain.GUIDLink:
		default:
			errs = append(errs, fmt.Errorf("feeds[%d] %q: unknown guid policy %q", i, f.Name, f.GUID))
		}
	}
	return errors.Join(errs...)
}

func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(raw)
}

// Parse разбирает YAML. Переменные окружения подставляются только в скалярные
// поля инфраструктуры; правила фидов остаются как есть, в них бывает "$".
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	cfg.expandEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
