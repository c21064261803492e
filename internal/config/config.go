package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type VisionConfig struct {
	Endpoint string `yaml:"endpoint"`
	Key      string `yaml:"key"`
	Timeout  int    `yaml:"timeout"` // seconds
}

func (v VisionConfig) TimeoutDuration() time.Duration {
	return time.Duration(v.Timeout) * time.Second
}

type ReasoningConfig struct {
	BaseURL     string  `yaml:"baseURL"`
	APIKey      string  `yaml:"apiKey"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	Timeout     int     `yaml:"timeout"` // seconds
}

func (r ReasoningConfig) TimeoutDuration() time.Duration {
	return time.Duration(r.Timeout) * time.Second
}

type QuotaConfig struct {
	Capacity      int `yaml:"capacity"`
	PeriodMinutes int `yaml:"periodMinutes"`
}

func (q QuotaConfig) Period() time.Duration {
	return time.Duration(q.PeriodMinutes) * time.Minute
}

type Config struct {
	Addr           string          `yaml:"addr"`
	SSLCert        string          `yaml:"sslCert"`
	SSLKey         string          `yaml:"sslKey"`
	StaticDir      string          `yaml:"staticDir"`
	RequestTimeout int             `yaml:"requestTimeout"` // seconds
	KnowledgeFile  string          `yaml:"knowledgeFile"`
	Vision         VisionConfig    `yaml:"vision"`
	Reasoning      ReasoningConfig `yaml:"reasoning"`
	Quota          QuotaConfig     `yaml:"quota"`
}

func DefaultConfig() *Config {
	return &Config{
		Addr:           "127.0.0.1:3000",
		StaticDir:      "web",
		RequestTimeout: 100,
		Vision: VisionConfig{
			Timeout: 30,
		},
		Reasoning: ReasoningConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
			Timeout:     60,
		},
		Quota: QuotaConfig{
			Capacity:      20,
			PeriodMinutes: 60,
		},
	}
}

func InitConfig(configPath string) (*Config, error) {
	conf := DefaultConfig()

	if err := LoadYAMLConfig(configPath, conf); err != nil {
		return nil, err
	}
	conf.applyEnv()

	return conf, nil
}

// Credentials usually come from the environment (or a .env file) rather than
// being committed to the config file. A non-empty env var wins.
func (c *Config) applyEnv() {
	if v := os.Getenv("VISION_ENDPOINT"); v != "" {
		c.Vision.Endpoint = v
	}
	if v := os.Getenv("VISION_API_KEY"); v != "" {
		c.Vision.Key = v
	}
	if v := os.Getenv("REASONING_BASE_URL"); v != "" {
		c.Reasoning.BaseURL = v
	}
	if v := os.Getenv("REASONING_API_KEY"); v != "" {
		c.Reasoning.APIKey = v
	}
	if v := os.Getenv("REASONING_MODEL"); v != "" {
		c.Reasoning.Model = v
	}
}

// Validate reports every missing upstream credential at once. The process
// must not start serving traffic without them.
func (c *Config) Validate() error {
	var missing []string
	if c.Vision.Endpoint == "" {
		missing = append(missing, "vision.endpoint / VISION_ENDPOINT")
	}
	if c.Vision.Key == "" {
		missing = append(missing, "vision.key / VISION_API_KEY")
	}
	if c.Reasoning.APIKey == "" {
		missing = append(missing, "reasoning.apiKey / REASONING_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required credentials: %s", strings.Join(missing, ", "))
	}
	if c.Quota.Capacity <= 0 {
		return fmt.Errorf("quota.capacity must be positive")
	}
	if c.Quota.PeriodMinutes <= 0 {
		return fmt.Errorf("quota.periodMinutes must be positive")
	}
	return nil
}
