package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the process-wide configuration, constructed once at startup and
// passed by reference into the services that need it.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		// URI may contain a <PASSWORD> placeholder filled from Password.
		URI      string `yaml:"uri"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		// ExpiresInRaw is the yaml form ("24h", "30m"); ExpiresIn is the
		// parsed value.
		ExpiresInRaw string        `yaml:"expires_in"`
		ExpiresIn    time.Duration `yaml:"-"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost       string        `yaml:"smtp_host"`
		SMTPPort       int           `yaml:"smtp_port"`
		SMTPUsername   string        `yaml:"smtp_user"`
		SMTPPassword   string        `yaml:"smtp_password"`
		FromEmail      string        `yaml:"from_email"`
		SendTimeoutRaw string        `yaml:"send_timeout"`
		SendTimeout    time.Duration `yaml:"-"`
	} `yaml:"email"`
}

// Load reads config from an optional yaml file (CONFIG_PATH, default
// config/config.yaml), then applies environment overrides.
func Load() (*Config, error) {
	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	}

	if cfg.JWT.ExpiresInRaw != "" {
		d, err := time.ParseDuration(cfg.JWT.ExpiresInRaw)
		if err != nil {
			return nil, fmt.Errorf("parse jwt.expires_in: %w", err)
		}
		cfg.JWT.ExpiresIn = d
	}
	if cfg.Email.SendTimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.Email.SendTimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("parse email.send_timeout: %w", err)
		}
		cfg.Email.SendTimeout = d
	}

	applyEnv(cfg)

	if cfg.Database.URI == "" {
		return nil, fmt.Errorf("database uri is not configured")
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Database.Name = "bookstore"
	cfg.JWT.ExpiresIn = 24 * time.Hour
	cfg.Email.SMTPPort = 587
	cfg.Email.SendTimeout = 10 * time.Second
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URI = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DATABASE_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JWT.ExpiresIn = d
		}
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = port
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.Email.SMTPUsername = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Email.FromEmail = v
	}
}

// MongoURI returns the connection string with the credential substituted.
func (c *Config) MongoURI() string {
	return strings.Replace(c.Database.URI, "<PASSWORD>", c.Database.Password, 1)
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
