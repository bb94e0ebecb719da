package config

import (
	"strings"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const envPrefix = "CRM_"

// Config holds everything the server reads from the environment. Variables
// are prefixed with CRM_ and the first underscore selects the section, so
// CRM_JWT_EXPIRY_HOURS maps to jwt.expiry_hours.
type Config struct {
	Env  string `koanf:"env"`
	Port string `koanf:"port"`

	DB struct {
		URL string `koanf:"url"`
	} `koanf:"db"`

	JWT struct {
		Secret      string `koanf:"secret"`
		ExpiryHours int    `koanf:"expiry_hours"`
	} `koanf:"jwt"`

	SMTP struct {
		Host     string `koanf:"host"`
		Port     int    `koanf:"port"`
		Username string `koanf:"username"`
		Password string `koanf:"password"`
		From     string `koanf:"from"`
	} `koanf:"smtp"`

	Admin struct {
		Email string `koanf:"email"`
	} `koanf:"admin"`

	Twilio struct {
		AccountSID string `koanf:"account_sid"`
		AuthToken  string `koanf:"auth_token"`
		FromNumber string `koanf:"from_number"`
	} `koanf:"twilio"`

	Digest struct {
		Enabled  bool   `koanf:"enabled"`
		Schedule string `koanf:"schedule"`
	} `koanf:"digest"`
}

// New reads the CRM_* environment variables into a Config.
func New() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			// First segment is the section, the rest stays flat:
			// JWT_EXPIRY_HOURS -> jwt.expiry_hours
			parts := strings.SplitN(key, "_", 2)
			return strings.Join(parts, "."), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWT.ExpiryHours <= 0 {
		cfg.JWT.ExpiryHours = 24
	}
	if cfg.Digest.Schedule == "" {
		cfg.Digest.Schedule = "0 9 * * *"
	}

	if cfg.DB.URL == "" {
		return nil, errors.New("CRM_DB_URL is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("CRM_JWT_SECRET is required")
	}

	return cfg, nil
}

// SMTPEnabled reports whether an outgoing mail host is configured.
func (c *Config) SMTPEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.From != ""
}

// TwilioEnabled reports whether SMS credentials are configured.
func (c *Config) TwilioEnabled() bool {
	return c.Twilio.AccountSID != "" && c.Twilio.AuthToken != "" && c.Twilio.FromNumber != ""
}
