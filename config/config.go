package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	MongoURI      string `env:"MONGO_URI"`
	DBName        string `env:"DB_NAME"`
	JWTSecret     string `env:"JWT_SECRET"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"https://www.klubnikacafe.com"`

	Admin    Admin    `envPrefix:"ADMIN_"`
	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
	SMTP     SMTP     `envPrefix:"EMAIL_"`
	SMS      SMS      `envPrefix:"SMS_"`
}

type Admin struct {
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

type Razorpay struct {
	KeyID     string `env:"KEY_ID"`
	KeySecret string `env:"KEY_SECRET"`
	BaseURL   string `env:"BASE_URL" envDefault:"https://api.razorpay.com/v1"`
}

type SMTP struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"465"`
	User     string `env:"USER"`
	Pass     string `env:"PASS"`
	FromName string `env:"FROM_NAME" envDefault:"Klubnika Cafe"`
}

type SMS struct {
	Endpoint string `env:"ENDPOINT"`
	APIKey   string `env:"API_KEY"`
	Sender   string `env:"SENDER" envDefault:"KLBNKA"`
}

// Load reads .env when present, parses the environment and validates that
// every secret needed to serve traffic is set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	missing := []string{}
	req := map[string]string{
		"MONGO_URI":           c.MongoURI,
		"DB_NAME":             c.DBName,
		"JWT_SECRET":          c.JWTSecret,
		"ADMIN_USERNAME":      c.Admin.Username,
		"ADMIN_PASSWORD":      c.Admin.Password,
		"RAZORPAY_KEY_ID":     c.Razorpay.KeyID,
		"RAZORPAY_KEY_SECRET": c.Razorpay.KeySecret,
		"EMAIL_HOST":          c.SMTP.Host,
		"EMAIL_USER":          c.SMTP.User,
		"EMAIL_PASS":          c.SMTP.Pass,
		"SMS_ENDPOINT":        c.SMS.Endpoint,
		"SMS_API_KEY":         c.SMS.APIKey,
	}
	for name, val := range req {
		if val == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		// map iteration order is random, keep the message stable
		sort.Strings(missing)
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
