package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Client configures the terminal registration client.
type Client struct {
	APIURL      string        `env:"SIGNUP_API_URL" envDefault:"http://localhost:3000"`
	HTTPTimeout time.Duration `env:"SIGNUP_HTTP_TIMEOUT" envDefault:"0s"`
	LogLevel    string        `env:"SIGNUP_LOG_LEVEL" envDefault:"warn"`
}

// Server configures the reference registration service.
type Server struct {
	Addr       string `env:"SIGNUP_SERVER_ADDR" envDefault:":3000"`
	LogLevel   string `env:"SIGNUP_LOG_LEVEL" envDefault:"info"`
	BcryptCost int    `env:"SIGNUP_BCRYPT_COST" envDefault:"10"`
}

// ClientFromEnv builds a Client config from environment variables so main stays lean.
func ClientFromEnv() (Client, error) {
	var cfg Client
	if err := env.Parse(&cfg); err != nil {
		return Client{}, fmt.Errorf("parse client env: %w", err)
	}
	if cfg.HTTPTimeout < 0 {
		return Client{}, fmt.Errorf("SIGNUP_HTTP_TIMEOUT must not be negative")
	}
	return cfg, nil
}

// ServerFromEnv builds a Server config from environment variables.
func ServerFromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse server env: %w", err)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Server{}, fmt.Errorf("SIGNUP_BCRYPT_COST must be between 4 and 31, got %d", cfg.BcryptCost)
	}
	return cfg, nil
}
