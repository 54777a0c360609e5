package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the process environment. Command-line
// flags take precedence over these.
type Env struct {
	ConfigPath string `env:"SFM_CONFIG"`
	Database   string `env:"SFM_DB" envDefault:"sfm.db"`
	Seed       int64  `env:"SFM_SEED"`
	LogLevel   string `env:"SFM_LOG_LEVEL" envDefault:"info"`
}

// LoadEnv parses Env from the environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
