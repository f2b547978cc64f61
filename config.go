package main

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

type Config struct {
	File         string `env:"SUBMISSION_REPORT_FILE" env-default:"subjects.txt"`
	Milestones   []int  `env:"SUBMISSION_REPORT_MILESTONES" env-default:"6,7,8" env-separator:","`
	BarWidth     int    `env:"SUBMISSION_REPORT_BAR_WIDTH" env-default:"40"`
	ExampleLimit int    `env:"SUBMISSION_REPORT_EXAMPLE_LIMIT" env-default:"10"`
	TableStyle   string `env:"SUBMISSION_REPORT_TABLE_STYLE" env-default:"auto"`
	LogLevel     string `env:"SUBMISSION_REPORT_LOG_LEVEL" env-default:"warn"`
}

func loadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "read environment config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BarWidth <= 0 {
		return errors.Errorf("SUBMISSION_REPORT_BAR_WIDTH must be positive, got %d", c.BarWidth)
	}
	if c.ExampleLimit < 0 {
		return errors.Errorf("SUBMISSION_REPORT_EXAMPLE_LIMIT must not be negative, got %d", c.ExampleLimit)
	}
	switch c.TableStyle {
	case tableStyleAuto, tableStyleRich, tableStylePlain:
	default:
		return errors.Errorf("SUBMISSION_REPORT_TABLE_STYLE must be %s, %s or %s, got %q", tableStyleAuto, tableStyleRich, tableStylePlain, c.TableStyle)
	}
	return nil
}
