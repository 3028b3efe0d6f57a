package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"stage-game-service/internal/domain"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Cache struct {
		TTL string `yaml:"ttl"`
	} `yaml:"cache"`
	Game struct {
		RevealDelay   string `yaml:"reveal_delay"`
		FinishDelay   string `yaml:"finish_delay"`
		PassThreshold int    `yaml:"pass_threshold"`
		AutoFinish    *bool  `yaml:"auto_finish"`
		DefaultCoins  int    `yaml:"default_coins"`
		DefaultXP     int    `yaml:"default_xp"`
	} `yaml:"game"`
	Locale struct {
		Default  string `yaml:"default"`
		Fallback string `yaml:"fallback"`
	} `yaml:"locale"`
	Log struct {
		Env string `yaml:"env"`
	} `yaml:"log"`
}

// Load reads YAML config from path. A missing file yields the zero config,
// which every consumer fills with defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// GameConfig maps the game section onto runtime parameters, keeping the
// canonical defaults for anything unset.
func (c Config) GameConfig() domain.GameConfig {
	gc := domain.DefaultGameConfig()
	gc.RevealDelay = TTLDuration(c.Game.RevealDelay, gc.RevealDelay)
	gc.FinishDelay = TTLDuration(c.Game.FinishDelay, gc.FinishDelay)
	if c.Game.PassThreshold > 0 {
		gc.PassThreshold = c.Game.PassThreshold
	}
	if c.Game.AutoFinish != nil {
		gc.AutoFinish = *c.Game.AutoFinish
	}
	if c.Game.DefaultCoins > 0 {
		gc.DefaultCoins = c.Game.DefaultCoins
	}
	if c.Game.DefaultXP > 0 {
		gc.DefaultXP = c.Game.DefaultXP
	}
	return gc
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
