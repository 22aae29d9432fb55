package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/dmelton/plank/internal/log"
)

// Load reads the config file at path and unmarshals it over the
// defaults. A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debug(log.CatConfig, "No config file, using defaults", "path", path)
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := ValidateColumns(cfg.Columns); err != nil {
		return cfg, err
	}

	log.Debug(log.CatConfig, "Loaded config", "path", path)
	return cfg, nil
}
