// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/bikeshare/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Data   DataConfig            `toml:"data"`
	Log    LogConfig             `toml:"log"`
	Cities map[string]CityConfig `toml:"cities"`
}

// DataConfig maps data source settings.
type DataConfig struct {
	Dir *string `toml:"dir"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// CityConfig overrides the source file of a known city.
type CityConfig struct {
	File *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ResolveCities applies per-city file overrides to the built-in city table.
func (c FileConfig) ResolveCities() ([]model.City, error) {
	cities := model.DefaultCities()
	known := make(map[string]int, len(cities))
	for i, city := range cities {
		known[city.Name] = i
	}
	names := make([]string, 0, len(c.Cities))
	for name := range c.Cities {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		idx, ok := known[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown city %q in config (known: %s)", name, strings.Join(cityNames(cities), ", "))
		}
		override := c.Cities[name]
		if override.File == nil {
			continue
		}
		file := strings.TrimSpace(*override.File)
		if file == "" {
			return nil, fmt.Errorf("city %q: file must not be empty", name)
		}
		cities[idx].File = file
	}
	return cities, nil
}

func cityNames(cities []model.City) []string {
	names := make([]string, len(cities))
	for i, city := range cities {
		names[i] = city.Name
	}
	return names
}
