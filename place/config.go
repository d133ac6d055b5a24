package place

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAboutYears is how far an "about" date reaches when not configured.
const DefaultAboutYears = 50

// Config holds the display preferences.
type Config struct {
	// PlaceAuto builds titles from the hierarchy; when false the stored
	// place title is shown.
	PlaceAuto bool `yaml:"place_auto"`
	// DefaultFormat is the format index used when a caller passes -1.
	DefaultFormat int    `yaml:"default_format"`
	AboutYears    int    `yaml:"about_years"`
	Separator     string `yaml:"separator"`
}

// DefaultConfig returns the built-in preferences.
func DefaultConfig() Config {
	return Config{PlaceAuto: true, AboutYears: DefaultAboutYears, Separator: ", "}
}

// LoadConfig reads preferences from a YAML file on top of the defaults, then
// applies PLACEFMT_PLACE_AUTO, PLACEFMT_FORMAT and PLACEFMT_ABOUT_YEARS. An
// empty path only applies the environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, err
		}
	}
	if v := os.Getenv("PLACEFMT_PLACE_AUTO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, err
		}
		cfg.PlaceAuto = b
	}
	if v := os.Getenv("PLACEFMT_FORMAT"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, err
		}
		cfg.DefaultFormat = n
	}
	if v := os.Getenv("PLACEFMT_ABOUT_YEARS"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, err
		}
		cfg.AboutYears = n
	}
	if cfg.Separator == "" {
		cfg.Separator = ", "
	}
	if cfg.AboutYears <= 0 {
		cfg.AboutYears = DefaultAboutYears
	}
	return cfg, nil
}
