// Package config loads the dashboard generator's settings from defaults,
// environment variables (VAYU_*), and an optional YAML config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the generator. Defaults reproduce the
// published dashboard exactly; overrides exist for paths and the focus city.
type Config struct {
	// DataDir is the directory holding the three CSV sources.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	CityDayFile    string `mapstructure:"city_day_file" yaml:"city_day_file"`
	CityHourFile   string `mapstructure:"city_hour_file" yaml:"city_hour_file"`
	StationDayFile string `mapstructure:"station_day_file" yaml:"station_day_file"`

	// OutputPath is where the HTML dashboard is written.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`

	// FocusCity drives the hourly-pattern and station charts.
	FocusCity string `mapstructure:"focus_city" yaml:"focus_city"`

	TrendCities      int `mapstructure:"trend_cities" yaml:"trend_cities"`
	ComparisonCities int `mapstructure:"comparison_cities" yaml:"comparison_cities"`
	StationCount     int `mapstructure:"station_count" yaml:"station_count"`
}

// Default returns the built-in configuration, matching the published
// dashboard's constants.
func Default() *Config {
	return &Config{
		DataDir:          ".",
		CityDayFile:      "city_day.csv",
		CityHourFile:     "city_hour.csv",
		StationDayFile:   "station_day.csv",
		OutputPath:       "dashboard.html",
		FocusCity:        "Delhi",
		TrendCities:      8,
		ComparisonCities: 12,
		StationCount:     12,
	}
}

// Save writes the given configuration to cfgFile, or to
// ~/.vayuview/config.yaml when cfgFile is empty.
func Save(c *Config, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".vayuview")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VAYU")
	v.AutomaticEnv()

	v.SetDefault("data_dir", ".")
	v.SetDefault("city_day_file", "city_day.csv")
	v.SetDefault("city_hour_file", "city_hour.csv")
	v.SetDefault("station_day_file", "station_day.csv")
	v.SetDefault("output_path", "dashboard.html")
	v.SetDefault("focus_city", "Delhi")
	v.SetDefault("trend_cities", 8)
	v.SetDefault("comparison_cities", 12)
	v.SetDefault("station_count", 12)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".vayuview"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// The config file is optional; defaults and env cover everything.
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
