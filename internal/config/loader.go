package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/derive"
)

// Environment variables read by Load.
const (
	EnvPrefix     = "MEDALS_"
	EnvConfig     = "MEDALS_CONFIG"
	EnvDotEnv     = "MEDALS_ENV_FILE"
	defaultDotEnv = ".env"
)

// list-valued keys accept comma separated env values.
var listKeys = map[string]bool{
	"medal_years": true,
	"scale_keys":  true,
}

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New)
//  2. a YAML file if MEDALS_CONFIG is set
//  3. env vars with the MEDALS_ prefix, after loading the .env file named by
//     MEDALS_ENV_FILE (or ./.env when present)
func Load(_ context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// MEDALS_QUEUE_SIZE -> queue_size, keeping underscores to match koanf tags.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "config" || key == "env_file" {
			return "", nil
		}
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// ZeroFields makes a configured list or map replace the default
	// instead of being merged into it.
	cfg := New()
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			Result:           cfg,
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	}
	if err := k.UnmarshalWithConf("", cfg, conf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints and that every scale key is known.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := derive.ValidateKeys(cfg.ScaleKeys); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// loadDotEnv sets variables from a .env file without overriding the
// process environment. A missing default file is not an error.
func loadDotEnv() error {
	path := os.Getenv(EnvDotEnv)
	if path == "" {
		if err := godotenv.Load(defaultDotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return godotenv.Load(path)
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}
