package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override config keys.
// STACKLOG_OUTPUT__REDUCED=true sets output.reduced.
const EnvPrefix = "STACKLOG_"

// Load reads the YAML file at path. Variables from envFile are loaded into
// the environment first when that file exists, then ${VAR} references are
// expanded and STACKLOG_ overrides for the output and sink sections applied.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expandedData := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// applyEnv only touches struct sections. Map entries would be replaced
// wholesale by a partial override, so sources and transforms are left alone.
func applyEnv(cfg *Config) error {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		if !strings.HasPrefix(key, "output.") && !strings.HasPrefix(key, "sink.") {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return fmt.Errorf("load env overrides: %w", err)
	}
	if len(k.Keys()) == 0 {
		return nil
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("apply env overrides: %w", err)
	}
	return nil
}
