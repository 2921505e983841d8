package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ryabkov82/scimerge/internal/errors"
)

// EnvPrefix - префикс переменных окружения, например SCIMERGE_MAX_GROUPS.
const EnvPrefix = "SCIMERGE_"

type Config struct {
	// convert: исходный файл; merge: папка с CSV
	InputPath  string `koanf:"input"`
	InputDir   string `koanf:"input_dir"`
	OutputPath string `koanf:"output"`

	// merge
	Pattern   string `koanf:"pattern" validate:"required"`
	TagColumn string `koanf:"tag_column" validate:"required"`
	TagWidth  int    `koanf:"tag_width" validate:"min=1"`
	Encoding  string `koanf:"encoding" validate:"required"`
	Recursive bool   `koanf:"recursive"`

	// convert
	OutputEncoding string `koanf:"output_encoding" validate:"required"`
	PadSubs        bool   `koanf:"pad_subs"`
	Strict         bool   `koanf:"strict"`
	MaxGroups      int    `koanf:"max_groups" validate:"min=0,max=100"`
	HeaderRow      int    `koanf:"header_row" validate:"min=0"`
	CSVHeaderRow   int    `koanf:"csv_header_row" validate:"min=0"`
	Sheet          string `koanf:"sheet"`
	RawValues      bool   `koanf:"raw_values"`

	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
}

// Load собирает конфигурацию: значения по умолчанию, затем JSON-файл,
// затем переменные окружения, затем overrides (флаги командной строки).
// Результат проверяется до любой работы с входными файлами.
func Load(configPath string, overrides ...func(*Config)) (*Config, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, errors.InvalidArgument("config file %s: %v", configPath, err)
		}
		if err := k.Load(file.Provider(configPath), json.Parser()); err != nil {
			return nil, errors.InvalidArgument("failed to load config %s: %v", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.InvalidArgument("failed to unmarshal config: %v", err)
	}

	for _, apply := range overrides {
		apply(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Нормализация путей
	if cfg.InputPath != "" {
		cfg.InputPath = filepath.Clean(cfg.InputPath)
	}
	if cfg.InputDir != "" {
		cfg.InputDir = filepath.Clean(cfg.InputDir)
	}
	if cfg.OutputPath != "" {
		cfg.OutputPath = filepath.Clean(cfg.OutputPath)
	}

	return &cfg, nil
}

// Validate проверяет значения полей.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.InvalidArgument("config validation failed: %v", err)
	}
	return nil
}

// envTransform: SCIMERGE_MAX_GROUPS -> max_groups
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
