package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// AppDirName is the per-user configuration directory name.
const AppDirName = "trpg-json"

// DefaultSheetName is the worksheet the spreadsheet export appends to.
const DefaultSheetName = "search"

// Config holds application configuration
type Config struct {
	MonsterFiles []string
	SpellFiles   []string
	SheetName    string
	ConfigDir    string
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		// Default based on environment
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// UserConfigDir returns $XDG_CONFIG_HOME/trpg-json, falling back to
// ~/.config/trpg-json.
func UserConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppDirName), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// LoadConfig reads the TOML configuration file. An empty path selects
// default.toml in the user config directory; a missing default file is not
// an error. GM_-prefixed environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	configDir, err := UserConfigDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("GM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("export.sheet_name", DefaultSheetName)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(configDir)
		v.SetConfigName("default")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Debug().Str("config_dir", configDir).Msg("No config file found; using defaults")
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return &Config{
		MonsterFiles: resolvePaths(v.GetStringSlice("data.monsters"), home),
		SpellFiles:   resolvePaths(v.GetStringSlice("data.spells"), home),
		SheetName:    v.GetString("export.sheet_name"),
		ConfigDir:    configDir,
	}, nil
}

// resolvePaths makes relative paths relative to base.
func resolvePaths(paths []string, base string) []string {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if expanded, err := homedir.Expand(p); err == nil {
			p = expanded
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		resolved = append(resolved, p)
	}
	return resolved
}
