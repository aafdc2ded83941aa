package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// AppConfiguration is the principal structure holding the application
// settings.
type AppConfiguration struct {
	StoreKind string
	StorePath string
	LogLevel  slog.Level
}

// LoadAppConfiguration reads the settings file at filename, when given, and
// applies environment overrides and defaults. A missing settings file is not
// an error.
func LoadAppConfiguration(configHandler *Handler, filename string) (*AppConfiguration, error) {
	configMap := map[string]string{}

	if filename != "" {
		data, err := configHandler.ReadGeneric(filename)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("(config-app) failed to read settings (%s): %w", filename, err)
		}
		if data != nil {
			configMap = data
		}
	}

	config := &AppConfiguration{
		StoreKind: strings.ToLower(configHandler.MapKeyToStringEnv(configMap, SettingStore)),
		StorePath: configHandler.MapKeyToStringEnv(configMap, SettingStorePath),
	}

	if config.StoreKind == "" {
		config.StoreKind = StoreKindDir
	}

	if config.StorePath == "" {
		path, err := DefaultStorePath(config.StoreKind)
		if err != nil {
			return nil, err
		}
		config.StorePath = path
	}

	level, err := ParseLogLevel(configHandler.MapKeyToStringEnv(configMap, SettingLogLevel))
	if err != nil {
		return nil, err
	}
	config.LogLevel = level

	return config, nil
}

// DefaultStorePath returns the store location below the user configuration
// directory.
func DefaultStorePath(kind string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("(config-app) failed to locate config dir: %w", err)
	}

	if strings.ToLower(kind) == StoreKindYAML {
		return filepath.Join(base, AppDir, "groups.yaml"), nil
	}

	return filepath.Join(base, AppDir, "groups"), nil
}

// ParseLogLevel converts a textual level; an empty value yields
// [DefaultLogLevel].
func ParseLogLevel(value string) (slog.Level, error) {
	if value == "" {
		value = DefaultLogLevel
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return level, fmt.Errorf("(config-app) invalid log level %q: %w", value, err)
	}

	return level, nil
}
