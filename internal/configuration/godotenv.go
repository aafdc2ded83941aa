package configuration

import (
	"fmt"

	"github.com/joho/godotenv"
)

// GodotenvProvider is an implementation wrapping the Godotenv framework.
type GodotenvProvider struct{}

// Read reads generic Unix-type configuration files into a map (map[key]value).
func (*GodotenvProvider) Read(filenames ...string) (map[string]string, error) {
	data, err := godotenv.Read(filenames...)
	if err != nil {
		return data, fmt.Errorf("(config-godotenv) %w", err)
	}

	return data, nil
}

// Write writes a map (map[key]value) as a Unix-type configuration file.
func (*GodotenvProvider) Write(envMap map[string]string, filename string) error {
	if err := godotenv.Write(envMap, filename); err != nil {
		return fmt.Errorf("(config-godotenv) %w", err)
	}

	return nil
}
