// Package configuration reads the persisted group definitions and the
// application settings.
package configuration

import (
	"os"
	"strings"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
	Write(envMap map[string]string, filename string) error
}

// Handler reads and writes generic key/value configuration files.
type Handler struct {
	GenericHandler genericConfigProvider
}

func NewHandler(genericHandler genericConfigProvider) *Handler {
	return &Handler{
		GenericHandler: genericHandler,
	}
}

func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.GenericHandler.Read(filenames...)
}

func (c *Handler) WriteGeneric(envMap map[string]string, filename string) error {
	return c.GenericHandler.Write(envMap, filename)
}

func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToStringEnv prefers a non-empty environment variable named key over
// the value in envMap.
func (c *Handler) MapKeyToStringEnv(envMap map[string]string, key string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}

	return c.MapKeyToString(envMap, key)
}
