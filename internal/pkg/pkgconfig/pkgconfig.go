package pkgconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetFloat64(key string) float64
	GetDuration(key string) time.Duration
	Close() error
}

type Viper struct {
	v *viper.Viper
}

// NewViper reads the yaml file at path. Values from a local .env file and
// the process environment override it, with "." and "-" in keys mapped to "_".
func NewViper(path string) (*Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return &Viper{v: v}, nil
}

// NewFromMap builds a Config from in-memory values, mostly for tests and CLI defaults.
func NewFromMap(values map[string]any) *Viper {
	v := viper.New()
	for key, value := range values {
		v.Set(key, value)
	}
	return &Viper{v: v}
}

func (c *Viper) GetString(key string) string { return c.v.GetString(key) }

func (c *Viper) GetInt(key string) int { return c.v.GetInt(key) }

func (c *Viper) GetBool(key string) bool { return c.v.GetBool(key) }

func (c *Viper) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }

func (c *Viper) GetDuration(key string) time.Duration { return c.v.GetDuration(key) }

func (c *Viper) Close() error { return nil }
