package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	envFile   string
	flagSetup sync.Once
)

// MustNew loads a config struct from the environment or panics. Intended for
// main() wiring only.
func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(fmt.Sprintf("config: load %T: %v", conf, err))
	}
	return conf
}

// New populates T from environment variables carrying the given prefix. An
// env file is exported into the process environment first: the one named by
// the -env flag when set, otherwise ./.env when it exists.
func New[T any](prefix string) (*T, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, fmt.Errorf("config: process %q: %w", prefix, err)
	}
	return &conf, nil
}

func loadEnvFile() error {
	flagSetup.Do(func() {
		if flag.Lookup("env") == nil {
			flag.StringVar(&envFile, "env", "", "path to .env file")
		}
		if !flag.Parsed() {
			flag.Parse()
		}
	})

	path := strings.TrimSpace(envFile)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	info, err := os.Stat(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: env file %s: %w", path, err)
	}
	if info.IsDir() {
		if !explicit {
			return nil
		}
		return fmt.Errorf("config: env file %s is a directory", path)
	}

	return exportEnvironment(path)
}

// exportEnvironment reads the env file with viper and promotes every setting
// to a real environment variable, so envconfig sees one uniform source.
func exportEnvironment(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	for key, value := range v.AllSettings() {
		if err := os.Setenv(strings.ToUpper(key), fmt.Sprint(value)); err != nil {
			return err
		}
	}
	return nil
}
