// Package config loads environment driven settings into tagged structs.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)

var (
	mu     sync.Mutex
	cache  = make(map[reflect.Type]any)
	dotenv sync.Once
)

// Load fills v from the environment. A .env file in the working directory is
// read once, if present. Each config type is parsed only once; later calls
// for the same type get the cached value.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenv.Do(func() {
		// A missing .env file is fine.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(v).Elem()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	cache[key] = *v

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
