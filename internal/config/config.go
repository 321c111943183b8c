// Package config provides runtime configuration values for the service.
package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds configuration knobs for the HTTP server, logging and the demo.
type Config struct {
	HTTPAddr         string
	ShutdownTimeout  time.Duration
	LogLevel         string
	LogFormat        string
	DemoWorkerID     uint64
	DemoInitialState uint64
	DemoTasks        int
}

var defaults = map[string]string{
	"http_addr":          ":8080",
	"shutdown_timeout":   "15",
	"log_level":          "info",
	"log_format":         "json",
	"demo_worker_id":     "1",
	"demo_initial_state": "0",
	"demo_tasks":         "3",
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()
	return v
}

func getstr(v *viper.Viper, key string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return defaults[key]
}

func atoi(v *viper.Viper, key string) int {
	n, err := strconv.Atoi(getstr(v, key))
	if err != nil {
		n, _ = strconv.Atoi(defaults[key])
	}
	return n
}

func atou(v *viper.Viper, key string) uint64 {
	n, err := strconv.ParseUint(getstr(v, key), 10, 64)
	if err != nil {
		n, _ = strconv.ParseUint(defaults[key], 10, 64)
	}
	return n
}

func fromViper(v *viper.Viper) Config {
	return Config{
		HTTPAddr:         getstr(v, "http_addr"),
		ShutdownTimeout:  time.Duration(atoi(v, "shutdown_timeout")) * time.Second,
		LogLevel:         getstr(v, "log_level"),
		LogFormat:        getstr(v, "log_format"),
		DemoWorkerID:     atou(v, "demo_worker_id"),
		DemoInitialState: atou(v, "demo_initial_state"),
		DemoTasks:        atoi(v, "demo_tasks"),
	}
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return fromViper(newViper())
}

// LoadFile reads a YAML config file, then applies environment overrides.
func LoadFile(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return fromViper(v), nil
}
