package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the whole runtime configuration of the simulator.
type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Control   ControlConfig   `mapstructure:"control"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	MQTT      MQTTConfig      `mapstructure:"mqtt"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DBConfig selects the backend of the control event log.
// An empty sqlite DSN keeps the log in memory.
type DBConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | mysql | postgres
	DSN    string `mapstructure:"dsn"`
}

type ControlConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type SimulatorConfig struct {
	Seed uint64 `mapstructure:"seed"` // 0 = non-deterministic
}

type MQTTConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Broker          string        `mapstructure:"broker"`
	ClientID        string        `mapstructure:"client_id"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	TopicPrefix     string        `mapstructure:"topic_prefix"`
	PublishInterval time.Duration `mapstructure:"publish_interval"`
}

const (
	envPrefix        = "SSLAB"
	debounceInterval = 2 * time.Second
)

var errNoBroker = errors.New("mqtt.enabled requires mqtt.broker")

// Loader reads config.yml from the given directories, environment (SSLAB_*)
// and built-in defaults. A missing file is not an error.
type Loader struct {
	v *viper.Viper

	mu         sync.Mutex
	lastChange time.Time
}

func NewLoader(dirs ...string) *Loader {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return &Loader{v: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "")
	v.SetDefault("control.delay", "500ms")
	v.SetDefault("simulator.seed", 0)
	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.topic_prefix", "sslab")
	v.SetDefault("mqtt.publish_interval", "5s")
}

// Load reads and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return l.decode()
}

// File returns the config file in use, or "" when running on defaults.
func (l *Loader) File() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Control.Delay < 0 {
		return fmt.Errorf("control.delay must not be negative, got %s", c.Control.Delay)
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return errNoBroker
	}
	if c.MQTT.PublishInterval <= 0 {
		c.MQTT.PublishInterval = 5 * time.Second
	}
	return nil
}

// Watch re-reads the file on every write and hands the new config to cb.
// Bursts of writes within debounceInterval collapse into one call.
// Returns false when there is no file to watch.
func (l *Loader) Watch(cb func(*Config, error)) bool {
	if l.File() == "" {
		return false
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if !l.accept(time.Now()) {
			return
		}
		cb(l.decode())
	})
	l.v.WatchConfig()
	return true
}

// accept applies the debounce window.
func (l *Loader) accept(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.lastChange.IsZero() && now.Sub(l.lastChange) < debounceInterval {
		return false
	}
	l.lastChange = now
	return true
}
