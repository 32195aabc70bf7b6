package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/appdirs"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
)

type App struct {
	LogLevel string `toml:"log_level"`
}

type Remote struct {
	BaseUrl    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`
	Proxy      string `toml:"proxy"`
	UserAgent  string `toml:"user_agent"`
}

type Server struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type Archive struct {
	Enabled     bool `toml:"enabled"`
	Concurrency int  `toml:"concurrency"`
	QueueSize   int  `toml:"queue_size"`
}

type Queue struct {
	Enabled       bool   `toml:"enabled"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Concurrency   int    `toml:"concurrency"`
}

type Config struct {
	App     App     `toml:"app"`
	Remote  Remote  `toml:"remote"`
	Server  Server  `toml:"server"`
	Archive Archive `toml:"archive"`
	Queue   Queue   `toml:"queue"`
}

var Conf = defaultConfig()

var resolveConfigPath = ResolveConfigPath

func defaultConfig() Config {
	return Config{
		App: App{
			LogLevel: "info",
		},
		Remote: Remote{
			BaseUrl:    "http://127.0.0.1:8000",
			TimeoutSec: 30,
			UserAgent:  "SyntheticRadioHost/1.0",
		},
		Server: Server{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Archive: Archive{
			Enabled:     false,
			Concurrency: 2,
			QueueSize:   32,
		},
		Queue: Queue{
			Enabled:     false,
			RedisAddr:   "localhost:6379",
			Concurrency: 2,
		},
	}
}

// ResolveConfigPath returns the config.toml location for the current layout.
func ResolveConfigPath() (string, error) {
	dirs, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(dirs.ConfigFile) == "" {
		return "", errors.New("config file path is empty")
	}
	return dirs.ConfigFile, nil
}

// LoadOrCreateConfig loads the config file into Conf, writing the defaults
// first when it does not exist yet. created reports whether it was written.
func LoadOrCreateConfig() (created bool, err error) {
	configPath, err := resolveConfigPath()
	if err != nil {
		return false, fmt.Errorf("resolve config path: %w", err)
	}

	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		Conf = defaultConfig()
		if err = SaveConfig(); err != nil {
			return false, err
		}
		log.GetLogger().Info("config file not found, wrote defaults", zap.String("path", configPath))
		return true, nil
	}

	loaded := defaultConfig()
	if _, err = toml.DecodeFile(configPath, &loaded); err != nil {
		return false, fmt.Errorf("decode config %s: %w", configPath, err)
	}
	Conf = loaded
	log.GetLogger().Info("config loaded", zap.String("path", configPath))
	return false, nil
}

// LoadConfig is the startup entry point: it loads or creates the config and
// logs failures instead of returning them.
func LoadConfig() bool {
	if _, err := LoadOrCreateConfig(); err != nil {
		log.GetLogger().Error("load config failed", zap.Error(err))
		return false
	}
	return true
}

// SaveConfig writes Conf to the config path, creating parent directories.
func SaveConfig() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer file.Close()

	if err = toml.NewEncoder(file).Encode(Conf); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// CheckConfig validates Conf.
func CheckConfig() error {
	base, err := url.Parse(strings.TrimSpace(Conf.Remote.BaseUrl))
	if err != nil {
		return fmt.Errorf("remote.base_url is invalid: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return fmt.Errorf("remote.base_url must be http or https, got %q", Conf.Remote.BaseUrl)
	}
	if base.Host == "" {
		return errors.New("remote.base_url has no host")
	}

	if Conf.Server.Port < 1 || Conf.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", Conf.Server.Port)
	}

	if Conf.Remote.Proxy != "" {
		if _, err = url.Parse(Conf.Remote.Proxy); err != nil {
			return fmt.Errorf("remote.proxy is invalid: %w", err)
		}
	}

	if Conf.Queue.Enabled && strings.TrimSpace(Conf.Queue.RedisAddr) == "" {
		return errors.New("queue.redis_addr is required when the queue is enabled")
	}
	return nil
}

func (c Config) RemoteTimeout() time.Duration {
	if c.Remote.TimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Remote.TimeoutSec) * time.Second
}

func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
