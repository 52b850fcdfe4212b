package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const EnvPrefix = "DOCKD"

// 事件源后端
const (
	BackendUdev   = "udev"
	BackendKernel = "kernel"
)

var (
	ErrInvalidBackend  = errors.New("invalid event backend")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrEmptyHandler    = errors.New("handler path is empty")
)

// Config 只从环境变量读取, 没有配置文件
type Config struct {
	Handler   string `mapstructure:"handler"`
	Subsystem string `mapstructure:"subsystem"`
	Backend   string `mapstructure:"backend"`
	LogLevel  string `mapstructure:"log_level"`
}

// Load 读取 DOCKD_* 环境变量, 缺省值对应 ThinkPad 底座脚本
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("handler", "/usr/local/bin/thinkpad-dock.sh")
	v.SetDefault("subsystem", "usb")
	v.SetDefault("backend", BackendUdev)
	v.SetDefault("log_level", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Handler == "" {
		return ErrEmptyHandler
	}
	switch c.Backend {
	case BackendUdev, BackendKernel:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}
