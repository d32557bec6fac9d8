package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 应用配置。配置缺失或非法视为致命错误，启动时直接退出，
// 不允许带着坏配置降级运行。
type Config struct {
	AppID string `yaml:"app_id"` // 实例命名空间，用于表前缀 / redis key 前缀 / 默认 topic

	Server struct {
		Addr string `yaml:"addr"`
		Mode string `yaml:"mode"` // debug / release
	} `yaml:"server"`

	MySQL struct {
		DSN string `yaml:"dsn"`
	} `yaml:"mysql"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		AccessSecret  string `yaml:"access_secret"`
		RefreshSecret string `yaml:"refresh_secret"`
	} `yaml:"jwt"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"smtp"`

	Kafka struct {
		Brokers []string `yaml:"brokers"` // 为空则不启用，outbox 走日志 sender
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`
}

func defaults(c *Config) {
	c.AppID = "game_sync"
	c.Server.Addr = ":8080"
	c.Server.Mode = "debug"
	c.Redis.Addr = "127.0.0.1:6379"
	c.SMTP.Port = 587
}

// Load 读取 yaml 配置并叠加环境变量，最后做校验
func Load(path string) (*Config, error) {
	c := &Config{}
	defaults(c)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	loadEnv(c)

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// 环境变量覆盖，只列常用项
func loadEnv(c *Config) {
	if v := os.Getenv("GAMESYNC_APP_ID"); v != "" {
		c.AppID = v
	}
	if v := os.Getenv("GAMESYNC_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("GAMESYNC_MYSQL_DSN"); v != "" {
		c.MySQL.DSN = v
	}
	if v := os.Getenv("GAMESYNC_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("GAMESYNC_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("GAMESYNC_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = n
		}
	}
	if v := os.Getenv("GAMESYNC_JWT_ACCESS_SECRET"); v != "" {
		c.JWT.AccessSecret = v
	}
	if v := os.Getenv("GAMESYNC_JWT_REFRESH_SECRET"); v != "" {
		c.JWT.RefreshSecret = v
	}
	if v := os.Getenv("GAMESYNC_SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
}

func (c *Config) validate() error {
	c.AppID = sanitizeAppID(c.AppID)
	if c.AppID == "" {
		return errors.New("app_id required")
	}
	if c.MySQL.DSN == "" {
		return errors.New("mysql.dsn required")
	}
	if c.Redis.Addr == "" {
		return errors.New("redis.addr required")
	}
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return errors.New("jwt secrets required")
	}
	if c.SMTP.Host == "" || c.SMTP.From == "" {
		return errors.New("smtp.host and smtp.from required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("unknown server.mode %q", c.Server.Mode)
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = c.AppID + "_activity"
	}
	return nil
}

// sanitizeAppID 实例 id 只保留字母数字，其余替换为下划线
func sanitizeAppID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}
