package config

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const envPrefix = "APP"

var (
	instance *Config
	mu       sync.RWMutex
)

// Default 返回未加载任何配置文件时使用的默认配置
func Default() *Config {
	return &Config{
		Host:   "0.0.0.0",
		Port:   "8080",
		Prefix: "api",
		Mode:   ModeDebug,
		Store: Store{
			Driver:    "memory",
			TimeoutMs: 5000,
			Seed:      true,
		},
		Redis: Redis{
			Host: "127.0.0.1",
			Port: "6379",
		},
		JWT: JWT{
			AccessSecret: "innovation-hub-dev-secret",
			AccessExpire: 7 * 24 * 3600,
		},
		Log: Log{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
		Identity: Identity{
			Mode: "local",
		},
		Cors: Cors{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		OTel: OTel{
			ServiceName: "innovation-hub",
		},
	}
}

// Init 依次加载 .env、配置文件与 APP_ 前缀的环境变量，后者覆盖前者
func Init() {
	cfg, err := Load(configPath())
	if err != nil {
		panic(err)
	}
	Set(cfg)
}

// Load 读取指定路径的配置文件，文件不存在时仅使用默认值与环境变量
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		} else if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")
	return cfg, nil
}

// Set 替换全局配置，测试中也可使用
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

// Get 获取全局配置，未初始化时返回默认配置
func Get() *Config {
	mu.RLock()
	cfg := instance
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = Default()
	}
	return instance
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}
