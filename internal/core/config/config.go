package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultPath 未指定 CONFIG_PATH 时读取的配置文件；不存在时只用默认值
const DefaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host            string
	Port            int
	BasePath        string
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

// AdminHTTP 运维端口（/health、/metrics）
type AdminHTTP struct {
	Enabled bool
	Host    string
	Port    int
}

type App struct {
	Name  string
	Env   string
	Mode  string // gin 模式：debug / release / test
	HTTP  HTTP
	Admin AdminHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
	Required          bool // 账号接口是否要求 Bearer 令牌
}

type Redis struct {
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	ListTTLSec int    `mapstructure:"listTTLSec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Limits struct {
	RPS               float64
	Burst             int
	PerIP             bool
	PerIPMaxClients   int // 每 IP 限速跟踪的客户端上限
	MaxConcurrent     int64
	MaxBodyMB         int64
	RequestTimeoutSec int
}

type CORS struct {
	AllowOrigins []string
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	Limits Limits
	CORS   CORS
}

func (j JWT) TTL() time.Duration { return time.Duration(j.AccessTokenTTLMin) * time.Minute }

func (r Redis) ListTTL() time.Duration { return time.Duration(r.ListTTLSec) * time.Second }

func (l Limits) RequestTimeout() time.Duration {
	return time.Duration(l.RequestTimeoutSec) * time.Second
}

func (l Limits) MaxBodyBytes() int64 { return l.MaxBodyMB << 20 }

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "account-service")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 3000)
	v.SetDefault("app.http.basePath", "/v1")
	v.SetDefault("app.http.readTimeoutSec", 15)
	v.SetDefault("app.http.writeTimeoutSec", 15)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.admin.enabled", false)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 9090)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.issuer", "account-service")
	v.SetDefault("jwt.accessTokenTTLMin", 60)
	v.SetDefault("jwt.required", false)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:account-service.db?_foreign_keys=on")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.listTTLSec", 30)

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.perIP", false)
	v.SetDefault("limits.perIPMaxClients", 10000)
	v.SetDefault("limits.maxConcurrent", 300)
	v.SetDefault("limits.maxBodyMB", 50)
	v.SetDefault("limits.requestTimeoutSec", 10)

	v.SetDefault("cors.allowOrigins", []string{"*"})
}

// Load 读取配置：默认值 < 文件 < APP_ 前缀环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
