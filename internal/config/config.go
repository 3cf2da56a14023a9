package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"inventory_dev_v2_202608/internal/middleware"
)

// ==================== Config 应用配置 ====================

// Config 应用配置，进程启动时从环境变量加载一次
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	JWT      JWTSettings
	Webhook  WebhookConfig
	Task     TaskConfig
}

type ServerConfig struct {
	AppEnv string
	Port   string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTSettings struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type WebhookConfig struct {
	// URL 为空时通知推送关闭
	URL string
}

type TaskConfig struct {
	StockSweepEnabled bool
	// Cron 表达式，支持秒级字段
	StockSweepSpec string
}

// Load 加载配置
// JWT_SECRET 缺失直接退出，不允许带默认密钥上线
func Load() *Config {
	// .env 存在时加载，不存在不是错误
	_ = godotenv.Load()

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		log.Fatal("配置错误: 必须设置 JWT_SECRET 环境变量")
	}

	return &Config{
		Server: ServerConfig{
			AppEnv: getEnv("APP_ENV", "dev"),
			Port:   getEnv("SERVER_PORT", "8080"),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOGGER_LEVEL", "debug"),
			Encoding: getEnv("LOGGER_ENCODING", "console"),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "inventory"),
			Password: getEnv("POSTGRES_PASSWORD", "inventory"),
			DBName:   getEnv("POSTGRES_DB", "inventory"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		JWT: JWTSettings{
			Secret:          secret,
			AccessTokenTTL:  getEnvDuration("JWT_ACCESS_TTL", 2*time.Hour),
			RefreshTokenTTL: getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
		},
		Webhook: WebhookConfig{
			URL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Task: TaskConfig{
			StockSweepEnabled: getEnvBool("STOCK_SWEEP_ENABLED", true),
			// 默认每小时整点扫一次
			StockSweepSpec: getEnv("STOCK_SWEEP_SPEC", "0 0 * * * *"),
		},
	}
}

// DSN 拼接 Postgres 连接字符串
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// JWTConfig 转换成中间件使用的 JWT 配置
func (c *Config) JWTConfig() *middleware.JWTConfig {
	return &middleware.JWTConfig{
		SecretKey:       c.JWT.Secret,
		AccessTokenTTL:  c.JWT.AccessTokenTTL,
		RefreshTokenTTL: c.JWT.RefreshTokenTTL,
		Issuer:          "inventory-backend",
	}
}

// ==================== 环境变量工具 ====================

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
