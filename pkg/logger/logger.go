package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ==================== Zap 日志初始化 ====================

// Config 日志配置
type Config struct {
	Level    string // debug / info / warn / error
	Encoding string // console / json
}

// NewZapLogger 根据配置构建 SugaredLogger
// 级别解析失败时回退到 info
func NewZapLogger(cfg *Config) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "console"
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         encoding,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	return l.Sugar()
}
