package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 日志封装，底层使用zap，文件输出使用lumberjack滚动

type Options struct {
	Level      string // debug / info / warn / error
	FileName   string // 为空则只输出到控制台
	TimeFormat string
	MaxSize    int // 单个日志文件最大MB
	MaxBackups int
	MaxAge     int // 保留天数
	Compress   bool
	LocalTime  bool
	Console    bool // 是否同时输出到控制台
}

var lg *zap.Logger

func init() {
	// 未调用Init之前使用默认控制台日志，保证测试环境可用
	cfg := zap.NewDevelopmentConfig()
	lg, _ = cfg.Build(zap.AddCallerSkip(1))
}

// Init 根据配置初始化全局logger
func Init(opt Options) {
	level := zapcore.InfoLevel
	_ = level.Set(opt.Level)

	timeFormat := opt.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core
	if opt.FileName != "" {
		w := &lumberjack.Logger{
			Filename:   opt.FileName,
			MaxSize:    opt.MaxSize,
			MaxBackups: opt.MaxBackups,
			MaxAge:     opt.MaxAge,
			Compress:   opt.Compress,
			LocalTime:  opt.LocalTime,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(w),
			level,
		))
	}
	if opt.Console || opt.FileName == "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	lg = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

// Pair 构造一个结构化日志字段
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Debug(msg string, fields ...zap.Field) { lg.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { lg.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { lg.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { lg.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { lg.Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { lg.Sugar().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { lg.Sugar().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { lg.Sugar().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { lg.Sugar().Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { lg.Sugar().Fatalf(format, args...) }

// Sync 进程退出前刷盘
func Sync() {
	_ = lg.Sync()
}
