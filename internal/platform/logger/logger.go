package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Mode     string // "production" or "development"
	Filename string // optional, enables rotated JSON file output
}

func init() {
	l, err := build(Options{Mode: "development"})
	if err == nil {
		zap.ReplaceGlobals(l)
	}
}

// Setup replaces the global logger. Services call it once after loading config.
func Setup(opts Options) error {
	l, err := build(opts)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(l)
	return nil
}

func build(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Mode == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if opts.Filename == "" {
		return cfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	}

	rotating := &lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    64,
		MaxBackups: 7,
		MaxAge:     7,
	}
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(rotating), cfg.Level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(os.Stdout), cfg.Level),
	)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

func Info(msg string, v ...interface{}) {
	zap.S().Infof(msg, v...)
}

func Warn(msg string, v ...interface{}) {
	zap.S().Warnf(msg, v...)
}

// Error logs msg with err attached. Non-nil extra values are logged under a
// single "context" key: the value itself when there is one, a list otherwise.
func Error(msg string, err error, v ...interface{}) {
	zap.S().Errorw(msg, errorFields(err, v)...)
}

func errorFields(err error, v []interface{}) []interface{} {
	fields := make([]interface{}, 0, 4)
	if err != nil {
		fields = append(fields, "error", err)
	}
	extras := make([]interface{}, 0, len(v))
	for _, extra := range v {
		if extra != nil {
			extras = append(extras, extra)
		}
	}
	switch len(extras) {
	case 0:
	case 1:
		fields = append(fields, "context", extras[0])
	default:
		fields = append(fields, "context", extras)
	}
	return fields
}

func Sync() {
	_ = zap.L().Sync()
}
