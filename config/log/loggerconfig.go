package log

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	Logger  *zap.Logger
	String  = zap.String
	Any     = zap.Any
	Int     = zap.Int
	Float64 = zap.Float64
)

func init() {
	// replaced by InitLogger at startup; keeps early callers and tests safe
	Logger = zap.NewNop()
}

// InitLogger sets up the global zap logger.
// logpath is the log directory, loglevel is the minimum level written.
func InitLogger(logpath string, loglevel string) {
	// Hourly log file splitting
	pathname := fmt.Sprintf("%s/%v.log", logpath, time.Now().Format("2006-01-02_15"))
	hook := lumberjack.Logger{
		Filename:   pathname,
		MaxSize:    1,    // MB per file
		MaxBackups: 30,   // keep 30 backups
		MaxAge:     30,   // keep 30 days
		Compress:   true, // gzip rotated files
	}
	write := zapcore.AddSync(&hook)

	// debug -> info -> warn -> error
	var level zapcore.Level
	switch loglevel {
	case "debug":
		level = zap.DebugLevel
	case "info":
		level = zap.InfoLevel
	case "warn":
		level = zap.WarnLevel
	case "error":
		level = zap.ErrorLevel
	default:
		level = zap.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "linenum",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.FullCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	atomicLevel := zap.NewAtomicLevel()
	atomicLevel.SetLevel(level)

	var writes = []zapcore.WriteSyncer{write}
	// In development also mirror to the console
	if level == zap.DebugLevel {
		writes = append(writes, zapcore.AddSync(os.Stdout))
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(writes...),
		level,
	)

	Logger = zap.New(core, zap.AddCaller(), zap.Development())
	Logger.Info("Logger init success")
}
