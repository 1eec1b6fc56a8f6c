package xlog

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type logLevel string

const (
	LogLevelDebug logLevel = "DEBUG"
	LogLevelInfo  logLevel = "INFO"
	LogLevelWarn  logLevel = "WARN"
	LogLevelError logLevel = "ERROR"
)

func (lvl logLevel) zapLevel() zapcore.Level {
	switch lvl {
	case LogLevelInfo:
		return zapcore.InfoLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	case LogLevelDebug:
		fallthrough
	default:
	}
	return zapcore.DebugLevel
}

func (lvl logLevel) String() string {
	return string(lvl)
}

type logEncoderType uint8

const (
	JSON logEncoderType = iota
	PlainText
	_encMax
)

type logOutWriterType uint8

const (
	StdOut logOutWriterType = iota
	StdErr
	testMemAsOut
	_writerMax
)

const (
	coreKeyIgnored = ""
)

var (
	writerLock = sync.RWMutex{}
	writerMap  = map[logOutWriterType]zapcore.WriteSyncer{
		StdOut: zapcore.Lock(os.Stdout),
		StdErr: zapcore.Lock(os.Stderr),
	}
	encoderMap = map[logEncoderType]func(cfg zapcore.EncoderConfig) zapcore.Encoder{
		JSON:      zapcore.NewJSONEncoder,
		PlainText: zapcore.NewConsoleEncoder,
	}
)

func getEncoderByType(typ logEncoderType) func(cfg zapcore.EncoderConfig) zapcore.Encoder {
	enc, ok := encoderMap[typ]
	if !ok {
		return zapcore.NewJSONEncoder
	}
	return enc
}

func getOutWriterByType(typ logOutWriterType) zapcore.WriteSyncer {
	writerLock.RLock()
	defer writerLock.RUnlock()
	out, ok := writerMap[typ]
	if !ok {
		return zapcore.Lock(os.Stdout)
	}
	return out
}

func setOutWriterByType(typ logOutWriterType, ws zapcore.WriteSyncer) {
	writerLock.Lock()
	defer writerLock.Unlock()
	writerMap[typ] = ws
}

// XLogger mainly implemented by Uber zap logger.
//
// The data structures only print the diagnostic notices through it,
// so the nop logger is the default one of them.
//
// Log format is not recommended, because it is low performance.
type XLogger interface {
	zap() *zap.Logger

	IncreaseLogLevel(level zapcore.Level)
	Level() string
	Sync() error
	// Named returns a child logger and the name is recorded
	// under the "component" key.
	Named(name string) XLogger

	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(err error, msg string, fields ...zap.Field)

	Logf(lvl zapcore.Level, format string, args ...any)
}
