package xlog

import (
	"go.uber.org/zap/zapcore"
)

var componentCoreEncoderCfg = zapcore.EncoderConfig{
	MessageKey:    "msg",
	LevelKey:      "lvl",
	TimeKey:       "ts",
	CallerKey:     "callAt",
	EncodeCaller:  zapcore.ShortCallerEncoder,
	FunctionKey:   coreKeyIgnored,
	NameKey:       "component",
	EncodeName:    zapcore.FullNameEncoder,
	StacktraceKey: coreKeyIgnored,
}

func newConsoleCore(
	lvlEnabler zapcore.LevelEnabler,
	encoder logEncoderType,
	ws zapcore.WriteSyncer,
	lvlEnc zapcore.LevelEncoder,
	tsEnc zapcore.TimeEncoder,
) zapcore.Core {
	if lvlEnabler == nil || ws == nil {
		return nil
	}
	config := componentCoreEncoderCfg
	config.EncodeLevel = lvlEnc
	config.EncodeTime = tsEnc
	return zapcore.NewCore(
		getEncoderByType(encoder)(config),
		ws,
		lvlEnabler,
	)
}
