package xlog

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var _ fxevent.Logger = (*FxXLogger)(nil)

// FxXLogger prints the fx lifecycle events under the "fx" component.
// The dependency graph events are debug only.
type FxXLogger struct {
	logger XLogger
}

func (l *FxXLogger) LogEvent(event fxevent.Event) {
	if l == nil || l.logger == nil {
		return
	}

	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.logger.Debug("hook on start",
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
		)
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.logger.Error(e.Err, "hook on start failed",
				zap.String("function", e.FunctionName),
				zap.String("caller", e.CallerName),
				zap.Duration("in", e.Runtime),
			)
		}
	case *fxevent.OnStopExecuting:
		l.logger.Debug("hook on stop",
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
		)
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.logger.Error(e.Err, "hook on stop failed",
				zap.String("function", e.FunctionName),
				zap.String("caller", e.CallerName),
				zap.Duration("in", e.Runtime),
			)
		}
	case *fxevent.Supplied:
		if e.Err != nil {
			l.logger.Error(e.Err, "supply failed", zap.String("type", e.TypeName))
		} else {
			l.logger.Debug("supplied", zap.String("type", e.TypeName))
		}
	case *fxevent.Provided:
		for _, rtype := range e.OutputTypeNames {
			l.logger.Debug("provided",
				zap.String("type", rtype),
				zap.String("constructor", e.ConstructorName),
			)
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "provide failed", zap.String("constructor", e.ConstructorName))
		}
	case *fxevent.Invoking:
		l.logger.Debug("invoking", zap.String("function", e.FunctionName))
	case *fxevent.Invoked:
		if e.Err != nil {
			l.logger.Error(e.Err, "invoke failed", zap.String("function", e.FunctionName))
		}
	case *fxevent.Stopping:
		l.logger.Info("stopping", zap.String("signal", e.Signal.String()))
	case *fxevent.Stopped:
		if e.Err != nil {
			l.logger.Error(e.Err, "stop failed")
		}
	case *fxevent.RollingBack:
		l.logger.Warn("start failed, rolling back", zap.Error(e.StartErr))
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.logger.Error(e.Err, "roll back failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.logger.Error(e.Err, "start failed")
		} else {
			l.logger.Debug("running")
		}
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			l.logger.Error(e.Err, "custom logger initialization failed")
		} else {
			l.logger.Debug("custom logger initialized", zap.String("constructor", e.ConstructorName))
		}
	default:
	}
}

// NewFxXLogger shares the level with the parent logger.
func NewFxXLogger(logger XLogger) *FxXLogger {
	if logger == nil {
		logger = NewNopXLogger()
	}
	return &FxXLogger{logger: logger.Named("fx")}
}
