package xlog

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

func TestFxXLogger_LogEvent(t *testing.T) {
	testcases := []struct {
		name     string
		event    fxevent.Event
		contains string
	}{
		{"onStartExecuting", &fxevent.OnStartExecuting{FunctionName: "f1", CallerName: "c1"}, `"function":"f1"`},
		{"onStartExecuted_err", &fxevent.OnStartExecuted{FunctionName: "f2", Err: errors.New("fx error 2")}, "fx error 2"},
		{"onStopExecuting", &fxevent.OnStopExecuting{FunctionName: "f3", CallerName: "c3"}, `"caller":"c3"`},
		{"onStopExecuted_err", &fxevent.OnStopExecuted{FunctionName: "f4", Err: errors.New("fx error 4")}, "fx error 4"},
		{"supplied", &fxevent.Supplied{TypeName: "*main.runConfig"}, `"type":"*main.runConfig"`},
		{"supplied_err", &fxevent.Supplied{TypeName: "t", Err: errors.New("fx error 6")}, "fx error 6"},
		{"provided", &fxevent.Provided{ConstructorName: "newTree", OutputTypeNames: []string{"tree.BSTree"}}, `"constructor":"newTree"`},
		{"provided_err", &fxevent.Provided{ConstructorName: "c", Err: errors.New("fx error 8")}, "fx error 8"},
		{"invoking", &fxevent.Invoking{FunctionName: "run"}, `"msg":"invoking"`},
		{"invoked_err", &fxevent.Invoked{FunctionName: "run", Err: errors.New("fx error 10")}, "fx error 10"},
		{"stopping", &fxevent.Stopping{Signal: os.Interrupt}, `"signal":"interrupt"`},
		{"stopped_err", &fxevent.Stopped{Err: errors.New("fx error 12")}, "fx error 12"},
		{"rollingBack", &fxevent.RollingBack{StartErr: errors.New("fx error 13")}, "fx error 13"},
		{"rolledBack_err", &fxevent.RolledBack{Err: errors.New("fx error 14")}, "fx error 14"},
		{"started", &fxevent.Started{}, `"msg":"running"`},
		{"started_err", &fxevent.Started{Err: errors.New("fx error 16")}, "fx error 16"},
		{"loggerInitialized", &fxevent.LoggerInitialized{ConstructorName: "c17"}, `"constructor":"c17"`},
	}

	w := &testMemOutWriter{}
	parent := NewXLogger(
		WithXLoggerWriteSyncer(zapcore.AddSync(w)),
		WithXLoggerLevel(LogLevelDebug),
	)
	logger := NewFxXLogger(parent)
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			w.Reset()
			logger.LogEvent(tc.event)
			require.Contains(tt, string(w.data), tc.contains)
			require.Contains(tt, string(w.data), `"component":"fx"`)
		})
	}

	// Silent events.
	w.Reset()
	logger.LogEvent(&fxevent.OnStartExecuted{FunctionName: "ok"})
	logger.LogEvent(&fxevent.Invoked{FunctionName: "ok"})
	logger.LogEvent(&fxevent.Stopped{})
	require.Empty(t, w.data)
}

func TestFxXLogger_ParentLogLevelChanged(t *testing.T) {
	var logger *FxXLogger
	require.NotPanics(t, func() {
		logger.LogEvent(&fxevent.Started{})
		NewFxXLogger(nil).LogEvent(&fxevent.Started{})
	})

	w := &testMemOutWriter{}
	parent := NewXLogger(
		WithXLoggerWriteSyncer(zapcore.AddSync(w)),
		WithXLoggerLevel(LogLevelInfo),
	)
	logger = NewFxXLogger(parent)
	logger.LogEvent(&fxevent.Started{})
	require.Empty(t, w.data)

	parent.IncreaseLogLevel(zapcore.DebugLevel)
	logger.LogEvent(&fxevent.Started{})
	require.Contains(t, string(w.data), `"msg":"running"`)
}
