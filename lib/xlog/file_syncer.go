package xlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/safeopen"
	"go.uber.org/zap/zapcore"
)

var (
	errXLoggerFileIsDir     = errors.New("[xlog] log file is a dir")
	errXLoggerEmptyFilePath = errors.New("[xlog] empty log file path")
)

var _ zapcore.WriteSyncer = (*fileSyncer)(nil)

// fileSyncer appends the logs into a single file beneath the dir.
// The file is opened by the first write.
type fileSyncer struct {
	dir       string
	filename  string
	file      *os.File
	wroteSize uint64
	lock      sync.Mutex
}

func (syncer *fileSyncer) Write(p []byte) (n int, err error) {
	syncer.lock.Lock()
	defer syncer.lock.Unlock()

	if syncer.file == nil {
		if err = syncer.openOrCreate(); err != nil {
			return 0, err
		}
	}
	n, err = syncer.file.Write(p)
	syncer.wroteSize += uint64(n)
	return
}

func (syncer *fileSyncer) Sync() error {
	syncer.lock.Lock()
	defer syncer.lock.Unlock()

	if syncer.file == nil {
		return nil
	}
	return syncer.file.Sync()
}

func (syncer *fileSyncer) Close() error {
	syncer.lock.Lock()
	defer syncer.lock.Unlock()

	if syncer.file == nil {
		return nil
	}
	err := syncer.file.Close()
	syncer.file = nil
	return err
}

func (syncer *fileSyncer) openOrCreate() error {
	if err := os.MkdirAll(syncer.dir, 0o755); err != nil {
		return err
	}

	pathToLog := filepath.Join(syncer.dir, syncer.filename)
	info, err := os.Stat(pathToLog)
	if err != nil && !os.IsNotExist(err) {
		return err
	} else if err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s", errXLoggerFileIsDir, pathToLog)
	}

	f, err := safeopen.OpenFileBeneath(syncer.dir, syncer.filename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	syncer.file = f
	if info != nil {
		syncer.wroteSize = uint64(info.Size())
	}
	return nil
}

func newFileSyncer(path string) (*fileSyncer, error) {
	if path = strings.TrimSpace(path); len(path) <= 0 {
		return nil, errXLoggerEmptyFilePath
	}
	dir, filename := filepath.Split(filepath.Clean(path))
	if len(filename) <= 0 || filename == "." || filename == string(filepath.Separator) {
		return nil, errXLoggerEmptyFilePath
	}
	if len(dir) <= 0 {
		dir = "."
	}
	return &fileSyncer{
		dir:      dir,
		filename: filename,
	}, nil
}

// WithXLoggerFile appends the logs into the file, the missing dirs are
// created. It takes precedence over the writer type.
func WithXLoggerFile(path string) XLoggerOption {
	return func(cfg *loggerCfg) error {
		syncer, err := newFileSyncer(path)
		if err != nil {
			return err
		}
		cfg.ws = syncer
		return nil
	}
}
