package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const megabyte = 1 << 20

// RSyncWrite is a rotating and concurrent safe file-based logs writer
// for the zap core. A new file is opened once the current one would
// exceed the max size, and only the most recent files are kept.
type RSyncWrite struct {
	mu       sync.Mutex
	clock    Clocker
	file     *os.File
	folder   string
	env      string
	maxBytes int64
	maxFiles int
	size     int64
}

var _ zapcore.WriteSyncer = (*RSyncWrite)(nil)

// NewRSyncWriter builds the writer from the logging settings. Files are
// only created on first write.
func NewRSyncWriter(config *Config, clock Clocker) *RSyncWrite {
	env := "dev"
	if config.IsProduction {
		env = "prod"
	}
	return &RSyncWrite{
		clock:    clock,
		folder:   config.LogFolder,
		env:      env,
		maxBytes: int64(config.LogMaxSize) * megabyte,
		maxFiles: config.LogMaxFiles,
	}
}

// Close closes the current log file.
func (rsw *RSyncWrite) Close() error {
	rsw.mu.Lock()
	defer rsw.mu.Unlock()
	if rsw.file == nil {
		return nil
	}
	err := rsw.file.Close()
	rsw.file = nil
	return err
}

// Sync flushes the current log file if any.
func (rsw *RSyncWrite) Sync() error {
	rsw.mu.Lock()
	defer rsw.mu.Unlock()
	if rsw.file == nil {
		return nil
	}
	return rsw.file.Sync()
}

// Write appends p to the current file and rotates first when needed.
func (rsw *RSyncWrite) Write(p []byte) (int, error) {
	rsw.mu.Lock()
	defer rsw.mu.Unlock()
	pLen := int64(len(p))
	if pLen > rsw.maxBytes {
		return 0, fmt.Errorf("logging: entry of %d bytes exceeds max file size of %d bytes", pLen, rsw.maxBytes)
	}
	if rsw.file == nil || rsw.size+pLen > rsw.maxBytes {
		if err := rsw.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := rsw.file.Write(p)
	rsw.size += int64(n)
	return n, err
}

// rotate closes the current file, opens a fresh one then prunes old files.
func (rsw *RSyncWrite) rotate() error {
	if rsw.file != nil {
		if err := rsw.file.Close(); err != nil {
			return err
		}
		rsw.file = nil
	}
	if err := os.MkdirAll(rsw.folder, 0o700); err != nil {
		return err
	}

	path := CreateLogFilePath(rsw.folder, rsw.env, rsw.clock.Now())
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	rsw.file = file
	rsw.size = info.Size()
	return rsw.prune()
}

// prune removes the oldest log files of the same environment beyond maxFiles.
// File names start with their creation time so a lexical sort is chronological.
func (rsw *RSyncWrite) prune() error {
	if rsw.maxFiles <= 0 {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(rsw.folder, "*."+rsw.env+".log"))
	if err != nil {
		return err
	}
	if len(files) <= rsw.maxFiles {
		return nil
	}
	sort.Strings(files)
	for _, f := range files[:len(files)-rsw.maxFiles] {
		if err := os.Remove(f); err != nil {
			return err
		}
	}
	return nil
}

// SyncWrite implements zap.SyncWriter. This is a small hack to avoid usual
// `Handle is invalid` error when calling Sync() on logger using os.stdout.
type SyncWrite struct {
	out *os.File
}

func (sw *SyncWrite) Sync() error {
	return nil
}

func (sw *SyncWrite) Write(p []byte) (n int, err error) {
	return sw.out.Write(p)
}

// SetupLogging initializes the logger. Logs always go as json into w. In
// development they are printed to standard output as well. Only fatal level
// logs carry a stacktrace and every entry carries the build details.
func SetupLogging(config *Config, w zapcore.WriteSyncer, clock TickerClocker) (*zap.Logger, func() error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	if !config.IsProduction {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoderConfig.LevelKey = "lvl"
	encoderConfig.NameKey = "name"
	encoderConfig.MessageKey = "msg"
	encoderConfig.CallerKey = "caller"
	encoderConfig.StacktraceKey = "skt"

	level := zap.NewAtomicLevelAt(config.LogLevel)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), w, level)
	if !config.IsProduction {
		console := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(&SyncWrite{os.Stdout}), level)
		core = zapcore.NewTee(core, console)
	}

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.FatalLevel), zap.WithClock(clock)).
		Named("bookshelf").
		With(
			zap.String("app.commit", config.GitCommit),
			zap.String("app.tag", config.GitTag),
			zap.String("app.built", config.BuildTime),
		)

	flusher := func() error {
		if err := logger.Sync(); err != nil {
			return fmt.Errorf("[flush logs]: %w", err)
		}
		return nil
	}

	return logger, flusher
}

// CreateLogFilePath returns the path of a log file created at t for the given environment.
func CreateLogFilePath(folder, env string, t time.Time) string {
	name := fmt.Sprintf("%s.%09d.%s.log", t.Format("20060102.150405"), t.Nanosecond(), env)
	return filepath.Join(folder, name)
}
