package utils

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

var (
	zeroLogger      *zerolog.Logger
	zeroLoggerLevel = zerolog.InfoLevel
	zeroLogWriters  = []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}
	zeroLogContext  = map[string]string{}
	zeroLogLock     sync.Mutex
)

// Logger returns a zerolog.Logger singleton
func Logger() *zerolog.Logger {
	zeroLogLock.Lock()
	defer zeroLogLock.Unlock()

	if zeroLogger == nil {
		rebuildZeroLogger()
	}
	return zeroLogger
}

// SetLogVerbosity specifies the verbosity of global logger.
// 0 disables logging, 1 error, 2 warn, 3 info, 4 and above debug.
func SetLogVerbosity(verbosity int) {
	zeroLogLock.Lock()
	defer zeroLogLock.Unlock()

	zeroLoggerLevel = verbosityToLevel(verbosity)
	rebuildZeroLogger()
}

// AddLogFile adds a rotating file output with the specified max file size
// in megabytes. Entries written to the file are JSON encoded.
func AddLogFile(path string, maxSize int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	zeroLogLock.Lock()
	defer zeroLogLock.Unlock()

	zeroLogWriters = append(zeroLogWriters, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})
	rebuildZeroLogger()
	return nil
}

// SetLogOutput replaces every output of the global logger with w.
func SetLogOutput(w io.Writer) {
	zeroLogLock.Lock()
	defer zeroLogLock.Unlock()

	zeroLogWriters = []io.Writer{w}
	rebuildZeroLogger()
}

// SetLogContext sets the session id attached to every log entry.
func SetLogContext(session string) {
	zeroLogLock.Lock()
	defer zeroLogLock.Unlock()

	zeroLogContext["session"] = session
	rebuildZeroLogger()
}

func rebuildZeroLogger() {
	ctx := zerolog.New(zerolog.MultiLevelWriter(zeroLogWriters...)).
		Level(zeroLoggerLevel).
		With().
		Timestamp()
	for k, v := range zeroLogContext {
		ctx = ctx.Str(k, v)
	}
	logger := ctx.Logger()
	if zeroLogger == nil {
		zeroLogger = &logger
		return
	}
	*zeroLogger = logger
}

func verbosityToLevel(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.Disabled
	case verbosity == 1:
		return zerolog.ErrorLevel
	case verbosity == 2:
		return zerolog.WarnLevel
	case verbosity == 3:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
