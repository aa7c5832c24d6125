// Package log provides the structured logging facade used across steadyplay, backed by logrus and
// persisted to a dated file under the application log directory.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/key"
	"github.com/steadyplay/steadyplay/where"
)

// enabled indicates whether log emission is active for this process.
var enabled bool

// Setup initializes file output, formatting and severity from the global configuration.
// When logging is disabled every emission below is discarded.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))

	if exists := lo.Must(filesystem.API().Exists(path)); !exists {
		lo.Must(filesystem.API().Create(path))
	}

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	configure(f, viper.GetBool(key.LogsJson), viper.GetString(key.LogsLevel))
	return nil
}

// SetOutput enables logging to w, bypassing the file setup. Tests use it to capture entries.
func SetOutput(w io.Writer, level string) {
	enabled = true
	configure(w, false, level)
}

func configure(w io.Writer, asJSON bool, level string) {
	logrus.SetOutput(w)

	if asJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{PrettyPrint: true})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// Fields is an alias for structured context attached to an entry.
type Fields = logrus.Fields

// Entry emits through logrus only when logging is enabled.
type Entry struct {
	entry *logrus.Entry
}

// WithFields returns an entry carrying structured context.
func WithFields(fields Fields) Entry {
	return Entry{entry: logrus.WithFields(fields)}
}

func (e Entry) Debugf(format string, args ...interface{}) {
	if enabled {
		e.entry.Debugf(format, args...)
	}
}

func (e Entry) Infof(format string, args ...interface{}) {
	if enabled {
		e.entry.Infof(format, args...)
	}
}

func (e Entry) Warnf(format string, args ...interface{}) {
	if enabled {
		e.entry.Warnf(format, args...)
	}
}

func (e Entry) Errorf(format string, args ...interface{}) {
	if enabled {
		e.entry.Errorf(format, args...)
	}
}

// Severity-specific emissions proxied to the configured backend.

func Error(args ...interface{}) {
	if enabled {
		logrus.Error(args...)
	}
}
func Errorf(format string, args ...interface{}) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}
func Warn(args ...interface{}) {
	if enabled {
		logrus.Warn(args...)
	}
}
func Warnf(format string, args ...interface{}) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}
func Info(args ...interface{}) {
	if enabled {
		logrus.Info(args...)
	}
}
func Infof(format string, args ...interface{}) {
	if enabled {
		logrus.Infof(format, args...)
	}
}
func Debug(args ...interface{}) {
	if enabled {
		logrus.Debug(args...)
	}
}
func Debugf(format string, args ...interface{}) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
func Tracef(format string, args ...interface{}) {
	if enabled {
		logrus.Tracef(format, args...)
	}
}
