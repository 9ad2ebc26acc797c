// Package logger writes the logs of cozy-barcode with logrus. Every entry has
// a namespace (nspace field) telling which part of the server emitted it, and
// the entries about a symbol carry its code.
package logger

import (
	"fmt"
	"io"
	"time"

	build "github.com/cozy/cozy-barcode/pkg/config"
	"github.com/sirupsen/logrus"
)

// maxLineWidth is the length after which a message is truncated, as syslog
// splits the longer lines.
const maxLineWidth = 2000

// Fields are the structured data added to an [Entry].
type Fields map[string]interface{}

// Options contains the configuration values of the logger system
type Options struct {
	// Level is one of debug, info, warning or error. Info by default.
	Level string
	// Syslog sends the logs to the local syslog instead of Output.
	Syslog bool
	Output io.Writer
	Hooks  []logrus.Hook
}

// Init configures the standard logrus logger with the given options. It can
// be called several times: the hooks of the previous call are removed.
func Init(opt Options) error {
	if opt.Level == "" {
		opt.Level = "info"
	}
	lvl, err := logrus.ParseLevel(opt.Level)
	if err != nil {
		return err
	}

	if opt.Syslog {
		hook, err := syslogHook()
		if err != nil {
			return fmt.Errorf("failed to setup syslog: %w", err)
		}
		opt.Hooks = append(opt.Hooks, hook)
		opt.Output = io.Discard
	}

	l := logrus.StandardLogger()
	l.SetLevel(lvl)
	if opt.Output != nil {
		l.SetOutput(opt.Output)
	}
	l.ReplaceHooks(logrus.LevelHooks{})
	for _, hook := range opt.Hooks {
		l.AddHook(hook)
	}
	if formatter, ok := l.Formatter.(*logrus.TextFormatter); ok {
		if build.IsDevRelease() && lvl == logrus.DebugLevel {
			formatter.TimestampFormat = time.RFC3339Nano
		}
	}
	return nil
}

// Entry is a log entry with the structured data accumulated.
type Entry struct {
	entry *logrus.Entry
}

// WithNamespace returns a logger with the specified nspace field.
func WithNamespace(nspace string) *Entry {
	return &Entry{logrus.WithField("nspace", nspace)}
}

// WithCode adds the code of the symbol that is being drawn.
func (e *Entry) WithCode(code string) *Entry {
	return e.WithField("code", code)
}

// WithField adds a single field to the Entry.
func (e *Entry) WithField(key string, value interface{}) *Entry {
	return &Entry{e.entry.WithField(key, value)}
}

// WithFields adds a map of fields to the Entry.
func (e *Entry) WithFields(fields Fields) *Entry {
	return &Entry{e.entry.WithFields(logrus.Fields(fields))}
}

func (e *Entry) log(lvl logrus.Level, format string, args []interface{}) {
	if !e.entry.Logger.IsLevelEnabled(lvl) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if len(msg) > maxLineWidth {
		msg = msg[:maxLineWidth-12] + " [TRUNCATED]"
	}
	e.entry.Log(lvl, msg)
}

func (e *Entry) Debugf(format string, args ...interface{}) {
	e.log(logrus.DebugLevel, format, args)
}

func (e *Entry) Infof(format string, args ...interface{}) {
	e.log(logrus.InfoLevel, format, args)
}

func (e *Entry) Warnf(format string, args ...interface{}) {
	e.log(logrus.WarnLevel, format, args)
}

func (e *Entry) Errorf(format string, args ...interface{}) {
	e.log(logrus.ErrorLevel, format, args)
}
