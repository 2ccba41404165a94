// Package logging provides named zap loggers that share one process-wide level
// and sink.
//
// The level is read from the ECMATH_LOGGING_SPEC environment variable the
// first time a logger is requested and may be changed later with ActivateSpec.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvSpec names the environment variable holding the initial level spec.
const EnvSpec = "ECMATH_LOGGING_SPEC"

const defaultLevel = zapcore.InfoLevel

var (
	level = zap.NewAtomicLevelAt(defaultLevel)
	sink  = &swappableWriter{w: os.Stderr}

	rootOnce sync.Once
	root     *zap.Logger
)

// swappableWriter lets SetWriter redirect loggers that were already handed out.
type swappableWriter struct {
	mu sync.RWMutex
	w  io.Writer
}

func (s *swappableWriter) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.Write(p)
}

func (s *swappableWriter) Sync() error { return nil }

func (s *swappableWriter) swap(w io.Writer) io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.w
	s.w = w
	return old
}

func rootLogger() *zap.Logger {
	rootOnce.Do(func() {
		if spec := os.Getenv(EnvSpec); spec != "" {
			if err := ActivateSpec(spec); err != nil {
				level.SetLevel(defaultLevel)
			}
		}

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.NameKey = "name"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(sink), level)
		root = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	})
	return root
}

// MustGetLogger returns a sugared logger carrying the given name.
func MustGetLogger(name string) *zap.SugaredLogger {
	return rootLogger().Named(name).Sugar()
}

// ActivateSpec sets the level of every logger. The spec is a single level
// name: debug, info, warn or error. An empty spec restores the default.
func ActivateSpec(spec string) error {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" {
		level.SetLevel(defaultLevel)
		return nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(spec)); err != nil {
		return errors.Wrapf(err, "invalid logging spec %q", spec)
	}
	level.SetLevel(l)
	return nil
}

// Spec returns the active level name.
func Spec() string {
	return level.Level().String()
}

// SetWriter redirects all log output to w and returns the previous writer.
func SetWriter(w io.Writer) io.Writer {
	return sink.swap(w)
}
