// Package logging builds the zap logger used by the CLI and preview server.
//
// Info and debug entries go to the standard writer, errors to the error
// writer. Levels:
//
//	none    nothing
//	error   errors only (--quiet)
//	normal  info and above
//	debug   everything
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Levels accepted by New.
const (
	LevelNone   = "none"
	LevelError  = "error"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// AppName names the root logger.
const AppName = "seopost"

// ErrUnknownLevel indicates an unsupported level name.
var ErrUnknownLevel = errors.New("unknown log level")

// New returns a logger writing to stdout and stderr. Terminal writers get
// colored levels and no timestamps.
func New(level string, stdout, stderr io.Writer) (*zap.Logger, error) {
	var minLevel zapcore.Level
	switch level {
	case LevelNone:
		return zap.NewNop(), nil
	case LevelError:
		minLevel = zapcore.ErrorLevel
	case LevelNormal, "":
		minLevel = zapcore.InfoLevel
	case LevelDebug:
		minLevel = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}

	low := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return minLevel <= lvl && lvl < zapcore.ErrorLevel
	})
	high := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(stdout)), zapcore.Lock(zapcore.AddSync(stdout)), low),
		zapcore.NewCore(newErrorEncoder(encoderConfig(stderr)), zapcore.Lock(zapcore.AddSync(stderr)), high),
	)
	return zap.New(core).Named(AppName), nil
}

// Must is New for fixed, known-good levels. Panics on error.
func Must(level string, stdout, stderr io.Writer) *zap.Logger {
	l, err := New(level, stdout, stderr)
	if err != nil {
		panic(err)
	}
	return l
}

func encoderConfig(w io.Writer) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if isTerminal(w) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}

// errorEncoder flattens error fields so aggregated errors print once,
// without the errorVerbose dump.
type errorEncoder struct {
	zapcore.Encoder
}

func newErrorEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return errorEncoder{zapcore.NewConsoleEncoder(cfg)}
}

func (e errorEncoder) Clone() zapcore.Encoder {
	return errorEncoder{e.Encoder.Clone()}
}

func (e errorEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	flat := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if err, ok := f.Interface.(error); ok {
				f.Interface = errors.New(err.Error())
			}
		}
		flat = append(flat, f)
	}
	return e.Encoder.EncodeEntry(ent, flat)
}
