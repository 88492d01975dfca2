package util

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Logger fans each message out to its LogFns. It travels in a context; without
// one, logging is a no-op.
type Logger struct {
	fs []LogFn
	sync.Mutex
}

type LogFn func(lvl Lvl, msg string)
type Lvl int

type loggerKey struct{}

const (
	DEBUG Lvl = iota
	INFO
	WARN
	ERROR
)

var lvlNames = [...]string{DEBUG: "DEBUG", INFO: "INFO", WARN: "WARN", ERROR: "ERROR"}

func Debug(ctx context.Context, args ...any)              { Print(ctx, DEBUG, args...) }
func Debugf(ctx context.Context, tpl string, args ...any) { Printf(ctx, DEBUG, tpl, args...) }
func Info(ctx context.Context, args ...any)               { Print(ctx, INFO, args...) }
func Infof(ctx context.Context, tpl string, args ...any)  { Printf(ctx, INFO, tpl, args...) }
func Warn(ctx context.Context, args ...any)               { Print(ctx, WARN, args...) }
func Warnf(ctx context.Context, tpl string, args ...any)  { Printf(ctx, WARN, tpl, args...) }
func Error(ctx context.Context, args ...any)              { Print(ctx, ERROR, args...) }
func Errorf(ctx context.Context, tpl string, args ...any) { Printf(ctx, ERROR, tpl, args...) }

// WithLogger adds fs to the Logger of ctx, creating one if ctx has none yet.
func WithLogger(ctx context.Context, fs ...LogFn) context.Context {
	l, ok := GetLogger(ctx)
	if !ok {
		return context.WithValue(ctx, loggerKey{}, &Logger{fs: fs})
	}
	l.Lock()
	l.fs = append(l.fs, fs...)
	l.Unlock()
	return ctx
}

func GetLogger(ctx context.Context) (*Logger, bool) {
	l, ok := ctx.Value(loggerKey{}).(*Logger)
	return l, ok
}

func WithLvl(minLvl Lvl, f LogFn) LogFn {
	return func(lvl Lvl, msg string) {
		if lvl >= minLvl {
			f(lvl, msg)
		}
	}
}

func Print(ctx context.Context, lvl Lvl, args ...any) {
	log(ctx, lvl, func() string { return fmt.Sprint(args...) })
}

func Printf(ctx context.Context, lvl Lvl, tpl string, args ...any) {
	log(ctx, lvl, func() string { return fmt.Sprintf(tpl, args...) })
}

// log formats msg only if ctx carries a Logger.
func log(ctx context.Context, lvl Lvl, msg func() string) {
	l, ok := GetLogger(ctx)
	if !ok {
		return
	}
	s := msg()
	l.Lock()
	defer l.Unlock()
	for _, f := range l.fs {
		f(lvl, s)
	}
}

func (l Lvl) String() string {
	if l < 0 || int(l) >= len(lvlNames) {
		return fmt.Sprintf("Lvl(%d)", int(l))
	}
	return lvlNames[l]
}

func (l Lvl) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Lvl) UnmarshalText(bs []byte) error {
	lvl, err := ParseLvl(string(bs))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// ParseLvl parses a level name case-insensitively.
func ParseLvl(s string) (Lvl, error) {
	for l, name := range lvlNames {
		if strings.EqualFold(s, name) {
			return Lvl(l), nil
		}
	}
	return DEBUG, fmt.Errorf("unknown log level %q", s)
}
