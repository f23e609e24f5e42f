// Package zaplog writes dirwatch signals to a zap logger.
//
//	logger, _ := zap.NewProduction()
//	unhook := zaplog.Bridge(logger)
//	defer unhook()
package zaplog

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/dirwatch"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levels maps every dirwatch signal to the level it is logged at.
var levels = []struct {
	signal capitan.Signal
	level  zapcore.Level
}{
	{dirwatch.WatcherStarted, zapcore.InfoLevel},
	{dirwatch.WatcherStopped, zapcore.InfoLevel},
	{dirwatch.WatcherStateChanged, zapcore.DebugLevel},
	{dirwatch.WatcherForcedStop, zapcore.ErrorLevel},
	{dirwatch.DirectoryAdded, zapcore.InfoLevel},
	{dirwatch.DirectoryRejected, zapcore.WarnLevel},
	{dirwatch.DirectoryInvalidated, zapcore.WarnLevel},
	{dirwatch.DirectoryRemoved, zapcore.InfoLevel},
	{dirwatch.OverflowDetected, zapcore.WarnLevel},
	{dirwatch.SourceFailed, zapcore.ErrorLevel},
	{dirwatch.ListenerRegistered, zapcore.DebugLevel},
	{dirwatch.ListenerUnregistered, zapcore.DebugLevel},
	{dirwatch.ListenerTargetUnresolved, zapcore.WarnLevel},
	{dirwatch.ListenerTimedOut, zapcore.WarnLevel},
	{dirwatch.ListenerPanicked, zapcore.ErrorLevel},
}

// key reads one typed field from an event.
type key[T any] interface {
	From(e *capitan.Event) (T, bool)
}

var stringKeys = []struct {
	name string
	key  key[string]
}{
	{"state", dirwatch.KeyState},
	{"old_state", dirwatch.KeyOldState},
	{"new_state", dirwatch.KeyNewState},
	{"path", dirwatch.KeyPath},
	{"target", dirwatch.KeyTarget},
	{"kind", dirwatch.KeyKind},
	{"listener", dirwatch.KeyListener},
	{"error", dirwatch.KeyError},
}

var durationKeys = []struct {
	name string
	key  key[time.Duration]
}{
	{"delay", dirwatch.KeyDelay},
	{"settle_delay", dirwatch.KeySettleDelay},
	{"timeout", dirwatch.KeyTimeout},
}

// Bridge hooks every dirwatch signal and logs it to logger. Signals are
// delivered asynchronously, so entries may trail the operation that caused
// them. The returned function removes the hooks.
func Bridge(logger *zap.Logger) func() {
	hooks := make([]interface{ Close() }, 0, len(levels))
	for _, entry := range levels {
		name, level := entry.signal.Name(), entry.level
		hooks = append(hooks, capitan.Hook(entry.signal, func(_ context.Context, e *capitan.Event) {
			if ce := logger.Check(level, name); ce != nil {
				ce.Write(fields(e)...)
			}
		}))
	}
	return func() {
		for _, h := range hooks {
			h.Close()
		}
	}
}

// fields extracts the dirwatch keys present on e.
func fields(e *capitan.Event) []zap.Field {
	var out []zap.Field
	for _, k := range stringKeys {
		if v, ok := k.key.From(e); ok {
			out = append(out, zap.String(k.name, v))
		}
	}
	if v, ok := dirwatch.KeyHandle.From(e); ok {
		out = append(out, zap.Int("handle", v))
	}
	for _, k := range durationKeys {
		if v, ok := k.key.From(e); ok {
			out = append(out, zap.Duration(k.name, v))
		}
	}
	return out
}
