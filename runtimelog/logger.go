package runtimelog

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/joeycumines/go-fibernet/rtutil"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger wraps a logiface.Logger[*stumpy.Event], exposing level methods
// that accept a message plus alternating key/value pairs rather than
// requiring callers to build a Builder[E] chain themselves.
type Logger struct {
	base *logiface.Logger[*stumpy.Event]
}

var lazyDefault = rtutil.NewOnce(func() *Logger {
	return New(os.Stderr, logiface.LevelInformational)
})

var defaultMu sync.RWMutex
var defaultOverride *Logger

// Default returns the process-wide Logger, writing to stderr at
// informational level unless SetDefault has replaced it.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultOverride != nil {
		return defaultOverride
	}
	return lazyDefault.Get()
}

// SetDefault replaces the process-wide Logger returned by Default. Tests
// and cmd/ entry points use this to redirect or quiet logging.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOverride = l
}

// New constructs a Logger writing stumpy-encoded JSON lines to w, at or
// above the given minimum level.
func New(w io.Writer, level logiface.Level) *Logger {
	return &Logger{
		base: logiface.New[*stumpy.Event](
			stumpy.L.WithStumpy(stumpy.WithWriter(w)),
			stumpy.L.WithLevel(level),
		),
	}
}

// field applies one key/value pair to an in-flight Builder, picking the
// most specific logiface field method for val's dynamic type.
func field(b *logiface.Builder[*stumpy.Event], key string, val any) *logiface.Builder[*stumpy.Event] {
	switch v := val.(type) {
	case string:
		return b.Str(key, v)
	case error:
		return b.Err(v)
	case fmt.Stringer:
		return b.Stringer(key, v)
	case int:
		return b.Int(key, v)
	case int64:
		return b.Int64(key, v)
	case uint64:
		return b.Uint64(key, v)
	case bool:
		return b.Bool(key, v)
	case float64:
		return b.Float64(key, v)
	case float32:
		return b.Float32(key, v)
	default:
		return b.Interface(key, v)
	}
}

// logKV starts a Builder at lvl, applies kv as alternating key/value
// pairs (an odd trailing element is logged under the key "extra"), and
// terminates the chain with msg.
func logKV(start func() *logiface.Builder[*stumpy.Event], msg string, kv []any) {
	b := start()
	if b == nil {
		return
	}
	i := 0
	for ; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		if key == "" {
			key = fmt.Sprintf("field%d", i/2)
		}
		b = field(b, key, kv[i+1])
	}
	if i < len(kv) {
		b = field(b, "extra", kv[i])
	}
	b.Log(msg)
}

// Emergency logs at the emergency syslog level.
func (l *Logger) Emergency(msg string, kv ...any) { logKV(l.base.Emerg, msg, kv) }

// Error logs at the error syslog level.
func (l *Logger) Error(msg string, kv ...any) { logKV(l.base.Err, msg, kv) }

// Warning logs at the warning syslog level.
func (l *Logger) Warning(msg string, kv ...any) { logKV(l.base.Warning, msg, kv) }

// Info logs at the informational syslog level.
func (l *Logger) Info(msg string, kv ...any) { logKV(l.base.Info, msg, kv) }

// Debug logs at the debug syslog level.
func (l *Logger) Debug(msg string, kv ...any) { logKV(l.base.Debug, msg, kv) }
