package logging

import (
	"context"
	"log/slog"
	"slices"
)

// SlogLogger adapts *slog.Logger to Logger. Attributes added with With are
// kept per key: a later With replaces the earlier value instead of repeating
// the key in every record.
type SlogLogger struct {
	l     *slog.Logger
	attrs []slog.Attr
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelDebug, msg, args)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelInfo, msg, args)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelWarn, msg, args)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelError, msg, args)
}

func (s *SlogLogger) With(args ...any) Logger {
	attrs := slices.Clone(s.attrs)
	for _, a := range slogAttrs(args) {
		i := slices.IndexFunc(attrs, func(b slog.Attr) bool { return b.Key == a.Key })
		if i >= 0 {
			attrs[i] = a
			continue
		}
		attrs = append(attrs, a)
	}
	return &SlogLogger{l: s.l, attrs: attrs}
}

func (s *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if !s.l.Enabled(ctx, level) {
		return
	}
	all := make([]slog.Attr, 0, len(s.attrs)+len(args)/2)
	all = append(all, s.attrs...)
	all = append(all, slogAttrs(args)...)
	s.l.LogAttrs(ctx, level, msg, all...)
}

// slogAttrs reads key–value pairs the way slog does: a slog.Attr stands for
// itself, and a key without a value or a non-string key is logged under
// "!BADKEY". Credential values are redacted.
func slogAttrs(args []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(args)/2+1)
	for i := 0; i < len(args); {
		switch k := args[i].(type) {
		case slog.Attr:
			if isSecret(k.Key) {
				k = slog.String(k.Key, Redacted)
			}
			attrs = append(attrs, k)
			i++
		case string:
			if i+1 == len(args) {
				attrs = append(attrs, slog.String(badKey, k))
				i++
				continue
			}
			attrs = append(attrs, slog.Any(k, redact(k, args[i+1])))
			i += 2
		default:
			attrs = append(attrs, slog.Any(badKey, k))
			i++
		}
	}
	return attrs
}
