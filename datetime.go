package taffy

import (
	"context"
	"strings"
	"time"
)

// Named formats recognized by DateTime, Date and Time. Anything else
// passed to Format is treated as a custom Go layout.
var namedFormats = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"iso8601":     time.RFC3339,
	"rfc822":      time.RFC822,
	"rfc1123":     time.RFC1123,
	"date":        time.DateOnly,
	"time":        time.TimeOnly,
}

func resolveLayout(format, fallback string) string {
	if format == "" {
		return fallback
	}
	if l, ok := namedFormats[strings.ToLower(format)]; ok {
		return l
	}
	return format
}

var dateTimeMessages = map[string]string{
	CodeInvalidType:   "Value should be string",
	CodeInvalidFormat: "Value {data} does not match format {format}",
	CodeInvalid:       "Value should be a time value",
}

// DateTime loads RFC3339 timestamp strings (or another format selected
// with the Format option) into time.Time and dumps them back. A
// non-string load value fails with invalid_type; a string that does not
// parse fails with invalid_format. Dumping a non-time value fails with
// invalid: the dump side checks the internal representation, not the
// external one.
func DateTime(opts ...Option) Type {
	return newTimeType(time.RFC3339, opts)
}

// Date is DateTime restricted to a calendar date layout ("2006-01-02").
func Date(opts ...Option) Type {
	return newTimeType(time.DateOnly, opts)
}

// Time is DateTime restricted to a clock time layout ("15:04:05").
func Time(opts ...Option) Type {
	return newTimeType(time.TimeOnly, opts)
}

func newTimeType(fallback string, opts []Option) Type {
	o := buildOpts(dateTimeMessages, opts)
	return &timeType{opts: o, layout: resolveLayout(o.format, fallback)}
}

type timeType struct {
	opts   schemaOpts
	layout string
}

func (t *timeType) Load(ctx context.Context, data any) (any, error) {
	return t.opts.load(ctx, data, func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, t.opts.fail(CodeInvalidType, map[string]any{"data": v})
		}
		tv, err := time.Parse(t.layout, s)
		if err != nil {
			return nil, t.opts.fail(CodeInvalidFormat, map[string]any{"data": s, "format": t.layout})
		}
		return tv, nil
	})
}

func (t *timeType) Dump(ctx context.Context, value any) (any, error) {
	return t.opts.dump(ctx, value, func(v any) (any, error) {
		tv, ok := v.(time.Time)
		if !ok {
			return nil, t.opts.fail(CodeInvalid, map[string]any{"data": v})
		}
		return tv.Format(t.layout), nil
	})
}
