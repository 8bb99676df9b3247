package taffy_test

import (
	"context"
	"reflect"
	"testing"

	taffy "github.com/taffy-go/taffy"
)

// spyType records every Load/Dump call for instrumented assertions.
type spyType struct {
	loaded     any
	loadCalled bool
	loadCtx    context.Context
	loadResult any

	dumped     any
	dumpCalled bool
	dumpCtx    context.Context
	dumpResult any
}

func (s *spyType) Load(ctx context.Context, data any) (any, error) {
	s.loaded = data
	s.loadCalled = true
	s.loadCtx = ctx
	if s.loadResult != nil {
		return s.loadResult, nil
	}
	return data, nil
}

func (s *spyType) Dump(ctx context.Context, value any) (any, error) {
	s.dumped = value
	s.dumpCalled = true
	s.dumpCtx = ctx
	if s.dumpResult != nil {
		return s.dumpResult, nil
	}
	return value, nil
}

// alwaysInvalid fails every Load/Dump with the configured message.
type alwaysInvalid struct {
	msg string
}

func (a *alwaysInvalid) Load(ctx context.Context, data any) (any, error) {
	return nil, taffy.NewError(a.msg)
}

func (a *alwaysInvalid) Dump(ctx context.Context, value any) (any, error) {
	return nil, taffy.NewError(a.msg)
}

// alwaysMissing yields the Missing sentinel in both directions.
type alwaysMissing struct{}

func (alwaysMissing) Load(ctx context.Context, data any) (any, error) { return taffy.Missing, nil }
func (alwaysMissing) Dump(ctx context.Context, value any) (any, error) {
	return taffy.Missing, nil
}

// countingValidator counts invocations and always fails with msg.
type countingValidator struct {
	called int
	msg    string
}

func (c *countingValidator) Validate(ctx context.Context, v any) error {
	c.called++
	return taffy.NewError(c.msg)
}

// spyValidator records the value and context it saw, always succeeding.
type spyValidator struct {
	validated any
	ctx       context.Context
}

func (s *spyValidator) Validate(ctx context.Context, v any) error {
	s.validated = v
	s.ctx = ctx
	return nil
}

func failWith(msg string) taffy.Validator {
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		return taffy.NewError(msg)
	})
}

// wantMessages asserts err is a ValidationError with the exact payload.
func wantMessages(t *testing.T, err error, want taffy.Messages) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected ValidationError, got nil")
	}
	ve, ok := taffy.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if !reflect.DeepEqual(ve.Messages, want) {
		t.Fatalf("messages mismatch:\n got  %#v\n want %#v", ve.Messages, want)
	}
}

func TestRequired_MissingAndNil(t *testing.T) {
	ctx := context.Background()
	types := map[string]taffy.Type{
		"any":     taffy.Any(),
		"string":  taffy.String(),
		"integer": taffy.Integer(),
		"float":   taffy.Float(),
		"number":  taffy.Number(),
		"boolean": taffy.Boolean(),
		"list":    taffy.List(taffy.String()),
		"dict":    taffy.Dict(taffy.String()),
		"object":  taffy.Object(map[string]any{"foo": taffy.String()}),
	}
	for name, typ := range types {
		for _, data := range []any{taffy.Missing, nil} {
			if _, err := typ.Load(ctx, data); err == nil {
				t.Fatalf("%s: expected required error loading %v", name, data)
			} else {
				wantMessages(t, err, taffy.Message("Value is required"))
			}
			if _, err := typ.Dump(ctx, data); err == nil {
				t.Fatalf("%s: expected required error dumping %v", name, data)
			} else {
				wantMessages(t, err, taffy.Message("Value is required"))
			}
		}
	}
}

func TestLoadDefault_SkipsConversionAndValidators(t *testing.T) {
	ctx := context.Background()
	cv := &countingValidator{msg: "nope"}
	typ := taffy.String(taffy.LoadDefault("fallback"), taffy.Validate(cv))

	v, err := typ.Load(ctx, taffy.Missing)
	if err != nil || v != "fallback" {
		t.Fatalf("load default: got v=%v err=%v", v, err)
	}
	if cv.called != 0 {
		t.Fatalf("validators should not run for defaulted values")
	}
}

func TestDumpDefault(t *testing.T) {
	ctx := context.Background()
	typ := taffy.String(taffy.DumpDefault("fallback"))
	v, err := typ.Dump(ctx, nil)
	if err != nil || v != "fallback" {
		t.Fatalf("dump default: got v=%v err=%v", v, err)
	}
}

func TestValidators_AllFailuresMerged(t *testing.T) {
	ctx := context.Background()
	typ := taffy.String(taffy.Validate(failWith("bad 1"), failWith("bad 2")))
	_, err := typ.Load(ctx, "hello")
	wantMessages(t, err, taffy.MessageList{"bad 1", "bad 2"})
}

func TestValidators_SkippedWhenConversionFails(t *testing.T) {
	ctx := context.Background()
	cv := &countingValidator{msg: "nope"}
	typ := taffy.String(taffy.Validate(cv))
	if _, err := typ.Load(ctx, 123); err == nil {
		t.Fatalf("expected conversion error")
	}
	if cv.called != 0 {
		t.Fatalf("validators must not run after conversion failure")
	}
}

type ctxKey string

func TestValidators_ReceiveContext(t *testing.T) {
	sv := &spyValidator{}
	typ := taffy.String(taffy.Validate(sv))
	ctx := context.WithValue(context.Background(), ctxKey("tenant"), "acme")
	if _, err := typ.Load(ctx, "hello"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sv.validated != "hello" {
		t.Fatalf("validator saw %v, want converted value", sv.validated)
	}
	if sv.ctx.Value(ctxKey("tenant")) != "acme" {
		t.Fatalf("validator did not receive the caller context")
	}
}

func TestErrorMessages_Override(t *testing.T) {
	ctx := context.Background()
	typ := taffy.String(taffy.ErrorMessages(map[string]string{
		taffy.CodeInvalid: "Data {data} should be string",
	}))
	_, err := typ.Load(ctx, 123)
	wantMessages(t, err, taffy.Message("Data 123 should be string"))
}

func TestValidationError_Summary(t *testing.T) {
	err := &taffy.ValidationError{Messages: taffy.MessageMap{
		"a": taffy.Message("bad"),
		"b": taffy.MessageList{"worse", "worst"},
		"c": taffy.MessageMap{"0": taffy.Message("nested")},
	}}
	s := err.Error()
	if s == "" {
		t.Fatalf("empty summary")
	}
	// four leaves total; summary is bounded
	if got := err.Error(); got != s {
		t.Fatalf("summary not stable: %q vs %q", got, s)
	}
}
