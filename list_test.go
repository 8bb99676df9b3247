package taffy_test

import (
	"context"
	"reflect"
	"testing"

	taffy "github.com/taffy-go/taffy"
)

func TestList_LoadDump(t *testing.T) {
	ctx := context.Background()
	typ := taffy.List(taffy.String())

	v, err := typ.Load(ctx, []any{"foo", "bar", "baz"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(v, []any{"foo", "bar", "baz"}) {
		t.Fatalf("load: got %#v", v)
	}

	out, err := typ.Dump(ctx, v)
	if err != nil || !reflect.DeepEqual(out, []any{"foo", "bar", "baz"}) {
		t.Fatalf("dump: got %#v err=%v", out, err)
	}
}

func TestList_AcceptsTypedSlices(t *testing.T) {
	ctx := context.Background()
	typ := taffy.List(taffy.String())
	v, err := typ.Load(ctx, []string{"a", "b"})
	if err != nil || !reflect.DeepEqual(v, []any{"a", "b"}) {
		t.Fatalf("typed slice load: got %#v err=%v", v, err)
	}
}

func TestList_NonSequenceInvalid(t *testing.T) {
	ctx := context.Background()
	typ := taffy.List(taffy.String())
	_, err := typ.Load(ctx, "1, 2, 3")
	wantMessages(t, err, taffy.Message("Value should be list"))
	_, err = typ.Dump(ctx, "1, 2, 3")
	wantMessages(t, err, taffy.Message("Value should be list"))
}

func TestList_ElementErrorsKeyedByIndex(t *testing.T) {
	ctx := context.Background()
	typ := taffy.List(taffy.String())

	_, err := typ.Load(ctx, []any{1, "2", 3})
	wantMessages(t, err, taffy.MessageMap{
		"0": taffy.Message("Value should be string"),
		"2": taffy.Message("Value should be string"),
	})

	_, err = typ.Dump(ctx, []any{1, "2", 3})
	wantMessages(t, err, taffy.MessageMap{
		"0": taffy.Message("Value should be string"),
		"2": taffy.Message("Value should be string"),
	})
}

func TestList_ElementValidatorErrors(t *testing.T) {
	ctx := context.Background()
	odd := failUnless(func(v any) bool {
		n, ok := v.(int64)
		return ok && n%2 == 1
	}, "Value should be odd")
	typ := taffy.List(taffy.Integer(taffy.Validate(odd)))

	_, err := typ.Load(ctx, []any{1, 2, 3})
	wantMessages(t, err, taffy.MessageMap{"1": taffy.Message("Value should be odd")})
}

func TestList_WholeListValidatorsSkippedOnElementErrors(t *testing.T) {
	ctx := context.Background()
	cv := &countingValidator{msg: "whole list bad"}
	odd := failUnless(func(v any) bool {
		n, ok := v.(int64)
		return ok && n%2 == 1
	}, "Value should be odd")
	typ := taffy.List(taffy.Integer(taffy.Validate(odd)), taffy.Validate(cv))

	if _, err := typ.Load(ctx, []any{1, 2, 3}); err == nil {
		t.Fatalf("expected element errors")
	}
	if cv.called != 0 {
		t.Fatalf("whole-list validator ran despite element errors")
	}
}

func TestList_ContextReachesItems(t *testing.T) {
	inner := &spyType{}
	typ := taffy.List(inner)
	ctx := context.WithValue(context.Background(), ctxKey("k"), "v")

	if _, err := typ.Load(ctx, []any{"foo"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if inner.loadCtx.Value(ctxKey("k")) != "v" {
		t.Fatalf("item type did not receive the caller context on load")
	}

	if _, err := typ.Dump(ctx, []any{"foo"}); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if inner.dumpCtx.Value(ctxKey("k")) != "v" {
		t.Fatalf("item type did not receive the caller context on dump")
	}
}

func failUnless(ok func(any) bool, msg string) taffy.Validator {
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		if ok(v) {
			return nil
		}
		return taffy.NewError(msg)
	})
}
