package taffy

import (
	"context"
	"reflect"
	"strconv"
)

var listMessages = map[string]string{
	CodeInvalid: "Value should be list",
}

// List applies the item type to every element of a sequence. All
// elements are attempted; per-element failures are merged into one
// ValidationError keyed by element index. List-level validators run only
// when every element converted cleanly.
func List(item Type, opts ...Option) Type {
	return &listType{item: item, opts: buildOpts(listMessages, opts)}
}

type listType struct {
	item Type
	opts schemaOpts
}

func (t *listType) Load(ctx context.Context, data any) (any, error) {
	return t.opts.load(ctx, data, func(v any) (any, error) {
		return t.convert(ctx, v, t.item.Load)
	})
}

func (t *listType) Dump(ctx context.Context, value any) (any, error) {
	return t.opts.dump(ctx, value, func(v any) (any, error) {
		return t.convert(ctx, v, t.item.Dump)
	})
}

func (t *listType) convert(ctx context.Context, v any, conv func(context.Context, any) (any, error)) (any, error) {
	items, ok := sequenceOf(v)
	if !ok {
		return nil, t.opts.fail(CodeInvalid, map[string]any{"data": v})
	}
	out := make([]any, 0, len(items))
	var merged Messages
	for i, item := range items {
		cv, err := conv(ctx, item)
		if err != nil {
			ve, ok := AsValidationError(err)
			if !ok {
				return nil, err
			}
			merged = MergeMessages(merged, MessageMap{strconv.Itoa(i): ve.Messages})
			continue
		}
		out = append(out, cv)
	}
	if merged != nil {
		return nil, &ValidationError{Messages: merged}
	}
	return out, nil
}

// sequenceOf normalizes ordered sequences to []any. Strings and byte
// slices are not sequences for the engine's purposes.
func sequenceOf(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case string, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
