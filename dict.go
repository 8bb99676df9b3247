package taffy

import (
	"context"
	"reflect"
	"sort"
)

var dictMessages = map[string]string{
	CodeInvalid: "Value should be dict",
}

// Dict applies one value type to every value of a mapping. Per-key
// failures are merged into one ValidationError keyed by the original
// key; dict-level validators run only when every value converted
// cleanly.
func Dict(value Type, opts ...Option) Type {
	return &dictType{value: value, opts: buildOpts(dictMessages, opts)}
}

// DictFields is the heterogeneous variant of Dict: each configured key
// gets its own type. Only configured keys are processed; others are
// dropped without error (no unknown-key policy applies — use Object for
// that).
func DictFields(fields map[string]Type, opts ...Option) Type {
	byKey := make(map[string]Type, len(fields))
	for k, v := range fields {
		byKey[k] = v
	}
	return &dictType{fields: byKey, opts: buildOpts(dictMessages, opts)}
}

type dictType struct {
	value  Type
	fields map[string]Type
	opts   schemaOpts
}

func (t *dictType) Load(ctx context.Context, data any) (any, error) {
	return t.opts.load(ctx, data, func(v any) (any, error) {
		return t.convert(ctx, v, Type.Load)
	})
}

func (t *dictType) Dump(ctx context.Context, value any) (any, error) {
	return t.opts.dump(ctx, value, func(v any) (any, error) {
		return t.convert(ctx, v, Type.Dump)
	})
}

func (t *dictType) convert(ctx context.Context, v any, conv func(Type, context.Context, any) (any, error)) (any, error) {
	src, ok := mappingOf(v)
	if !ok {
		return nil, t.opts.fail(CodeInvalid, map[string]any{"data": v})
	}
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(src))
	var merged Messages
	for _, k := range keys {
		vt := t.value
		if t.fields != nil {
			vt = t.fields[k]
			if vt == nil {
				continue
			}
		}
		cv, err := conv(vt, ctx, src[k])
		if err != nil {
			ve, ok := AsValidationError(err)
			if !ok {
				return nil, err
			}
			merged = MergeMessages(merged, MessageMap{k: ve.Messages})
			continue
		}
		out[k] = cv
	}
	if merged != nil {
		return nil, &ValidationError{Messages: merged}
	}
	return out, nil
}

// mappingOf normalizes string-keyed mappings to map[string]any.
func mappingOf(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
