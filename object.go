package taffy

import (
	"context"
	"fmt"
	"sort"
)

var objectMessages = map[string]string{
	CodeInvalid: "Value should be dict",
	CodeUnknown: "Unknown field",
}

// Object is a fixed schema over named fields. Values of the fields map
// are either Types (implicitly attribute fields of the same name) or
// Fields. Load requires a mapping, loads every field with the whole
// mapping in view, omits Missing results, reports unknown keys when
// AllowExtraFields(false) is set, and finally applies the constructor
// strategy (by default the assembled map itself). Dump mirrors this off
// an arbitrary host object through the Field abstraction. All field
// failures are merged keyed by field name; object-level validators run
// only when every field succeeded.
//
// Passing anything but a Type or Field as a field value is a programming
// error and panics at construction.
func Object(fields map[string]any, opts ...Option) Type {
	built := make(map[string]Field, len(fields))
	names := make([]string, 0, len(fields))
	for name, f := range fields {
		switch v := f.(type) {
		case Field:
			built[name] = v
		case Type:
			built[name] = Attribute(v)
		default:
			panic(fmt.Sprintf("taffy: object field %q must be a Type or a Field, got %T", name, f))
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return &objectType{fields: built, names: names, opts: buildOpts(objectMessages, opts)}
}

type objectType struct {
	fields map[string]Field
	names  []string // field names in sorted order for deterministic walks
	opts   schemaOpts
}

func (t *objectType) Load(ctx context.Context, data any) (any, error) {
	return t.opts.load(ctx, data, func(v any) (any, error) {
		src, ok := mappingOf(v)
		if !ok {
			return nil, t.opts.fail(CodeInvalid, map[string]any{"data": v})
		}
		out := make(map[string]any, len(t.fields))
		var merged Messages
		for _, name := range t.names {
			fv, err := t.fields[name].Load(ctx, name, src)
			if err != nil {
				ve, ok := AsValidationError(err)
				if !ok {
					return nil, err
				}
				merged = MergeMessages(merged, MessageMap{name: ve.Messages})
				continue
			}
			if IsMissing(fv) {
				continue
			}
			out[name] = fv
		}
		if !t.opts.allowExtra {
			merged = MergeMessages(merged, t.unknownKeys(src))
		}
		if merged != nil {
			return nil, &ValidationError{Messages: merged}
		}
		if t.opts.constructor != nil {
			return t.opts.constructor(ctx, out)
		}
		return out, nil
	})
}

func (t *objectType) Dump(ctx context.Context, value any) (any, error) {
	return t.opts.dump(ctx, value, func(v any) (any, error) {
		out := make(map[string]any, len(t.fields))
		var merged Messages
		for _, name := range t.names {
			fv, err := t.fields[name].Dump(ctx, name, v)
			if err != nil {
				ve, ok := AsValidationError(err)
				if !ok {
					return nil, err
				}
				merged = MergeMessages(merged, MessageMap{name: ve.Messages})
				continue
			}
			if IsMissing(fv) {
				continue
			}
			out[name] = fv
		}
		if merged != nil {
			return nil, &ValidationError{Messages: merged}
		}
		return out, nil
	})
}

func (t *objectType) unknownKeys(src map[string]any) Messages {
	var merged Messages
	extra := make([]string, 0, len(src))
	for k := range src {
		if _, known := t.fields[k]; !known {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		msg := ExpandMessage(t.opts.message(CodeUnknown), map[string]any{"data": k})
		merged = MergeMessages(merged, MessageMap{k: Message(msg)})
	}
	return merged
}
