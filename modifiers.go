package taffy

import "context"

// Optional overrides the required check of its inner type: loading or
// dumping a missing or nil value short-circuits to the configured
// default (nil unless LoadDefault/DumpDefault say otherwise) without
// invoking the inner type or any validators. Any other value is
// delegated to the inner type, then checked by validators attached to
// the Optional itself. Optional produces no messages of its own, so
// ErrorMessages has no effect on it.
func Optional(inner Type, opts ...Option) Type {
	return &optionalType{inner: inner, opts: buildOpts(nil, opts)}
}

type optionalType struct {
	inner Type
	opts  schemaOpts
}

func (t *optionalType) Load(ctx context.Context, data any) (any, error) {
	if IsMissing(data) || data == nil {
		if t.opts.hasLoadDefault {
			return t.opts.loadDefault, nil
		}
		return nil, nil
	}
	v, err := t.inner.Load(ctx, data)
	if err != nil {
		return nil, err
	}
	if err := t.opts.runValidators(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (t *optionalType) Dump(ctx context.Context, value any) (any, error) {
	if IsMissing(value) || value == nil {
		if t.opts.hasDumpDefault {
			return t.opts.dumpDefault, nil
		}
		return nil, nil
	}
	v, err := t.inner.Dump(ctx, value)
	if err != nil {
		return nil, err
	}
	if err := t.opts.runValidators(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// LoadOnly restricts a type to the load direction: dumping always yields
// Missing (so Object omits the field) and never touches the inner type.
func LoadOnly(inner Type) Type {
	return &loadOnlyType{inner: inner}
}

type loadOnlyType struct {
	inner Type
}

func (t *loadOnlyType) Load(ctx context.Context, data any) (any, error) {
	return t.inner.Load(ctx, data)
}

func (t *loadOnlyType) Dump(ctx context.Context, value any) (any, error) {
	return Missing, nil
}

// DumpOnly is the mirror of LoadOnly: loading always yields Missing and
// never touches the inner type.
func DumpOnly(inner Type) Type {
	return &dumpOnlyType{inner: inner}
}

type dumpOnlyType struct {
	inner Type
}

func (t *dumpOnlyType) Load(ctx context.Context, data any) (any, error) {
	return Missing, nil
}

func (t *dumpOnlyType) Dump(ctx context.Context, value any) (any, error) {
	return t.inner.Dump(ctx, value)
}
