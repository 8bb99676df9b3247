package taffy

import "context"

// Type is the node contract every schema element satisfies. Load converts
// external data into the internal representation; Dump converts the
// internal representation back out. Both return *ValidationError for bad
// data. User-defined types plug in by implementing this interface.
type Type interface {
	Load(ctx context.Context, data any) (any, error)
	Dump(ctx context.Context, value any) (any, error)
}

// Validator checks a converted value. A failure is signalled by returning
// a *ValidationError carrying the failure message; any other error is
// attached verbatim. The context is the one given to Load or Dump.
type Validator interface {
	Validate(ctx context.Context, v any) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(ctx context.Context, v any) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(ctx context.Context, v any) error { return f(ctx, v) }

// ConstructorFunc builds the final internal value of an Object from its
// assembled field values. The default constructor returns the map itself.
type ConstructorFunc func(ctx context.Context, fields map[string]any) (any, error)

// Option configures a type at construction time. Types are immutable
// once constructed.
type Option func(*schemaOpts)

// Validate attaches validators, run in declaration order after the
// type-specific conversion. All failures are collected and merged, not
// just the first.
func Validate(vs ...Validator) Option {
	return func(o *schemaOpts) { o.validators = append(o.validators, vs...) }
}

// ErrorMessages overrides default message templates by key (CodeRequired,
// CodeInvalid, ...). Templates may reference {data}, {format} and similar
// placeholders, expanded with the offending values.
func ErrorMessages(m map[string]string) Option {
	return func(o *schemaOpts) {
		if o.overrides == nil {
			o.overrides = make(map[string]string, len(m))
		}
		for k, v := range m {
			o.overrides[k] = v
		}
	}
}

// LoadDefault makes loading a missing or nil value return v instead of
// failing with a required error. Conversion and validators are skipped.
func LoadDefault(v any) Option {
	return func(o *schemaOpts) { o.loadDefault, o.hasLoadDefault = v, true }
}

// DumpDefault is the dump-side counterpart of LoadDefault.
func DumpDefault(v any) Option {
	return func(o *schemaOpts) { o.dumpDefault, o.hasDumpDefault = v, true }
}

// Format selects the string format of DateTime, Date and Time: either a
// named predefined format ("rfc3339", "rfc822", ...) or a custom Go
// layout. Other types ignore it.
func Format(f string) Option {
	return func(o *schemaOpts) { o.format = f }
}

// Constructor sets the record-building strategy an Object applies to its
// assembled field values on load.
func Constructor(fn ConstructorFunc) Option {
	return func(o *schemaOpts) { o.constructor = fn }
}

// AllowExtraFields controls how an Object treats external keys no field
// covers: ignored when true (the default), reported as unknown-key
// errors when false.
func AllowExtraFields(allow bool) Option {
	return func(o *schemaOpts) { o.allowExtra = allow }
}

// schemaOpts is the configuration shared by every built-in type. It also
// implements the pipeline every Load/Dump follows: missing/required
// handling, then the type-specific conversion, then validators.
type schemaOpts struct {
	validators     []Validator
	defaults       map[string]string
	overrides      map[string]string
	loadDefault    any
	hasLoadDefault bool
	dumpDefault    any
	hasDumpDefault bool
	format         string
	constructor    ConstructorFunc
	allowExtra     bool
}

func buildOpts(defaults map[string]string, opts []Option) schemaOpts {
	o := schemaOpts{defaults: defaults, allowExtra: true}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (o *schemaOpts) message(code string) string {
	if m, ok := o.overrides[code]; ok {
		return m
	}
	if m, ok := o.defaults[code]; ok {
		return m
	}
	if m, ok := baseMessages[code]; ok {
		return m
	}
	return code
}

// fail builds a ValidationError for the given message key, expanding
// placeholders from params.
func (o *schemaOpts) fail(code string, params map[string]any) *ValidationError {
	return NewError(ExpandMessage(o.message(code), params))
}

// load runs the shared pipeline around the type-specific conversion.
func (o *schemaOpts) load(ctx context.Context, data any, conv func(any) (any, error)) (any, error) {
	if IsMissing(data) || data == nil {
		if o.hasLoadDefault {
			return o.loadDefault, nil
		}
		return nil, o.fail(CodeRequired, nil)
	}
	v, err := conv(data)
	if err != nil {
		return nil, err
	}
	if err := o.runValidators(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// dump mirrors load with the dump-side default.
func (o *schemaOpts) dump(ctx context.Context, value any, conv func(any) (any, error)) (any, error) {
	if IsMissing(value) || value == nil {
		if o.hasDumpDefault {
			return o.dumpDefault, nil
		}
		return nil, o.fail(CodeRequired, nil)
	}
	v, err := conv(value)
	if err != nil {
		return nil, err
	}
	if err := o.runValidators(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// runValidators runs every validator and merges all failures. Validator
// failures are independent: one failing does not stop the rest.
func (o *schemaOpts) runValidators(ctx context.Context, v any) error {
	var merged Messages
	for _, val := range o.validators {
		if err := val.Validate(ctx, v); err != nil {
			if ve, ok := AsValidationError(err); ok {
				merged = MergeMessages(merged, ve.Messages)
			} else {
				merged = MergeMessages(merged, Message(err.Error()))
			}
		}
	}
	if merged != nil {
		return &ValidationError{Messages: merged}
	}
	return nil
}
