package taffy

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// ErrNoSuchMethod reports that a MethodField names a method its dump
// target does not have, or one that cannot be invoked without arguments.
// It is a caller programming error, not a data-validation failure, so it
// is a plain error rather than a ValidationError.
var ErrNoSuchMethod = errors.New("taffy: no such method")

// Field decouples where a value lives on a host object or mapping from
// how it is typed. Every field wraps an inner Type and is used inside
// Object schemas: Load receives the whole external mapping, Dump the
// whole internal object.
type Field interface {
	Load(ctx context.Context, name string, source map[string]any) (any, error)
	Dump(ctx context.Context, name string, target any) (any, error)
}

// Accessor is the capability the dump side uses to read values off a
// host object. Values may implement it themselves; maps and structs get
// built-in implementations (structs via reflection, honoring
// taffy:"name=..." and json tags).
type Accessor interface {
	// Get reads the named attribute, reporting false when absent.
	Get(name string) (any, bool)
	// Invoke calls the named zero-argument method.
	Invoke(method string) (any, error)
}

// AccessorFor resolves the Accessor for a dump target: the value itself
// if it implements Accessor, a map accessor for map[string]any, and a
// reflection-backed accessor otherwise.
func AccessorFor(target any) Accessor {
	switch t := target.(type) {
	case Accessor:
		return t
	case map[string]any:
		return mapAccessor(t)
	default:
		return reflectAccessor{v: reflect.ValueOf(target)}
	}
}

type mapAccessor map[string]any

func (m mapAccessor) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func (m mapAccessor) Invoke(method string) (any, error) {
	return nil, fmt.Errorf("%w: %q on map value", ErrNoSuchMethod, method)
}

type reflectAccessor struct {
	v reflect.Value
}

func (r reflectAccessor) Get(name string) (any, bool) {
	v := r.v
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	rt := v.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if resolveFieldKey(sf) == name {
			return v.Field(i).Interface(), true
		}
	}
	return nil, false
}

func (r reflectAccessor) Invoke(method string) (any, error) {
	m := r.v.MethodByName(method)
	if !m.IsValid() && r.v.CanAddr() {
		m = r.v.Addr().MethodByName(method)
	}
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %q on %s", ErrNoSuchMethod, method, r.v.Type())
	}
	mt := m.Type()
	if mt.NumIn() != 0 {
		return nil, fmt.Errorf("%w: %q on %s takes arguments", ErrNoSuchMethod, method, r.v.Type())
	}
	out := m.Call(nil)
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		if err, ok := out[len(out)-1].Interface().(error); ok && err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	}
}

// Attribute wraps a Type as an attribute-based field: load reads the
// external key of the same name, dump reads the same-named attribute off
// the target.
func Attribute(inner Type) Field {
	return &attributeField{inner: inner}
}

// AttributeAs is Attribute with the storage name decoupled from the
// external field name: both load and dump use attr instead of the name
// the Object registered the field under.
func AttributeAs(attr string, inner Type) Field {
	return &attributeField{inner: inner, attr: attr}
}

type attributeField struct {
	inner Type
	attr  string
}

func (f *attributeField) key(name string) string {
	if f.attr != "" {
		return f.attr
	}
	return name
}

func (f *attributeField) Load(ctx context.Context, name string, source map[string]any) (any, error) {
	v, ok := source[f.key(name)]
	if !ok {
		v = Missing
	}
	return f.inner.Load(ctx, v)
}

func (f *attributeField) Dump(ctx context.Context, name string, target any) (any, error) {
	v, ok := AccessorFor(target).Get(f.key(name))
	if !ok {
		v = Missing
	}
	return f.inner.Dump(ctx, v)
}

// Method wraps a Type as a dump-only field fed by the named zero-argument
// method of the target. Loading always yields Missing.
func Method(method string, inner Type) Field {
	return &methodField{inner: inner, method: method}
}

type methodField struct {
	inner  Type
	method string
}

func (f *methodField) Load(ctx context.Context, name string, source map[string]any) (any, error) {
	return Missing, nil
}

func (f *methodField) Dump(ctx context.Context, name string, target any) (any, error) {
	v, err := AccessorFor(target).Invoke(f.method)
	if err != nil {
		return nil, err
	}
	return f.inner.Dump(ctx, v)
}

// ExtractorFunc pulls a raw value for the named field off a dump target.
type ExtractorFunc func(ctx context.Context, name string, target any) (any, error)

// Function wraps a Type as a dump-only field fed by a caller-supplied
// extractor. Loading always yields Missing.
func Function(fn ExtractorFunc, inner Type) Field {
	return &functionField{inner: inner, fn: fn}
}

type functionField struct {
	inner Type
	fn    ExtractorFunc
}

func (f *functionField) Load(ctx context.Context, name string, source map[string]any) (any, error) {
	return Missing, nil
}

func (f *functionField) Dump(ctx context.Context, name string, target any) (any, error) {
	v, err := f.fn(ctx, name, target)
	if err != nil {
		return nil, err
	}
	return f.inner.Dump(ctx, v)
}

// Constant wraps a Type as a dump-only field that always emits the fixed
// value. Loading always yields Missing.
func Constant(value any, inner Type) Field {
	return &constantField{inner: inner, value: value}
}

type constantField struct {
	inner Type
	value any
}

func (f *constantField) Load(ctx context.Context, name string, source map[string]any) (any, error) {
	return Missing, nil
}

func (f *constantField) Dump(ctx context.Context, name string, target any) (any, error) {
	return f.inner.Dump(ctx, f.value)
}
