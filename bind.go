package taffy

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// resolveFieldKey resolves a struct field's external key.
// Priority: taffy:"name=..." > json tag name > field name; "-" disables
// the field.
func resolveFieldKey(sf reflect.StructField) string {
	if tt := sf.Tag.Get("taffy"); tt != "" {
		for _, p := range strings.Split(tt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// StructConstructor returns an Object constructor strategy that builds a
// T from the assembled field values. Field keys resolve the same way the
// reflection Accessor resolves them (taffy tag, then json tag, then
// field name); loaded values are assigned when assignable and converted
// when convertible, so an int64 loaded by Integer lands in an int field.
func StructConstructor[T any]() ConstructorFunc {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("taffy: StructConstructor requires a struct type, got %s", rt))
	}
	idxByKey := make(map[string]int)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := resolveFieldKey(sf)
		if key == "-" || key == "" {
			continue
		}
		idxByKey[key] = i
	}
	return func(ctx context.Context, fields map[string]any) (any, error) {
		rv := reflect.New(rt).Elem()
		for key, idx := range idxByKey {
			val, ok := fields[key]
			if !ok {
				continue
			}
			fv := rv.Field(idx)
			if val == nil {
				switch fv.Kind() {
				case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
					fv.Set(reflect.Zero(fv.Type()))
				}
				continue
			}
			vv := reflect.ValueOf(val)
			switch {
			case vv.Type().AssignableTo(fv.Type()):
				fv.Set(vv)
			case vv.Type().ConvertibleTo(fv.Type()):
				fv.Set(vv.Convert(fv.Type()))
			default:
				return nil, fmt.Errorf("taffy: cannot assign %s to field %q of %s", vv.Type(), key, rt)
			}
		}
		return rv.Interface(), nil
	}
}
