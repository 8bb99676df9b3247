// Package validate provides the stock validators used with taffy types.
// Every validator satisfies taffy.Validator and reports failures as
// *taffy.ValidationError; messages are templates expanded with the
// offending value and the validator's parameters.
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"strconv"

	taffy "github.com/taffy-go/taffy"
)

// Predicate wraps a boolean test with a fixed message. The message may
// reference {data}.
func Predicate(test func(v any) bool, message string) taffy.Validator {
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		if test(v) {
			return nil
		}
		return taffy.NewError(taffy.ExpandMessage(message, map[string]any{"data": v}))
	})
}

// PredicateCtx is Predicate for tests that consult the traversal context.
func PredicateCtx(test func(ctx context.Context, v any) bool, message string) taffy.Validator {
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		if test(ctx, v) {
			return nil
		}
		return taffy.NewError(taffy.ExpandMessage(message, map[string]any{"data": v}))
	})
}

const (
	defaultMinMessage       = "Value should be at least {min}"
	defaultMaxMessage       = "Value should be at most {max}"
	defaultLengthMinMessage = "Length should be at least {min}"
	defaultLengthMaxMessage = "Length should be at most {max}"
	defaultLengthMessage    = "Length should be {expected}"
	defaultRegexpMessage    = "Value {data} does not match pattern {pattern}"
	defaultAnyOfMessage     = "Value {data} is not a valid choice"
	defaultNoneOfMessage    = "Value {data} is not allowed"
	defaultUniqueMessage    = "Values should be unique"
	defaultNotNumberMessage = "Value should be number"
)

// Min validates that a numeric value is at least min.
func Min(min float64, message ...string) taffy.Validator {
	msg := pick(message, defaultMinMessage)
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		n, ok := numericValue(v)
		if !ok {
			return taffy.NewError(defaultNotNumberMessage)
		}
		if n < min {
			return taffy.NewError(taffy.ExpandMessage(msg, map[string]any{"data": v, "min": min}))
		}
		return nil
	})
}

// Max validates that a numeric value is at most max.
func Max(max float64, message ...string) taffy.Validator {
	msg := pick(message, defaultMaxMessage)
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		n, ok := numericValue(v)
		if !ok {
			return taffy.NewError(defaultNotNumberMessage)
		}
		if n > max {
			return taffy.NewError(taffy.ExpandMessage(msg, map[string]any{"data": v, "max": max}))
		}
		return nil
	})
}

// Range validates that a numeric value lies in [min, max]. Both bound
// failures are reported independently and merged.
func Range(min, max float64) taffy.Validator {
	lo, hi := Min(min), Max(max)
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		var merged taffy.Messages
		for _, val := range []taffy.Validator{lo, hi} {
			if err := val.Validate(ctx, v); err != nil {
				if ve, ok := taffy.AsValidationError(err); ok {
					merged = taffy.MergeMessages(merged, ve.Messages)
					continue
				}
				return err
			}
		}
		if merged != nil {
			return &taffy.ValidationError{Messages: merged}
		}
		return nil
	})
}

// LengthMin validates that the value's length is at least min. It
// applies to strings, slices, arrays and maps.
func LengthMin(min int, message ...string) taffy.Validator {
	msg := pick(message, defaultLengthMinMessage)
	return lengthValidator(func(n int) bool { return n >= min }, msg, map[string]any{"min": min})
}

// LengthMax validates that the value's length is at most max.
func LengthMax(max int, message ...string) taffy.Validator {
	msg := pick(message, defaultLengthMaxMessage)
	return lengthValidator(func(n int) bool { return n <= max }, msg, map[string]any{"max": max})
}

// Length validates that the value's length is exactly expected.
func Length(expected int, message ...string) taffy.Validator {
	msg := pick(message, defaultLengthMessage)
	return lengthValidator(func(n int) bool { return n == expected }, msg, map[string]any{"expected": expected})
}

func lengthValidator(ok func(int) bool, msg string, params map[string]any) taffy.Validator {
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		n, has := lengthOf(v)
		if !has {
			return taffy.NewError("Value has no length")
		}
		if ok(n) {
			return nil
		}
		p := map[string]any{"data": v, "length": n}
		for k, pv := range params {
			p[k] = pv
		}
		return taffy.NewError(taffy.ExpandMessage(msg, p))
	})
}

// Regexp validates that a string value matches the pattern. The pattern
// is compiled at construction; an invalid pattern panics, as it is a
// programming error.
func Regexp(pattern string, message ...string) taffy.Validator {
	re := regexp.MustCompile(pattern)
	msg := pick(message, defaultRegexpMessage)
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		s, ok := v.(string)
		if !ok {
			return taffy.NewError("Value should be string")
		}
		if re.MatchString(s) {
			return nil
		}
		return taffy.NewError(taffy.ExpandMessage(msg, map[string]any{"data": s, "pattern": pattern}))
	})
}

// AnyOf validates that the value equals one of the given choices.
func AnyOf(choices []any, message ...string) taffy.Validator {
	msg := pick(message, defaultAnyOfMessage)
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		for _, c := range choices {
			if reflect.DeepEqual(v, c) {
				return nil
			}
		}
		return taffy.NewError(taffy.ExpandMessage(msg, map[string]any{"data": v}))
	})
}

// NoneOf validates that the value equals none of the given values.
func NoneOf(values []any, message ...string) taffy.Validator {
	msg := pick(message, defaultNoneOfMessage)
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		for _, c := range values {
			if reflect.DeepEqual(v, c) {
				return taffy.NewError(taffy.ExpandMessage(msg, map[string]any{"data": v}))
			}
		}
		return nil
	})
}

// Each applies the given validators to every element of a sequence.
// Failures are keyed by element index, mirroring how List shapes its
// errors.
func Each(vs ...taffy.Validator) taffy.Validator {
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		items, ok := sequenceOf(v)
		if !ok {
			return taffy.NewError("Value should be list")
		}
		var merged taffy.Messages
		for i, item := range items {
			var elem taffy.Messages
			for _, val := range vs {
				if err := val.Validate(ctx, item); err != nil {
					if ve, ok := taffy.AsValidationError(err); ok {
						elem = taffy.MergeMessages(elem, ve.Messages)
						continue
					}
					return err
				}
			}
			if elem != nil {
				merged = taffy.MergeMessages(merged, taffy.MessageMap{strconv.Itoa(i): elem})
			}
		}
		if merged != nil {
			return &taffy.ValidationError{Messages: merged}
		}
		return nil
	})
}

// Unique validates that a sequence contains no duplicate elements.
func Unique(message ...string) taffy.Validator {
	msg := pick(message, defaultUniqueMessage)
	return taffy.ValidatorFunc(func(ctx context.Context, v any) error {
		items, ok := sequenceOf(v)
		if !ok {
			return taffy.NewError("Value should be list")
		}
		seen := make(map[string]struct{}, len(items))
		for _, item := range items {
			key := fmt.Sprintf("%T:%v", item, item)
			if _, dup := seen[key]; dup {
				return taffy.NewError(taffy.ExpandMessage(msg, map[string]any{"data": item}))
			}
			seen[key] = struct{}{}
		}
		return nil
	})
}

func pick(override []string, fallback string) string {
	if len(override) > 0 && override[0] != "" {
		return override[0]
	}
	return fallback
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case *big.Int:
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

func lengthOf(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return len([]rune(s)), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

func sequenceOf(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	switch v.(type) {
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
