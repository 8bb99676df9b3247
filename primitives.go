package taffy

import (
	"context"
	"encoding/json"
	"math/big"
	"strconv"

	"fortio.org/safecast"
)

// Any passes values through unchanged in both directions. The
// required/validator pipeline still applies.
func Any(opts ...Option) Type {
	return &anyType{opts: buildOpts(nil, opts)}
}

type anyType struct {
	opts schemaOpts
}

func (t *anyType) Load(ctx context.Context, data any) (any, error) {
	return t.opts.load(ctx, data, func(v any) (any, error) { return v, nil })
}

func (t *anyType) Dump(ctx context.Context, value any) (any, error) {
	return t.opts.dump(ctx, value, func(v any) (any, error) { return v, nil })
}

var stringMessages = map[string]string{
	CodeInvalid: "Value should be string",
}

// String accepts string values only.
func String(opts ...Option) Type {
	return &stringType{opts: buildOpts(stringMessages, opts)}
}

type stringType struct {
	opts schemaOpts
}

func (t *stringType) Load(ctx context.Context, data any) (any, error) {
	return t.opts.load(ctx, data, t.conv)
}

func (t *stringType) Dump(ctx context.Context, value any) (any, error) {
	return t.opts.dump(ctx, value, t.conv)
}

func (t *stringType) conv(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, t.opts.fail(CodeInvalid, map[string]any{"data": v})
}

var booleanMessages = map[string]string{
	CodeInvalid: "Value should be boolean",
}

// Boolean accepts bool values only.
func Boolean(opts ...Option) Type {
	return &booleanType{opts: buildOpts(booleanMessages, opts)}
}

type booleanType struct {
	opts schemaOpts
}

func (t *booleanType) Load(ctx context.Context, data any) (any, error) {
	return t.opts.load(ctx, data, t.conv)
}

func (t *booleanType) Dump(ctx context.Context, value any) (any, error) {
	return t.opts.dump(ctx, value, t.conv)
}

func (t *booleanType) conv(v any) (any, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return nil, t.opts.fail(CodeInvalid, map[string]any{"data": v})
}

var integerMessages = map[string]string{
	CodeInvalid: "Value should be integer",
}

// Integer accepts integer values of any Go width, *big.Int, and integral
// json.Number strings. Values within int64 range load as int64; larger
// ones load as *big.Int so no precision is ever lost. Floats are
// rejected.
func Integer(opts ...Option) Type {
	return &integerType{opts: buildOpts(integerMessages, opts)}
}

type integerType struct {
	opts schemaOpts
}

func (t *integerType) Load(ctx context.Context, data any) (any, error) {
	return t.opts.load(ctx, data, t.conv)
}

func (t *integerType) Dump(ctx context.Context, value any) (any, error) {
	return t.opts.dump(ctx, value, t.conv)
}

func (t *integerType) conv(v any) (any, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		if c, err := safecast.Conv[int64](n); err == nil {
			return c, nil
		}
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if c, err := safecast.Conv[int64](n); err == nil {
			return c, nil
		}
		return new(big.Int).SetUint64(n), nil
	case *big.Int:
		return n, nil
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, nil
		}
		if b, ok := new(big.Int).SetString(string(n), 10); ok {
			return b, nil
		}
	}
	return nil, t.opts.fail(CodeInvalid, map[string]any{"data": v})
}

var numberMessages = map[string]string{
	CodeInvalid: "Value should be number",
}

// Float accepts any numeric value, integer or floating, and loads it as
// float64.
func Float(opts ...Option) Type {
	return &floatType{opts: buildOpts(numberMessages, opts)}
}

type floatType struct {
	opts schemaOpts
}

func (t *floatType) Load(ctx context.Context, data any) (any, error) {
	return t.opts.load(ctx, data, t.conv)
}

func (t *floatType) Dump(ctx context.Context, value any) (any, error) {
	return t.opts.dump(ctx, value, t.conv)
}

func (t *floatType) conv(v any) (any, error) {
	return numericConv(v, t.opts)
}

// Number accepts any numeric value, integer or floating, and loads it as
// float64. Use Integer where arbitrary precision matters.
func Number(opts ...Option) Type {
	return &numberType{opts: buildOpts(numberMessages, opts)}
}

type numberType struct {
	opts schemaOpts
}

func (t *numberType) Load(ctx context.Context, data any) (any, error) {
	return t.opts.load(ctx, data, t.conv)
}

func (t *numberType) Dump(ctx context.Context, value any) (any, error) {
	return t.opts.dump(ctx, value, t.conv)
}

func (t *numberType) conv(v any) (any, error) {
	return numericConv(v, t.opts)
}

func numericConv(v any, opts schemaOpts) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		if f, err := strconv.ParseFloat(string(n), 64); err == nil {
			return f, nil
		}
	}
	return nil, opts.fail(CodeInvalid, map[string]any{"data": v})
}
