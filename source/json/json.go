// Package json decodes JSON bytes into the external representation taffy
// types accept: map[string]any, []any, string, bool, json.Number and nil.
package json

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"
)

// Decode parses JSON bytes. Numbers decode as json.Number so integer
// precision survives all the way into taffy.Integer.
func Decode(b []byte) (any, error) {
	return DecodeReader(bytes.NewReader(b))
}

// DecodeReader is Decode over an io.Reader.
func DecodeReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
