package taffy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error message keys. Every key can be overridden per type instance via
// the ErrorMessages option.
const (
	CodeRequired      = "required"
	CodeInvalid       = "invalid"
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
	CodeUnknown       = "unknown"
)

// Messages is the recursive payload carried by a ValidationError. The
// concrete shapes are Message (a single failure), MessageList (several
// failures at the same node, in order) and MessageMap (failures keyed by
// field name or element index). The shape mirrors the shape of the data
// that failed.
type Messages interface {
	isMessages()
}

// Message is a single failure description.
type Message string

// MessageList is an ordered collection of failure descriptions attached
// to one node, typically produced by several validators failing at once.
type MessageList []string

// MessageMap keys nested failures by field name, dict key or element
// index. Indices are rendered as decimal strings ("0", "2").
type MessageMap map[string]Messages

func (Message) isMessages()     {}
func (MessageList) isMessages() {}
func (MessageMap) isMessages()  {}

// ValidationError is the only error kind the engine produces for bad
// data. Configuration mistakes (for example a MethodField naming a
// method the target does not have) surface as plain errors instead.
type ValidationError struct {
	Messages Messages
}

// NewError returns a ValidationError with a single message.
func NewError(msg string) *ValidationError {
	return &ValidationError{Messages: Message(msg)}
}

// Error summarizes the first few leaf failures.
func (e *ValidationError) Error() string {
	const maxShown = 3
	var leaves []string
	collectLeaves("", e.Messages, &leaves)
	if len(leaves) == 0 {
		return "taffy: validation failed"
	}
	b := &strings.Builder{}
	b.WriteString("taffy: ")
	lim := len(leaves)
	if lim > maxShown {
		lim = maxShown
	}
	b.WriteString(strings.Join(leaves[:lim], "; "))
	if len(leaves) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(leaves))
	}
	return b.String()
}

// AsValidationError extracts a *ValidationError using errors.As.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func collectLeaves(path string, m Messages, out *[]string) {
	switch v := m.(type) {
	case nil:
	case Message:
		*out = append(*out, leafLine(path, string(v)))
	case MessageList:
		for _, s := range v {
			*out = append(*out, leafLine(path, s))
		}
	case MessageMap:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectLeaves(path+"/"+k, v[k], out)
		}
	}
}

func leafLine(path, msg string) string {
	if path == "" {
		return msg
	}
	return msg + " at " + path
}
