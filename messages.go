package taffy

import (
	"fmt"
	"strings"
)

// baseMessages holds the templates shared by every type. Type-specific
// tables (see primitives.go, datetime.go, the composites) layer on top,
// and per-instance ErrorMessages overrides layer on top of those.
var baseMessages = map[string]string{
	CodeRequired: "Value is required",
}

// ExpandMessage substitutes {name} placeholders in a message template
// with values from params. Unknown placeholders are left untouched.
func ExpandMessage(tmpl string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	for k, v := range params {
		tmpl = strings.ReplaceAll(tmpl, "{"+k+"}", fmt.Sprint(v))
	}
	return tmpl
}
