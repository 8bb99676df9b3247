// Package taffy is a bidirectional schema engine. It converts between an
// external representation (plain values: strings, numbers, slices, maps)
// and an internal representation (richly typed domain values), validating
// structure and content in both directions.
//
// A schema is a tree of Type values. Leaves are primitives (String,
// Integer, Boolean, DateTime, ...), interior nodes are List, Dict and
// Object. Load walks the tree converting external data inward; Dump walks
// it in the mirror direction. Validation failures surface as
// *ValidationError whose Messages payload mirrors the shape of the data:
// a List's errors are keyed by element index, an Object's by field name,
// never flattened.
//
//	user := taffy.Object(map[string]any{
//		"name":  taffy.String(),
//		"age":   taffy.Integer(taffy.Validate(validate.Min(0))),
//		"email": taffy.Optional(taffy.String()),
//	})
//	v, err := user.Load(ctx, data)
//
// Types are immutable after construction and safe for concurrent use.
// The context passed to Load and Dump is threaded unchanged through the
// whole traversal and is visible to validators and user-defined types.
package taffy
