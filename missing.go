package taffy

// missingType is the type of the Missing sentinel. It is distinct from
// nil so that "absent from the source" and "present but null" never
// collide.
type missingType struct{}

func (missingType) String() string { return "<missing>" }

// Missing marks a value absent from the source: a key not present in a
// mapping, or an attribute the target object does not have. Fields yield
// it on the load side for absent keys and composite types omit it from
// assembled results.
var Missing missingType

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v any) bool {
	_, ok := v.(missingType)
	return ok
}
