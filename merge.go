package taffy

// SchemaKey is the reserved key that holds node-level failures when they
// merge with keyed failures: a validator reporting per-element errors
// (keyed by index) can fail alongside one reporting a plain message, and
// the plain message nests under this key so neither side is lost.
const SchemaKey = "_schema"

// MergeMessages combines two error payloads into one. Scalars and lists
// concatenate in order (left first); maps merge key-wise, merging shared
// keys recursively; a non-keyed payload merging with a keyed one nests
// under SchemaKey first. The operation is associative, so repeated
// merges depend only on left-to-right sequence.
func MergeMessages(a, b Messages) Messages {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	switch av := a.(type) {
	case Message:
		switch bv := b.(type) {
		case Message:
			return MessageList{string(av), string(bv)}
		case MessageList:
			out := make(MessageList, 0, 1+len(bv))
			out = append(out, string(av))
			return append(out, bv...)
		case MessageMap:
			return MergeMessages(MessageMap{SchemaKey: av}, bv)
		}
	case MessageList:
		switch bv := b.(type) {
		case Message:
			out := make(MessageList, 0, len(av)+1)
			out = append(out, av...)
			return append(out, string(bv))
		case MessageList:
			out := make(MessageList, 0, len(av)+len(bv))
			out = append(out, av...)
			return append(out, bv...)
		case MessageMap:
			return MergeMessages(MessageMap{SchemaKey: av}, bv)
		}
	case MessageMap:
		switch bv := b.(type) {
		case Message, MessageList:
			return MergeMessages(av, MessageMap{SchemaKey: bv})
		case MessageMap:
			out := make(MessageMap, len(av)+len(bv))
			for k, v := range av {
				out[k] = v
			}
			for k, v := range bv {
				if prev, ok := out[k]; ok {
					out[k] = MergeMessages(prev, v)
				} else {
					out[k] = v
				}
			}
			return out
		}
	}
	return a
}
