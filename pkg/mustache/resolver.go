package mustache

// lookup resolves a dotted path against the context stack.
//
// An empty path addresses the top of the stack (the bare {{.}} form).
// Otherwise the first segment is searched from the innermost frame
// outward, considering only Mapping frames; scalar and Sequence frames
// are skipped transparently. The remaining segments then walk Mapping
// values from that base. Missing data is not an error: every failure
// mode returns (nil, false) and callers render nothing.
func lookup(path []string, stack []Value) (Value, bool) {
	if len(path) == 0 {
		if len(stack) == 0 {
			return nil, false
		}
		return stack[len(stack)-1], true
	}

	var value Value
	found := false
	for i := len(stack) - 1; i >= 0; i-- {
		if m, ok := stack[i].(Mapping); ok {
			if v, ok := m[path[0]]; ok {
				value = v
				found = true
				break
			}
		}
	}
	if !found {
		return nil, false
	}

	for _, part := range path[1:] {
		m, ok := value.(Mapping)
		if !ok {
			return nil, false
		}
		value, ok = m[part]
		if !ok {
			return nil, false
		}
	}

	return value, true
}
