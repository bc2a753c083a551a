package mustache

import (
	"fmt"
	"sort"
	"sync"
)

// Value is the data model observed by templates. It is a closed union:
// the only implementations are Null, Text, Bool, Sequence, Mapping and
// *Lambda. The render engine never mutates a Value; it only reads
// through a per-render context stack.
type Value interface {
	valueNode()
}

// Null is the absent value. A tag resolving to Null renders nothing.
type Null struct{}

// Text is a string value.
type Text string

// Bool is a boolean value. Sections treat it as a plain condition.
type Bool bool

// Sequence is an ordered list of values. Sections iterate it.
type Sequence []Value

// Mapping is a string-keyed collection of values. Iteration order is
// unspecified; serialization and anchored iteration sort the keys.
type Mapping map[string]Value

// Lambda wraps a stateful string -> string transform whose output is
// template source, re-compiled and rendered in place. The function may
// carry internal state across invocations, so it is invoked through an
// exclusive lock; a single Value tree containing lambdas must not be
// rendered from two goroutines at once.
type Lambda struct {
	mu sync.Mutex
	fn func(string) string
}

// NewLambda wraps fn as a template value.
func NewLambda(fn func(string) string) *Lambda {
	return &Lambda{fn: fn}
}

// invoke calls the wrapped transform under the exclusive lock.
func (l *Lambda) invoke(src string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fn(src)
}

func (Null) valueNode()     {}
func (Text) valueNode()     {}
func (Bool) valueNode()     {}
func (Sequence) valueNode() {}
func (Mapping) valueNode()  {}
func (*Lambda) valueNode()  {}

// Equal reports structural equality of two values. Lambdas are not
// comparable: any comparison involving one is an internal-error
// condition that is logged through the bug channel and evaluates to
// false rather than panicking.
func Equal(a, b Value) bool {
	if _, ok := a.(*Lambda); ok {
		bugf("cannot compare lambdas")
		return false
	}
	if _, ok := b.(*Lambda); ok {
		bugf("cannot compare lambdas")
		return false
	}

	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Sequence:
		bv, ok := b.(Sequence)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Mapping:
		bv, ok := b.(Mapping)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// sortedKeys returns the mapping's keys in lexicographic order.
func sortedKeys(m Mapping) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders a debug representation of the value.
func (Null) String() string     { return "Null" }
func (t Text) String() string   { return fmt.Sprintf("Text(%s)", string(t)) }
func (b Bool) String() string   { return fmt.Sprintf("Bool(%v)", bool(b)) }
func (s Sequence) String() string {
	return fmt.Sprintf("Sequence(%d items)", len(s))
}
func (m Mapping) String() string {
	return fmt.Sprintf("Mapping(%d keys)", len(m))
}
func (*Lambda) String() string { return "Lambda(...)" }
