package mustache

// Token is a node of a compiled template. Tokens are immutable once
// built and are shared read-only across concurrent renders.
type Token interface {
	tokenNode()
}

// TextToken is a literal run of template text.
type TextToken struct {
	Text string
}

// EscapedTag is a {{name}} tag; its rendered value is HTML-escaped.
type EscapedTag struct {
	Path []string
}

// UnescapedTag is a {{{name}}} or {{&name}} tag; its value is written
// verbatim.
type UnescapedTag struct {
	Path []string
}

// SectionToken is a {{#name}}...{{/name}} or {{^name}}...{{/name}}
// block. OTag/CTag are the delimiters in effect when the section was
// opened and Inner is the raw source between the tags; both are needed
// to re-expand a lambda-valued section.
type SectionToken struct {
	Path     []string
	Inverted bool
	Children []Token
	OTag     string
	CTag     string
	Inner    string
}

// PartialToken is a {{>name}} reference. Indent is the whitespace that
// preceded a standalone partial tag; it is applied to every line the
// partial emits.
type PartialToken struct {
	Name   string
	Indent string
}

// AnchorToken is the {{@}} extension tag: it emits the current
// iteration key or index.
type AnchorToken struct{}

// JSONTag is the {{$path}} (compact) or {{%path}} (pretty) extension
// tag: it emits the resolved value as JSON with mapping keys sorted.
// The reserved path segment "-top-" selects the root of the context
// stack.
type JSONTag struct {
	Path   []string
	Pretty bool
}

// TopSectionToken is the {{#-top-}}...{{/-top-}} extension block: it
// iterates every frame on the context stack from outermost to
// innermost instead of just the top.
type TopSectionToken struct {
	Children []Token
}

// IncompleteSection is a sentinel for a section the compiler never
// closed. A successful compile never emits one; encountering it at
// render time is a compiler bug and fails the render.
type IncompleteSection struct {
	Path     []string
	Inverted bool
}

func (TextToken) tokenNode()         {}
func (EscapedTag) tokenNode()        {}
func (UnescapedTag) tokenNode()      {}
func (SectionToken) tokenNode()      {}
func (PartialToken) tokenNode()      {}
func (AnchorToken) tokenNode()       {}
func (JSONTag) tokenNode()           {}
func (TopSectionToken) tokenNode()   {}
func (IncompleteSection) tokenNode() {}

// topSentinel is the reserved path name addressing the root of the
// context stack in the structured-data extension.
const topSentinel = "-top-"

// containsAnchor reports whether tokens contains an AnchorToken at this
// nesting level. Section rendering uses it to decide between anchored
// (sorted key) and plain mapping iteration; the check is intentionally
// shallow, matching the scope the anchor binds to.
func containsAnchor(tokens []Token) bool {
	for _, tok := range tokens {
		if _, ok := tok.(AnchorToken); ok {
			return true
		}
	}
	return false
}
