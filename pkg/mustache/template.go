package mustache

import (
	"bytes"
	"io"
	"unicode/utf8"
)

// Template is a compiled mustache template plus its named partials.
// A Template is immutable once built and safe for concurrent renders,
// with one caveat: a Value tree containing lambdas must not be rendered
// from two goroutines at once, since lambdas carry mutable state.
type Template struct {
	tokens         []Token
	partials       map[string][]Token
	otag           string
	ctag           string
	extended       bool
	maxLambdaDepth int
}

// Render converts data through ToValue and renders the template into w.
func (t *Template) Render(w io.Writer, data interface{}) error {
	value, err := ToValue(data)
	if err != nil {
		return err
	}
	return t.RenderValue(w, value)
}

// RenderValue renders the template with an already converted Value.
func (t *Template) RenderValue(w io.Writer, value Value) error {
	rc := newRenderContext(t)
	return rc.render(w, []Value{value}, t.tokens)
}

// RenderString renders the template to a string. It fails with an
// EncodingError if the accumulated output is not valid UTF-8.
func (t *Template) RenderString(data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Render(&buf, data); err != nil {
		return "", err
	}
	if !utf8.Valid(buf.Bytes()) {
		return "", NewEncodingError("rendered output is not valid UTF-8")
	}
	return buf.String(), nil
}

// RenderValueString is RenderString for an already converted Value.
func (t *Template) RenderValueString(value Value) (string, error) {
	var buf bytes.Buffer
	if err := t.RenderValue(&buf, value); err != nil {
		return "", err
	}
	if !utf8.Valid(buf.Bytes()) {
		return "", NewEncodingError("rendered output is not valid UTF-8")
	}
	return buf.String(), nil
}

// Tokens returns the template's root token list. The returned slice
// must be treated as read-only.
func (t *Template) Tokens() []Token {
	return t.tokens
}

// PartialNames returns the names of the template's partials.
func (t *Template) PartialNames() []string {
	names := make([]string, 0, len(t.partials))
	for name := range t.partials {
		names = append(names, name)
	}
	return names
}
