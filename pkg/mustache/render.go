package mustache

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
)

// errIncompleteSection signals that the compiler handed the renderer an
// unterminated section sentinel, which a successful compile never does.
var errIncompleteSection = errors.New("incomplete section token in compiled template")

// renderContext is the per-render mutable state: the accumulated
// indentation prefix from enclosing partials, whether the next byte
// begins a fresh line, the current iteration anchor and the lambda
// re-expansion depth. It is exclusively owned by one render call.
type renderContext struct {
	template    *Template
	indent      string
	lineStart   bool
	anchor      string
	lambdaDepth int
}

func newRenderContext(t *Template) *renderContext {
	return &renderContext{
		template:  t,
		lineStart: true,
	}
}

func (rc *renderContext) render(w io.Writer, stack []Value, tokens []Token) error {
	for _, token := range tokens {
		if err := rc.renderToken(w, stack, token); err != nil {
			return err
		}
	}
	return nil
}

func (rc *renderContext) renderToken(w io.Writer, stack []Value, token Token) error {
	switch tok := token.(type) {
	case TextToken:
		return rc.renderText(w, tok.Text)
	case EscapedTag:
		return rc.renderETag(w, stack, tok.Path)
	case UnescapedTag:
		return rc.renderUTag(w, stack, tok.Path)
	case SectionToken:
		if tok.Inverted {
			return rc.renderInvertedSection(w, stack, tok)
		}
		return rc.renderSection(w, stack, tok)
	case PartialToken:
		return rc.renderPartial(w, stack, tok)
	case AnchorToken:
		return rc.renderAnchor(w)
	case JSONTag:
		return rc.renderJSON(w, stack, tok.Path, tok.Pretty)
	case TopSectionToken:
		return rc.renderTopSection(w, stack, tok.Children)
	case IncompleteSection:
		bugf("renderToken should not encounter incomplete sections")
		return NewRenderError("token dispatch", errIncompleteSection)
	default:
		bugf("renderToken: unknown token type %T", token)
		return nil
	}
}

// writeTracking writes value and records whether the output now sits at
// the start of a line.
func (rc *renderContext) writeTracking(w io.Writer, value string) error {
	if _, err := io.WriteString(w, value); err != nil {
		return err
	}
	if value != "" {
		rc.lineStart = value[len(value)-1] == '\n'
	}
	return nil
}

// writeIndent emits the active indentation prefix if the output is at
// a line start.
func (rc *renderContext) writeIndent(w io.Writer) error {
	if rc.lineStart {
		if _, err := io.WriteString(w, rc.indent); err != nil {
			return err
		}
	}
	return nil
}

// renderText copies literal text, prefixing each logical line with the
// active indent. A line beginning with the newline that terminated the
// previous line is not indented.
func (rc *renderContext) renderText(w io.Writer, value string) error {
	if rc.indent == "" {
		return rc.writeTracking(w, value)
	}

	pos := 0
	for pos < len(value) {
		rest := value[pos:]
		var line string
		if i := strings.IndexByte(rest, '\n'); i < 0 {
			line = rest
			pos = len(value)
		} else {
			line = rest[:i+1]
			pos += i + 1
		}

		if line[0] != '\n' {
			if err := rc.writeIndent(w); err != nil {
				return err
			}
		}
		if err := rc.writeTracking(w, line); err != nil {
			return err
		}
	}
	return nil
}

// renderETag renders the tag's unescaped form into a scratch buffer and
// escapes the whole buffer on the way out.
func (rc *renderContext) renderETag(w io.Writer, stack []Value, path []string) error {
	var scratch bytes.Buffer
	if err := rc.renderUTag(&scratch, stack, path); err != nil {
		return err
	}
	return writeEscaped(w, scratch.Bytes())
}

func (rc *renderContext) renderUTag(w io.Writer, stack []Value, path []string) error {
	value, ok := lookup(path, stack)
	if !ok {
		return nil
	}

	if err := rc.writeIndent(w); err != nil {
		return err
	}

	switch v := value.(type) {
	case Null:
		return nil
	case Text:
		return rc.writeTracking(w, string(v))
	case Bool:
		return rc.writeTracking(w, strconv.FormatBool(bool(v)))
	case *Lambda:
		// bare tags always re-expand with the default delimiters and
		// no captured source
		return rc.renderLambda(w, stack, "", DefaultOTag, DefaultCTag, v)
	default:
		// a collection under a plain tag means the template should
		// have used a section; degrade by skipping the node
		bugf("renderUTag: unexpected value %v", value)
		return nil
	}
}

func (rc *renderContext) renderSection(w io.Writer, stack []Value, section SectionToken) error {
	value, ok := lookup(section.Path, stack)
	if !ok {
		return nil
	}

	switch v := value.(type) {
	case Null:
		return nil
	case Bool:
		if v {
			return rc.render(w, stack, section.Children)
		}
		return nil
	case Text:
		if v == "" {
			return nil
		}
		return rc.render(w, append(stack, v), section.Children)
	case Sequence:
		saved := rc.anchor
		for i, item := range v {
			rc.anchor = strconv.Itoa(i)
			if err := rc.render(w, append(stack, item), section.Children); err != nil {
				return err
			}
		}
		rc.anchor = saved
		return nil
	case Mapping:
		if rc.template.extended && containsAnchor(section.Children) {
			return rc.renderAnchoredMapping(w, stack, v, section.Children)
		}
		return rc.render(w, append(stack, v), section.Children)
	case *Lambda:
		// the lambda's expansion replaces the section's children
		return rc.renderLambda(w, stack, section.Inner, section.OTag, section.CTag, v)
	default:
		bugf("renderSection: unexpected value %v", value)
		return nil
	}
}

// renderAnchoredMapping iterates map entries in sorted key order,
// binding the anchor to each key.
func (rc *renderContext) renderAnchoredMapping(w io.Writer, stack []Value, m Mapping, children []Token) error {
	saved := rc.anchor
	for _, key := range sortedKeys(m) {
		rc.anchor = key
		if err := rc.render(w, append(stack, m[key]), children); err != nil {
			return err
		}
	}
	rc.anchor = saved
	return nil
}

// renderInvertedSection renders its children exactly when the plain
// section would render nothing for a falsy value: absent, Null, false
// or an empty sequence. The first truthy resolution short-circuits.
func (rc *renderContext) renderInvertedSection(w io.Writer, stack []Value, section SectionToken) error {
	if value, ok := lookup(section.Path, stack); ok {
		switch v := value.(type) {
		case Null:
		case Bool:
			if v {
				return nil
			}
		case Sequence:
			if len(v) > 0 {
				return nil
			}
		default:
			return nil
		}
	}
	return rc.render(w, stack, section.Children)
}

// renderTopSection iterates every frame on the context stack from
// outermost to innermost. Mapping frames render with the frame pushed;
// when the children use the anchor, the frame's entries are iterated in
// sorted key order instead, the anchor bound to each key. Other frame
// kinds are skipped.
func (rc *renderContext) renderTopSection(w io.Writer, stack []Value, children []Token) error {
	frames := make([]Value, len(stack))
	copy(frames, stack)

	anchored := containsAnchor(children)
	for _, frame := range frames {
		m, ok := frame.(Mapping)
		if !ok {
			continue
		}
		if anchored {
			if err := rc.renderAnchoredMapping(w, stack, m, children); err != nil {
				return err
			}
			continue
		}
		if err := rc.render(w, append(stack, frame), children); err != nil {
			return err
		}
	}
	return nil
}

// renderPartial looks the partial up by name; missing partials render
// nothing. The call-site indent is stacked on the active prefix for
// exactly the partial's subtree.
func (rc *renderContext) renderPartial(w io.Writer, stack []Value, partial PartialToken) error {
	tokens, ok := rc.template.partials[partial.Name]
	if !ok {
		return nil
	}

	saved := rc.indent
	rc.indent = saved + partial.Indent
	err := rc.render(w, stack, tokens)
	rc.indent = saved
	return err
}

// renderAnchor emits the current iteration key or index.
func (rc *renderContext) renderAnchor(w io.Writer) error {
	if rc.anchor == "" {
		return nil
	}
	return rc.writeTracking(w, rc.anchor)
}

// renderJSON emits a resolved value as structured JSON, compact or
// pretty, with mapping keys sorted. The reserved -top- path selects
// the root of the context stack.
func (rc *renderContext) renderJSON(w io.Writer, stack []Value, path []string, pretty bool) error {
	if len(path) > 0 && path[0] == topSentinel {
		if len(stack) == 0 {
			return nil
		}
		return rc.writeMarshaled(w, stack[0], pretty)
	}

	value, ok := lookup(path, stack)
	if !ok {
		return nil
	}

	if err := rc.writeIndent(w); err != nil {
		return err
	}

	switch v := value.(type) {
	case Null:
		return nil
	case Text:
		return rc.writeTracking(w, string(v))
	case Bool:
		return rc.writeTracking(w, strconv.FormatBool(bool(v)))
	case *Lambda:
		return rc.renderLambda(w, stack, "", DefaultOTag, DefaultCTag, v)
	case Sequence, Mapping:
		return rc.writeMarshaled(w, v, pretty)
	default:
		bugf("renderJSON: unexpected value %v", value)
		return nil
	}
}

func (rc *renderContext) writeMarshaled(w io.Writer, value Value, pretty bool) error {
	var encoded []byte
	var err error
	if pretty {
		encoded, err = MarshalJSONIndent(value)
	} else {
		encoded, err = MarshalJSON(value)
	}
	if err != nil {
		bugf("writeMarshaled: %v", err)
		return nil
	}
	return rc.writeTracking(w, string(encoded))
}

// renderLambda invokes the producer with the captured source, compiles
// its output with the capturing tag's delimiters and renders the fresh
// tokens in place against the current stack.
func (rc *renderContext) renderLambda(w io.Writer, stack []Value, src, otag, ctag string, lambda *Lambda) error {
	if limit := rc.template.maxLambdaDepth; limit > 0 && rc.lambdaDepth >= limit {
		return NewRenderError("lambda expansion", errors.New("expansion depth exceeds "+strconv.Itoa(limit)))
	}

	expanded := lambda.invoke(src)
	tokens, err := compile(expanded, otag, ctag, rc.template.extended)
	if err != nil {
		return NewRenderError("lambda expansion", err)
	}

	rc.lambdaDepth++
	err = rc.render(w, stack, tokens)
	rc.lambdaDepth--
	return err
}
