package mustache

import (
	"strings"
)

// DefaultOTag and DefaultCTag are the standard mustache delimiters.
const (
	DefaultOTag = "{{"
	DefaultCTag = "}}"
)

type tagKind int

const (
	tagVariable tagKind = iota
	tagUnescaped
	tagSectionOpen
	tagInvertedOpen
	tagSectionClose
	tagPartial
	tagComment
	tagDelimiters
	tagAnchor
	tagJSON
	tagJSONPretty
)

// rawItem is a scanned but not yet structured piece of template source:
// either a literal text run or a single tag.
type rawItem struct {
	isTag bool

	// literal text when !isTag
	text string

	// tag fields
	kind       tagKind
	name       string
	start, end int    // byte offsets of the whole tag in the source
	otag, ctag string // delimiters in effect when the tag was read
	indent     string // leading whitespace of a standalone partial
}

// compile turns template source into a token tree. otag and ctag are
// the delimiters in effect at the start of the source; extended
// enables the structured-data tag spellings. Partial references stay
// symbolic in the tree and resolve against the owning template's
// partial map at render time.
func compile(source, otag, ctag string, extended bool) ([]Token, error) {
	items, err := scan(source, otag, ctag, extended)
	if err != nil {
		return nil, err
	}
	trimStandalone(items)
	return buildTree(source, items, extended)
}

// scan splits the source into text runs and tags, applying delimiter
// changes as it goes.
func scan(source, otag, ctag string, extended bool) ([]*rawItem, error) {
	var items []*rawItem
	pos := 0

	for pos < len(source) {
		rel := strings.Index(source[pos:], otag)
		if rel < 0 {
			items = append(items, &rawItem{text: source[pos:]})
			break
		}
		if rel > 0 {
			items = append(items, &rawItem{text: source[pos : pos+rel]})
		}

		tagStart := pos + rel
		contentStart := tagStart + len(otag)

		// {{{name}}} unescaped form: the content is wrapped in one
		// extra brace and closed by "}" + ctag.
		var content string
		var tagEnd int
		if strings.HasPrefix(source[contentStart:], "{") {
			closer := "}" + ctag
			rel := strings.Index(source[contentStart+1:], closer)
			if rel < 0 {
				line, col := lineCol(source, tagStart)
				return nil, NewParseError("unclosed tag", line, col)
			}
			content = "&" + source[contentStart+1:contentStart+1+rel]
			tagEnd = contentStart + 1 + rel + len(closer)
		} else {
			rel := strings.Index(source[contentStart:], ctag)
			if rel < 0 {
				line, col := lineCol(source, tagStart)
				return nil, NewParseError("unclosed tag", line, col)
			}
			content = source[contentStart : contentStart+rel]
			tagEnd = contentStart + rel + len(ctag)
		}

		item, newOTag, newCTag, err := classifyTag(source, tagStart, content, extended)
		if err != nil {
			return nil, err
		}
		item.start = tagStart
		item.end = tagEnd
		item.otag = otag
		item.ctag = ctag
		items = append(items, item)

		if item.kind == tagDelimiters {
			otag, ctag = newOTag, newCTag
		}
		pos = tagEnd
	}

	return items, nil
}

// classifyTag determines a tag's kind from its leading sigil.
func classifyTag(source string, tagStart int, content string, extended bool) (*rawItem, string, string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		line, col := lineCol(source, tagStart)
		return nil, "", "", NewParseError("empty tag", line, col)
	}

	item := &rawItem{isTag: true}
	sigil := content[0]

	switch sigil {
	case '#':
		item.kind = tagSectionOpen
	case '^':
		item.kind = tagInvertedOpen
	case '/':
		item.kind = tagSectionClose
	case '>':
		item.kind = tagPartial
	case '!':
		item.kind = tagComment
	case '&':
		item.kind = tagUnescaped
	case '=':
		if len(content) < 2 || content[len(content)-1] != '=' {
			line, col := lineCol(source, tagStart)
			return nil, "", "", NewParseError("invalid delimiter tag", line, col)
		}
		parts := strings.Fields(content[1 : len(content)-1])
		if len(parts) != 2 {
			line, col := lineCol(source, tagStart)
			return nil, "", "", NewParseError("delimiter tag must name an open and a close delimiter", line, col)
		}
		item.kind = tagDelimiters
		return item, parts[0], parts[1], nil
	case '@':
		if extended && content == "@" {
			item.kind = tagAnchor
			return item, "", "", nil
		}
		item.kind = tagVariable
		item.name = content
		return item, "", "", nil
	case '$':
		if extended {
			item.kind = tagJSON
		} else {
			item.kind = tagVariable
			item.name = content
			return item, "", "", nil
		}
	case '%':
		if extended {
			item.kind = tagJSONPretty
		} else {
			item.kind = tagVariable
			item.name = content
			return item, "", "", nil
		}
	default:
		item.kind = tagVariable
		item.name = content
		return item, "", "", nil
	}

	name := strings.TrimSpace(content[1:])
	if name == "" {
		line, col := lineCol(source, tagStart)
		return nil, "", "", NewParseError("tag has no name", line, col)
	}
	item.name = name
	return item, "", "", nil
}

// trimStandalone removes the surrounding whitespace of structural tags
// that sit alone on a line, per the mustache standalone-line rule. A
// standalone partial keeps the removed leading whitespace as its
// per-occurrence indent.
func trimStandalone(items []*rawItem) {
	// line-start state immediately before the current and the previous
	// item, given trims already applied
	ls, lsPrev := true, true

	for i, item := range items {
		if !item.isTag {
			lsPrev = ls
			if item.text != "" {
				ls = strings.HasSuffix(item.text, "\n")
			}
			continue
		}

		if !standaloneKind(item.kind) {
			lsPrev = ls
			ls = false
			continue
		}

		// whitespace (or nothing) between the last newline and the tag
		preOK := false
		preWs := ""
		var prevText *rawItem
		if i == 0 {
			preOK = true
		} else if prev := items[i-1]; !prev.isTag {
			prevText = prev
			if j := strings.LastIndexByte(prev.text, '\n'); j >= 0 {
				preWs = prev.text[j+1:]
				preOK = isIndentWs(preWs)
			} else {
				preWs = prev.text
				preOK = lsPrev && isIndentWs(preWs)
			}
		}

		// whitespace up to and including the next newline (or EOF)
		postOK := false
		postCut := 0
		var nextText *rawItem
		if i == len(items)-1 {
			postOK = true
		} else if next := items[i+1]; !next.isTag {
			nextText = next
			if j := strings.IndexByte(next.text, '\n'); j >= 0 {
				if isIndentWs(next.text[:j]) {
					postOK = true
					postCut = j + 1
				}
			} else if i+1 == len(items)-1 && isIndentWs(next.text) {
				postOK = true
				postCut = len(next.text)
			}
		}

		lsPrev = ls
		if !(preOK && postOK) {
			ls = false
			continue
		}

		if prevText != nil {
			prevText.text = prevText.text[:len(prevText.text)-len(preWs)]
		}
		if nextText != nil {
			nextText.text = nextText.text[postCut:]
		}
		if item.kind == tagPartial {
			item.indent = preWs
		}
		ls = true
	}
}

func standaloneKind(kind tagKind) bool {
	switch kind {
	case tagSectionOpen, tagInvertedOpen, tagSectionClose, tagPartial, tagComment, tagDelimiters:
		return true
	}
	return false
}

func isIndentWs(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return false
		}
	}
	return true
}

// openSection tracks an unfinished section during tree building.
type openSection struct {
	item     *rawItem
	children []Token
}

// buildTree folds the flat item list into nested section tokens.
func buildTree(source string, items []*rawItem, extended bool) ([]Token, error) {
	root := []Token{}
	var stack []*openSection

	emit := func(tok Token) {
		if n := len(stack); n > 0 {
			stack[n-1].children = append(stack[n-1].children, tok)
		} else {
			root = append(root, tok)
		}
	}

	for _, item := range items {
		if !item.isTag {
			if item.text != "" {
				emit(TextToken{Text: item.text})
			}
			continue
		}

		switch item.kind {
		case tagVariable:
			emit(EscapedTag{Path: parsePath(item.name)})
		case tagUnescaped:
			emit(UnescapedTag{Path: parsePath(item.name)})
		case tagAnchor:
			emit(AnchorToken{})
		case tagJSON:
			emit(JSONTag{Path: parsePath(item.name)})
		case tagJSONPretty:
			emit(JSONTag{Path: parsePath(item.name), Pretty: true})
		case tagPartial:
			emit(PartialToken{Name: item.name, Indent: item.indent})
		case tagComment, tagDelimiters:
			// no output
		case tagSectionOpen, tagInvertedOpen:
			stack = append(stack, &openSection{item: item})
		case tagSectionClose:
			if len(stack) == 0 {
				line, col := lineCol(source, item.start)
				return nil, NewParseError("close tag '"+item.name+"' without open section", line, col)
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if open.item.name != item.name {
				line, col := lineCol(source, item.start)
				return nil, NewParseError("close tag '"+item.name+"' does not match section '"+open.item.name+"'", line, col)
			}
			if extended && open.item.name == topSentinel && open.item.kind == tagSectionOpen {
				emit(TopSectionToken{Children: open.children})
				continue
			}
			emit(SectionToken{
				Path:     parsePath(open.item.name),
				Inverted: open.item.kind == tagInvertedOpen,
				Children: open.children,
				OTag:     open.item.otag,
				CTag:     open.item.ctag,
				Inner:    source[open.item.end:item.start],
			})
		}
	}

	if len(stack) > 0 {
		open := stack[len(stack)-1]
		line, col := lineCol(source, open.item.start)
		return nil, NewParseError("unclosed section '"+open.item.name+"'", line, col)
	}

	return root, nil
}

// parsePath splits a dotted tag name into segments. The bare dot
// addresses the current context and compiles to the empty path.
func parsePath(name string) []string {
	if name == "." {
		return []string{}
	}
	return strings.Split(name, ".")
}

// lineCol converts a byte offset into 1-based line and column numbers.
func lineCol(source string, offset int) (int, int) {
	if offset > len(source) {
		offset = len(source)
	}
	line := 1 + strings.Count(source[:offset], "\n")
	col := offset - strings.LastIndexByte(source[:offset], '\n')
	return line, col
}
