package mustache

import "io"

// HTML entity replacements for escaped tags. The mapping is exactly
// these five bytes; no other character is transformed.
var htmlEntities = map[byte][]byte{
	'<':  []byte("&lt;"),
	'>':  []byte("&gt;"),
	'&':  []byte("&amp;"),
	'"':  []byte("&quot;"),
	'\'': []byte("&#39;"),
}

// writeEscaped copies b to w, replacing the five sentinel bytes with
// their HTML entities.
func writeEscaped(w io.Writer, b []byte) error {
	start := 0
	for i, c := range b {
		entity, ok := htmlEntities[c]
		if !ok {
			continue
		}
		if i > start {
			if _, err := w.Write(b[start:i]); err != nil {
				return err
			}
		}
		if _, err := w.Write(entity); err != nil {
			return err
		}
		start = i + 1
	}
	if start < len(b) {
		if _, err := w.Write(b[start:]); err != nil {
			return err
		}
	}
	return nil
}
