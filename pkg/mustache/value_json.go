package mustache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// MarshalJSON serializes the value deterministically: mapping keys in
// lexicographic order, lambdas as null (they have no representable
// value outside render time). Unlike encoding/json's default string
// encoding, '<', '>' and '&' are left as-is.
func MarshalJSON(v Value) ([]byte, error) {
	return appendJSON(nil, v)
}

// MarshalJSONIndent is MarshalJSON with two-space pretty printing.
func MarshalJSONIndent(v Value) ([]byte, error) {
	compact, err := appendJSON(nil, v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendJSON(dst []byte, v Value) ([]byte, error) {
	var err error
	switch val := v.(type) {
	case nil, Null:
		dst = append(dst, "null"...)
	case Text:
		dst = appendJSONString(dst, string(val))
	case Bool:
		if val {
			dst = append(dst, "true"...)
		} else {
			dst = append(dst, "false"...)
		}
	case Sequence:
		dst = append(dst, '[')
		for i, item := range val {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst, err = appendJSON(dst, item)
			if err != nil {
				return nil, err
			}
		}
		dst = append(dst, ']')
	case Mapping:
		dst = append(dst, '{')
		for i, k := range sortedKeys(val) {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendJSONString(dst, k)
			dst = append(dst, ':')
			dst, err = appendJSON(dst, val[k])
			if err != nil {
				return nil, err
			}
		}
		dst = append(dst, '}')
	case *Lambda:
		dst = append(dst, "null"...)
	default:
		return nil, fmt.Errorf("cannot serialize value of type %T", v)
	}
	return dst, nil
}

const hexDigits = "0123456789abcdef"

// appendJSONString quotes s as a JSON string. Control characters are
// escaped; '<', '>', '&' and multi-byte runes pass through verbatim.
func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); {
		b := s[i]
		if b >= 0x20 && b != '"' && b != '\\' {
			if b < utf8.RuneSelf {
				i++
				continue
			}
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
			continue
		}
		dst = append(dst, s[start:i]...)
		switch b {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0xf])
		}
		i++
		start = i
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}
