package mlparser

import "strings"

// TagContentType describes how an element's body is scanned.
type TagContentType int

const (
	// TagContentTypeRawText bodies are scanned verbatim up to the literal
	// closing tag; no entity decoding, no interpolation (script, style).
	TagContentTypeRawText TagContentType = iota
	// TagContentTypeEscapableRawText is like raw text, but entity
	// references are still decoded (textarea, title).
	TagContentTypeEscapableRawText
	// TagContentTypeParsableData bodies are ordinary markup.
	TagContentTypeParsableData
)

// TagContentTypeResolver classifies a tag's body. It is supplied by an
// external schema table; the lexer only consults the returned content
// type. A nil resolver treats every element body as parsable data.
type TagContentTypeResolver func(tagName, prefix string) TagContentType

// SplitNsName splits a ":namespace:name" string into namespace and name.
// Names without the leading colon are returned unchanged with an empty
// namespace.
func SplitNsName(elementName string) (ns, name string) {
	if len(elementName) == 0 || elementName[0] != ':' {
		return "", elementName
	}
	colonIndex := strings.Index(elementName[1:], ":")
	if colonIndex == -1 {
		return "", elementName
	}
	colonIndex++
	return elementName[1:colonIndex], elementName[colonIndex+1:]
}

// MergeNsAndName is the inverse of SplitNsName.
func MergeNsAndName(prefix, localName string) string {
	if prefix != "" {
		return ":" + prefix + ":" + localName
	}
	return localName
}
