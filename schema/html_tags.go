// Package schema carries the HTML element definitions the lexer's tag
// classifier is built from: which elements hold raw or escapable raw
// text, which are void, and the implicit-close rules used by parsers
// downstream.
package schema

import "marklex/mlparser"

// HtmlTagDefinition describes the lexically relevant properties of one
// HTML element.
type HtmlTagDefinition struct {
	closedByChildren  map[string]bool
	contentType       mlparser.TagContentType
	contentTypePrefix map[string]mlparser.TagContentType
	closedByParent    bool
	implicitNamespace string
	isVoid            bool
	ignoreFirstLf     bool
	canSelfClose      bool
	preventNsInherit  bool
}

type htmlTagOptions struct {
	closedByChildren  []string
	closedByParent    bool
	implicitNamespace string
	contentType       mlparser.TagContentType
	contentTypePrefix map[string]mlparser.TagContentType
	isVoid            bool
	ignoreFirstLf     bool
	canSelfClose      bool
	preventNsInherit  bool
}

func newHtmlTagDefinition(opts htmlTagOptions) *HtmlTagDefinition {
	def := &HtmlTagDefinition{
		contentType:       opts.contentType,
		contentTypePrefix: opts.contentTypePrefix,
		closedByParent:    opts.closedByParent || opts.isVoid,
		implicitNamespace: opts.implicitNamespace,
		isVoid:            opts.isVoid,
		ignoreFirstLf:     opts.ignoreFirstLf,
		canSelfClose:      opts.canSelfClose || opts.isVoid,
		preventNsInherit:  opts.preventNsInherit,
	}
	if len(opts.closedByChildren) > 0 {
		def.closedByChildren = make(map[string]bool, len(opts.closedByChildren))
		for _, tag := range opts.closedByChildren {
			def.closedByChildren[tag] = true
		}
	}
	return def
}

func (d *HtmlTagDefinition) IsVoid() bool              { return d.isVoid }
func (d *HtmlTagDefinition) ClosedByParent() bool      { return d.closedByParent }
func (d *HtmlTagDefinition) IgnoreFirstLf() bool       { return d.ignoreFirstLf }
func (d *HtmlTagDefinition) CanSelfClose() bool        { return d.canSelfClose }
func (d *HtmlTagDefinition) ImplicitNamespace() string { return d.implicitNamespace }
func (d *HtmlTagDefinition) PreventNamespaceInheritance() bool {
	return d.preventNsInherit
}

// IsClosedByChild reports whether an opening child element implicitly
// closes this element, as `<li>` does for a preceding `<li>`.
func (d *HtmlTagDefinition) IsClosedByChild(name string) bool {
	return d.isVoid || d.closedByChildren[name]
}

// ContentType returns how the element's body is scanned. Some elements
// change type under a namespace prefix: `<title>` inside svg is ordinary
// markup rather than escapable raw text.
func (d *HtmlTagDefinition) ContentType(prefix string) mlparser.TagContentType {
	if d.contentTypePrefix != nil {
		if ct, ok := d.contentTypePrefix[prefix]; ok {
			return ct
		}
	}
	return d.contentType
}

var tagDefinitions map[string]*HtmlTagDefinition

var defaultTagDefinition = newHtmlTagDefinition(htmlTagOptions{
	contentType:  mlparser.TagContentTypeParsableData,
	canSelfClose: true,
})

func init() {
	tagDefinitions = make(map[string]*HtmlTagDefinition)

	for _, tag := range []string{
		"base", "meta", "area", "embed", "link", "img", "input",
		"param", "hr", "br", "source", "track", "wbr", "col",
	} {
		tagDefinitions[tag] = newHtmlTagDefinition(htmlTagOptions{
			isVoid:      true,
			contentType: mlparser.TagContentTypeParsableData,
		})
	}

	tagDefinitions["p"] = newHtmlTagDefinition(htmlTagOptions{
		closedByChildren: []string{
			"address", "article", "aside", "blockquote", "div", "dl", "fieldset",
			"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6", "header",
			"hgroup", "hr", "main", "nav", "ol", "p", "pre", "section", "table", "ul",
		},
		closedByParent: true,
		contentType:    mlparser.TagContentTypeParsableData,
	})

	tableClosers := map[string][]string{
		"thead": {"tbody", "tfoot"},
		"tbody": {"tbody", "tfoot"},
		"tfoot": {"tbody"},
		"tr":    {"tr"},
		"td":    {"td", "th"},
		"th":    {"td", "th"},
	}
	for tag, children := range tableClosers {
		tagDefinitions[tag] = newHtmlTagDefinition(htmlTagOptions{
			closedByChildren: children,
			closedByParent:   tag != "thead",
			contentType:      mlparser.TagContentTypeParsableData,
		})
	}

	tagDefinitions["svg"] = newHtmlTagDefinition(htmlTagOptions{
		implicitNamespace: "svg",
		contentType:       mlparser.TagContentTypeParsableData,
	})
	tagDefinitions["foreignObject"] = newHtmlTagDefinition(htmlTagOptions{
		implicitNamespace: "svg",
		preventNsInherit:  true,
		contentType:       mlparser.TagContentTypeParsableData,
	})
	tagDefinitions["math"] = newHtmlTagDefinition(htmlTagOptions{
		implicitNamespace: "math",
		contentType:       mlparser.TagContentTypeParsableData,
	})

	listClosers := map[string][]string{
		"li":       {"li"},
		"dt":       {"dt", "dd"},
		"dd":       {"dt", "dd"},
		"rb":       {"rb", "rt", "rtc", "rp"},
		"rt":       {"rb", "rt", "rtc", "rp"},
		"rtc":      {"rb", "rtc", "rp"},
		"rp":       {"rb", "rt", "rtc", "rp"},
		"optgroup": {"optgroup"},
		"option":   {"option", "optgroup"},
	}
	for tag, children := range listClosers {
		tagDefinitions[tag] = newHtmlTagDefinition(htmlTagOptions{
			closedByChildren: children,
			closedByParent:   tag != "dt",
			contentType:      mlparser.TagContentTypeParsableData,
		})
	}

	tagDefinitions["pre"] = newHtmlTagDefinition(htmlTagOptions{
		ignoreFirstLf: true,
		contentType:   mlparser.TagContentTypeParsableData,
	})
	tagDefinitions["listing"] = newHtmlTagDefinition(htmlTagOptions{
		ignoreFirstLf: true,
		contentType:   mlparser.TagContentTypeParsableData,
	})
	tagDefinitions["style"] = newHtmlTagDefinition(htmlTagOptions{
		contentType: mlparser.TagContentTypeRawText,
	})
	tagDefinitions["script"] = newHtmlTagDefinition(htmlTagOptions{
		contentType: mlparser.TagContentTypeRawText,
	})
	tagDefinitions["title"] = newHtmlTagDefinition(htmlTagOptions{
		contentType: mlparser.TagContentTypeEscapableRawText,
		contentTypePrefix: map[string]mlparser.TagContentType{
			"svg": mlparser.TagContentTypeParsableData,
		},
	})
	tagDefinitions["textarea"] = newHtmlTagDefinition(htmlTagOptions{
		contentType:   mlparser.TagContentTypeEscapableRawText,
		ignoreFirstLf: true,
	})
}

// GetHtmlTagDefinition looks up the definition for tagName, falling back
// to a permissive default for unknown elements. Lookup is
// case-insensitive in the ASCII range, matching HTML name matching.
func GetHtmlTagDefinition(tagName string) *HtmlTagDefinition {
	if def, ok := tagDefinitions[tagName]; ok {
		return def
	}
	if def, ok := tagDefinitions[asciiLower(tagName)]; ok {
		return def
	}
	return defaultTagDefinition
}

// HtmlTagContentType is a mlparser.TagContentTypeResolver backed by the
// HTML element definitions.
func HtmlTagContentType(tagName, prefix string) mlparser.TagContentType {
	return GetHtmlTagDefinition(tagName).ContentType(prefix)
}

func asciiLower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
