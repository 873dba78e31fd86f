package schema_test

import (
	"testing"

	"marklex/mlparser"
	"marklex/schema"
)

func TestGetHtmlTagDefinition_ContentType(t *testing.T) {
	tests := []struct {
		tagName string
		prefix  string
		want    mlparser.TagContentType
	}{
		{"script", "", mlparser.TagContentTypeRawText},
		{"style", "", mlparser.TagContentTypeRawText},
		{"title", "", mlparser.TagContentTypeEscapableRawText},
		{"title", "svg", mlparser.TagContentTypeParsableData},
		{"textarea", "", mlparser.TagContentTypeEscapableRawText},
		{"div", "", mlparser.TagContentTypeParsableData},
		{"unknown-element", "", mlparser.TagContentTypeParsableData},
	}
	for _, test := range tests {
		got := schema.HtmlTagContentType(test.tagName, test.prefix)
		if got != test.want {
			t.Errorf("HtmlTagContentType(%q, %q) = %v, want %v", test.tagName, test.prefix, got, test.want)
		}
	}
}

func TestGetHtmlTagDefinition_CaseInsensitive(t *testing.T) {
	if schema.GetHtmlTagDefinition("SCRIPT") != schema.GetHtmlTagDefinition("script") {
		t.Error("lookup should be case-insensitive")
	}
	if schema.HtmlTagContentType("TITLE", "") != mlparser.TagContentTypeEscapableRawText {
		t.Error("TITLE should resolve to the title definition")
	}
}

func TestGetHtmlTagDefinition_VoidTags(t *testing.T) {
	for _, tag := range []string{"br", "hr", "img", "input", "link", "meta"} {
		def := schema.GetHtmlTagDefinition(tag)
		if !def.IsVoid() {
			t.Errorf("%s should be void", tag)
		}
		if !def.CanSelfClose() {
			t.Errorf("%s should allow self-closing", tag)
		}
		if !def.ClosedByParent() {
			t.Errorf("%s should be closed by its parent", tag)
		}
	}
	if schema.GetHtmlTagDefinition("div").IsVoid() {
		t.Error("div should not be void")
	}
}

func TestGetHtmlTagDefinition_ClosedByChild(t *testing.T) {
	tests := []struct {
		tag   string
		child string
		want  bool
	}{
		{"p", "p", true},
		{"p", "div", true},
		{"p", "span", false},
		{"li", "li", true},
		{"li", "div", false},
		{"option", "optgroup", true},
		{"tr", "tr", true},
		{"td", "th", true},
	}
	for _, test := range tests {
		got := schema.GetHtmlTagDefinition(test.tag).IsClosedByChild(test.child)
		if got != test.want {
			t.Errorf("IsClosedByChild(%q -> %q) = %v, want %v", test.tag, test.child, got, test.want)
		}
	}
}

func TestGetHtmlTagDefinition_IgnoreFirstLf(t *testing.T) {
	for _, tag := range []string{"pre", "listing", "textarea"} {
		if !schema.GetHtmlTagDefinition(tag).IgnoreFirstLf() {
			t.Errorf("%s should ignore a leading line feed", tag)
		}
	}
	if schema.GetHtmlTagDefinition("div").IgnoreFirstLf() {
		t.Error("div should not ignore a leading line feed")
	}
}

func TestGetHtmlTagDefinition_Namespaces(t *testing.T) {
	if got := schema.GetHtmlTagDefinition("svg").ImplicitNamespace(); got != "svg" {
		t.Errorf("svg namespace = %q", got)
	}
	if got := schema.GetHtmlTagDefinition("math").ImplicitNamespace(); got != "math" {
		t.Errorf("math namespace = %q", got)
	}
	if !schema.GetHtmlTagDefinition("foreignObject").PreventNamespaceInheritance() {
		t.Error("foreignObject should prevent namespace inheritance")
	}
	if schema.GetHtmlTagDefinition("svg").PreventNamespaceInheritance() {
		t.Error("svg should not prevent namespace inheritance")
	}
}
