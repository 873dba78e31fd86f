package mlparser_test

import (
	"testing"

	"marklex/mlparser"
)

func TestSplitNsName(t *testing.T) {
	tests := []struct {
		elementName string
		wantNs      string
		wantName    string
	}{
		{"div", "", "div"},
		{":svg:rect", "svg", "rect"},
		{":math:mi", "math", "mi"},
		{":nocolon", "", ":nocolon"},
		{"", "", ""},
	}
	for _, test := range tests {
		ns, name := mlparser.SplitNsName(test.elementName)
		if ns != test.wantNs || name != test.wantName {
			t.Errorf("SplitNsName(%q) = (%q, %q), want (%q, %q)",
				test.elementName, ns, name, test.wantNs, test.wantName)
		}
	}
}

func TestMergeNsAndName(t *testing.T) {
	if got := mlparser.MergeNsAndName("svg", "rect"); got != ":svg:rect" {
		t.Errorf("MergeNsAndName(svg, rect) = %q", got)
	}
	if got := mlparser.MergeNsAndName("", "div"); got != "div" {
		t.Errorf("MergeNsAndName(, div) = %q", got)
	}
}

func TestSplitMergeRoundTrip(t *testing.T) {
	for _, name := range []string{":svg:circle", "span"} {
		ns, local := mlparser.SplitNsName(name)
		if got := mlparser.MergeNsAndName(ns, local); got != name {
			t.Errorf("round trip of %q = %q", name, got)
		}
	}
}
