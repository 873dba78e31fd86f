package util_test

import (
	"testing"

	"marklex/util"
)

func TestParseLocation_String(t *testing.T) {
	file := util.NewParseSourceFile("abc", "someUrl")
	location := util.NewParseLocation(file, 1, 0, 1)
	if got := location.String(); got != "someUrl@0:1" {
		t.Errorf("String() = %q, want %q", got, "someUrl@0:1")
	}
}

func TestParseLocation_MoveBy(t *testing.T) {
	file := util.NewParseSourceFile("ab\ncd", "someUrl")
	location := util.NewParseLocation(file, 0, 0, 0)

	moved := location.MoveBy(4)
	if moved.Offset != 4 || moved.Line != 1 || moved.Col != 1 {
		t.Errorf("MoveBy(4) = offset %d line %d col %d, want 4 1 1",
			moved.Offset, moved.Line, moved.Col)
	}

	back := moved.MoveBy(-1)
	if back.Offset != 3 || back.Line != 1 || back.Col != 0 {
		t.Errorf("MoveBy(-1) = offset %d line %d col %d, want 3 1 0",
			back.Offset, back.Line, back.Col)
	}
}

func TestParseSourceSpan_String(t *testing.T) {
	file := util.NewParseSourceFile("hello world", "someUrl")
	span := util.NewParseSourceSpan(
		util.NewParseLocation(file, 0, 0, 0),
		util.NewParseLocation(file, 5, 0, 5),
		nil,
	)
	if got := span.String(); got != "hello" {
		t.Errorf("String() = %q, want %q", got, "hello")
	}
	if span.FullStart != span.Start {
		t.Error("FullStart should default to Start")
	}
}

func TestParseError_ContextualMessage(t *testing.T) {
	file := util.NewParseSourceFile("<div>bad</div>", "someUrl")
	span := util.NewParseSourceSpan(
		util.NewParseLocation(file, 5, 0, 5),
		util.NewParseLocation(file, 8, 0, 8),
		nil,
	)
	err := util.NewParseError(span, "something went wrong")
	got := err.ContextualMessage()
	want := `something went wrong ("<div>[ERROR ->]bad</div>")`
	if got != want {
		t.Errorf("ContextualMessage() = %q, want %q", got, want)
	}
}

func TestParseError_String(t *testing.T) {
	file := util.NewParseSourceFile("x", "someUrl")
	span := util.NewParseSourceSpan(
		util.NewParseLocation(file, 0, 0, 0),
		util.NewParseLocation(file, 1, 0, 1),
		nil,
	)
	err := util.NewParseWarning(span, "w")
	if err.Level != util.ParseErrorLevelWarning {
		t.Error("NewParseWarning should produce a warning-level error")
	}
	got := err.String()
	want := `w ("[WARNING ->]x"): someUrl@0:0`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
