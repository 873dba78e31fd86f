package mlparser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"marklex/mlparser"
	"marklex/util"
)

func newPlainCursor(content string) *mlparser.PlainCharacterCursor {
	file := util.NewParseSourceFile(content, "someUrl")
	return mlparser.NewPlainCharacterCursor(file, &mlparser.LexerRange{EndPos: len(content)})
}

func newEscapedCursor(content string) *mlparser.EscapedCharacterCursor {
	file := util.NewParseSourceFile(content, "someUrl")
	return mlparser.NewEscapedCharacterCursor(file, &mlparser.LexerRange{EndPos: len(content)})
}

func advanceN(t *testing.T, cursor mlparser.CharacterCursor, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := cursor.Advance(); err != nil {
			t.Fatalf("Advance() failed at step %d: %v", i, err)
		}
	}
}

func TestPlainCharacterCursor_Peek(t *testing.T) {
	cursor := newPlainCursor("abc")
	if cursor.Peek() != -1 {
		t.Errorf("Peek() before Init() = %d, want -1", cursor.Peek())
	}
	if err := cursor.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if cursor.Peek() != 'a' {
		t.Errorf("Peek() = %q, want 'a'", rune(cursor.Peek()))
	}
	advanceN(t, cursor, 3)
	if cursor.Peek() != 0 {
		t.Errorf("Peek() at end = %d, want EOF", cursor.Peek())
	}
}

func TestPlainCharacterCursor_LineColumnTracking(t *testing.T) {
	cursor := newPlainCursor("ab\ncd\r\nef")
	if err := cursor.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	start := cursor.Clone()

	expected := []interface{}{
		"0:0", "0:1", "0:2", // a b \n
		"1:0", "1:1", "1:2", // c d \r
		"1:2", // \r does not move the location
		"2:0", "2:1",
	}
	positions := []interface{}{}
	for i := 0; i < len("ab\ncd\r\nef"); i++ {
		span := cursor.GetSpan(nil, nil)
		positions = append(positions, humanizeLineColumn(span.Start))
		advanceN(t, cursor, 1)
	}
	if diff := cmp.Diff(expected, positions); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}

	if got := cursor.GetChars(start); got != "ab\ncd\r\nef" {
		t.Errorf("GetChars() = %q, want the whole input", got)
	}
	if got := cursor.Diff(start); got != 9 {
		t.Errorf("Diff() = %d, want 9", got)
	}
	if got := cursor.CharsLeft(); got != 0 {
		t.Errorf("CharsLeft() = %d, want 0", got)
	}
}

func TestPlainCharacterCursor_MultiByteCharacters(t *testing.T) {
	cursor := newPlainCursor("aé日b")
	if err := cursor.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	start := cursor.Clone()

	decoded := []rune{}
	for cursor.Peek() != 0 {
		decoded = append(decoded, rune(cursor.Peek()))
		advanceN(t, cursor, 1)
	}
	if got := string(decoded); got != "aé日b" {
		t.Errorf("decoded = %q, want %q", got, "aé日b")
	}
	if got := cursor.GetChars(start); got != "aé日b" {
		t.Errorf("GetChars() = %q, want %q", got, "aé日b")
	}
	// Diff stays byte-based so spans keep slicing the original source.
	if got := cursor.Diff(start); got != 7 {
		t.Errorf("Diff() = %d, want 7", got)
	}
}

func TestPlainCharacterCursor_CloneIsIndependent(t *testing.T) {
	cursor := newPlainCursor("abc")
	if err := cursor.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	clone := cursor.Clone()
	advanceN(t, cursor, 2)
	if clone.Peek() != 'a' {
		t.Errorf("clone Peek() = %q, want 'a'", rune(clone.Peek()))
	}
	if cursor.Peek() != 'c' {
		t.Errorf("cursor Peek() = %q, want 'c'", rune(cursor.Peek()))
	}
}

func TestPlainCharacterCursor_AdvancePastEnd(t *testing.T) {
	cursor := newPlainCursor("a")
	if err := cursor.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	advanceN(t, cursor, 1)
	err := cursor.Advance()
	var cursorErr *mlparser.CursorError
	if !errors.As(err, &cursorErr) {
		t.Fatalf("Advance() past end = %v, want *CursorError", err)
	}
	if cursorErr.Msg != `Unexpected character "EOF"` {
		t.Errorf("Msg = %q", cursorErr.Msg)
	}
}

func TestPlainCharacterCursor_GetSpanTrimsLeadingTrivia(t *testing.T) {
	cursor := newPlainCursor(" \n ab")
	if err := cursor.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	start := cursor.Clone()
	advanceN(t, cursor, 5)

	span := cursor.GetSpan(start, []int{' ', '\n'})
	if got := humanizeLineColumn(span.Start); got != "1:1" {
		t.Errorf("span start = %s, want 1:1", got)
	}
	if got := humanizeLineColumn(span.FullStart); got != "0:0" {
		t.Errorf("span full start = %s, want 0:0", got)
	}
	if got := humanizeLineColumn(span.End); got != "1:3" {
		t.Errorf("span end = %s, want 1:3", got)
	}
}

func TestEscapedCharacterCursor_ControlEscapes(t *testing.T) {
	cursor := newEscapedCursor(`a\tb`)
	if err := cursor.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	start := cursor.Clone()
	decoded := []rune{}
	for cursor.Peek() != 0 {
		decoded = append(decoded, rune(cursor.Peek()))
		advanceN(t, cursor, 1)
	}
	if got := string(decoded); got != "a\tb" {
		t.Errorf("decoded = %q, want %q", got, "a\tb")
	}
	if got := cursor.GetChars(start); got != "a\tb" {
		t.Errorf("GetChars() = %q, want %q", got, "a\tb")
	}
}

func TestEscapedCharacterCursor_UnicodeEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{`A`, 'A'},
		{`\u{41}`, 'A'},
		{`\u{1F4}`, 'Ǵ'},
		{`\x41`, 'A'},
		{`\101`, 'A'},
	}
	for _, test := range tests {
		cursor := newEscapedCursor(test.input)
		if err := cursor.Init(); err != nil {
			t.Fatalf("Init(%q) failed: %v", test.input, err)
		}
		if got := rune(cursor.Peek()); got != test.want {
			t.Errorf("Peek() for %q = %q, want %q", test.input, got, test.want)
		}
		if err := cursor.Advance(); err != nil {
			t.Errorf("Advance() past %q failed: %v", test.input, err)
		} else if cursor.Peek() != 0 {
			t.Errorf("Peek() after %q = %d, want EOF", test.input, cursor.Peek())
		}
	}
}

func TestEscapedCharacterCursor_LineContinuation(t *testing.T) {
	cursor := newEscapedCursor("a\\\nb")
	if err := cursor.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	decoded := []rune{}
	for cursor.Peek() != 0 {
		decoded = append(decoded, rune(cursor.Peek()))
		advanceN(t, cursor, 1)
	}
	if got := string(decoded); got != "ab" {
		t.Errorf("decoded = %q, want %q", got, "ab")
	}
}

func TestEscapedCharacterCursor_InvalidHex(t *testing.T) {
	cursor := newEscapedCursor(`\uGGGG`)
	err := cursor.Init()
	var cursorErr *mlparser.CursorError
	if !errors.As(err, &cursorErr) {
		t.Fatalf("Init() = %v, want *CursorError", err)
	}
	if cursorErr.Msg != "Invalid hexadecimal escape sequence" {
		t.Errorf("Msg = %q", cursorErr.Msg)
	}
}

func TestEscapedCharacterCursor_SpanCoversRawInput(t *testing.T) {
	cursor := newEscapedCursor(`\n!`)
	if err := cursor.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	start := cursor.Clone()
	advanceN(t, cursor, 2)
	span := cursor.GetSpan(start, nil)
	if got := span.String(); got != `\n!` {
		t.Errorf("span = %q, want the raw input %q", got, `\n!`)
	}
}
