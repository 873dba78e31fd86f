package mlparser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"marklex/chars"
	"marklex/util"
)

// CharacterCursor walks a region of template source one code point at a
// time, tracking offset, line and column. Clone returns an independent
// copy so callers can mark a position and backtrack by restoring it.
type CharacterCursor interface {
	// Init prepares the first character. It fails when the starting
	// position cannot be read, for example a malformed escape sequence
	// at the very start of the input.
	Init() error
	// Peek returns the current character code, chars.EOF at the end of
	// the region.
	Peek() int
	// Advance moves to the next character. It fails with a *CursorError
	// when moving past the end of the region.
	Advance() error
	Clone() CharacterCursor
	// GetChars returns the characters between start and this cursor.
	GetChars(start CharacterCursor) string
	// GetSpan builds the source span from start to this cursor. Leading
	// characters found in leadingTriviaCodePoints are trimmed from the
	// span start; the untrimmed position is kept as FullStart.
	GetSpan(start CharacterCursor, leadingTriviaCodePoints []int) *util.ParseSourceSpan
	// CharsLeft returns the number of characters before the region end.
	CharsLeft() int
	// Diff returns the offset distance from other to this cursor.
	Diff(other CharacterCursor) int
}

// CursorError reports a failed cursor operation together with the cursor
// position where it happened.
type CursorError struct {
	Msg    string
	Cursor CharacterCursor
}

func (e *CursorError) Error() string {
	return e.Msg
}

type cursorState struct {
	peek   int
	offset int
	line   int
	column int
}

// PlainCharacterCursor reads the input exactly as written.
type PlainCharacterCursor struct {
	state cursorState
	file  *util.ParseSourceFile
	input string
	end   int
}

func NewPlainCharacterCursor(file *util.ParseSourceFile, rng *LexerRange) *PlainCharacterCursor {
	return &PlainCharacterCursor{
		file:  file,
		input: file.Content,
		end:   rng.EndPos,
		state: cursorState{
			peek:   -1,
			offset: rng.StartPos,
			line:   rng.StartLine,
			column: rng.StartCol,
		},
	}
}

func (p *PlainCharacterCursor) Clone() CharacterCursor {
	clone := *p
	return &clone
}

func (p *PlainCharacterCursor) Peek() int {
	return p.state.peek
}

func (p *PlainCharacterCursor) CharsLeft() int {
	return p.end - p.state.offset
}

func (p *PlainCharacterCursor) Diff(other CharacterCursor) int {
	return p.state.offset - unwrapPlain(other).state.offset
}

func (p *PlainCharacterCursor) Init() error {
	p.updatePeek(&p.state)
	return nil
}

func (p *PlainCharacterCursor) Advance() error {
	return p.advanceState(&p.state)
}

func (p *PlainCharacterCursor) GetChars(start CharacterCursor) string {
	return p.input[unwrapPlain(start).state.offset:p.state.offset]
}

func (p *PlainCharacterCursor) GetSpan(start CharacterCursor, leadingTriviaCodePoints []int) *util.ParseSourceSpan {
	var spanStart *PlainCharacterCursor
	if start != nil {
		spanStart = unwrapPlain(start)
	} else {
		spanStart = p
	}
	fullStart := spanStart
	if len(leadingTriviaCodePoints) > 0 {
		for p.Diff(spanStart) > 0 && containsCodePoint(leadingTriviaCodePoints, spanStart.Peek()) {
			if fullStart == spanStart {
				spanStart = spanStart.Clone().(*PlainCharacterCursor)
			}
			// Trimming stays inside the span, so this cannot run off
			// the end of the input.
			_ = spanStart.advanceState(&spanStart.state)
		}
	}
	startLocation := p.locationFromState(spanStart.state)
	endLocation := p.locationFromState(p.state)
	fullStartLocation := startLocation
	if fullStart != spanStart {
		fullStartLocation = p.locationFromState(fullStart.state)
	}
	return util.NewParseSourceSpan(startLocation, endLocation, fullStartLocation)
}

// charAt decodes the full rune at pos. Offsets stay byte-based so spans
// keep slicing the original source; only peek carries the decoded code
// point.
func (p *PlainCharacterCursor) charAt(pos int) (int, int) {
	r, width := utf8.DecodeRuneInString(p.input[pos:p.end])
	return int(r), width
}

func (p *PlainCharacterCursor) advanceState(state *cursorState) error {
	if state.offset >= p.end {
		p.state = *state
		return &CursorError{Msg: unexpectedCharacterErrorMsg(chars.EOF), Cursor: p}
	}
	currentChar, width := p.charAt(state.offset)
	if currentChar == chars.LF {
		state.line++
		state.column = 0
	} else if !chars.IsNewLine(currentChar) {
		state.column++
	}
	state.offset += width
	p.updatePeek(state)
	return nil
}

func (p *PlainCharacterCursor) updatePeek(state *cursorState) {
	if state.offset >= p.end {
		state.peek = chars.EOF
	} else {
		state.peek, _ = p.charAt(state.offset)
	}
}

func (p *PlainCharacterCursor) locationFromState(state cursorState) *util.ParseLocation {
	return util.NewParseLocation(p.file, state.offset, state.line, state.column)
}

// EscapedCharacterCursor reads input that contains backslash escape
// sequences, as found inside string literals. It owns a plain cursor
// whose state reflects the decoded view: Peek returns the decoded
// character while the internal state tracks how far the escape sequence
// reaches into the raw input.
type EscapedCharacterCursor struct {
	plain         *PlainCharacterCursor
	internalState cursorState
}

func NewEscapedCharacterCursor(file *util.ParseSourceFile, rng *LexerRange) *EscapedCharacterCursor {
	plain := NewPlainCharacterCursor(file, rng)
	return &EscapedCharacterCursor{plain: plain, internalState: plain.state}
}

func (e *EscapedCharacterCursor) Clone() CharacterCursor {
	plainClone := *e.plain
	return &EscapedCharacterCursor{plain: &plainClone, internalState: e.internalState}
}

func (e *EscapedCharacterCursor) Peek() int {
	return e.plain.Peek()
}

func (e *EscapedCharacterCursor) CharsLeft() int {
	return e.plain.CharsLeft()
}

func (e *EscapedCharacterCursor) Diff(other CharacterCursor) int {
	return e.plain.Diff(other)
}

func (e *EscapedCharacterCursor) Init() error {
	if err := e.plain.Init(); err != nil {
		return err
	}
	e.internalState = e.plain.state
	return e.processEscapeSequence()
}

func (e *EscapedCharacterCursor) Advance() error {
	e.plain.state = e.internalState
	if err := e.plain.Advance(); err != nil {
		return err
	}
	e.internalState = e.plain.state
	return e.processEscapeSequence()
}

func (e *EscapedCharacterCursor) GetSpan(start CharacterCursor, leadingTriviaCodePoints []int) *util.ParseSourceSpan {
	return e.plain.GetSpan(start, leadingTriviaCodePoints)
}

// GetChars returns the decoded characters between start and this cursor,
// rather than the raw input, so escape sequences read as the character
// they encode.
func (e *EscapedCharacterCursor) GetChars(start CharacterCursor) string {
	cursor, ok := start.(*EscapedCharacterCursor)
	if !ok {
		panic(fmt.Sprintf("expected an escaped cursor, got %T", start))
	}
	walker := cursor.Clone().(*EscapedCharacterCursor)
	var sb strings.Builder
	for walker.internalState.offset < e.internalState.offset {
		sb.WriteRune(rune(walker.Peek()))
		if err := walker.Advance(); err != nil {
			// The region was already decoded once, so it cannot fail
			// a second time.
			break
		}
	}
	return sb.String()
}

// processEscapeSequence decodes the escape sequence at the current
// position, if any. The external (plain) state keeps pointing at the
// backslash with its peek overwritten by the decoded character, while
// the internal state moves to the last raw character of the sequence.
func (e *EscapedCharacterCursor) processEscapeSequence() error {
	if e.internalState.peek != chars.Backslash {
		return nil
	}
	// The internal state becomes independent of the external state from
	// here on.
	e.internalState = e.plain.state
	if err := e.plain.advanceState(&e.internalState); err != nil {
		return err
	}

	switch e.internalState.peek {
	case chars.LowerN:
		e.plain.state.peek = chars.LF
	case chars.LowerR:
		e.plain.state.peek = chars.CR
	case chars.LowerV:
		e.plain.state.peek = chars.VTab
	case chars.LowerT:
		e.plain.state.peek = chars.Tab
	case chars.LowerB:
		e.plain.state.peek = chars.BSpace
	case chars.LowerF:
		e.plain.state.peek = chars.FF
	case chars.LowerU:
		if err := e.plain.advanceState(&e.internalState); err != nil {
			return err
		}
		if e.internalState.peek == chars.LBrace {
			// Variable length Unicode, e.g. `\u{123}`.
			if err := e.plain.advanceState(&e.internalState); err != nil {
				return err
			}
			digitStart := e.Clone().(*EscapedCharacterCursor)
			length := 0
			for e.internalState.peek != chars.RBrace {
				if err := e.plain.advanceState(&e.internalState); err != nil {
					return err
				}
				length++
			}
			code, err := e.decodeHexDigits(digitStart, length)
			if err != nil {
				return err
			}
			e.plain.state.peek = code
		} else {
			// Fixed length Unicode, e.g. `ሴ`.
			digitStart := e.Clone().(*EscapedCharacterCursor)
			for i := 0; i < 3; i++ {
				if err := e.plain.advanceState(&e.internalState); err != nil {
					return err
				}
			}
			code, err := e.decodeHexDigits(digitStart, 4)
			if err != nil {
				return err
			}
			e.plain.state.peek = code
		}
	case chars.LowerX:
		// Hex char code, e.g. `\x2F`.
		if err := e.plain.advanceState(&e.internalState); err != nil {
			return err
		}
		digitStart := e.Clone().(*EscapedCharacterCursor)
		if err := e.plain.advanceState(&e.internalState); err != nil {
			return err
		}
		code, err := e.decodeHexDigits(digitStart, 2)
		if err != nil {
			return err
		}
		e.plain.state.peek = code
	default:
		if chars.IsOctalDigit(e.internalState.peek) {
			// Octal char code, e.g. `\012`, up to three digits.
			octal := ""
			length := 0
			previous := e.Clone().(*EscapedCharacterCursor)
			for chars.IsOctalDigit(e.internalState.peek) && length < 3 {
				previous = e.Clone().(*EscapedCharacterCursor)
				octal += string(rune(e.internalState.peek))
				if err := e.plain.advanceState(&e.internalState); err != nil {
					return err
				}
				length++
			}
			code, err := strconv.ParseInt(octal, 8, 32)
			if err != nil {
				return &CursorError{Msg: "Invalid octal escape sequence", Cursor: e}
			}
			e.plain.state.peek = int(code)
			// The last advance moved one character beyond the sequence.
			e.internalState = previous.internalState
		} else if chars.IsNewLine(e.internalState.peek) {
			// A line continuation removes the backslash and the newline
			// entirely.
			if err := e.plain.advanceState(&e.internalState); err != nil {
				return err
			}
			e.plain.state = e.internalState
		} else {
			// An unrecognized escape is the escaped character itself.
			e.plain.state.peek = e.internalState.peek
		}
	}
	return nil
}

func (e *EscapedCharacterCursor) decodeHexDigits(start *EscapedCharacterCursor, length int) (int, error) {
	startOffset := start.internalState.offset
	if startOffset+length > len(e.plain.input) {
		return 0, &CursorError{Msg: "Invalid hexadecimal escape sequence", Cursor: start}
	}
	hex := e.plain.input[startOffset : startOffset+length]
	code, err := strconv.ParseInt(hex, 16, 32)
	if err != nil || length == 0 {
		start.plain.state = start.internalState
		return 0, &CursorError{Msg: "Invalid hexadecimal escape sequence", Cursor: start}
	}
	return int(code), nil
}

func unwrapPlain(c CharacterCursor) *PlainCharacterCursor {
	switch cursor := c.(type) {
	case *PlainCharacterCursor:
		return cursor
	case *EscapedCharacterCursor:
		return cursor.plain
	}
	panic(fmt.Sprintf("unexpected cursor type %T", c))
}

func containsCodePoint(codePoints []int, code int) bool {
	for _, c := range codePoints {
		if c == code {
			return true
		}
	}
	return false
}
