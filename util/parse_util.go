// Package util provides source files, locations, spans and parse errors
// shared between the lexer and its callers.
package util

import (
	"fmt"
	"strings"
)

// ParseSourceFile is one unit of template source identified by a URL or
// path used in diagnostics.
type ParseSourceFile struct {
	Content string
	URL     string
}

func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{Content: content, URL: url}
}

// ParseLocation is a position in a source file. Offset counts characters
// from the start of the file; line and col are zero-based.
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

func NewParseLocation(file *ParseSourceFile, offset, line, col int) *ParseLocation {
	return &ParseLocation{File: file, Offset: offset, Line: line, Col: col}
}

func (p *ParseLocation) String() string {
	if p.Offset >= 0 {
		return fmt.Sprintf("%s@%d:%d", p.File.URL, p.Line, p.Col)
	}
	return p.File.URL
}

// MoveBy returns the location delta characters away, recomputing line and
// column from the file content.
func (p *ParseLocation) MoveBy(delta int) *ParseLocation {
	source := p.File.Content
	length := len(source)
	offset := p.Offset
	line := p.Line
	col := p.Col

	for offset > 0 && delta < 0 {
		offset--
		delta++
		if source[offset] == '\n' {
			line--
			priorLine := strings.LastIndex(source[:offset], "\n")
			if priorLine > 0 {
				col = offset - priorLine
			} else {
				col = offset
			}
		} else {
			col--
		}
	}
	for offset < length && delta > 0 {
		ch := source[offset]
		offset++
		delta--
		if ch == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return NewParseLocation(p.File, offset, line, col)
}

// Context is the source text surrounding a location, used when rendering
// a diagnostic.
type Context struct {
	Before string
	After  string
}

// GetContext extracts up to maxChars/maxLines of surrounding source.
// Returns nil when the location has no usable offset.
func (p *ParseLocation) GetContext(maxChars, maxLines int) *Context {
	content := p.File.Content
	startOffset := p.Offset
	if startOffset < 0 || len(content) == 0 {
		return nil
	}
	if startOffset > len(content)-1 {
		startOffset = len(content) - 1
	}

	endOffset := startOffset
	ctxChars := 0
	ctxLines := 0
	for ctxChars < maxChars && startOffset > 0 {
		startOffset--
		ctxChars++
		if content[startOffset] == '\n' {
			ctxLines++
			if ctxLines == maxLines {
				break
			}
		}
	}

	ctxChars = 0
	ctxLines = 0
	for ctxChars < maxChars && endOffset < len(content)-1 {
		endOffset++
		ctxChars++
		if content[endOffset] == '\n' {
			ctxLines++
			if ctxLines == maxLines {
				break
			}
		}
	}

	return &Context{
		Before: content[startOffset:p.Offset],
		After:  content[p.Offset : endOffset+1],
	}
}

// ParseSourceSpan is a region of source attached to a token or
// diagnostic. FullStart is the start before leading trivia was trimmed;
// it equals Start when no trivia was skipped.
type ParseSourceSpan struct {
	Start     *ParseLocation
	End       *ParseLocation
	FullStart *ParseLocation
	Details   string
}

func NewParseSourceSpan(start, end, fullStart *ParseLocation) *ParseSourceSpan {
	if fullStart == nil {
		fullStart = start
	}
	return &ParseSourceSpan{Start: start, End: end, FullStart: fullStart}
}

// String returns the literal source text between Start and End.
func (p *ParseSourceSpan) String() string {
	return p.Start.File.Content[p.Start.Offset:p.End.Offset]
}

// ParseErrorLevel distinguishes warnings from errors.
type ParseErrorLevel int

const (
	ParseErrorLevelWarning ParseErrorLevel = iota
	ParseErrorLevelError
)

// ParseError is one recoverable diagnostic produced during a scan.
type ParseError struct {
	Span  *ParseSourceSpan
	Msg   string
	Level ParseErrorLevel
}

func NewParseError(span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{Span: span, Msg: msg, Level: ParseErrorLevelError}
}

func NewParseWarning(span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{Span: span, Msg: msg, Level: ParseErrorLevelWarning}
}

func (p *ParseError) Error() string {
	return p.String()
}

// ContextualMessage renders the message with the surrounding source and a
// level marker at the error position.
func (p *ParseError) ContextualMessage() string {
	if p.Span == nil || p.Span.Start == nil {
		return p.Msg
	}
	ctx := p.Span.Start.GetContext(100, 3)
	if ctx == nil {
		return p.Msg
	}
	levelStr := "ERROR"
	if p.Level == ParseErrorLevelWarning {
		levelStr = "WARNING"
	}
	return fmt.Sprintf(`%s ("%s[%s ->]%s")`, p.Msg, ctx.Before, levelStr, ctx.After)
}

func (p *ParseError) String() string {
	if p.Span == nil {
		return p.Msg
	}
	details := ""
	if p.Span.Details != "" {
		details = ", " + p.Span.Details
	}
	if p.Span.Start == nil {
		return p.ContextualMessage() + details
	}
	return fmt.Sprintf("%s: %s%s", p.ContextualMessage(), p.Span.Start, details)
}
