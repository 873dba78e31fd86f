// Package mlparser tokenizes HTML-like template source into a flat
// stream of typed tokens with exact source spans. Scanning is
// best-effort: recoverable problems become diagnostics and the scan
// continues, so a token stream is always produced.
package mlparser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"marklex/chars"
	"marklex/entities"
	"marklex/util"
)

// InterpolationConfig is the pair of markers delimiting an embedded
// expression inside text.
type InterpolationConfig struct {
	Start string
	End   string
}

// DefaultInterpolationConfig is the `{{ ... }}` form.
var DefaultInterpolationConfig = &InterpolationConfig{Start: "{{", End: "}}"}

// LexerRange restricts tokenization to a region of the source file.
// StartLine and StartCol seed the position tracking so spans stay
// correct for embedded templates.
type LexerRange struct {
	StartPos  int
	StartLine int
	StartCol  int
	EndPos    int
}

// TokenizeOptions controls a tokenization run. The zero value scans the
// whole input with `{{ ... }}` interpolation, no ICU expansion forms and
// the default named entity table.
type TokenizeOptions struct {
	// TokenizeExpansionForms enables ICU expansion form tokens for
	// `{count, plural, ...}` style blocks.
	TokenizeExpansionForms bool
	// InterpolationConfig overrides the `{{ ... }}` markers.
	InterpolationConfig *InterpolationConfig
	// Range restricts scanning to a region of the input.
	Range *LexerRange
	// EscapedString treats the input as the body of a string literal and
	// decodes backslash escape sequences while scanning.
	EscapedString bool
	// I18nNormalizeLineEndingsInICUs normalizes `\r\n` in ICU expansion
	// conditions. When off, conditions keep their original line endings
	// and are reported in TokenizeResult.NonNormalizedIcuExpressions.
	I18nNormalizeLineEndingsInICUs bool
	// LeadingTriviaChars are trimmed from the start of token spans; the
	// untrimmed position is kept as the span's FullStart.
	LeadingTriviaChars []string
	// PreserveLineEndings keeps `\r\n` sequences in text instead of
	// normalizing them to `\n`.
	PreserveLineEndings bool
	// NamedEntities overrides the named character reference table. Nil
	// selects entities.Named.
	NamedEntities map[string]string
}

// TokenError is a recoverable lexing diagnostic. TokenType records which
// token was being built when the scan failed, tokenTypeNone when none
// was in progress.
type TokenError struct {
	util.ParseError
	TokenType TokenType
}

// Tokenize scans source into tokens. getTagContentType classifies
// element bodies as markup, raw text or escapable raw text; nil treats
// every body as markup. The returned result always carries a token
// stream ending in an EOF token, plus any diagnostics.
func Tokenize(source, url string, getTagContentType TagContentTypeResolver, options *TokenizeOptions) *TokenizeResult {
	if options == nil {
		options = &TokenizeOptions{}
	}
	file := util.NewParseSourceFile(source, url)
	tokenizer := NewTokenizer(file, getTagContentType, options)
	tokenizer.Tokenize()
	return NewTokenizeResult(mergeTextTokens(tokenizer.tokens), tokenizer.errors, tokenizer.nonNormalizedIcuExpressions)
}

// Tokenizer is a single-use scanner over one source file.
type Tokenizer struct {
	cursor                         CharacterCursor
	tokenizeIcu                    bool
	interpolationConfig            *InterpolationConfig
	leadingTriviaCodePoints        []int
	preserveLineEndings            bool
	i18nNormalizeLineEndingsInICUs bool
	getTagContentType              TagContentTypeResolver
	namedEntities                  map[string]string

	currentTokenStart  CharacterCursor
	currentTokenType   TokenType
	expansionCaseStack []TokenType
	inInterpolation    bool

	tokens                      []*Token
	errors                      []*TokenError
	nonNormalizedIcuExpressions []*Token
}

func NewTokenizer(file *util.ParseSourceFile, getTagContentType TagContentTypeResolver, options *TokenizeOptions) *Tokenizer {
	rng := options.Range
	if rng == nil {
		rng = &LexerRange{EndPos: len(file.Content)}
	}
	var cursor CharacterCursor
	if options.EscapedString {
		cursor = NewEscapedCharacterCursor(file, rng)
	} else {
		cursor = NewPlainCharacterCursor(file, rng)
	}
	interpolationConfig := options.InterpolationConfig
	if interpolationConfig == nil {
		interpolationConfig = DefaultInterpolationConfig
	}
	var leadingTrivia []int
	for _, s := range options.LeadingTriviaChars {
		for _, r := range s {
			leadingTrivia = append(leadingTrivia, int(r))
			break
		}
	}
	namedEntities := options.NamedEntities
	if namedEntities == nil {
		namedEntities = entities.Named
	}
	return &Tokenizer{
		cursor:                         cursor,
		tokenizeIcu:                    options.TokenizeExpansionForms,
		interpolationConfig:            interpolationConfig,
		leadingTriviaCodePoints:        leadingTrivia,
		preserveLineEndings:            options.PreserveLineEndings,
		i18nNormalizeLineEndingsInICUs: options.I18nNormalizeLineEndingsInICUs,
		getTagContentType:              getTagContentType,
		namedEntities:                  namedEntities,
		currentTokenType:               tokenTypeNone,
	}
}

// Tokenize runs the scan to completion. Recoverable failures are
// recorded as diagnostics; the token stream always ends with EOF.
func (t *Tokenizer) Tokenize() {
	if err := t.cursor.Init(); err != nil {
		t.handleError(err)
	} else {
		for t.cursor.Peek() != chars.EOF {
			start := t.cursor.Clone()
			if err := t.scanNext(start); err != nil {
				t.handleError(err)
			}
		}
	}
	t.beginToken(TokenTypeEOF, t.cursor.Clone())
	t.endToken([]string{}, nil)
}

func (t *Tokenizer) scanNext(start CharacterCursor) error {
	ok, err := t.attemptCharCode(chars.LT)
	if err != nil {
		return err
	}
	if ok {
		if ok, err = t.attemptCharCode(chars.Bang); err != nil {
			return err
		} else if ok {
			if ok, err = t.attemptCharCode(chars.LBracket); err != nil {
				return err
			} else if ok {
				return t.consumeCdata(start)
			}
			if ok, err = t.attemptCharCode(chars.Minus); err != nil {
				return err
			} else if ok {
				return t.consumeComment(start)
			}
			return t.consumeDocType(start)
		}
		if ok, err = t.attemptCharCode(chars.Slash); err != nil {
			return err
		} else if ok {
			return t.consumeTagClose(start)
		}
		return t.consumeTagOpen(start)
	}
	if t.tokenizeIcu {
		handled, err := t.tokenizeExpansionForm()
		if err != nil || handled {
			return err
		}
	}
	return t.consumeWithInterpolation(TokenTypeText, TokenTypeInterpolation, t.isTextEnd, t.isTagStart)
}

func (t *Tokenizer) beginToken(tokenType TokenType, start CharacterCursor) {
	if start == nil {
		start = t.cursor.Clone()
	}
	t.currentTokenStart = start
	t.currentTokenType = tokenType
}

func (t *Tokenizer) endToken(parts []string, end CharacterCursor) *Token {
	if t.currentTokenStart == nil {
		panic("Programming error - attempted to end a token when there was no start to the token")
	}
	if t.currentTokenType == tokenTypeNone {
		panic("Programming error - attempted to end a token which has no token type")
	}
	var span *util.ParseSourceSpan
	if end != nil {
		span = end.GetSpan(t.currentTokenStart, t.leadingTriviaCodePoints)
	} else {
		span = t.cursor.GetSpan(t.currentTokenStart, t.leadingTriviaCodePoints)
	}
	token := &Token{Type: t.currentTokenType, Parts: parts, SourceSpan: span}
	t.tokens = append(t.tokens, token)
	t.currentTokenStart = nil
	t.currentTokenType = tokenTypeNone
	return token
}

func (t *Tokenizer) createError(msg string, span *util.ParseSourceSpan) *TokenError {
	if t.isInExpansionForm() {
		msg += ` (Do you have an unescaped "{" in your template? Use "{{ '{' }}") to escape it.)`
	}
	err := &TokenError{
		ParseError: util.ParseError{Span: span, Msg: msg, Level: util.ParseErrorLevelError},
		TokenType:  t.currentTokenType,
	}
	t.currentTokenStart = nil
	t.currentTokenType = tokenTypeNone
	return err
}

// handleError converts a recoverable scan failure into a diagnostic.
// Anything else is a genuine programming error and escapes as a panic.
func (t *Tokenizer) handleError(err error) {
	var cursorErr *CursorError
	if errors.As(err, &cursorErr) {
		t.errors = append(t.errors, t.createError(cursorErr.Msg, t.cursor.GetSpan(cursorErr.Cursor, nil)))
		return
	}
	var tokenErr *TokenError
	if errors.As(err, &tokenErr) {
		t.errors = append(t.errors, tokenErr)
		return
	}
	panic(err)
}

func isRecoverable(err error) bool {
	var cursorErr *CursorError
	var tokenErr *TokenError
	return errors.As(err, &cursorErr) || errors.As(err, &tokenErr)
}

func (t *Tokenizer) attemptCharCode(charCode int) (bool, error) {
	if t.cursor.Peek() == charCode {
		if err := t.cursor.Advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (t *Tokenizer) attemptCharCodeCaseInsensitive(charCode int) (bool, error) {
	if compareCharCodeCaseInsensitive(t.cursor.Peek(), charCode) {
		if err := t.cursor.Advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (t *Tokenizer) requireCharCode(charCode int) error {
	location := t.cursor.Clone()
	ok, err := t.attemptCharCode(charCode)
	if err != nil {
		return err
	}
	if !ok {
		return t.createError(unexpectedCharacterErrorMsg(t.cursor.Peek()), t.cursor.GetSpan(location, nil))
	}
	return nil
}

func (t *Tokenizer) attemptStr(str string) (bool, error) {
	length := len(str)
	if t.cursor.CharsLeft() < length {
		return false, nil
	}
	initialPosition := t.cursor.Clone()
	for i := 0; i < length; i++ {
		ok, err := t.attemptCharCode(int(str[i]))
		if err != nil {
			return false, err
		}
		if !ok {
			t.cursor = initialPosition
			return false, nil
		}
	}
	return true, nil
}

func (t *Tokenizer) attemptStrCaseInsensitive(str string) (bool, error) {
	for i := 0; i < len(str); i++ {
		ok, err := t.attemptCharCodeCaseInsensitive(int(str[i]))
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (t *Tokenizer) requireStr(str string) error {
	location := t.cursor.Clone()
	ok, err := t.attemptStr(str)
	if err != nil {
		return err
	}
	if !ok {
		return t.createError(unexpectedCharacterErrorMsg(t.cursor.Peek()), t.cursor.GetSpan(location, nil))
	}
	return nil
}

func (t *Tokenizer) attemptCharCodeUntilFn(predicate func(int) bool) error {
	for !predicate(t.cursor.Peek()) {
		if err := t.cursor.Advance(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tokenizer) requireCharCodeUntilFn(predicate func(int) bool, length int) error {
	start := t.cursor.Clone()
	if err := t.attemptCharCodeUntilFn(predicate); err != nil {
		return err
	}
	if t.cursor.Diff(start) < length {
		return t.createError(unexpectedCharacterErrorMsg(t.cursor.Peek()), t.cursor.GetSpan(start, nil))
	}
	return nil
}

func (t *Tokenizer) attemptUntilChar(char int) error {
	for t.cursor.Peek() != char {
		if err := t.cursor.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// readChar returns the decoded character at the cursor, so escape
// sequences read as the character they encode.
func (t *Tokenizer) readChar() (string, error) {
	char := string(rune(t.cursor.Peek()))
	if err := t.cursor.Advance(); err != nil {
		return "", err
	}
	return char, nil
}

func (t *Tokenizer) readUntil(char int) (string, error) {
	start := t.cursor.Clone()
	if err := t.attemptUntilChar(char); err != nil {
		return "", err
	}
	return t.cursor.GetChars(start), nil
}

func (t *Tokenizer) processCarriageReturns(content string) string {
	if t.preserveLineEndings {
		return content
	}
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(content)
}

func (t *Tokenizer) getProcessedChars(start, end CharacterCursor) string {
	return t.processCarriageReturns(end.GetChars(start))
}

func (t *Tokenizer) consumeComment(start CharacterCursor) error {
	t.beginToken(TokenTypeCommentStart, start)
	if err := t.requireCharCode(chars.Minus); err != nil {
		return err
	}
	t.endToken([]string{}, nil)
	if err := t.consumeRawText(false, func() (bool, error) { return t.attemptStr("-->") }); err != nil {
		return err
	}
	t.beginToken(TokenTypeCommentEnd, nil)
	if err := t.requireStr("-->"); err != nil {
		return err
	}
	t.endToken([]string{}, nil)
	return nil
}

func (t *Tokenizer) consumeCdata(start CharacterCursor) error {
	t.beginToken(TokenTypeCdataStart, start)
	if err := t.requireStr("CDATA["); err != nil {
		return err
	}
	t.endToken([]string{}, nil)
	if err := t.consumeRawText(false, func() (bool, error) { return t.attemptStr("]]>") }); err != nil {
		return err
	}
	t.beginToken(TokenTypeCdataEnd, nil)
	if err := t.requireStr("]]>"); err != nil {
		return err
	}
	t.endToken([]string{}, nil)
	return nil
}

func (t *Tokenizer) consumeDocType(start CharacterCursor) error {
	t.beginToken(TokenTypeDocType, start)
	contentStart := t.cursor.Clone()
	if err := t.attemptUntilChar(chars.GT); err != nil {
		return err
	}
	content := t.cursor.GetChars(contentStart)
	if err := t.cursor.Advance(); err != nil {
		return err
	}
	t.endToken([]string{content}, nil)
	return nil
}

func (t *Tokenizer) consumePrefixAndName() ([]string, error) {
	nameOrPrefixStart := t.cursor.Clone()
	prefix := ""
	for t.cursor.Peek() != chars.Colon && !isPrefixEnd(t.cursor.Peek()) {
		if err := t.cursor.Advance(); err != nil {
			return nil, err
		}
	}
	var nameStart CharacterCursor
	if t.cursor.Peek() == chars.Colon {
		prefix = t.cursor.GetChars(nameOrPrefixStart)
		if err := t.cursor.Advance(); err != nil {
			return nil, err
		}
		nameStart = t.cursor.Clone()
	} else {
		nameStart = nameOrPrefixStart
	}
	minLength := 0
	if prefix != "" {
		minLength = 1
	}
	if err := t.requireCharCodeUntilFn(isNameEnd, minLength); err != nil {
		return nil, err
	}
	name := t.cursor.GetChars(nameStart)
	return []string{prefix, name}, nil
}

func (t *Tokenizer) consumeTagOpen(start CharacterCursor) error {
	var prefix, tagName string
	var openToken *Token

	err := func() error {
		if !chars.IsAsciiLetter(t.cursor.Peek()) {
			return t.createError(unexpectedCharacterErrorMsg(t.cursor.Peek()), t.cursor.GetSpan(start, nil))
		}
		var err error
		openToken, err = t.consumeTagOpenStart(start)
		if err != nil {
			return err
		}
		prefix = openToken.Parts[0]
		tagName = openToken.Parts[1]
		if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
			return err
		}
		for t.cursor.Peek() != chars.Slash && t.cursor.Peek() != chars.GT &&
			t.cursor.Peek() != chars.LT && t.cursor.Peek() != chars.EOF {
			if err := t.consumeAttributeName(); err != nil {
				return err
			}
			if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
				return err
			}
			ok, err := t.attemptCharCode(chars.EQ)
			if err != nil {
				return err
			}
			if ok {
				if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
					return err
				}
				if err := t.consumeAttributeValue(); err != nil {
					return err
				}
			}
			if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
				return err
			}
		}
		return t.consumeTagOpenEnd()
	}()
	if err != nil {
		if !isRecoverable(err) {
			return err
		}
		if openToken != nil {
			// The scan failed after the open tag started, so the token
			// is downgraded rather than discarded.
			openToken.Type = TokenTypeIncompleteTagOpen
		} else {
			// The tag never got started, treat the `<` as plain text.
			t.beginToken(TokenTypeText, start)
			t.endToken([]string{"<"}, nil)
		}
		return err
	}

	contentType := TagContentTypeParsableData
	if t.getTagContentType != nil {
		contentType = t.getTagContentType(tagName, prefix)
	}
	switch contentType {
	case TagContentTypeRawText:
		return t.consumeRawTextWithTagClose(prefix, tagName, false)
	case TagContentTypeEscapableRawText:
		return t.consumeRawTextWithTagClose(prefix, tagName, true)
	}
	return nil
}

// consumeRawTextWithTagClose scans an element body that ends only at
// the matching case-insensitive closing tag, which it consumes as well.
func (t *Tokenizer) consumeRawTextWithTagClose(prefix, tagName string, consumeEntities bool) error {
	err := t.consumeRawText(consumeEntities, func() (bool, error) {
		if ok, err := t.attemptCharCode(chars.LT); err != nil || !ok {
			return false, err
		}
		if ok, err := t.attemptCharCode(chars.Slash); err != nil || !ok {
			return false, err
		}
		if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
			return false, err
		}
		if ok, err := t.attemptStrCaseInsensitive(tagName); err != nil || !ok {
			return false, err
		}
		if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
			return false, err
		}
		return t.attemptCharCode(chars.GT)
	})
	if err != nil {
		return err
	}
	t.beginToken(TokenTypeTagClose, nil)
	if err := t.requireCharCodeUntilFn(func(code int) bool { return code == chars.GT }, 3); err != nil {
		return err
	}
	if err := t.cursor.Advance(); err != nil {
		return err
	}
	t.endToken([]string{prefix, tagName}, nil)
	return nil
}

func (t *Tokenizer) consumeTagOpenStart(start CharacterCursor) (*Token, error) {
	t.beginToken(TokenTypeTagOpenStart, start)
	parts, err := t.consumePrefixAndName()
	if err != nil {
		return nil, err
	}
	return t.endToken(parts, nil), nil
}

func (t *Tokenizer) consumeAttributeName() error {
	attrNameStart := t.cursor.Peek()
	if attrNameStart == chars.SQ || attrNameStart == chars.DQ {
		return t.createError(unexpectedCharacterErrorMsg(attrNameStart), t.cursor.GetSpan(nil, nil))
	}
	t.beginToken(TokenTypeAttrName, nil)
	parts, err := t.consumePrefixAndName()
	if err != nil {
		return err
	}
	t.endToken(parts, nil)
	return nil
}

func (t *Tokenizer) consumeAttributeValue() error {
	if t.cursor.Peek() == chars.SQ || t.cursor.Peek() == chars.DQ {
		quoteChar := t.cursor.Peek()
		if err := t.consumeQuote(quoteChar); err != nil {
			return err
		}
		// In a quoted attribute nothing but the matching quote ends the
		// value, including an apparent tag start.
		endPredicate := func() bool { return t.cursor.Peek() == quoteChar }
		if err := t.consumeWithInterpolation(TokenTypeAttrValueText, TokenTypeAttrValueInterpolation, endPredicate, endPredicate); err != nil {
			return err
		}
		return t.consumeQuote(quoteChar)
	}
	endPredicate := func() bool { return isNameEnd(t.cursor.Peek()) }
	return t.consumeWithInterpolation(TokenTypeAttrValueText, TokenTypeAttrValueInterpolation, endPredicate, endPredicate)
}

func (t *Tokenizer) consumeQuote(quoteChar int) error {
	t.beginToken(TokenTypeAttrQuote, nil)
	if err := t.requireCharCode(quoteChar); err != nil {
		return err
	}
	t.endToken([]string{string(rune(quoteChar))}, nil)
	return nil
}

func (t *Tokenizer) consumeTagOpenEnd() error {
	ok, err := t.attemptCharCode(chars.Slash)
	if err != nil {
		return err
	}
	tokenType := TokenTypeTagOpenEnd
	if ok {
		tokenType = TokenTypeTagOpenEndVoid
	}
	t.beginToken(tokenType, nil)
	if err := t.requireCharCode(chars.GT); err != nil {
		return err
	}
	t.endToken([]string{}, nil)
	return nil
}

func (t *Tokenizer) consumeTagClose(start CharacterCursor) error {
	t.beginToken(TokenTypeTagClose, start)
	if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
		return err
	}
	parts, err := t.consumePrefixAndName()
	if err != nil {
		return err
	}
	if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
		return err
	}
	if err := t.requireCharCode(chars.GT); err != nil {
		return err
	}
	t.endToken(parts, nil)
	return nil
}

func (t *Tokenizer) consumeExpansionFormStart() error {
	t.beginToken(TokenTypeExpansionFormStart, nil)
	if err := t.requireCharCode(chars.LBrace); err != nil {
		return err
	}
	t.endToken([]string{}, nil)
	t.expansionCaseStack = append(t.expansionCaseStack, TokenTypeExpansionFormStart)

	t.beginToken(TokenTypeRawText, nil)
	condition, err := t.readUntil(chars.Comma)
	if err != nil {
		return err
	}
	normalizedCondition := t.processCarriageReturns(condition)
	if t.i18nNormalizeLineEndingsInICUs {
		t.endToken([]string{normalizedCondition}, nil)
	} else {
		// The condition keeps its original line endings; report it so
		// the caller can post-process.
		conditionToken := t.endToken([]string{condition}, nil)
		if normalizedCondition != condition {
			t.nonNormalizedIcuExpressions = append(t.nonNormalizedIcuExpressions, conditionToken)
		}
	}
	if err := t.requireCharCode(chars.Comma); err != nil {
		return err
	}
	if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
		return err
	}

	t.beginToken(TokenTypeRawText, nil)
	expansionType, err := t.readUntil(chars.Comma)
	if err != nil {
		return err
	}
	t.endToken([]string{expansionType}, nil)
	if err := t.requireCharCode(chars.Comma); err != nil {
		return err
	}
	return t.attemptCharCodeUntilFn(isNotWhitespace)
}

func (t *Tokenizer) consumeExpansionCaseStart() error {
	t.beginToken(TokenTypeExpansionCaseValue, nil)
	value, err := t.readUntil(chars.LBrace)
	if err != nil {
		return err
	}
	t.endToken([]string{strings.TrimSpace(value)}, nil)
	if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
		return err
	}

	t.beginToken(TokenTypeExpansionCaseExpStart, nil)
	if err := t.requireCharCode(chars.LBrace); err != nil {
		return err
	}
	t.endToken([]string{}, nil)
	if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
		return err
	}
	t.expansionCaseStack = append(t.expansionCaseStack, TokenTypeExpansionCaseExpStart)
	return nil
}

func (t *Tokenizer) consumeExpansionCaseEnd() error {
	t.beginToken(TokenTypeExpansionCaseExpEnd, nil)
	if err := t.requireCharCode(chars.RBrace); err != nil {
		return err
	}
	t.endToken([]string{}, nil)
	if err := t.attemptCharCodeUntilFn(isNotWhitespace); err != nil {
		return err
	}
	t.expansionCaseStack = t.expansionCaseStack[:len(t.expansionCaseStack)-1]
	return nil
}

func (t *Tokenizer) consumeExpansionFormEnd() error {
	t.beginToken(TokenTypeExpansionFormEnd, nil)
	if err := t.requireCharCode(chars.RBrace); err != nil {
		return err
	}
	t.endToken([]string{}, nil)
	t.expansionCaseStack = t.expansionCaseStack[:len(t.expansionCaseStack)-1]
	return nil
}

func (t *Tokenizer) tokenizeExpansionForm() (bool, error) {
	if t.isExpansionFormStart() {
		return true, t.consumeExpansionFormStart()
	}
	if isExpansionCaseStart(t.cursor.Peek()) && t.isInExpansionForm() {
		return true, t.consumeExpansionCaseStart()
	}
	if t.cursor.Peek() == chars.RBrace {
		if t.isInExpansionCase() {
			return true, t.consumeExpansionCaseEnd()
		}
		if t.isInExpansionForm() {
			return true, t.consumeExpansionFormEnd()
		}
	}
	return false, nil
}

// consumeWithInterpolation scans text until endPredicate holds,
// switching to interpolation and entity tokens as their markers appear.
func (t *Tokenizer) consumeWithInterpolation(textTokenType, interpolationTokenType TokenType, endPredicate, endInterpolation func() bool) error {
	t.beginToken(textTokenType, nil)
	var parts []string
	for !endPredicate() {
		current := t.cursor.Clone()
		if t.interpolationConfig != nil {
			ok, err := t.attemptStr(t.interpolationConfig.Start)
			if err != nil {
				return err
			}
			if ok {
				t.endToken([]string{t.processCarriageReturns(strings.Join(parts, ""))}, current)
				parts = nil
				t.inInterpolation = true
				err := t.consumeInterpolation(interpolationTokenType, current, endInterpolation)
				t.inInterpolation = false
				if err != nil {
					return err
				}
				t.beginToken(textTokenType, nil)
				continue
			}
		}
		if t.cursor.Peek() == chars.Ampersand {
			t.endToken([]string{t.processCarriageReturns(strings.Join(parts, ""))}, nil)
			parts = nil
			if err := t.consumeEntity(textTokenType); err != nil {
				return err
			}
			t.beginToken(textTokenType, nil)
		} else {
			char, err := t.readChar()
			if err != nil {
				return err
			}
			parts = append(parts, char)
		}
	}
	// It is possible nothing was consumed since the last token, in which
	// case an empty text token is still emitted.
	t.inInterpolation = false
	t.endToken([]string{t.processCarriageReturns(strings.Join(parts, ""))}, nil)
	return nil
}

// consumeInterpolation scans from just past the start marker through the
// end marker, skipping end markers inside quoted strings and tracking
// `//` comments. An interpolation that never closes ends at EOF, at
// prematureEndPredicate, or at an apparent tag start; in those cases the
// token carries no end marker part.
func (t *Tokenizer) consumeInterpolation(interpolationTokenType TokenType, interpolationStart CharacterCursor, prematureEndPredicate func() bool) error {
	t.beginToken(interpolationTokenType, interpolationStart)
	parts := []string{t.interpolationConfig.Start}

	expressionStart := t.cursor.Clone()
	inQuote := 0
	inComment := false
	for t.cursor.Peek() != chars.EOF && (prematureEndPredicate == nil || !prematureEndPredicate()) {
		current := t.cursor.Clone()

		if t.isTagStart() {
			// The interpolation ends at the start of the next element.
			// (Kept for backward compatibility with existing templates.)
			t.cursor = current
			parts = append(parts, t.getProcessedChars(expressionStart, current))
			t.endToken(parts, nil)
			return nil
		}

		if inQuote == 0 {
			ok, err := t.attemptStr(t.interpolationConfig.End)
			if err != nil {
				return err
			}
			if ok {
				parts = append(parts, t.getProcessedChars(expressionStart, current))
				parts = append(parts, t.interpolationConfig.End)
				t.endToken(parts, nil)
				return nil
			}
			ok, err = t.attemptStr("//")
			if err != nil {
				return err
			}
			if ok {
				inComment = true
			}
		}

		char := t.cursor.Peek()
		if err := t.cursor.Advance(); err != nil {
			return err
		}
		if char == chars.Backslash {
			// Skip the next character because it was escaped.
			if err := t.cursor.Advance(); err != nil {
				return err
			}
		} else if char == inQuote {
			inQuote = 0
		} else if !inComment && inQuote == 0 && chars.IsQuote(char) {
			inQuote = char
		}
	}

	// Hit EOF or the premature end without finding the end marker.
	parts = append(parts, t.getProcessedChars(expressionStart, t.cursor))
	t.endToken(parts, nil)
	return nil
}

// consumeRawText scans verbatim text until endMarkerPredicate holds,
// optionally breaking out entity tokens.
func (t *Tokenizer) consumeRawText(consumeEntities bool, endMarkerPredicate func() (bool, error)) error {
	tokenType := TokenTypeRawText
	if consumeEntities {
		tokenType = TokenTypeEscapableRawText
	}
	t.beginToken(tokenType, nil)
	var parts []string
	for {
		tagCloseStart := t.cursor.Clone()
		foundEndMarker, err := endMarkerPredicate()
		if err != nil {
			return err
		}
		t.cursor = tagCloseStart
		if foundEndMarker {
			break
		}
		if consumeEntities && t.cursor.Peek() == chars.Ampersand {
			t.endToken([]string{t.processCarriageReturns(strings.Join(parts, ""))}, nil)
			parts = nil
			if err := t.consumeEntity(TokenTypeEscapableRawText); err != nil {
				return err
			}
			t.beginToken(TokenTypeEscapableRawText, nil)
		} else {
			char, err := t.readChar()
			if err != nil {
				return err
			}
			parts = append(parts, char)
		}
	}
	t.endToken([]string{t.processCarriageReturns(strings.Join(parts, ""))}, nil)
	return nil
}

// consumeEntity scans a `&...;` character reference. A named reference
// without a terminating semicolon downgrades the `&` to plain text and
// rescans the name.
func (t *Tokenizer) consumeEntity(textTokenType TokenType) error {
	t.beginToken(TokenTypeEncodedEntity, nil)
	start := t.cursor.Clone()
	if err := t.cursor.Advance(); err != nil {
		return err
	}
	isHash, err := t.attemptCharCode(chars.Hash)
	if err != nil {
		return err
	}
	if isHash {
		isHex := false
		if ok, err := t.attemptCharCode(chars.LowerX); err != nil {
			return err
		} else if ok {
			isHex = true
		} else if ok, err := t.attemptCharCode(chars.X); err != nil {
			return err
		} else if ok {
			isHex = true
		}
		codeStart := t.cursor.Clone()
		if err := t.attemptCharCodeUntilFn(isDigitEntityEnd); err != nil {
			return err
		}
		if t.cursor.Peek() != chars.Semicolon {
			// Advance past the offending character so it shows up in
			// the error message.
			if err := t.cursor.Advance(); err != nil {
				return err
			}
			entityType := "decimal"
			if isHex {
				entityType = "hexadecimal"
			}
			return t.createError(
				fmt.Sprintf(`Unable to parse entity "%s" - %s character reference entities must end with ";"`, t.cursor.GetChars(start), entityType),
				t.cursor.GetSpan(nil, nil))
		}
		strNum := t.cursor.GetChars(codeStart)
		if err := t.cursor.Advance(); err != nil {
			return err
		}
		base := 10
		if isHex {
			base = 16
		}
		charCode, parseErr := strconv.ParseInt(strNum, base, 32)
		if parseErr != nil || charCode < 0 || charCode > 0x10FFFF {
			return t.createError(
				fmt.Sprintf(`Unknown entity "%s" - invalid code point`, t.cursor.GetChars(start)),
				t.cursor.GetSpan(start, nil))
		}
		t.endToken([]string{string(rune(charCode)), t.cursor.GetChars(start)}, nil)
		return nil
	}

	nameStart := t.cursor.Clone()
	if err := t.attemptCharCodeUntilFn(isNamedEntityEnd); err != nil {
		return err
	}
	if t.cursor.Peek() != chars.Semicolon {
		// No semicolon, so the `&` was plain text after all. Rewind and
		// rescan the name as text.
		t.beginToken(textTokenType, start)
		t.cursor = nameStart
		t.endToken([]string{"&"}, nil)
		return nil
	}
	name := t.cursor.GetChars(nameStart)
	if err := t.cursor.Advance(); err != nil {
		return err
	}
	char, ok := t.namedEntities[name]
	if !ok {
		return t.createError(unknownEntityErrorMsg(name), t.cursor.GetSpan(start, nil))
	}
	t.endToken([]string{char, "&" + name + ";"}, nil)
	return nil
}

func (t *Tokenizer) isTextEnd() bool {
	if t.isTagStart() || t.cursor.Peek() == chars.EOF {
		return true
	}
	if t.tokenizeIcu && !t.inInterpolation {
		if t.isExpansionFormStart() {
			// Start of an ICU expansion form.
			return true
		}
		if t.cursor.Peek() == chars.RBrace && t.isInExpansionCase() {
			// End of an ICU expansion case.
			return true
		}
	}
	return false
}

// isTagStart reports whether the cursor sits on a `<` that plausibly
// begins a tag, close tag, comment, CDATA or doctype.
func (t *Tokenizer) isTagStart() bool {
	if t.cursor.Peek() != chars.LT {
		return false
	}
	tmp := t.cursor.Clone()
	if err := tmp.Advance(); err != nil {
		return false
	}
	code := tmp.Peek()
	return chars.IsAsciiLetter(code) || code == chars.Slash || code == chars.Bang
}

func (t *Tokenizer) isExpansionFormStart() bool {
	if t.cursor.Peek() != chars.LBrace {
		return false
	}
	if t.interpolationConfig != nil {
		start := t.cursor.Clone()
		isInterpolation, _ := t.attemptStr(t.interpolationConfig.Start)
		t.cursor = start
		return !isInterpolation
	}
	return true
}

func (t *Tokenizer) isInExpansionCase() bool {
	return len(t.expansionCaseStack) > 0 &&
		t.expansionCaseStack[len(t.expansionCaseStack)-1] == TokenTypeExpansionCaseExpStart
}

func (t *Tokenizer) isInExpansionForm() bool {
	return len(t.expansionCaseStack) > 0 &&
		t.expansionCaseStack[len(t.expansionCaseStack)-1] == TokenTypeExpansionFormStart
}

func unexpectedCharacterErrorMsg(charCode int) string {
	char := "EOF"
	if charCode != chars.EOF {
		char = string(rune(charCode))
	}
	return fmt.Sprintf(`Unexpected character "%s"`, char)
}

func unknownEntityErrorMsg(entitySrc string) string {
	return fmt.Sprintf(`Unknown entity "%s" - use the "&#<decimal>;" or  "&#x<hex>;" syntax`, entitySrc)
}

func isNotWhitespace(code int) bool {
	return !chars.IsWhitespace(code) || code == chars.EOF
}

func isNameEnd(code int) bool {
	return chars.IsWhitespace(code) || code == chars.GT || code == chars.LT ||
		code == chars.Slash || code == chars.SQ || code == chars.DQ || code == chars.EQ ||
		code == chars.EOF
}

func isPrefixEnd(code int) bool {
	return (code < chars.LowerA || code > chars.LowerZ) &&
		(code < chars.A || code > chars.Z) &&
		(code < chars.Num0 || code > chars.Num9)
}

func isDigitEntityEnd(code int) bool {
	return !chars.IsDigit(code) && !chars.IsAsciiHexDigit(code)
}

func isNamedEntityEnd(code int) bool {
	return !chars.IsAsciiLetter(code) && !chars.IsDigit(code)
}

func isExpansionCaseStart(peek int) bool {
	return peek == chars.EQ || chars.IsAsciiLetter(peek) || chars.IsDigit(peek)
}

func compareCharCodeCaseInsensitive(code1, code2 int) bool {
	return toUpperCaseCharCode(code1) == toUpperCaseCharCode(code2)
}

func toUpperCaseCharCode(code int) int {
	if code >= chars.LowerA && code <= chars.LowerZ {
		return code - chars.LowerA + chars.A
	}
	return code
}

// mergeTextTokens collapses runs of adjacent text tokens produced around
// entities and interpolations into single tokens with widened spans.
func mergeTextTokens(srcTokens []*Token) []*Token {
	dstTokens := make([]*Token, 0, len(srcTokens))
	var lastDstToken *Token
	for _, token := range srcTokens {
		if lastDstToken != nil && lastDstToken.Type == token.Type &&
			(token.Type == TokenTypeText || token.Type == TokenTypeAttrValueText) {
			lastDstToken.Parts[0] += token.Parts[0]
			lastDstToken.SourceSpan.End = token.SourceSpan.End
		} else {
			lastDstToken = token
			dstTokens = append(dstTokens, token)
		}
	}
	return dstTokens
}
