package mlparser

import "marklex/util"

// TokenType classifies one token of the lexical output. The set is
// closed: downstream consumers switch exhaustively over it.
type TokenType int

const (
	TokenTypeTagOpenStart TokenType = iota
	TokenTypeTagOpenEnd
	TokenTypeTagOpenEndVoid
	TokenTypeTagClose
	TokenTypeIncompleteTagOpen
	TokenTypeText
	TokenTypeEscapableRawText
	TokenTypeRawText
	TokenTypeInterpolation
	TokenTypeEncodedEntity
	TokenTypeCommentStart
	TokenTypeCommentEnd
	TokenTypeCdataStart
	TokenTypeCdataEnd
	TokenTypeAttrName
	TokenTypeAttrQuote
	TokenTypeAttrValueText
	TokenTypeAttrValueInterpolation
	TokenTypeDocType
	TokenTypeExpansionFormStart
	TokenTypeExpansionCaseValue
	TokenTypeExpansionCaseExpStart
	TokenTypeExpansionCaseExpEnd
	TokenTypeExpansionFormEnd
	TokenTypeEOF
)

// tokenTypeNone marks "no token in progress" in the tokenizer.
const tokenTypeNone TokenType = -1

var tokenTypeNames = map[TokenType]string{
	TokenTypeTagOpenStart:           "TAG_OPEN_START",
	TokenTypeTagOpenEnd:             "TAG_OPEN_END",
	TokenTypeTagOpenEndVoid:         "TAG_OPEN_END_VOID",
	TokenTypeTagClose:               "TAG_CLOSE",
	TokenTypeIncompleteTagOpen:      "INCOMPLETE_TAG_OPEN",
	TokenTypeText:                   "TEXT",
	TokenTypeEscapableRawText:       "ESCAPABLE_RAW_TEXT",
	TokenTypeRawText:                "RAW_TEXT",
	TokenTypeInterpolation:          "INTERPOLATION",
	TokenTypeEncodedEntity:          "ENCODED_ENTITY",
	TokenTypeCommentStart:           "COMMENT_START",
	TokenTypeCommentEnd:             "COMMENT_END",
	TokenTypeCdataStart:             "CDATA_START",
	TokenTypeCdataEnd:               "CDATA_END",
	TokenTypeAttrName:               "ATTR_NAME",
	TokenTypeAttrQuote:              "ATTR_QUOTE",
	TokenTypeAttrValueText:          "ATTR_VALUE_TEXT",
	TokenTypeAttrValueInterpolation: "ATTR_VALUE_INTERPOLATION",
	TokenTypeDocType:                "DOC_TYPE",
	TokenTypeExpansionFormStart:     "EXPANSION_FORM_START",
	TokenTypeExpansionCaseValue:     "EXPANSION_CASE_VALUE",
	TokenTypeExpansionCaseExpStart:  "EXPANSION_CASE_EXP_START",
	TokenTypeExpansionCaseExpEnd:    "EXPANSION_CASE_EXP_END",
	TokenTypeExpansionFormEnd:       "EXPANSION_FORM_END",
	TokenTypeEOF:                    "EOF",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is one classified, span-tagged fragment of the lexical output.
// The meaning of Parts depends on Type:
//
//	TAG_OPEN_START, TAG_CLOSE, ATTR_NAME  [prefix, name]
//	TEXT, RAW_TEXT, ESCAPABLE_RAW_TEXT,
//	ATTR_VALUE_TEXT, DOC_TYPE,
//	EXPANSION_CASE_VALUE                  [text]
//	ATTR_QUOTE                            [quote]
//	INTERPOLATION,
//	ATTR_VALUE_INTERPOLATION              [startMarker, expression, endMarker?]
//	ENCODED_ENTITY                        [decoded, encoded]
//
// The remaining types carry no parts.
type Token struct {
	Type       TokenType
	Parts      []string
	SourceSpan *util.ParseSourceSpan
}

// TokenizeResult is the output of one tokenization run: a best-effort
// token stream, the diagnostics accumulated while producing it, and the
// ICU expansion conditions whose line endings differ from their
// normalized form (only populated when normalization is off, so the
// caller can post-process).
type TokenizeResult struct {
	Tokens                      []*Token
	Errors                      []*TokenError
	NonNormalizedIcuExpressions []*Token
}

func NewTokenizeResult(tokens []*Token, errors []*TokenError, nonNormalizedIcuExpressions []*Token) *TokenizeResult {
	return &TokenizeResult{
		Tokens:                      tokens,
		Errors:                      errors,
		NonNormalizedIcuExpressions: nonNormalizedIcuExpressions,
	}
}
