// Package chars holds the character code constants and classifier
// predicates the lexer operates on. Characters are carried as int code
// points so that EOF can be represented in-band as 0.
package chars

const (
	EOF       = 0
	BSpace    = 8
	Tab       = 9
	LF        = 10
	VTab      = 11
	FF        = 12
	CR        = 13
	Space     = 32
	Bang      = 33
	DQ        = 34
	Hash      = 35
	Dollar    = 36
	Percent   = 37
	Ampersand = 38
	SQ        = 39
	LParen    = 40
	RParen    = 41
	Star      = 42
	Plus      = 43
	Comma     = 44
	Minus     = 45
	Period    = 46
	Slash     = 47
	Colon     = 58
	Semicolon = 59
	LT        = 60
	EQ        = 61
	GT        = 62
	Question  = 63

	Num0 = 48
	Num7 = 55
	Num9 = 57

	A = 65
	F = 70
	X = 88
	Z = 90

	LBracket   = 91
	Backslash  = 92
	RBracket   = 93
	Caret      = 94
	Underscore = 95

	LowerA = 97
	LowerB = 98
	LowerF = 102
	LowerN = 110
	LowerR = 114
	LowerT = 116
	LowerU = 117
	LowerV = 118
	LowerX = 120
	LowerZ = 122

	LBrace = 123
	Bar    = 124
	RBrace = 125
	NBSP   = 160

	At = 64
	BT = 96
)

func IsWhitespace(code int) bool {
	return (code >= Tab && code <= Space) || code == NBSP
}

func IsDigit(code int) bool {
	return Num0 <= code && code <= Num9
}

func IsAsciiLetter(code int) bool {
	return (code >= LowerA && code <= LowerZ) || (code >= A && code <= Z)
}

func IsAsciiHexDigit(code int) bool {
	return (code >= LowerA && code <= LowerF) || (code >= A && code <= F) || IsDigit(code)
}

func IsNewLine(code int) bool {
	return code == LF || code == CR
}

func IsOctalDigit(code int) bool {
	return Num0 <= code && code <= Num7
}

func IsQuote(code int) bool {
	return code == SQ || code == DQ || code == BT
}
