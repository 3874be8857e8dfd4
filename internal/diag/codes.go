package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedTemplate     Code = 1005
	LexUnterminatedRegexp       Code = 1006
	LexBadEscape                Code = 1007
	LexBadRegexpFlags           Code = 1008

	// Парсерные
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnclosedDelimiter   Code = 2002
	SynExpectIdentifier    Code = 2003
	SynInvalidAssignTarget Code = 2004
	SynRedeclared          Code = 2005
	SynReservedWord        Code = 2006
	SynIllegalReturn       Code = 2007
	SynIllegalBreak        Code = 2008
	SynIllegalContinue     Code = 2009
	SynMissingInitializer  Code = 2010
	SynNewlineAfterThrow   Code = 2011
	SynDuplicateDefault    Code = 2012
	SynTooManyErrors       Code = 2099

	// Правила
	RuleFinding Code = 3000
	RuleDefect  Code = 3001

	// Граница ввода-вывода
	IOReadFailed Code = 4001
	IOConfig     Code = 4002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexUnterminatedTemplate:     "Unterminated template literal",
		LexUnterminatedRegexp:       "Unterminated regular expression",
		LexBadEscape:                "Bad escape sequence",
		LexBadRegexpFlags:           "Invalid regular expression flags",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynExpectIdentifier:         "Expected identifier",
		SynInvalidAssignTarget:      "Invalid assignment target",
		SynRedeclared:               "Identifier has already been declared",
		SynReservedWord:             "Reserved word used as identifier",
		SynIllegalReturn:            "Illegal return statement",
		SynIllegalBreak:             "Illegal break statement",
		SynIllegalContinue:          "Illegal continue statement",
		SynMissingInitializer:       "Missing initializer in const declaration",
		SynNewlineAfterThrow:        "Illegal newline after throw",
		SynDuplicateDefault:         "More than one default clause in switch statement",
		SynTooManyErrors:            "Too many syntax errors",
		RuleFinding:                 "Rule finding",
		RuleDefect:                  "Rule crashed",
		IOReadFailed:                "Failed to read source",
		IOConfig:                    "Invalid configuration",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParsingErrorPrefix starts every lexer and parser message, as in ESLint output.
const ParsingErrorPrefix = "Parsing error: "

// IsSyntax reports whether the code belongs to the lexer or the parser.
// Such diagnostics carry no rule id.
func (c Code) IsSyntax() bool {
	return c >= 1000 && c < 3000
}
