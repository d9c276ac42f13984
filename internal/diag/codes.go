package diag

import (
	"fmt"
)

// Code is a stable diagnostic identifier. The thousands digit selects the phase.
type Code uint16

const (
	// Неизвестная ошибка, диагностика без кода
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadCharLiteral           Code = 1006
	LexIdentNotNFC              Code = 1007
	LexNestingTooDeep           Code = 1008
	LexSourceTooLarge           Code = 1009

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynUnclosedParen     Code = 2006
	SynUnclosedBrace     Code = 2007
	SynUnclosedBracket   Code = 2008
	SynExpectSemicolon   Code = 2012
	SynForMissingIn      Code = 2013
	SynNonAssociative    Code = 2014
	SynNestingTooDeep    Code = 2015

	// item-level
	SynUnexpectedTopLevel Code = 2101
	SynExpectIdentifier   Code = 2102
	SynExpectItemBody     Code = 2103

	// expressions, types, patterns
	SynExpectRightBracket Code = 2201
	SynExpectType         Code = 2202
	SynExpectExpression   Code = 2203
	SynExpectColon        Code = 2204
	SynExpectPattern      Code = 2205
	SynExpectBlock        Code = 2206

	// Ошибки I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexUnterminatedChar:         "Unterminated character literal",
	LexBadCharLiteral:           "Character literal must hold exactly one character",
	LexIdentNotNFC:              "Identifier is not in Unicode normalization form C",
	LexNestingTooDeep:           "Block comments nested too deeply",
	LexSourceTooLarge:           "Source file too large",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectSemicolon:          "Expect semicolon",
	SynForMissingIn:             "Missing 'in' in for-in loop",
	SynNonAssociative:           "Non-associative operators chained",
	SynNestingTooDeep:           "Syntax nested too deeply",
	SynUnexpectedTopLevel:       "Unexpected top level",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectItemBody:           "Expect item body",
	SynExpectRightBracket:       "Expect right bracket",
	SynExpectType:               "Expect type",
	SynExpectExpression:         "Expect expression",
	SynExpectColon:              "Expect colon",
	SynExpectPattern:            "Expect pattern",
	SynExpectBlock:              "Expect block",
	IOLoadFileError:             "I/O load file error",
}

// ID renders the stable identifier, e.g. LEX1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
