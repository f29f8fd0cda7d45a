package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Token types for the multilingual lexer
// ---------------------------------------------------------------------------

// TokenType represents the type of a token. Keyword token types are named
// for the canonical keyword, never for a particular language's spelling.
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenNewline

	// Literals
	TokenNumber     // 42
	TokenString     // "hello"
	TokenIdentifier // foo, Bar

	// Operators
	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenPercent // %
	TokenAssign  // =
	TokenEq      // ==
	TokenNe      // !=
	TokenLt      // <
	TokenLe      // <=
	TokenGt      // >
	TokenGe      // >=

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenSemicolon // ;
	TokenComma     // ,
	TokenDot       // .
	TokenColon     // :

	// Canonical keywords. The spelling that produced one of these depends
	// on the active spelling table; the type does not.
	TokenIf
	TokenElse
	TokenWhile
	TokenFor
	TokenFunction
	TokenReturn
	TokenVar
	TokenPrint
	TokenInput
	TokenTrue
	TokenFalse
	TokenAnd
	TokenOr
	TokenNot
	TokenBreak
	TokenContinue
	TokenClass
	TokenImport
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenNewline:    "NEWLINE",
	TokenNumber:     "NUMBER",
	TokenString:     "STRING",
	TokenIdentifier: "IDENTIFIER",
	TokenPlus:       "+",
	TokenMinus:      "-",
	TokenStar:       "*",
	TokenSlash:      "/",
	TokenPercent:    "%",
	TokenAssign:     "=",
	TokenEq:         "==",
	TokenNe:         "!=",
	TokenLt:         "<",
	TokenLe:         "<=",
	TokenGt:         ">",
	TokenGe:         ">=",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenLBrace:     "{",
	TokenRBrace:     "}",
	TokenLBracket:   "[",
	TokenRBracket:   "]",
	TokenSemicolon:  ";",
	TokenComma:      ",",
	TokenDot:        ".",
	TokenColon:      ":",
	TokenIf:         "IF",
	TokenElse:       "ELSE",
	TokenWhile:      "WHILE",
	TokenFor:        "FOR",
	TokenFunction:   "FUNCTION",
	TokenReturn:     "RETURN",
	TokenVar:        "VAR",
	TokenPrint:      "PRINT",
	TokenInput:      "INPUT",
	TokenTrue:       "TRUE",
	TokenFalse:      "FALSE",
	TokenAnd:        "AND",
	TokenOr:         "OR",
	TokenNot:        "NOT",
	TokenBreak:      "BREAK",
	TokenContinue:   "CONTINUE",
	TokenClass:      "CLASS",
	TokenImport:     "IMPORT",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

// keywordTypes maps canonical keyword names, as they appear in a spelling
// table, to their token types.
var keywordTypes = map[string]TokenType{
	"if":       TokenIf,
	"else":     TokenElse,
	"while":    TokenWhile,
	"for":      TokenFor,
	"function": TokenFunction,
	"return":   TokenReturn,
	"var":      TokenVar,
	"print":    TokenPrint,
	"input":    TokenInput,
	"true":     TokenTrue,
	"false":    TokenFalse,
	"and":      TokenAnd,
	"or":       TokenOr,
	"not":      TokenNot,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"class":    TokenClass,
	"import":   TokenImport,
}

// KeywordType returns the token type for a canonical keyword name.
func KeywordType(canonical string) (TokenType, bool) {
	t, ok := keywordTypes[canonical]
	return t, ok
}

// IsKeywordType reports whether t is one of the canonical keyword types.
func (t TokenType) IsKeywordType() bool {
	return t >= TokenIf && t <= TokenImport
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string // the raw text, quotes stripped for strings
	Line    int    // 1-based source line
	Offset  int    // byte offset of the token's first character
	Column  int    // 1-based column, used for block extent
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenNewline:
		return "NEWLINE"
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%s(%q...)", t.Type, t.Literal[:20])
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}
