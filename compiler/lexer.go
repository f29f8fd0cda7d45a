package compiler

import (
	"unicode"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: spelling-table driven tokenizer
// ---------------------------------------------------------------------------

// Diagnostic records an unrecognized character the lexer skipped. Lexing
// never aborts on a bad character; callers decide whether diagnostics are
// worth reporting.
type Diagnostic struct {
	Char rune
	Line int
}

// Lexer tokenizes source code. Keyword recognition is driven entirely by
// the spelling map supplied at construction, so the same lexer code serves
// every configured language.
type Lexer struct {
	input     string
	spellings map[string]string // localized spelling -> canonical keyword

	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current character
	line    int  // current line (1-based)
	col     int  // current column (1-based)

	diags []Diagnostic
}

// NewLexer creates a lexer for the given input. spellings maps localized
// keyword spellings to canonical keyword names (see lang.Registry.Reverse).
func NewLexer(input string, spellings map[string]string) *Lexer {
	l := &Lexer{
		input:     input,
		spellings: spellings,
		line:      1,
	}
	l.readChar()
	l.col = 1
	return l
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
	l.col++
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// Diagnostics returns the unrecognized characters seen so far.
func (l *Lexer) Diagnostics() []Diagnostic {
	return l.diags
}

// token builds a token at the current position.
func (l *Lexer) token(t TokenType, literal string) Token {
	return Token{Type: t, Literal: literal, Line: l.line, Offset: l.pos, Column: l.col}
}

// NextToken returns the next token. Newline runs collapse to a single
// NEWLINE token; the line counter advances by the number of newlines
// consumed.
func (l *Lexer) NextToken() Token {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}

		tok := l.token(TokenEOF, "")

		switch {
		case l.ch == 0:
			return tok

		case l.ch == '\n':
			tok.Type = TokenNewline
			tok.Literal = "\n"
			for l.ch == '\n' {
				l.line++
				l.readChar()
				for l.ch == '\r' {
					l.readChar()
				}
			}
			l.col = 1
			if l.ch != 0 && l.pos > 0 {
				// Column of the first character on the new line.
				l.col = l.columnAt(l.pos)
			}
			return tok

		case l.ch == '+':
			l.readChar()
			tok.Type, tok.Literal = TokenPlus, "+"
			return tok

		case l.ch == '-':
			l.readChar()
			tok.Type, tok.Literal = TokenMinus, "-"
			return tok

		case l.ch == '*':
			l.readChar()
			tok.Type, tok.Literal = TokenStar, "*"
			return tok

		case l.ch == '/':
			l.readChar()
			tok.Type, tok.Literal = TokenSlash, "/"
			return tok

		case l.ch == '%':
			l.readChar()
			tok.Type, tok.Literal = TokenPercent, "%"
			return tok

		case l.ch == '=':
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				tok.Type, tok.Literal = TokenEq, "=="
				return tok
			}
			tok.Type, tok.Literal = TokenAssign, "="
			return tok

		case l.ch == '!':
			if l.peekChar() == '=' {
				l.readChar()
				l.readChar()
				tok.Type, tok.Literal = TokenNe, "!="
				return tok
			}
			l.diags = append(l.diags, Diagnostic{Char: '!', Line: l.line})
			l.readChar()
			continue

		case l.ch == '<':
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				tok.Type, tok.Literal = TokenLe, "<="
				return tok
			}
			tok.Type, tok.Literal = TokenLt, "<"
			return tok

		case l.ch == '>':
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				tok.Type, tok.Literal = TokenGe, ">="
				return tok
			}
			tok.Type, tok.Literal = TokenGt, ">"
			return tok

		case l.ch == '(':
			l.readChar()
			tok.Type, tok.Literal = TokenLParen, "("
			return tok

		case l.ch == ')':
			l.readChar()
			tok.Type, tok.Literal = TokenRParen, ")"
			return tok

		case l.ch == '{':
			l.readChar()
			tok.Type, tok.Literal = TokenLBrace, "{"
			return tok

		case l.ch == '}':
			l.readChar()
			tok.Type, tok.Literal = TokenRBrace, "}"
			return tok

		case l.ch == '[':
			l.readChar()
			tok.Type, tok.Literal = TokenLBracket, "["
			return tok

		case l.ch == ']':
			l.readChar()
			tok.Type, tok.Literal = TokenRBracket, "]"
			return tok

		case l.ch == ';':
			l.readChar()
			tok.Type, tok.Literal = TokenSemicolon, ";"
			return tok

		case l.ch == ',':
			l.readChar()
			tok.Type, tok.Literal = TokenComma, ","
			return tok

		case l.ch == '.':
			l.readChar()
			tok.Type, tok.Literal = TokenDot, "."
			return tok

		case l.ch == ':':
			l.readChar()
			tok.Type, tok.Literal = TokenColon, ":"
			return tok

		case l.ch == '"':
			str, ok := l.readString()
			if !ok {
				continue
			}
			tok.Type, tok.Literal = TokenString, str
			return tok

		case isDigit(l.ch):
			tok.Type, tok.Literal = TokenNumber, l.readNumber()
			return tok

		case isLetter(l.ch) || l.ch == '_':
			lit := l.readIdentifier()
			tok.Literal = lit
			tok.Type = TokenIdentifier
			if canonical, ok := l.spellings[lit]; ok {
				if kt, ok := KeywordType(canonical); ok {
					tok.Type = kt
				}
			}
			return tok

		default:
			l.diags = append(l.diags, Diagnostic{Char: l.ch, Line: l.line})
			l.readChar()
			continue
		}
	}
}

// columnAt computes the 1-based column of a byte offset by scanning back to
// the previous newline. Only called once per line, after a newline run.
func (l *Lexer) columnAt(offset int) int {
	start := offset
	for start > 0 && l.input[start-1] != '\n' {
		start--
	}
	col := 1
	for i := start; i < offset; {
		_, size := utf8.DecodeRuneInString(l.input[i:])
		i += size
		col++
	}
	return col
}

// readString reads a double-quoted string literal. Backslash-escaped
// characters are kept verbatim; the escape only prevents a quote from
// terminating the string. Returns ok=false for an unterminated string, in
// which case the opening quote is recorded as a diagnostic and scanning
// resumes after it.
func (l *Lexer) readString() (string, bool) {
	openLine := l.line
	start := l.pos
	l.readChar() // consume opening "

	for l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 || l.ch == '\n' {
				break
			}
			l.readChar()
			continue
		}
		if l.ch == '"' {
			value := l.input[start+1 : l.pos]
			l.readChar() // consume closing "
			return value, true
		}
		l.readChar()
	}

	// Unterminated: degrade like any other unrecognized character.
	l.diags = append(l.diags, Diagnostic{Char: '"', Line: openLine})
	l.resetTo(start + 1)
	return "", false
}

// resetTo rewinds the lexer to the given byte offset.
func (l *Lexer) resetTo(offset int) {
	l.readPos = offset
	l.col = l.columnAt(offset) - 1
	l.readChar()
}

// readNumber reads a maximal run of digits. The unary minus is a separate
// operator, never folded into the literal.
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readIdentifier reads a letter/underscore followed by letters, digits and
// underscores.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Tokenize scans the whole input and returns the tokens it could produce
// plus any diagnostics for characters it had to skip. The final token is
// always EOF.
func Tokenize(input string, spellings map[string]string) ([]Token, []Diagnostic) {
	l := NewLexer(input, spellings)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens, l.Diagnostics()
}
