package compiler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: Tokenizer for B-Minor syntax
// ---------------------------------------------------------------------------

// Lexer tokenizes B-Minor source code. It is a strictly forward-only
// producer: once an EOF token has been returned, every further call
// returns EOF again.
type Lexer struct {
	input   string
	pos     int  // byte offset of current char
	readPos int  // reading position (after current char)
	ch      rune // current character
	line    int  // line of current char (1-based)
	col     int  // column of current char (1-based)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// readChar advances to the next character, tracking line and column.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
		l.pos = l.readPos
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// position returns the position of the current character.
func (l *Lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

func (l *Lexer) errorToken(pos Position, format string, args ...interface{}) Token {
	return Token{Type: TokenError, Lexeme: fmt.Sprintf(format, args...), Pos: pos}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	if errTok, ok := l.skipWhitespaceAndComments(); !ok {
		return errTok
	}

	pos := l.position()

	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, Lexeme: "", Pos: pos}

	case isLetter(l.ch) || l.ch == '_':
		return l.readIdentifierOrKeyword(pos)

	case isDigit(l.ch):
		return l.readNumber(pos)

	case l.ch == '\'':
		return l.readCharLiteral(pos)

	case l.ch == '"':
		return l.readStringLiteral(pos)

	default:
		return l.readOperator(pos)
	}
}

// skipWhitespaceAndComments skips whitespace, // line comments and
// /* */ block comments, keeping line/column tracking accurate. The
// returned token is only meaningful when ok is false (unterminated
// block comment).
func (l *Lexer) skipWhitespaceAndComments() (Token, bool) {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			pos := l.position()
			l.readChar() // consume /
			l.readChar() // consume *
			for {
				if l.ch == 0 {
					return l.errorToken(pos, "unterminated block comment"), false
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // consume *
					l.readChar() // consume /
					break
				}
				l.readChar()
			}
			continue
		}

		return Token{}, true
	}
}

// readIdentifierOrKeyword reads an identifier, looking the result up
// against the reserved word table.
func (l *Lexer) readIdentifierOrKeyword(pos Position) Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	lexeme := l.input[start:l.pos]
	if tokType, ok := reservedWords[lexeme]; ok {
		return Token{Type: tokType, Lexeme: lexeme, Pos: pos}
	}
	return Token{Type: TokenIdentifier, Lexeme: lexeme, Pos: pos}
}

// readNumber reads an integer literal. B-Minor has no floating point.
func (l *Lexer) readNumber(pos Position) Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.pos]
	value, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return l.errorToken(pos, "integer literal overflow: %s", lexeme)
	}
	return Token{Type: TokenIntLiteral, Lexeme: lexeme, Int: value, Pos: pos}
}

// readCharLiteral reads 'c' or an escaped form like '\n'.
func (l *Lexer) readCharLiteral(pos Position) Token {
	start := l.pos
	l.readChar() // consume opening '

	if l.ch == 0 || l.ch == '\n' {
		return l.errorToken(pos, "unterminated character literal")
	}
	if l.ch == '\'' {
		return l.errorToken(pos, "empty character literal")
	}

	var value rune
	if l.ch == '\\' {
		l.readChar()
		if l.ch == 0 || l.ch == '\n' {
			return l.errorToken(pos, "unterminated character literal")
		}
		decoded, ok := unescape(l.ch)
		if !ok {
			return l.errorToken(pos, "invalid escape sequence '\\%c'", l.ch)
		}
		value = decoded
		l.readChar()
	} else {
		value = l.ch
		l.readChar()
	}

	if l.ch != '\'' {
		return l.errorToken(pos, "unterminated character literal")
	}
	l.readChar() // consume closing '

	return Token{
		Type:   TokenCharLiteral,
		Lexeme: l.input[start:l.pos],
		Text:   string(value),
		Pos:    pos,
	}
}

// readStringLiteral reads "..." with escapes. Strings may not span lines.
func (l *Lexer) readStringLiteral(pos Position) Token {
	start := l.pos
	l.readChar() // consume opening "

	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return l.errorToken(pos, "unterminated string literal")
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 || l.ch == '\n' {
				return l.errorToken(pos, "unterminated string literal")
			}
			decoded, ok := unescape(l.ch)
			if !ok {
				return l.errorToken(pos, "invalid escape sequence '\\%c'", l.ch)
			}
			sb.WriteRune(decoded)
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing "

	return Token{
		Type:   TokenStringLiteral,
		Lexeme: l.input[start:l.pos],
		Text:   sb.String(),
		Pos:    pos,
	}
}

// readOperator reads operators and punctuation, longest match first.
func (l *Lexer) readOperator(pos Position) Token {
	two := func(t TokenType, lexeme string) Token {
		l.readChar()
		l.readChar()
		return Token{Type: t, Lexeme: lexeme, Pos: pos}
	}
	one := func(t TokenType, lexeme string) Token {
		l.readChar()
		return Token{Type: t, Lexeme: lexeme, Pos: pos}
	}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			return two(TokenEq, "==")
		}
		return one(TokenAssign, "=")
	case '!':
		if l.peekChar() == '=' {
			return two(TokenNotEq, "!=")
		}
		return one(TokenBang, "!")
	case '<':
		if l.peekChar() == '=' {
			return two(TokenLessEq, "<=")
		}
		return one(TokenLess, "<")
	case '>':
		if l.peekChar() == '=' {
			return two(TokenGreaterEq, ">=")
		}
		return one(TokenGreater, ">")
	case '&':
		if l.peekChar() == '&' {
			return two(TokenAnd, "&&")
		}
	case '|':
		if l.peekChar() == '|' {
			return two(TokenOr, "||")
		}
	case '+':
		if l.peekChar() == '+' {
			return two(TokenIncrement, "++")
		}
		return one(TokenPlus, "+")
	case '-':
		if l.peekChar() == '-' {
			return two(TokenDecrement, "--")
		}
		return one(TokenMinus, "-")
	case '*':
		return one(TokenStar, "*")
	case '/':
		return one(TokenSlash, "/")
	case '%':
		return one(TokenPercent, "%")
	case '^':
		return one(TokenCaret, "^")
	case '(':
		return one(TokenLParen, "(")
	case ')':
		return one(TokenRParen, ")")
	case '[':
		return one(TokenLBracket, "[")
	case ']':
		return one(TokenRBracket, "]")
	case '{':
		return one(TokenLBrace, "{")
	case '}':
		return one(TokenRBrace, "}")
	case ',':
		return one(TokenComma, ",")
	case ':':
		return one(TokenColon, ":")
	case ';':
		return one(TokenSemicolon, ";")
	}

	ch := l.ch
	l.readChar()
	return l.errorToken(pos, "unexpected character '%c'", ch)
}

func unescape(r rune) (rune, bool) {
	switch r {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	case '0':
		return 0, true
	}
	return 0, false
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Tokenize returns all tokens from the input including the terminating
// EOF token, or a *LexError describing the first lexical error.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenError {
			return nil, &LexError{Msg: tok.Lexeme, Pos: tok.Pos}
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}
