package compiler

import (
	"errors"
	"strings"
	"testing"
)

func TestLexerBasicTokens(t *testing.T) {
	input := `( ) [ ] { } , : ; = + - * / % ^ !`
	expected := []struct {
		typ TokenType
		lex string
	}{
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenLBracket, "["},
		{TokenRBracket, "]"},
		{TokenLBrace, "{"},
		{TokenRBrace, "}"},
		{TokenComma, ","},
		{TokenColon, ":"},
		{TokenSemicolon, ";"},
		{TokenAssign, "="},
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenStar, "*"},
		{TokenSlash, "/"},
		{TokenPercent, "%"},
		{TokenCaret, "^"},
		{TokenBang, "!"},
		{TokenEOF, ""},
	}

	l := NewLexer(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Errorf("token[%d] type = %v, want %v", i, tok.Type, exp.typ)
		}
		if tok.Lexeme != exp.lex {
			t.Errorf("token[%d] lexeme = %q, want %q", i, tok.Lexeme, exp.lex)
		}
	}
}

func TestLexerCompoundOperators(t *testing.T) {
	input := `== != <= >= < > && || ++ --`
	expected := []TokenType{
		TokenEq, TokenNotEq, TokenLessEq, TokenGreaterEq,
		TokenLess, TokenGreater, TokenAnd, TokenOr,
		TokenIncrement, TokenDecrement, TokenEOF,
	}

	l := NewLexer(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Errorf("token[%d] type = %v, want %v", i, tok.Type, want)
		}
	}
}

// Maximal munch: adjacent characters that could start two operators
// always lex as the longest one.
func TestLexerMaximalMunch(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"a==b", []TokenType{TokenIdentifier, TokenEq, TokenIdentifier}},
		{"a=b", []TokenType{TokenIdentifier, TokenAssign, TokenIdentifier}},
		{"a<=b", []TokenType{TokenIdentifier, TokenLessEq, TokenIdentifier}},
		{"a<b", []TokenType{TokenIdentifier, TokenLess, TokenIdentifier}},
		{"i++", []TokenType{TokenIdentifier, TokenIncrement}},
		{"i+ +j", []TokenType{TokenIdentifier, TokenPlus, TokenPlus, TokenIdentifier}},
		{"a---b", []TokenType{TokenIdentifier, TokenDecrement, TokenMinus, TokenIdentifier}},
	}

	for _, tc := range tests {
		l := NewLexer(tc.input)
		for i, want := range tc.want {
			tok := l.NextToken()
			if tok.Type != want {
				t.Errorf("Lexer(%q): token[%d] type = %v, want %v", tc.input, i, tok.Type, want)
			}
		}
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"array", TokenArray},
		{"boolean", TokenBoolean},
		{"char", TokenChar},
		{"else", TokenElse},
		{"false", TokenFalse},
		{"for", TokenFor},
		{"function", TokenFunction},
		{"if", TokenIf},
		{"integer", TokenInteger},
		{"print", TokenPrint},
		{"return", TokenReturn},
		{"string", TokenString},
		{"true", TokenTrue},
		{"void", TokenVoid},
	}

	for _, tc := range tests {
		l := NewLexer(tc.input)
		tok := l.NextToken()
		if tok.Type != tc.want {
			t.Errorf("Lexer(%q): type = %v, want %v", tc.input, tok.Type, tc.want)
		}
		if tok.Lexeme != tc.input {
			t.Errorf("Lexer(%q): lexeme = %q, want %q", tc.input, tok.Lexeme, tc.input)
		}
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tests := []string{"x", "foo", "fooBar", "foo_bar", "_private", "x123", "printx", "iff"}

	for _, input := range tests {
		l := NewLexer(input)
		tok := l.NextToken()
		if tok.Type != TokenIdentifier {
			t.Errorf("Lexer(%q): type = %v, want IDENTIFIER", input, tok.Type)
		}
		if tok.Lexeme != input {
			t.Errorf("Lexer(%q): lexeme = %q, want %q", input, tok.Lexeme, input)
		}
	}
}

func TestLexerIntegers(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"42", 42},
		{"1234567890", 1234567890},
		{"9223372036854775807", 9223372036854775807},
	}

	for _, tc := range tests {
		l := NewLexer(tc.input)
		tok := l.NextToken()
		if tok.Type != TokenIntLiteral {
			t.Errorf("Lexer(%q): type = %v, want INTEGER_LITERAL", tc.input, tok.Type)
		}
		if tok.Int != tc.want {
			t.Errorf("Lexer(%q): value = %d, want %d", tc.input, tok.Int, tc.want)
		}
	}
}

func TestLexerIntegerOverflow(t *testing.T) {
	_, err := Tokenize("9223372036854775808")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("Tokenize overflow: err = %v, want *LexError", err)
	}
	if !strings.Contains(lexErr.Msg, "overflow") {
		t.Errorf("overflow message = %q, want mention of overflow", lexErr.Msg)
	}
	if lexErr.Pos.Line != 1 || lexErr.Pos.Column != 1 {
		t.Errorf("overflow position = %d:%d, want 1:1", lexErr.Pos.Line, lexErr.Pos.Column)
	}
}

func TestLexerCharLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`'a'`, "a"},
		{`'Z'`, "Z"},
		{`' '`, " "},
		{`'\n'`, "\n"},
		{`'\t'`, "\t"},
		{`'\\'`, "\\"},
		{`'\''`, "'"},
		{`'\"'`, "\""},
		{`'\0'`, "\x00"},
	}

	for _, tc := range tests {
		l := NewLexer(tc.input)
		tok := l.NextToken()
		if tok.Type != TokenCharLiteral {
			t.Errorf("Lexer(%q): type = %v, want CHAR_LITERAL", tc.input, tok.Type)
			continue
		}
		if tok.Text != tc.want {
			t.Errorf("Lexer(%q): decoded = %q, want %q", tc.input, tok.Text, tc.want)
		}
		if tok.Lexeme != tc.input {
			t.Errorf("Lexer(%q): lexeme = %q, want %q", tc.input, tok.Lexeme, tc.input)
		}
	}
}

func TestLexerStringLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`""`, ""},
		{`"hello"`, "hello"},
		{`"hello world"`, "hello world"},
		{`"line\n"`, "line\n"},
		{`"tab\there"`, "tab\there"},
		{`"quote\""`, "quote\""},
		{`"back\\slash"`, "back\\slash"},
		{`"nul\0"`, "nul\x00"},
	}

	for _, tc := range tests {
		l := NewLexer(tc.input)
		tok := l.NextToken()
		if tok.Type != TokenStringLiteral {
			t.Errorf("Lexer(%q): type = %v, want STRING_LITERAL", tc.input, tok.Type)
			continue
		}
		if tok.Text != tc.want {
			t.Errorf("Lexer(%q): decoded = %q, want %q", tc.input, tok.Text, tc.want)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string
	}{
		{"@", "unexpected character '@'"},
		{"x & y", "unexpected character '&'"},
		{"x | y", "unexpected character '|'"},
		{"'", "unterminated character literal"},
		{"'a", "unterminated character literal"},
		{"''", "empty character literal"},
		{`'\q'`, `invalid escape sequence '\q'`},
		{`"oops`, "unterminated string literal"},
		{"\"line\nbreak\"", "unterminated string literal"},
		{`"bad\q"`, `invalid escape sequence '\q'`},
		{"/* never closed", "unterminated block comment"},
	}

	for _, tc := range tests {
		_, err := Tokenize(tc.input)
		var lexErr *LexError
		if !errors.As(err, &lexErr) {
			t.Errorf("Tokenize(%q): err = %v, want *LexError", tc.input, err)
			continue
		}
		if lexErr.Msg != tc.wantMsg {
			t.Errorf("Tokenize(%q): msg = %q, want %q", tc.input, lexErr.Msg, tc.wantMsg)
		}
	}
}

func TestLexerComments(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"// just a comment", []TokenType{TokenEOF}},
		{"x // trailing\ny", []TokenType{TokenIdentifier, TokenIdentifier, TokenEOF}},
		{"/* block */ x", []TokenType{TokenIdentifier, TokenEOF}},
		{"a /* multi\nline */ b", []TokenType{TokenIdentifier, TokenIdentifier, TokenEOF}},
		{"a /* stars *** */ b", []TokenType{TokenIdentifier, TokenIdentifier, TokenEOF}},
		{"1 /2", []TokenType{TokenIntLiteral, TokenSlash, TokenIntLiteral, TokenEOF}},
	}

	for _, tc := range tests {
		l := NewLexer(tc.input)
		for i, want := range tc.want {
			tok := l.NextToken()
			if tok.Type != want {
				t.Errorf("Lexer(%q): token[%d] type = %v, want %v", tc.input, i, tok.Type, want)
			}
		}
	}
}

func TestLexerPositions(t *testing.T) {
	input := "x: integer;\ny: boolean;"
	expected := []struct {
		typ  TokenType
		line int
		col  int
	}{
		{TokenIdentifier, 1, 1},
		{TokenColon, 1, 2},
		{TokenInteger, 1, 4},
		{TokenSemicolon, 1, 11},
		{TokenIdentifier, 2, 1},
		{TokenColon, 2, 2},
		{TokenBoolean, 2, 4},
		{TokenSemicolon, 2, 11},
		{TokenEOF, 2, 12},
	}

	l := NewLexer(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Errorf("token[%d] type = %v, want %v", i, tok.Type, exp.typ)
		}
		if tok.Pos.Line != exp.line || tok.Pos.Column != exp.col {
			t.Errorf("token[%d] position = %d:%d, want %d:%d",
				i, tok.Pos.Line, tok.Pos.Column, exp.line, exp.col)
		}
	}
}

func TestLexerErrorPosition(t *testing.T) {
	_, err := Tokenize("x: integer;\n   @")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("Tokenize: err = %v, want *LexError", err)
	}
	if lexErr.Pos.Line != 2 || lexErr.Pos.Column != 4 {
		t.Errorf("error position = %d:%d, want 2:4", lexErr.Pos.Line, lexErr.Pos.Column)
	}
}

// Offsets let a caller slice the original source; the lexeme of every
// token must be exactly the bytes it covers.
func TestLexerOffsetsMatchLexemes(t *testing.T) {
	input := "main: function integer () = {\n\tprint \"hi\\n\", 'x', 1 + 2;\n\treturn 0;\n}\n"
	toks, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	prevOffset := -1
	for i, tok := range toks {
		if tok.Pos.Offset < prevOffset {
			t.Errorf("token[%d] offset %d before previous %d", i, tok.Pos.Offset, prevOffset)
		}
		prevOffset = tok.Pos.Offset
		if tok.Type == TokenEOF {
			continue
		}
		end := tok.Pos.Offset + len(tok.Lexeme)
		if end > len(input) || input[tok.Pos.Offset:end] != tok.Lexeme {
			t.Errorf("token[%d] lexeme %q not at offset %d", i, tok.Lexeme, tok.Pos.Offset)
		}
	}
	if last := toks[len(toks)-1]; last.Type != TokenEOF {
		t.Errorf("last token type = %v, want EOF", last.Type)
	}
}

// After end of input, NextToken keeps returning EOF instead of looping
// or running off the buffer.
func TestLexerEOFIsSticky(t *testing.T) {
	l := NewLexer("x")
	l.NextToken()
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		if tok.Type != TokenEOF {
			t.Fatalf("NextToken after end = %v, want EOF", tok.Type)
		}
	}
}

func TestTokenizeFirstErrorOnly(t *testing.T) {
	toks, err := Tokenize("@ $ `")
	if err == nil {
		t.Fatal("Tokenize: want error, got nil")
	}
	if toks != nil {
		t.Errorf("Tokenize: tokens = %v, want nil on error", toks)
	}
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("Tokenize: err = %v, want *LexError", err)
	}
	if lexErr.Msg != "unexpected character '@'" {
		t.Errorf("first error = %q, want the '@' diagnostic", lexErr.Msg)
	}
}
