package compiler

import "fmt"

// LexError reports a lexical error: an unknown character, an unterminated
// literal or comment, an invalid escape sequence, or integer overflow.
// Pos is the position the offending lexeme started at.
type LexError struct {
	Msg string
	Pos Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Msg, e.Pos.Line, e.Pos.Column)
}

// ParseError reports the first malformed construct the parser encountered:
// what was expected, the token actually found, and its position.
type ParseError struct {
	Expected string
	Found    Token
	Pos      Position
}

func (e *ParseError) Error() string {
	found := fmt.Sprintf("'%s'", e.Found.Lexeme)
	if e.Found.Type == TokenEOF {
		found = "end of input"
	}
	return fmt.Sprintf("expected %s, found %s at %d:%d", e.Expected, found, e.Pos.Line, e.Pos.Column)
}
