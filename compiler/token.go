package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Token types for the B-Minor lexer
// ---------------------------------------------------------------------------

// TokenType represents the type of a token.
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenIntLiteral    // 42
	TokenCharLiteral   // 'a', '\n'
	TokenStringLiteral // "hello"
	TokenIdentifier    // foo, _bar

	// Type keywords
	TokenArray
	TokenBoolean
	TokenChar
	TokenFunction
	TokenInteger
	TokenString
	TokenVoid

	// Control keywords
	TokenElse
	TokenFor
	TokenIf
	TokenPrint
	TokenReturn

	// Boolean literals
	TokenTrue
	TokenFalse

	// Operators
	TokenAssign    // =
	TokenEq        // ==
	TokenNotEq     // !=
	TokenLess      // <
	TokenLessEq    // <=
	TokenGreater   // >
	TokenGreaterEq // >=
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenCaret     // ^
	TokenBang      // !
	TokenAnd       // &&
	TokenOr        // ||
	TokenIncrement // ++
	TokenDecrement // --

	// Punctuation
	TokenLParen    // (
	TokenRParen    // )
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenLBrace    // {
	TokenRBrace    // }
	TokenComma     // ,
	TokenColon     // :
	TokenSemicolon // ;
)

var tokenNames = map[TokenType]string{
	TokenEOF:           "EOF",
	TokenError:         "ERROR",
	TokenIntLiteral:    "INTEGER_LITERAL",
	TokenCharLiteral:   "CHAR_LITERAL",
	TokenStringLiteral: "STRING_LITERAL",
	TokenIdentifier:    "IDENTIFIER",
	TokenArray:         "array",
	TokenBoolean:       "boolean",
	TokenChar:          "char",
	TokenFunction:      "function",
	TokenInteger:       "integer",
	TokenString:        "string",
	TokenVoid:          "void",
	TokenElse:          "else",
	TokenFor:           "for",
	TokenIf:            "if",
	TokenPrint:         "print",
	TokenReturn:        "return",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenAssign:        "=",
	TokenEq:            "==",
	TokenNotEq:         "!=",
	TokenLess:          "<",
	TokenLessEq:        "<=",
	TokenGreater:       ">",
	TokenGreaterEq:     ">=",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenCaret:         "^",
	TokenBang:          "!",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenComma:         ",",
	TokenColon:         ":",
	TokenSemicolon:     ";",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", int(t))
}

// Token represents a lexical token. Lexeme is always the exact source
// substring the token was scanned from; decoded literal values are stored
// separately (Int for integer literals, Text for char/string bodies with
// escapes resolved).
type Token struct {
	Type   TokenType
	Lexeme string
	Text   string // decoded value for char/string literals
	Int    int64  // decoded value for integer literals
	Pos    Position
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	if t.Type == TokenError {
		return fmt.Sprintf("ERROR(%s)", t.Lexeme)
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Lexeme)
}

// Reserved words mapped to their token types.
var reservedWords = map[string]TokenType{
	"array":    TokenArray,
	"boolean":  TokenBoolean,
	"char":     TokenChar,
	"else":     TokenElse,
	"false":    TokenFalse,
	"for":      TokenFor,
	"function": TokenFunction,
	"if":       TokenIf,
	"integer":  TokenInteger,
	"print":    TokenPrint,
	"return":   TokenReturn,
	"string":   TokenString,
	"true":     TokenTrue,
	"void":     TokenVoid,
}
