package compiler

import (
	"path"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// TestCorpus runs the lexer and parser over the bundled program corpus.
// Programs under good/ must parse; programs under bad/ must fail with a
// positioned diagnostic.
func TestCorpus(t *testing.T) {
	archive, err := txtar.ParseFile("testdata/programs.txtar")
	if err != nil {
		t.Fatalf("loading corpus: %v", err)
	}

	for _, file := range archive.Files {
		file := file
		t.Run(file.Name, func(t *testing.T) {
			input := string(file.Data)
			switch path.Dir(file.Name) {
			case "good":
				toks, err := Tokenize(input)
				if err != nil {
					t.Fatalf("Tokenize: %v", err)
				}
				if toks[len(toks)-1].Type != TokenEOF {
					t.Error("token stream does not end with EOF")
				}
				prog, err := Parse(input)
				if err != nil {
					t.Fatalf("Parse: %v", err)
				}
				if Print(prog) != Print(prog) {
					t.Error("serialization unstable")
				}
			case "bad":
				prog, err := Parse(input)
				if err == nil {
					t.Fatalf("Parse succeeded, want error:\n%s", Print(prog))
				}
				// Every diagnostic carries a position.
				if !strings.Contains(err.Error(), " at ") {
					t.Errorf("diagnostic %q has no position", err.Error())
				}
			default:
				t.Fatalf("corpus file %s outside good/ or bad/", file.Name)
			}
		})
	}
}

// TestCorpusRoundTripLexemes checks that for every good program the
// token lexemes, spliced back at their recorded offsets, reproduce the
// source exactly (comments and whitespace fill the gaps).
func TestCorpusRoundTripLexemes(t *testing.T) {
	archive, err := txtar.ParseFile("testdata/programs.txtar")
	if err != nil {
		t.Fatalf("loading corpus: %v", err)
	}

	for _, file := range archive.Files {
		if path.Dir(file.Name) != "good" {
			continue
		}
		input := string(file.Data)
		toks, err := Tokenize(input)
		if err != nil {
			t.Fatalf("%s: Tokenize: %v", file.Name, err)
		}
		rebuilt := []byte(input)
		for _, tok := range toks {
			if tok.Type == TokenEOF {
				continue
			}
			copy(rebuilt[tok.Pos.Offset:], tok.Lexeme)
		}
		if string(rebuilt) != input {
			t.Errorf("%s: lexemes do not round-trip", file.Name)
		}
	}
}
