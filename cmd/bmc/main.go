// B-Minor CLI - lexes, parses and checks B-Minor source files
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/bminor-lang/bminor/compiler"
	"github.com/bminor-lang/bminor/compiler/wire"
	"github.com/bminor-lang/bminor/manifest"
)

var log = commonlog.GetLogger("bmc")

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "lex":
		err = runLex(os.Args[2:])
	case "parse":
		err = runParse(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "bmc: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: bmc <command> [options] [arguments]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  lex FILE              Tokenize a source file, one token per line\n")
	fmt.Fprintf(os.Stderr, "  parse [-format f] FILE  Parse a source file and print its syntax tree\n")
	fmt.Fprintf(os.Stderr, "  check [DIR]           Parse every source file of the project at DIR\n")
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  bmc lex main.bm\n")
	fmt.Fprintf(os.Stderr, "  bmc parse -format cbor main.bm > main.ast\n")
	fmt.Fprintf(os.Stderr, "  bmc check ./myproject\n")
}

func configureLogging(verbose bool) {
	verbosity := 0
	if verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bmc: %v\n", err)
		return "", err
	}
	return string(data), nil
}

func runLex(args []string) error {
	fs := flag.NewFlagSet("lex", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	fs.Parse(args)
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: bmc lex [-v] FILE")
		os.Exit(2)
	}
	configureLogging(*verbose)

	input, err := readSource(fs.Arg(0))
	if err != nil {
		return err
	}
	log.Infof("lexing %s (%d bytes)", fs.Arg(0), len(input))

	tokens, err := compiler.Tokenize(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lex error: %v\n", err)
		return err
	}
	for _, tok := range tokens {
		if tok.Type == compiler.TokenEOF {
			fmt.Printf("EOF %d:%d\n", tok.Pos.Line, tok.Pos.Column)
			continue
		}
		fmt.Printf("%s %s %d:%d\n", tok.Type, tok.Lexeme, tok.Pos.Line, tok.Pos.Column)
	}
	return nil
}

func runParse(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	format := fs.String("format", "text", "Output format: text or cbor")
	fs.Parse(args)
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: bmc parse [-v] [-format text|cbor] FILE")
		os.Exit(2)
	}
	if *format != "text" && *format != "cbor" {
		fmt.Fprintf(os.Stderr, "bmc: unknown format %q\n", *format)
		os.Exit(2)
	}
	configureLogging(*verbose)

	input, err := readSource(fs.Arg(0))
	if err != nil {
		return err
	}
	log.Infof("parsing %s (%d bytes)", fs.Arg(0), len(input))

	prog, err := compiler.Parse(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		return err
	}

	if *format == "cbor" {
		data, err := wire.EncodeProgram(prog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bmc: encoding syntax tree: %v\n", err)
			return err
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
		return nil
	}
	fmt.Println(compiler.Print(prog))
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	fs.Parse(args)
	dir := "."
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Usage: bmc check [-v] [DIR]")
		os.Exit(2)
	}
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}
	configureLogging(*verbose)

	m, err := manifest.FindAndLoad(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bmc: %v\n", err)
		return err
	}
	if m == nil {
		err := fmt.Errorf("no bminor.toml found at or above %s", dir)
		fmt.Fprintf(os.Stderr, "bmc: %v\n", err)
		return err
	}
	log.Infof("checking project %s at %s", m.Project.Name, m.Dir)

	files, err := m.SourceFiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bmc: %v\n", err)
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "bmc: no .bm files under %v\n", m.Source.Dirs)
		return fmt.Errorf("no source files")
	}

	failed := 0
	for _, file := range files {
		input, err := readSource(file)
		if err != nil {
			failed++
			continue
		}
		if _, err := compiler.Parse(input); err != nil {
			fmt.Fprintf(os.Stderr, "%s: parse error: %v\n", file, err)
			failed++
			continue
		}
		log.Infof("%s ok", file)
	}

	fmt.Printf("checked %d files, %d failed\n", len(files), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
