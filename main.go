package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kr/pretty"

	"go.creack.net/slang/dialect"
	"go.creack.net/slang/executor"
	"go.creack.net/slang/lexer"
	"go.creack.net/slang/slang"
)

var errUsage = errors.New("usage")

func loadDialect(name, filename string) (*dialect.Dialect, error) {
	if filename != "" {
		return dialect.LoadFile(filename)
	}
	return dialect.Load(name)
}

func readProgram(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		buf, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(buf), nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read program: %w", err)
	}
	return string(buf), nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("slang", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dialectName := fs.String("dialect", dialect.Default, "keyword dialect: "+strings.Join(dialect.Names(), ", "))
	dialectFile := fs.String("dialect-file", "", "load the dialect from a YAML table instead")
	mode := fs.String("mode", "run", "run, compile, tokens or ast")
	output := fs.String("o", "", "write the compiled program to this file")
	verbose := fs.Bool("v", false, "trace execution to stderr")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: slang [options] [file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return errUsage
	}

	d, err := loadDialect(*dialectName, *dialectFile)
	if err != nil {
		return err
	}
	text, err := readProgram(fs.Arg(0), stdin)
	if err != nil {
		return err
	}

	switch *mode {
	case "run":
		var opts []executor.Option
		if *verbose {
			opts = append(opts, executor.WithLogger(log.New(stderr, "trace: ", 0)))
		}
		return slang.Run(strings.NewReader(text), stdout, d, opts...)

	case "compile":
		src, err := slang.CompileToSource(text, d)
		if err != nil {
			return err
		}
		if *output == "" {
			_, err = io.WriteString(stdout, src)
			return err
		}
		if err := os.WriteFile(*output, []byte(src), 0o644); err != nil {
			return fmt.Errorf("write %q: %w", *output, err)
		}
		return nil

	case "tokens":
		for _, tok := range lexer.New(text, d).All() {
			if tok.Type == lexer.TokError {
				return fmt.Errorf("lex %d:%d: %s", tok.Line, tok.Col, tok.Value)
			}
			fmt.Fprintln(stdout, tok)
		}
		return nil

	case "ast":
		stmts, err := slang.Compile(text, d)
		if err != nil {
			return err
		}
		for _, s := range stmts {
			fmt.Fprintf(stdout, "%# v\n", pretty.Formatter(s))
		}
		return nil

	default:
		fs.Usage()
		return fmt.Errorf("%w: unknown mode %q", errUsage, *mode)
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("slang: ")

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			if err != errUsage {
				log.Print(err)
			}
			os.Exit(2)
		}
		log.Fatalf("Fail: %s.", err)
	}
}
