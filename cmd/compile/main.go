// Command compile reads a source file, lowers it to stack-machine assembly
// in out.vsm, and runs the result. Usage: compile <source-file> [flags].
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kr/pretty"

	"stackc/internal/ast"
	"stackc/internal/ioutil"
	"stackc/internal/lexer"
	"stackc/internal/lower"
	"stackc/internal/parser"
	"stackc/internal/vm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: compile <source-file> [--show-asm] [--dump-ast] [--trace]")
		os.Exit(1)
	}
	filename := os.Args[1]

	var showAsm, dumpAST, trace bool
	for _, arg := range os.Args[2:] {
		switch arg {
		case "--show-asm":
			showAsm = true
		case "--dump-ast":
			dumpAST = true
		case "--trace":
			trace = true
		}
	}

	fullPath, _, err := ioutil.ResolvePath(filename)
	if err != nil {
		log.Fatalf("resolving %s: %v", filename, err)
	}
	srcBytes, err := os.ReadFile(fullPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile: cannot open %s: %v\n", fullPath, err)
		os.Exit(1)
	}
	src := string(srcBytes)

	prog, err := compile(src, dumpAST)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile: %v\n", err)
		os.Exit(1)
	}

	var out strings.Builder
	if err := lower.Program(prog, &out); err != nil {
		fmt.Fprintf(os.Stderr, "compile: lowering: %v\n", err)
		os.Exit(1)
	}
	asm := out.String()

	if showAsm {
		fmt.Fprintln(os.Stderr, "; generated assembly")
		fmt.Fprint(os.Stderr, asm)
	}

	if err := os.WriteFile("out.vsm", []byte(asm), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "compile: writing out.vsm: %v\n", err)
		os.Exit(1)
	}

	m := vm.NewStdio()
	if err := m.Load(strings.NewReader(asm)); err != nil {
		fmt.Fprintf(os.Stderr, "compile: loading out.vsm: %v\n", err)
		os.Exit(1)
	}
	if trace {
		m.Trace(os.Stderr)
	}
	os.Exit(m.Run())
}

func compile(src string, dumpAST bool) (*ast.Program, error) {
	tokens, err := lexer.Lex(src)
	if err != nil {
		return nil, fmt.Errorf("lexing: %w", err)
	}
	prog, err := parser.Parse(tokens, src)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	if dumpAST {
		pretty.Println(prog)
	}
	return prog, nil
}
