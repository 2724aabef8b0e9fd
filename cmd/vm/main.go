// Command vm loads a .vsm program and executes it. Usage: vm <program-file> [--trace].
package main

import (
	"fmt"
	"os"

	"stackc/internal/ioutil"
	"stackc/internal/vm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: vm <program-file> [--trace]")
		os.Exit(1)
	}
	filename := os.Args[1]

	trace := false
	for _, arg := range os.Args[2:] {
		if arg == "--trace" {
			trace = true
		}
	}

	fullPath, _, err := ioutil.ResolvePath(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vm: resolving %s: %v\n", filename, err)
		os.Exit(1)
	}
	f, err := os.Open(fullPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vm: cannot open %s: %v\n", fullPath, err)
		os.Exit(1)
	}
	defer f.Close()

	m := vm.NewStdio()
	if trace {
		m.Trace(os.Stderr)
	}
	if err := m.Load(f); err != nil {
		fmt.Fprintf(os.Stderr, "vm: loading %s: %v\n", fullPath, err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}
