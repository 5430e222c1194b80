package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"vline/vline"
)

const version = "vline 0.1.0"

var blockOpeners = map[string]bool{
	"fn": true, "while": true, "for": true, "if": true, "class": true,
}

func main() {
	inPath := flag.String("in", "", "redirect stdin from a file")
	outPath := flag.String("out", "", "redirect stdout to a file")
	depth := flag.Int("depth", vline.DefaultMaxDepth, "maximum frame-stack depth")
	flag.Parse()

	stdin, stdout := os.Stdin, os.Stdout

	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open --in file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		stdin = f
	}
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open --out file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		stdout = f
	}
	os.Stdin = stdin

	args := flag.Args()
	if len(args) == 0 {
		runREPL(stdout, *depth)
		return
	}

	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading file: %s\n", err)
		os.Exit(1)
	}

	loader := vline.NewFileSourceLoader(dirOf(path))
	if _, runErr := vline.RunSource(path, string(source), loader, *depth); runErr != nil {
		printError(os.Stderr, runErr)
		os.Exit(1)
	}
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}

func printError(w io.Writer, err error) {
	msg := err.Error()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		msg = termenv.String(msg).Foreground(termenv.ANSIRed).String()
	}
	fmt.Fprintln(w, msg)
}

func runREPL(stdout *os.File, depth int) {
	fmt.Fprintln(stdout, version)
	scanner := bufio.NewScanner(os.Stdin)

	loader := vline.NewFileSourceLoader(".")

	for {
		fmt.Fprint(stdout, "\n>>> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch trimmed {
		case "quit":
			return
		case "__version__":
			fmt.Fprintln(stdout, version)
			continue
		case "":
			continue
		}

		var lines []string
		lines = append(lines, line)

		if needsContinuation(trimmed) {
			for {
				fmt.Fprint(stdout, "... ")
				if !scanner.Scan() {
					return
				}
				next := scanner.Text()
				if strings.TrimSpace(next) == "end" {
					lines = append(lines, next)
					break
				}
				lines = append(lines, next)
			}
		}

		source := strings.Join(lines, "\n")
		result, err := vline.RunSource("<repl>", source, loader, depth)
		if err != nil {
			printError(stdout, err)
			continue
		}
		if result.Kind != vline.KindNull {
			fmt.Fprintln(stdout, result.Repr())
		}
	}
}

// needsContinuation reports whether the first token on line is a
// block-opening keyword (the REPL's continuation rule).
func needsContinuation(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	return blockOpeners[fields[0]]
}
