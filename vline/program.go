package vline

import (
	"fmt"
	"strings"
)

// Program bundles a fully compiled unit: its resolved bytecode plus
// the function/class/constant tables CodeGen produced alongside it,
// ready to hand to a VM.
type Program struct {
	Bytecode  BytecodeProgram
	Functions map[string]*FunctionDeclaration
	Classes   map[string]*ClassDeclaration
	Constants map[string]Value
}

// Compile lexes, parses, and code-generates source in one pass,
// returning a Program ready to Run. loader resolves `import`
// statements; pass nil to disallow imports.
func Compile(fileName, source string, loader SourceLoader) (*Program, error) {
	lexer := NewLexer(fileName, source)
	tokens, lexErr := lexer.Tokenize()
	if lexErr != nil {
		return nil, lexErr
	}

	parser := NewParser(tokens)
	block := parser.Parse()
	if block.IsErr() {
		return nil, block.Err
	}

	gen := NewCodeGen(loader)
	bytecode, err := gen.Generate(block.Value.Statements)
	if err != nil {
		return nil, err
	}

	return &Program{
		Bytecode:  bytecode,
		Functions: gen.Functions,
		Classes:   gen.Classes,
		Constants: gen.Constants,
	}, nil
}

// RunSource compiles and immediately runs source against a fresh VM
// configured with the reference builtin set, returning the top-level
// program's return value.
func RunSource(fileName, source string, loader SourceLoader, maxDepth int) (Value, error) {
	program, err := Compile(fileName, source, loader)
	if err != nil {
		return Null, err
	}
	vm := NewVM(program.Functions, program.Classes, program.Constants)
	if maxDepth > 0 {
		vm.MaxDepth = maxDepth
	}
	RegisterBuiltins(vm)
	return vm.Run(program.Bytecode)
}

// Disassemble renders a bytecode program as a human-readable listing,
// one instruction per line.
func Disassemble(program BytecodeProgram) string {
	var b strings.Builder
	for i, instr := range program {
		fmt.Fprintf(&b, "%04d %s\n", i, instr.String())
	}
	return b.String()
}
