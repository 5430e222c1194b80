package vline

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// RegisterBuiltins installs the reference host function set on vm,
// grounded on the original std/ modules (general, maths, sys). A
// caller embedding the VM elsewhere is free to register a different
// set instead, per spec.md §4.7's opaque host-function contract.
func RegisterBuiltins(vm *VM) {
	if vm.Stdout == nil {
		vm.Stdout = os.Stdout
	}
	vm.Host["print"] = builtinPrint
	vm.Host["input"] = builtinInput
	vm.Host["len"] = builtinLen
	vm.Host["type"] = builtinType
	vm.Host["range"] = builtinRange
	vm.Host["sleep"] = builtinSleep
	vm.Host["system"] = builtinSystem
	vm.Host["exit"] = builtinExit
	vm.Host["read"] = builtinRead
	vm.Host["write"] = builtinWrite
	vm.Host["time"] = builtinTime
	vm.Host["append"] = builtinAppend
	vm.Host["erase"] = builtinErase
	vm.Host["insert"] = builtinInsert
	vm.Host["floor"] = builtinFloor
	vm.Host["ceil"] = builtinCeil
	vm.Host["abs"] = builtinAbs
	vm.Host["pow"] = builtinPow
	vm.Host["round"] = builtinRound
	vm.Host["sqrt"] = builtinSqrt
	vm.Host["list"] = builtinListConv
	vm.Host["str"] = builtinStrConv
	vm.Host["number"] = builtinNumberConv
	vm.Host["__raise__"] = builtinRaise
}

// BuiltinNames lists the user-facing host functions RegisterBuiltins
// installs (the internal __raise__ hook is not listed), used by the LSP
// server's completion list and the doc generator.
var BuiltinNames = []string{
	"print", "input", "len", "type", "range", "sleep", "system", "exit",
	"read", "write", "time", "append", "erase", "insert", "floor",
	"ceil", "abs", "pow", "round", "sqrt", "list", "str", "number",
}

func checkArgCount(fn string, expected int, args []Value) error {
	if len(args) != expected {
		return NewTypeError(fmt.Sprintf("%s() expects %d argument(s), got %d", fn, expected, len(args)))
	}
	return nil
}

func builtinPrint(vm *VM, args []Value) (Value, error) {
	for _, a := range args {
		fmt.Fprint(vm.Stdout, a.String())
	}
	fmt.Fprintln(vm.Stdout)
	return Null, nil
}

func builtinInput(vm *VM, args []Value) (Value, error) {
	if len(args) > 0 {
		fmt.Fprint(vm.Stdout, args[0].String())
	}
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return NewString(line), nil
}

func builtinLen(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("len", 1, args); err != nil {
		return Null, err
	}
	switch args[0].Kind {
	case KindString:
		return NewNumber(NewBigNumInt(int64(len(args[0].Str)))), nil
	case KindList:
		return NewNumber(NewBigNumInt(int64(len(args[0].List)))), nil
	default:
		return Null, NewTypeError("len() expects a string or list")
	}
}

func builtinType(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("type", 1, args); err != nil {
		return Null, err
	}
	return NewString(args[0].TypeName()), nil
}

func builtinRange(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("range", 2, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindNumber || args[1].Kind != KindNumber {
		return Null, NewTypeError("range() expects numbers")
	}
	start, end := args[0].Number.Int64(), args[1].Number.Int64()
	items := make([]Value, 0)
	for i := start; i < end; i++ {
		items = append(items, NewNumber(NewBigNumInt(i)))
	}
	return NewList(items), nil
}

func builtinSleep(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("sleep", 1, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindNumber {
		return Null, NewTypeError("sleep() expects a number")
	}
	time.Sleep(time.Duration(args[0].Number.Int64()) * time.Millisecond)
	return Null, nil
}

func builtinSystem(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("system", 1, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindString {
		return Null, NewTypeError("system() expects a string")
	}
	cmd := exec.Command("sh", "-c", args[0].Str)
	cmd.Stdout, cmd.Stderr, cmd.Stdin = vm.Stdout, os.Stderr, os.Stdin
	code := 0
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}
	return NewNumber(NewBigNumInt(int64(code))), nil
}

func builtinExit(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("exit", 1, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindNumber {
		return Null, NewTypeError("exit() expects a number")
	}
	os.Exit(int(args[0].Number.Int64()))
	return Null, nil
}

func builtinRead(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("read", 1, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindString {
		return Null, NewTypeError("read() expects a string")
	}
	data, err := os.ReadFile(args[0].Str)
	if err != nil {
		return Null, NewIOError(fmt.Sprintf("could not open file: %s", args[0].Str))
	}
	return NewString(string(data)), nil
}

func builtinWrite(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("write", 2, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindString || args[1].Kind != KindString {
		return Null, NewTypeError("write() expects two strings")
	}
	if err := os.WriteFile(args[0].Str, []byte(args[1].Str), 0o644); err != nil {
		return Null, NewIOError(fmt.Sprintf("could not open file: %s", args[0].Str))
	}
	return Null, nil
}

func builtinTime(vm *VM, args []Value) (Value, error) {
	return NewNumber(NewBigNumInt(time.Now().Unix())), nil
}

func builtinAppend(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("append", 2, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindList {
		return Null, NewTypeError("append() expects a list")
	}
	items := make([]Value, len(args[0].List), len(args[0].List)+1)
	copy(items, args[0].List)
	items = append(items, args[1].Clone())
	return NewList(items), nil
}

func builtinInsert(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("insert", 3, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindList {
		return Null, NewTypeError("insert() expects a list")
	}
	if args[1].Kind != KindNumber {
		return Null, NewTypeError("insert() position must be a number")
	}
	pos := int(args[1].Number.Int64())
	if pos < 0 || pos > len(args[0].List) {
		return Null, NewIndexError("position out of range in insert()")
	}
	items := make([]Value, 0, len(args[0].List)+1)
	items = append(items, args[0].List[:pos]...)
	items = append(items, args[2].Clone())
	items = append(items, args[0].List[pos:]...)
	return NewList(items), nil
}

func builtinErase(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("erase", 3, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindList {
		return Null, NewTypeError("erase() expects a list")
	}
	if args[1].Kind != KindNumber || args[2].Kind != KindNumber {
		return Null, NewTypeError("erase() range bounds must be numbers")
	}
	begin, end := int(args[1].Number.Int64()), int(args[2].Number.Int64())
	if begin < 0 || end > len(args[0].List) || begin > end {
		return Null, NewIndexError("invalid range in erase()")
	}
	items := make([]Value, 0, len(args[0].List)-(end-begin))
	items = append(items, args[0].List[:begin]...)
	items = append(items, args[0].List[end:]...)
	return NewList(items), nil
}

func builtinFloor(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("floor", 1, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindNumber {
		return Null, NewTypeError("floor() expects a number")
	}
	return NewNumber(args[0].Number.Trunc()), nil
}

func builtinCeil(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("ceil", 1, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindNumber {
		return Null, NewTypeError("ceil() expects a number")
	}
	n := args[0].Number
	t := n.Trunc()
	if t.Equal(n) || n.IsNegative() {
		return NewNumber(t), nil
	}
	return NewNumber(t.Add(NewBigNumInt(1))), nil
}

func builtinRound(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("round", 1, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindNumber {
		return Null, NewTypeError("round() expects a number")
	}
	n := args[0].Number
	t := n.Trunc()
	frac := n.Sub(t)
	half := NewBigNumString("0.5")
	if frac.Abs().Cmp(half) >= 0 {
		if n.IsNegative() {
			return NewNumber(t.Sub(NewBigNumInt(1))), nil
		}
		return NewNumber(t.Add(NewBigNumInt(1))), nil
	}
	return NewNumber(t), nil
}

func builtinAbs(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("abs", 1, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindNumber {
		return Null, NewTypeError("abs() expects a number")
	}
	return NewNumber(args[0].Number.Abs()), nil
}

func builtinSqrt(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("sqrt", 1, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindNumber {
		return Null, NewTypeError("sqrt() expects a number")
	}
	return NewNumber(args[0].Number.Sqrt()), nil
}

func builtinPow(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("pow", 2, args); err != nil {
		return Null, err
	}
	if args[0].Kind != KindNumber || args[1].Kind != KindNumber {
		return Null, NewTypeError("pow() expects two numbers")
	}
	return NewNumber(args[0].Number.Pow(args[1].Number)), nil
}

func builtinListConv(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("list", 1, args); err != nil {
		return Null, err
	}
	switch args[0].Kind {
	case KindList:
		return args[0].Clone(), nil
	case KindString:
		items := make([]Value, len(args[0].Str))
		for i, c := range []byte(args[0].Str) {
			items[i] = NewString(string(c))
		}
		return NewList(items), nil
	case KindNull:
		return NewList(nil), nil
	case KindNumber:
		return NewList([]Value{args[0]}), nil
	default:
		return Null, NewTypeError("cannot convert to list")
	}
}

func builtinStrConv(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("str", 1, args); err != nil {
		return Null, err
	}
	switch args[0].Kind {
	case KindNumber:
		return NewString(args[0].Number.String()), nil
	case KindString:
		return args[0], nil
	case KindNull:
		return NewString("null"), nil
	default:
		return Null, NewTypeError("cannot convert to string")
	}
}

func builtinNumberConv(vm *VM, args []Value) (Value, error) {
	if err := checkArgCount("number", 1, args); err != nil {
		return Null, err
	}
	switch args[0].Kind {
	case KindNumber:
		return args[0], nil
	case KindString:
		return NewNumber(NewBigNumString(args[0].Str)), nil
	case KindNull:
		return NewNumber(NewBigNumInt(0)), nil
	default:
		return Null, NewTypeError("cannot convert to number")
	}
}

func builtinRaise(vm *VM, args []Value) (Value, error) {
	msg := ""
	if len(args) > 0 {
		msg = args[0].String()
	}
	return Null, NewRuntimeError(msg)
}
