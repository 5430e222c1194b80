package vline

import (
	"fmt"
	"sort"
	"strings"
)

// ValueKind tags the payload carried by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindString
	KindList
	KindObject
)

var valueKindNames = map[ValueKind]string{
	KindNull:   "null",
	KindNumber: "number",
	KindString: "string",
	KindList:   "list",
	KindObject: "object",
}

func (k ValueKind) String() string {
	if n, ok := valueKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// FuncRef is a function handle: either a user-declared function (AST
// body + compiled bytecode) or a bound method record carrying the
// method's bare name, used only for LOAD_FUNC/STORE_MEMBER_FUNC.
type FuncRef struct {
	Name       string
	Parameters []string
	Defaults   []Expr
	Bytecode   BytecodeProgram
}

// Value is the tagged union every VM operation reads and writes. List
// and Object variants hold Go reference types internally for storage
// efficiency, but every place that assigns or passes a Value copies it
// (see Value.Clone), matching the value-copy semantics objects and
// lists are specified to have.
type Value struct {
	Kind    ValueKind
	Number  BigNum
	Str     string
	List    []Value
	Members map[string]Value
	Methods map[string]*FuncRef
}

// Null is the singleton null value.
var Null = Value{Kind: KindNull}

// NewNumber wraps a BigNum.
func NewNumber(n BigNum) Value { return Value{Kind: KindNumber, Number: n} }

// NewString wraps a Go string.
func NewString(s string) Value { return Value{Kind: KindString, Str: s} }

// NewList wraps a slice of Values, taking ownership of it.
func NewList(items []Value) Value { return Value{Kind: KindList, List: items} }

// NewObject creates a fresh object with empty member and method maps.
func NewObject() Value {
	return Value{Kind: KindObject, Members: map[string]Value{}, Methods: map[string]*FuncRef{}}
}

// Clone produces an independent deep copy, used at every assignment and
// argument-passing boundary so objects and lists behave as value types
// rather than shared references, per spec.md §3/§9.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindList:
		items := make([]Value, len(v.List))
		for i, el := range v.List {
			items[i] = el.Clone()
		}
		return Value{Kind: KindList, List: items}
	case KindObject:
		members := make(map[string]Value, len(v.Members))
		for k, val := range v.Members {
			members[k] = val.Clone()
		}
		methods := make(map[string]*FuncRef, len(v.Methods))
		for k, m := range v.Methods {
			methods[k] = m
		}
		return Value{Kind: KindObject, Members: members, Methods: methods}
	default:
		return v
	}
}

// Truthy implements the falsy rule used by JUMP_IF_FALSE (if/while/for
// conditions): Null is false; Number is false only at zero; String and
// List are false only when empty; Object is always true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindNumber:
		return !v.Number.IsZero()
	case KindString:
		return v.Str != ""
	case KindList:
		return len(v.List) > 0
	case KindObject:
		return true
	default:
		return false
	}
}

// NumericTruthy is the rule the `and`/`or` BINARY_OP uses: only a Number
// operand can contribute true, at any nonzero value; every other kind
// (including non-empty strings and lists) counts as false. This mirrors
// the original VM's BigNum-only read of its tagged operand.
func (v Value) NumericTruthy() bool {
	return v.Kind == KindNumber && !v.Number.IsZero()
}

// Equals implements same-tag structural equality; cross-type comparison
// (other than never-equal) yields false, per spec.md §4.2.
func (v Value) Equals(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindNumber:
		return v.Number.Equal(o.Number)
	case KindString:
		return v.Str == o.Str
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equals(o.List[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.Members) != len(o.Members) {
			return false
		}
		for k, val := range v.Members {
			ov, ok := o.Members[k]
			if !ok || !val.Equals(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two Values for <, <=, >, >=; both must be matching
// Number or matching String, else TypeError per spec.md §4.2.
func (v Value) Compare(o Value) (int, error) {
	if v.Kind != o.Kind || (v.Kind != KindNumber && v.Kind != KindString) {
		return 0, NewTypeError(fmt.Sprintf("cannot order %s and %s", v.Kind, o.Kind))
	}
	if v.Kind == KindNumber {
		return v.Number.Cmp(o.Number), nil
	}
	return strings.Compare(v.Str, o.Str), nil
}

// String renders a human-readable form, used by `print` and by the REPL
// echo.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindNumber:
		return v.Number.String()
	case KindString:
		return v.Str
	case KindList:
		parts := make([]string, len(v.List))
		for i, el := range v.List {
			parts[i] = el.Repr()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		keys := make([]string, 0, len(v.Members))
		for k := range v.Members {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, v.Members[k].Repr()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid>"
	}
}

// Repr renders a value the way it would appear nested inside a list or
// object literal (strings get quoted).
func (v Value) Repr() string {
	if v.Kind == KindString {
		return fmt.Sprintf("%q", v.Str)
	}
	return v.String()
}

// TypeName reports the value kind's literal name as returned by the
// host `type` builtin.
func (v Value) TypeName() string { return v.Kind.String() }
