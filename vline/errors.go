package vline

import "fmt"

// ErrorKind enumerates the error taxonomy raised by the lexer, parser,
// code generator and VM, per spec.md §7. Rendering is always
// "<Kind Name>: <msg>".
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrIdentifier
	ErrType
	ErrIndex
	ErrIO
	ErrZeroDivision
	ErrRecursion
	ErrRuntime
)

var errorKindNames = map[ErrorKind]string{
	ErrSyntax:       "Syntax Error",
	ErrIdentifier:   "Identifier Error",
	ErrType:         "Type Error",
	ErrIndex:        "Index Error",
	ErrIO:           "IO Error",
	ErrZeroDivision: "Zero Division Error",
	ErrRecursion:    "Recursion Error",
	ErrRuntime:      "Runtime Error",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Runtime Error"
}

// VLineError is the concrete error type raised anywhere in the pipeline.
// It always carries a Kind, and carries a source Loc only when it was
// built by NewSyntaxError or one of the ...At constructors; instructions
// hold no source position, so errors raised while executing bytecode
// carry no Loc or only the zero Loc.
type VLineError struct {
	Kind ErrorKind
	Msg  string
	Loc  *Loc
}

func (e *VLineError) Error() string {
	if e.Loc != nil && e.Loc.FileName != "" {
		return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Msg, e.Loc.String())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// GetLocation satisfies the Error interface; returns the zero Loc when
// none was attached.
func (e *VLineError) GetLocation() Loc {
	if e.Loc == nil {
		return Loc{}
	}
	return *e.Loc
}

func newErr(kind ErrorKind, msg string) *VLineError {
	return &VLineError{Kind: kind, Msg: msg}
}

func newErrAt(kind ErrorKind, msg string, loc Loc) *VLineError {
	return &VLineError{Kind: kind, Msg: msg, Loc: &loc}
}

func NewSyntaxError(msg string, loc Loc) *VLineError       { return newErrAt(ErrSyntax, msg, loc) }
func NewIdentifierError(msg string) *VLineError             { return newErr(ErrIdentifier, msg) }
func NewIdentifierErrorAt(msg string, loc Loc) *VLineError  { return newErrAt(ErrIdentifier, msg, loc) }
func NewTypeError(msg string) *VLineError                   { return newErr(ErrType, msg) }
func NewIndexError(msg string) *VLineError                  { return newErr(ErrIndex, msg) }
func NewIOError(msg string) *VLineError                     { return newErr(ErrIO, msg) }
func NewZeroDivisionError(msg string) *VLineError           { return newErr(ErrZeroDivision, msg) }
func NewRecursionError(msg string) *VLineError              { return newErr(ErrRecursion, msg) }
func NewRuntimeError(msg string) *VLineError                { return newErr(ErrRuntime, msg) }
func NewRuntimeErrorAt(msg string, loc Loc) *VLineError     { return newErrAt(ErrRuntime, msg, loc) }

// Result mirrors the teacher's generic result wrapper, used by the
// parser to avoid (T, error) pairs on hot recursive paths.
type Result[T any] struct {
	Value T
	Err   *VLineError
}

func ResOk[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

func ResErr[T any](err *VLineError) Result[T] {
	return Result[T]{Err: err}
}

func (r Result[T]) IsOk() bool  { return r.Err == nil }
func (r Result[T]) IsErr() bool { return r.Err != nil }
