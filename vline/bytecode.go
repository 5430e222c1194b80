package vline

import "fmt"

// OpCode enumerates the VM's instruction set. Stringly-typed operators
// in BINARY_OP are kept for readability in error messages; the operator
// itself is represented as a plain string operand rather than its own
// enum, matching the BigNum-or-string-or-call-operand union below.
type OpCode int

const (
	OpLoadConst OpCode = iota
	OpLoadVar
	OpStoreVar
	OpBinaryOp
	OpJumpIfFalse
	OpCallFunction
	OpJump
	OpReturn
	OpBuildList
	OpPop
	OpLoadSubscript
	OpStoreSubscript
	OpCreateObject
	OpLoadMember
	OpStoreMember
	OpLoadFunc
	OpStoreMemberFunc
	OpLabel
)

var opCodeNames = map[OpCode]string{
	OpLoadConst:       "LOAD_CONST",
	OpLoadVar:         "LOAD_VAR",
	OpStoreVar:        "STORE_VAR",
	OpBinaryOp:        "BINARY_OP",
	OpJumpIfFalse:     "JUMP_IF_FALSE",
	OpCallFunction:    "CALL_FUNCTION",
	OpJump:            "JUMP",
	OpReturn:          "RETURN",
	OpBuildList:       "BUILD_LIST",
	OpPop:             "POP",
	OpLoadSubscript:   "LOAD_SUBSCRIPT",
	OpStoreSubscript:  "STORE_SUBSCRIPT",
	OpCreateObject:    "CREATE_OBJECT",
	OpLoadMember:      "LOAD_MEMBER",
	OpStoreMember:     "STORE_MEMBER",
	OpLoadFunc:        "LOAD_FUNC",
	OpStoreMemberFunc: "STORE_MEMBER_FUNC",
	OpLabel:           "LABEL",
}

func (o OpCode) String() string {
	if n, ok := opCodeNames[o]; ok {
		return n
	}
	return "UNKNOWN"
}

// CallOperand is the operand carried by CALL_FUNCTION: the callee name
// (as seen at the call site — a user function, a method, or a host
// builtin) and the number of values already pushed for it to pop.
type CallOperand struct {
	Name     string
	ArgCount int
}

func (c CallOperand) String() string { return fmt.Sprintf("%s/%d", c.Name, c.ArgCount) }

// Instruction is one bytecode unit. Operand holds whichever payload the
// opcode needs: BigNum or string or nil for LOAD_CONST, a variable/member
// name string for *_VAR/*_MEMBER/*_FUNC ops, an int label id for LABEL
// (and, post-resolution, an int absolute pc for JUMP/JUMP_IF_FALSE), an
// int count for BUILD_LIST, a string operator for BINARY_OP, and a
// CallOperand for CALL_FUNCTION.
type Instruction struct {
	Op      OpCode
	Operand any
}

func (i Instruction) String() string {
	if i.Operand == nil {
		return i.Op.String()
	}
	return fmt.Sprintf("%s %v", i.Op, i.Operand)
}

// BytecodeProgram is a flat, linear instruction stream. Jump operands
// are absolute indices into the same slice once resolveLabels has run.
type BytecodeProgram []Instruction
