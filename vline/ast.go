package vline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ASTNode is the root interface every tree node satisfies.
type ASTNode interface {
	GetToken() *Token
	String() string
}

// Stmt is a statement node.
type Stmt interface {
	ASTNode
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	ASTNode
	exprNode()
}

// Visitor traverses the AST; Walk drives it depth-first.
type Visitor interface {
	Visit(node ASTNode)
}

// WalkFunc adapts a plain function to the Visitor interface.
type WalkFunc func(node ASTNode)

func (f WalkFunc) Visit(node ASTNode) { f(node) }

// Walk visits node and recurses into its children.
func Walk(node ASTNode, visitor Visitor) {
	if node == nil {
		return
	}
	visitor.Visit(node)

	switch n := node.(type) {
	case *Block:
		for _, stmt := range n.Statements {
			Walk(stmt, visitor)
		}
	case *ImportStatement:
		// leaf
	case *Assignment:
		if n.Index != nil {
			Walk(n.Index, visitor)
		}
		Walk(n.Value, visitor)
	case *IfStatement:
		Walk(n.Condition, visitor)
		Walk(&n.Body, visitor)
		for _, clause := range n.ElifClauses {
			Walk(clause.Condition, visitor)
			Walk(&clause.Body, visitor)
		}
		if n.ElseBody != nil {
			Walk(n.ElseBody, visitor)
		}
	case *WhileStatement:
		Walk(n.Condition, visitor)
		Walk(&n.Body, visitor)
	case *ForStatement:
		Walk(n.Iterable, visitor)
		Walk(&n.Body, visitor)
	case *FunctionDeclaration:
		for _, dv := range n.Defaults {
			if dv != nil {
				Walk(dv, visitor)
			}
		}
		Walk(&n.Body, visitor)
	case *ReturnStatement:
		if n.Value != nil {
			Walk(n.Value, visitor)
		}
	case *RaiseStatement:
		Walk(n.ErrorMessage, visitor)
	case *ExpressionStatement:
		Walk(n.Expression, visitor)
	case *ClassDeclaration:
		for _, m := range n.Members {
			Walk(m, visitor)
		}
		for _, f := range n.Methods {
			Walk(f, visitor)
		}
	case *ClassMemberAssignment:
		if n.Index != nil {
			Walk(n.Index, visitor)
		}
		Walk(n.Value, visitor)
	case *ConstantDeclaration:
		Walk(n.Value, visitor)
	case *BinaryExpression:
		Walk(n.Left, visitor)
		Walk(n.Right, visitor)
	case *UnaryExpression:
		Walk(n.Operand, visitor)
	case *ListLiteral:
		for _, el := range n.Elements {
			Walk(el, visitor)
		}
	case *FunctionCall:
		Walk(n.Callee, visitor)
		for _, arg := range n.Arguments {
			Walk(arg, visitor)
		}
	case *NewExpression:
		for _, arg := range n.Args {
			Walk(arg, visitor)
		}
	case *MemberAccess:
		for _, o := range n.Objects {
			Walk(o, visitor)
		}
		if n.Index != nil {
			Walk(n.Index, visitor)
		}
	}
}

func marshalTagged(tag string, v any) ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Node any    `json:"node"`
	}{Type: tag, Node: v})
}

// Block is a braceless sequence of statements; every `...end`-delimited
// body in the grammar lowers to one.
type Block struct {
	Tok        *Token
	Statements []Stmt
}

func (b *Block) GetToken() *Token { return b.Tok }
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("Block [\n")
	for _, s := range b.Statements {
		sb.WriteString("  " + s.String() + "\n")
	}
	sb.WriteString("]")
	return sb.String()
}
func (b *Block) stmtNode() {}

// ImportStatement names a package to resolve via the import search path.
type ImportStatement struct {
	Tok         *Token
	PackageName string
}

func (s *ImportStatement) GetToken() *Token { return s.Tok }
func (s *ImportStatement) String() string   { return fmt.Sprintf("import %s", s.PackageName) }
func (s *ImportStatement) stmtNode()        {}
func (s *ImportStatement) MarshalJSON() ([]byte, error) {
	return marshalTagged("ImportStatement", (*struct {
		PackageName string
	})(&struct{ PackageName string }{s.PackageName}))
}

// Assignment covers both `name = value` and `name[index] = value`.
type Assignment struct {
	Tok                    *Token
	Target                 string
	Index                  Expr
	Value                  Expr
	IsSubscriptAssignment  bool
}

func (s *Assignment) GetToken() *Token { return s.Tok }
func (s *Assignment) String() string {
	if s.IsSubscriptAssignment {
		return fmt.Sprintf("%s[%v] = %v", s.Target, s.Index, s.Value)
	}
	return fmt.Sprintf("%s = %v", s.Target, s.Value)
}
func (s *Assignment) stmtNode() {}
func (s *Assignment) MarshalJSON() ([]byte, error) { return marshalTagged("Assignment", *s) }

// ElifClause is one `elif cond ... ` arm.
type ElifClause struct {
	Condition Expr
	Body      Block
}

// IfStatement is `if cond ... elif ... else ... end`.
type IfStatement struct {
	Tok         *Token
	Condition   Expr
	Body        Block
	ElifClauses []ElifClause
	ElseBody    *Block
}

func (s *IfStatement) GetToken() *Token { return s.Tok }
func (s *IfStatement) String() string {
	return fmt.Sprintf("if %v %v elifs=%d else=%v", s.Condition, s.Body, len(s.ElifClauses), s.ElseBody)
}
func (s *IfStatement) stmtNode() {}
func (s *IfStatement) MarshalJSON() ([]byte, error) { return marshalTagged("IfStatement", *s) }

// WhileStatement is `while cond ... end`.
type WhileStatement struct {
	Tok       *Token
	Condition Expr
	Body      Block
}

func (s *WhileStatement) GetToken() *Token { return s.Tok }
func (s *WhileStatement) String() string   { return fmt.Sprintf("while %v %v", s.Condition, s.Body) }
func (s *WhileStatement) stmtNode()        {}
func (s *WhileStatement) MarshalJSON() ([]byte, error) { return marshalTagged("WhileStatement", *s) }

// ForStatement is `for v in iterable ... end`.
type ForStatement struct {
	Tok      *Token
	Variable string
	Iterable Expr
	Body     Block
}

func (s *ForStatement) GetToken() *Token { return s.Tok }
func (s *ForStatement) String() string {
	return fmt.Sprintf("for %s in %v %v", s.Variable, s.Iterable, s.Body)
}
func (s *ForStatement) stmtNode() {}
func (s *ForStatement) MarshalJSON() ([]byte, error) { return marshalTagged("ForStatement", *s) }

// FunctionDeclaration is `fn name(params) ... end`. Defaults holds a
// parallel slice to Parameters; a nil entry means no default.
type FunctionDeclaration struct {
	Tok        *Token
	Name       string
	Parameters []string
	Defaults   []Expr
	Body       Block
	Bytecode   BytecodeProgram
}

func (s *FunctionDeclaration) GetToken() *Token { return s.Tok }
func (s *FunctionDeclaration) String() string {
	return fmt.Sprintf("fn %s(%s)", s.Name, strings.Join(s.Parameters, ", "))
}
func (s *FunctionDeclaration) stmtNode() {}
func (s *FunctionDeclaration) MarshalJSON() ([]byte, error) {
	return marshalTagged("FunctionDeclaration", *s)
}

// ReturnStatement is `return [value]`.
type ReturnStatement struct {
	Tok   *Token
	Value Expr
}

func (s *ReturnStatement) GetToken() *Token { return s.Tok }
func (s *ReturnStatement) String() string   { return fmt.Sprintf("return %v", s.Value) }
func (s *ReturnStatement) stmtNode()        {}
func (s *ReturnStatement) MarshalJSON() ([]byte, error) { return marshalTagged("ReturnStatement", *s) }

// BreakStatement is `break`.
type BreakStatement struct{ Tok *Token }

func (s *BreakStatement) GetToken() *Token { return s.Tok }
func (s *BreakStatement) String() string   { return "break" }
func (s *BreakStatement) stmtNode()        {}
func (s *BreakStatement) MarshalJSON() ([]byte, error) { return marshalTagged("BreakStatement", *s) }

// ContinueStatement is `continue`.
type ContinueStatement struct{ Tok *Token }

func (s *ContinueStatement) GetToken() *Token { return s.Tok }
func (s *ContinueStatement) String() string   { return "continue" }
func (s *ContinueStatement) stmtNode()        {}
func (s *ContinueStatement) MarshalJSON() ([]byte, error) {
	return marshalTagged("ContinueStatement", *s)
}

// RaiseStatement is `raise expr`, producing a RuntimeError at runtime.
type RaiseStatement struct {
	Tok          *Token
	ErrorMessage Expr
}

func (s *RaiseStatement) GetToken() *Token { return s.Tok }
func (s *RaiseStatement) String() string   { return fmt.Sprintf("raise %v", s.ErrorMessage) }
func (s *RaiseStatement) stmtNode()        {}
func (s *RaiseStatement) MarshalJSON() ([]byte, error) { return marshalTagged("RaiseStatement", *s) }

// ExpressionStatement wraps a bare expression used for its side effect.
type ExpressionStatement struct {
	Tok        *Token
	Expression Expr
}

func (s *ExpressionStatement) GetToken() *Token { return s.Tok }
func (s *ExpressionStatement) String() string   { return s.Expression.String() }
func (s *ExpressionStatement) stmtNode()        {}
func (s *ExpressionStatement) MarshalJSON() ([]byte, error) {
	return marshalTagged("ExpressionStatement", *s)
}

// ClassDeclaration is `class Name[: Parent] ... end`, where the body is
// a mix of member-default assignments and method declarations.
type ClassDeclaration struct {
	Tok        *Token
	ClassName  string
	Members    map[string]*Assignment
	Methods    map[string]*FunctionDeclaration
	HasParent  bool
	ParentName string
}

func (s *ClassDeclaration) GetToken() *Token { return s.Tok }
func (s *ClassDeclaration) String() string {
	return fmt.Sprintf("class %s(parent=%v %s) members=%d methods=%d", s.ClassName, s.HasParent, s.ParentName, len(s.Members), len(s.Methods))
}
func (s *ClassDeclaration) stmtNode() {}
func (s *ClassDeclaration) MarshalJSON() ([]byte, error) {
	return marshalTagged("ClassDeclaration", *s)
}

// ClassMemberAssignment assigns into `self.member[[index]]` inside a
// method body.
type ClassMemberAssignment struct {
	Tok        *Token
	ClassName  string
	MemberName string
	Index      Expr
	Value      Expr
}

func (s *ClassMemberAssignment) GetToken() *Token { return s.Tok }
func (s *ClassMemberAssignment) String() string {
	return fmt.Sprintf("self.%s = %v", s.MemberName, s.Value)
}
func (s *ClassMemberAssignment) stmtNode() {}
func (s *ClassMemberAssignment) MarshalJSON() ([]byte, error) {
	return marshalTagged("ClassMemberAssignment", *s)
}

// ConstantDeclaration is `const NAME = value`; the codegen rejects a
// later plain assignment to the same name.
type ConstantDeclaration struct {
	Tok   *Token
	Name  string
	Value Expr
}

func (s *ConstantDeclaration) GetToken() *Token { return s.Tok }
func (s *ConstantDeclaration) String() string   { return fmt.Sprintf("const %s = %v", s.Name, s.Value) }
func (s *ConstantDeclaration) stmtNode()        {}
func (s *ConstantDeclaration) MarshalJSON() ([]byte, error) {
	return marshalTagged("ConstantDeclaration", *s)
}

// FunctionCall is `callee(args...)`; Callee is usually an Identifier or
// a MemberAccess (the latter triggers method-call codegen).
type FunctionCall struct {
	Tok       *Token
	Callee    Expr
	Arguments []Expr
}

func (e *FunctionCall) GetToken() *Token { return e.Tok }
func (e *FunctionCall) String() string {
	parts := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%v(%s)", e.Callee, strings.Join(parts, ", "))
}
func (e *FunctionCall) exprNode() {}
func (e *FunctionCall) MarshalJSON() ([]byte, error) { return marshalTagged("FunctionCall", *e) }

// BinaryExpression is `left op right`, including `[]` subscript which
// the codegen recognizes by Op == "[]".
type BinaryExpression struct {
	Tok   *Token
	Op    string
	Left  Expr
	Right Expr
}

func (e *BinaryExpression) GetToken() *Token { return e.Tok }
func (e *BinaryExpression) String() string {
	return fmt.Sprintf("(%v %s %v)", e.Left, e.Op, e.Right)
}
func (e *BinaryExpression) exprNode() {}
func (e *BinaryExpression) MarshalJSON() ([]byte, error) {
	return marshalTagged("BinaryExpression", *e)
}

// UnaryExpression is `op operand` (`-`, `not`, `~`).
type UnaryExpression struct {
	Tok     *Token
	Op      string
	Operand Expr
}

func (e *UnaryExpression) GetToken() *Token { return e.Tok }
func (e *UnaryExpression) String() string   { return fmt.Sprintf("%s%v", e.Op, e.Operand) }
func (e *UnaryExpression) exprNode()        {}
func (e *UnaryExpression) MarshalJSON() ([]byte, error) {
	return marshalTagged("UnaryExpression", *e)
}

// NumberLiteral holds an already-parsed BigNum constant.
type NumberLiteral struct {
	Tok   *Token
	Value BigNum
}

func (e *NumberLiteral) GetToken() *Token { return e.Tok }
func (e *NumberLiteral) String() string   { return e.Value.String() }
func (e *NumberLiteral) exprNode()        {}
func (e *NumberLiteral) MarshalJSON() ([]byte, error) {
	return marshalTagged("NumberLiteral", struct{ Value string }{e.Value.String()})
}

// StringLiteral is a quoted string constant.
type StringLiteral struct {
	Tok   *Token
	Value string
}

func (e *StringLiteral) GetToken() *Token { return e.Tok }
func (e *StringLiteral) String() string   { return fmt.Sprintf("%q", e.Value) }
func (e *StringLiteral) exprNode()        {}
func (e *StringLiteral) MarshalJSON() ([]byte, error) { return marshalTagged("StringLiteral", *e) }

// NullLiteral is the `null` keyword.
type NullLiteral struct{ Tok *Token }

func (e *NullLiteral) GetToken() *Token { return e.Tok }
func (e *NullLiteral) String() string   { return "null" }
func (e *NullLiteral) exprNode()        {}
func (e *NullLiteral) MarshalJSON() ([]byte, error) { return marshalTagged("NullLiteral", *e) }

// BooleanLiteral is `true`/`false`; both are numeric 1/0 once lowered
// by the codegen but the parser keeps them distinct for readability.
type BooleanLiteral struct {
	Tok   *Token
	Value bool
}

func (e *BooleanLiteral) GetToken() *Token { return e.Tok }
func (e *BooleanLiteral) String() string   { return fmt.Sprintf("%t", e.Value) }
func (e *BooleanLiteral) exprNode()        {}
func (e *BooleanLiteral) MarshalJSON() ([]byte, error) { return marshalTagged("BooleanLiteral", *e) }

// Identifier is a bare variable reference.
type Identifier struct {
	Tok  *Token
	Name string
}

func (e *Identifier) GetToken() *Token { return e.Tok }
func (e *Identifier) String() string   { return e.Name }
func (e *Identifier) exprNode()        {}
func (e *Identifier) MarshalJSON() ([]byte, error) { return marshalTagged("Identifier", *e) }

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	Tok      *Token
	Elements []Expr
}

func (e *ListLiteral) GetToken() *Token { return e.Tok }
func (e *ListLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (e *ListLiteral) exprNode() {}
func (e *ListLiteral) MarshalJSON() ([]byte, error) { return marshalTagged("ListLiteral", *e) }

// NewExpression is `new ClassName(args...)`.
type NewExpression struct {
	Tok       *Token
	ClassName string
	Args      []Expr
}

func (e *NewExpression) GetToken() *Token { return e.Tok }
func (e *NewExpression) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("new %s(%s)", e.ClassName, strings.Join(parts, ", "))
}
func (e *NewExpression) exprNode() {}
func (e *NewExpression) MarshalJSON() ([]byte, error) { return marshalTagged("NewExpression", *e) }

// MemberAccess is a dotted chain `a.b.c` with an optional trailing
// `[index]`.
type MemberAccess struct {
	Tok     *Token
	Objects []Expr
	Index   Expr
}

func (e *MemberAccess) GetToken() *Token { return e.Tok }
func (e *MemberAccess) String() string {
	parts := make([]string, len(e.Objects))
	for i, o := range e.Objects {
		parts[i] = o.String()
	}
	s := strings.Join(parts, ".")
	if e.Index != nil {
		s += "[" + e.Index.String() + "]"
	}
	return s
}
func (e *MemberAccess) exprNode() {}
func (e *MemberAccess) MarshalJSON() ([]byte, error) { return marshalTagged("MemberAccess", *e) }
