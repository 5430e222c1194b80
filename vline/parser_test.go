package vline

import "testing"

func parseSource(t *testing.T, src string) *Block {
	t.Helper()
	tokens, lexErr := NewLexer("<test>", src).Tokenize()
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	res := NewParser(tokens).Parse()
	if res.IsErr() {
		t.Fatalf("parse error: %v", res.Err)
	}
	return res.Value
}

func TestParserAssignment(t *testing.T) {
	block := parseSource(t, "x = 1 + 2")
	if len(block.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(block.Statements))
	}
	assign, ok := block.Statements[0].(*Assignment)
	if !ok {
		t.Fatalf("got %T, want *Assignment", block.Statements[0])
	}
	if assign.Target != "x" {
		t.Errorf("got target %q, want %q", assign.Target, "x")
	}
	bin, ok := assign.Value.(*BinaryExpression)
	if !ok || bin.Op != "+" {
		t.Errorf("got value %#v, want binary '+'", assign.Value)
	}
}

func TestParserOperatorPrecedence(t *testing.T) {
	block := parseSource(t, "x = 1 + 2 * 3")
	assign := block.Statements[0].(*Assignment)
	bin := assign.Value.(*BinaryExpression)
	if bin.Op != "+" {
		t.Fatalf("top-level op: got %q, want %q", bin.Op, "+")
	}
	right, ok := bin.Right.(*BinaryExpression)
	if !ok || right.Op != "*" {
		t.Fatalf("right side: got %#v, want binary '*'", bin.Right)
	}
}

func TestParserPowerIsRightAssociative(t *testing.T) {
	block := parseSource(t, "x = 2 ^ 3 ^ 2")
	assign := block.Statements[0].(*Assignment)
	top := assign.Value.(*BinaryExpression)
	if top.Op != "^" {
		t.Fatalf("got op %q, want '^'", top.Op)
	}
	left, ok := top.Left.(*NumberLiteral)
	if !ok {
		t.Fatalf("left side: got %#v, want number literal", top.Left)
	}
	if left.Value.String() != "2" {
		t.Errorf("left literal: got %s, want 2", left.Value.String())
	}
	right, ok := top.Right.(*BinaryExpression)
	if !ok || right.Op != "^" {
		t.Fatalf("right side: got %#v, want nested '^'", top.Right)
	}
}

func TestParserIfElifElse(t *testing.T) {
	src := `if a
print(1)
elif b
print(2)
else
print(3)
end`
	block := parseSource(t, src)
	ifStmt, ok := block.Statements[0].(*IfStatement)
	if !ok {
		t.Fatalf("got %T, want *IfStatement", block.Statements[0])
	}
	if len(ifStmt.ElifClauses) != 1 {
		t.Fatalf("got %d elif clauses, want 1", len(ifStmt.ElifClauses))
	}
	if ifStmt.ElseBody == nil {
		t.Fatal("expected an else body")
	}
}

func TestParserFunctionDeclarationWithDefaults(t *testing.T) {
	block := parseSource(t, "fn f(a, b=10) return a+b end")
	fn, ok := block.Statements[0].(*FunctionDeclaration)
	if !ok {
		t.Fatalf("got %T, want *FunctionDeclaration", block.Statements[0])
	}
	if len(fn.Parameters) != 2 || fn.Parameters[1] != "b" {
		t.Fatalf("got parameters %v", fn.Parameters)
	}
	if fn.Defaults[0] != nil {
		t.Errorf("expected no default for 'a'")
	}
	if fn.Defaults[1] == nil {
		t.Errorf("expected a default for 'b'")
	}
}

func TestParserClassDeclarationWithParent(t *testing.T) {
	src := `class Dog : Animal
name = "Rex"
fn bark()
print("woof")
end
end`
	block := parseSource(t, src)
	decl, ok := block.Statements[0].(*ClassDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ClassDeclaration", block.Statements[0])
	}
	if !decl.HasParent || decl.ParentName != "Animal" {
		t.Errorf("got HasParent=%v ParentName=%q, want true/Animal", decl.HasParent, decl.ParentName)
	}
	if _, ok := decl.Members["name"]; !ok {
		t.Error("expected member 'name'")
	}
	if _, ok := decl.Methods["bark"]; !ok {
		t.Error("expected method 'bark'")
	}
}

func TestParserSelfMemberAssignment(t *testing.T) {
	block := parseSource(t, "self.count = self.count + 1")
	assign, ok := block.Statements[0].(*ClassMemberAssignment)
	if !ok {
		t.Fatalf("got %T, want *ClassMemberAssignment", block.Statements[0])
	}
	if assign.MemberName != "count" {
		t.Errorf("got member %q, want %q", assign.MemberName, "count")
	}
}

func TestParserSubscriptAssignment(t *testing.T) {
	block := parseSource(t, "a[0] = 9")
	assign, ok := block.Statements[0].(*Assignment)
	if !ok || !assign.IsSubscriptAssignment {
		t.Fatalf("got %#v, want subscript assignment", block.Statements[0])
	}
	if assign.Target != "a" {
		t.Errorf("got target %q, want %q", assign.Target, "a")
	}
}

func TestParserNewExpressionWithArgs(t *testing.T) {
	block := parseSource(t, "x = new Dog(\"Rex\")")
	assign := block.Statements[0].(*Assignment)
	newExpr, ok := assign.Value.(*NewExpression)
	if !ok {
		t.Fatalf("got %T, want *NewExpression", assign.Value)
	}
	if newExpr.ClassName != "Dog" || len(newExpr.Args) != 1 {
		t.Errorf("got %#v", newExpr)
	}
}

func TestParserUnterminatedBlockIsSyntaxError(t *testing.T) {
	tokens, lexErr := NewLexer("<test>", "if a\nprint(1)").Tokenize()
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	res := NewParser(tokens).Parse()
	if res.IsOk() {
		t.Fatal("expected a syntax error for an unterminated block")
	}
	if res.Err.Kind != ErrSyntax {
		t.Errorf("got kind %v, want ErrSyntax", res.Err.Kind)
	}
}

func TestParserInvalidAssignmentTargetIsSyntaxError(t *testing.T) {
	tokens, lexErr := NewLexer("<test>", "1 + 2 = 3").Tokenize()
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	res := NewParser(tokens).Parse()
	if res.IsOk() {
		t.Fatal("expected a syntax error for an invalid assignment target")
	}
}

func TestParserMemberAccessChain(t *testing.T) {
	block := parseSource(t, "x = a.b.c")
	assign := block.Statements[0].(*Assignment)
	member, ok := assign.Value.(*MemberAccess)
	if !ok {
		t.Fatalf("got %T, want *MemberAccess", assign.Value)
	}
	if len(member.Objects) != 3 {
		t.Fatalf("got %d objects, want 3", len(member.Objects))
	}
}

func TestParserForLoopOverRange(t *testing.T) {
	block := parseSource(t, "for i in range(0, 5)\nprint(i)\nend")
	forStmt, ok := block.Statements[0].(*ForStatement)
	if !ok {
		t.Fatalf("got %T, want *ForStatement", block.Statements[0])
	}
	if forStmt.Variable != "i" {
		t.Errorf("got variable %q, want %q", forStmt.Variable, "i")
	}
	call, ok := forStmt.Iterable.(*FunctionCall)
	if !ok || len(call.Arguments) != 2 {
		t.Errorf("got iterable %#v, want a 2-arg call", forStmt.Iterable)
	}
}
