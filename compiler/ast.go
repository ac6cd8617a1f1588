package compiler

// ---------------------------------------------------------------------------
// AST: Abstract Syntax Tree for B-Minor
// ---------------------------------------------------------------------------

// Position represents a source location.
type Position struct {
	Offset int // byte offset (0-based)
	Line   int // 1-based line number
	Column int // 1-based column number
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// MakeSpan creates a span from start and end positions.
func MakeSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Span() Span
	node() // marker method
}

// ---------------------------------------------------------------------------
// Type nodes
// ---------------------------------------------------------------------------

// Type is the interface for type nodes.
type Type interface {
	Node
	typeNode() // marker method
}

// TypeKind identifies one of the atomic B-Minor types.
type TypeKind int

const (
	TypeInteger TypeKind = iota
	TypeBoolean
	TypeChar
	TypeString
	TypeVoid
)

var typeKindNames = map[TypeKind]string{
	TypeInteger: "integer",
	TypeBoolean: "boolean",
	TypeChar:    "char",
	TypeString:  "string",
	TypeVoid:    "void",
}

func (k TypeKind) String() string {
	return typeKindNames[k]
}

// BasicType represents one of the atomic types.
type BasicType struct {
	SpanVal Span
	Kind    TypeKind
}

func (n *BasicType) Span() Span { return n.SpanVal }
func (n *BasicType) node()      {}
func (n *BasicType) typeNode()  {}

// ArrayType represents array [size] elem. Size is nil when the array
// length is unspecified, as in parameter types.
type ArrayType struct {
	SpanVal Span
	Size    *IntLiteral
	Elem    Type
}

func (n *ArrayType) Span() Span { return n.SpanVal }
func (n *ArrayType) node()      {}
func (n *ArrayType) typeNode()  {}

// FuncType represents function ret (params).
type FuncType struct {
	SpanVal Span
	Return  Type
	Params  []*Param
}

func (n *FuncType) Span() Span { return n.SpanVal }
func (n *FuncType) node()      {}
func (n *FuncType) typeNode()  {}

// Param is a single parameter in a function type. Name may be empty
// inside nested function types, where the grammar allows bare types.
type Param struct {
	Name string
	Type Type
}

// ---------------------------------------------------------------------------
// Expression nodes
// ---------------------------------------------------------------------------

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr() // marker method
}

// IntLiteral represents an integer literal.
type IntLiteral struct {
	SpanVal Span
	Value   int64
}

func (n *IntLiteral) Span() Span { return n.SpanVal }
func (n *IntLiteral) node()      {}
func (n *IntLiteral) expr()      {}

// CharLiteral represents a character literal ('a').
type CharLiteral struct {
	SpanVal Span
	Value   rune
}

func (n *CharLiteral) Span() Span { return n.SpanVal }
func (n *CharLiteral) node()      {}
func (n *CharLiteral) expr()      {}

// StringLiteral represents a string literal with escapes resolved.
type StringLiteral struct {
	SpanVal Span
	Value   string
}

func (n *StringLiteral) Span() Span { return n.SpanVal }
func (n *StringLiteral) node()      {}
func (n *StringLiteral) expr()      {}

// BoolLiteral represents true or false.
type BoolLiteral struct {
	SpanVal Span
	Value   bool
}

func (n *BoolLiteral) Span() Span { return n.SpanVal }
func (n *BoolLiteral) node()      {}
func (n *BoolLiteral) expr()      {}

// Ident represents a name reference.
type Ident struct {
	SpanVal Span
	Name    string
}

func (n *Ident) Span() Span { return n.SpanVal }
func (n *Ident) node()      {}
func (n *Ident) expr()      {}

// ArrayLiteral represents an array initializer {1, 2, 3}.
type ArrayLiteral struct {
	SpanVal Span
	Elems   []Expr
}

func (n *ArrayLiteral) Span() Span { return n.SpanVal }
func (n *ArrayLiteral) node()      {}
func (n *ArrayLiteral) expr()      {}

// UnaryExpr represents a prefix operator (-x, !x) or, when Postfix is
// set, a postfix increment/decrement (x++, x--).
type UnaryExpr struct {
	SpanVal Span
	Op      TokenType
	Operand Expr
	Postfix bool
}

func (n *UnaryExpr) Span() Span { return n.SpanVal }
func (n *UnaryExpr) node()      {}
func (n *UnaryExpr) expr()      {}

// BinaryExpr represents a binary operation (a + b).
type BinaryExpr struct {
	SpanVal Span
	Op      TokenType
	Left    Expr
	Right   Expr
}

func (n *BinaryExpr) Span() Span { return n.SpanVal }
func (n *BinaryExpr) node()      {}
func (n *BinaryExpr) expr()      {}

// AssignExpr represents an assignment (target = value). Target is
// always lvalue-shaped: an identifier or an index expression.
type AssignExpr struct {
	SpanVal Span
	Target  Expr
	Value   Expr
}

func (n *AssignExpr) Span() Span { return n.SpanVal }
func (n *AssignExpr) node()      {}
func (n *AssignExpr) expr()      {}

// CallExpr represents a function call f(args).
type CallExpr struct {
	SpanVal Span
	Callee  string
	Args    []Expr
}

func (n *CallExpr) Span() Span { return n.SpanVal }
func (n *CallExpr) node()      {}
func (n *CallExpr) expr()      {}

// IndexExpr represents a subscript a[i].
type IndexExpr struct {
	SpanVal Span
	Array   Expr
	Index   Expr
}

func (n *IndexExpr) Span() Span { return n.SpanVal }
func (n *IndexExpr) node()      {}
func (n *IndexExpr) expr()      {}

// GroupExpr represents a parenthesized expression.
type GroupExpr struct {
	SpanVal Span
	Inner   Expr
}

func (n *GroupExpr) Span() Span { return n.SpanVal }
func (n *GroupExpr) node()      {}
func (n *GroupExpr) expr()      {}

// ---------------------------------------------------------------------------
// Statement nodes
// ---------------------------------------------------------------------------

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmt() // marker method
}

// BlockStmt is a brace-delimited statement sequence.
type BlockStmt struct {
	SpanVal Span
	Stmts   []Stmt
}

func (n *BlockStmt) Span() Span { return n.SpanVal }
func (n *BlockStmt) node()      {}
func (n *BlockStmt) stmt()      {}

// IfStmt represents if (cond) then else. Else is nil when absent; an
// else clause always binds to the innermost open if.
type IfStmt struct {
	SpanVal Span
	Cond    Expr
	Then    Stmt
	Else    Stmt
}

func (n *IfStmt) Span() Span { return n.SpanVal }
func (n *IfStmt) node()      {}
func (n *IfStmt) stmt()      {}

// ForStmt represents for (init; cond; post) body. Any clause may be nil.
type ForStmt struct {
	SpanVal Span
	Init    Expr
	Cond    Expr
	Post    Expr
	Body    Stmt
}

func (n *ForStmt) Span() Span { return n.SpanVal }
func (n *ForStmt) node()      {}
func (n *ForStmt) stmt()      {}

// PrintStmt represents print expr, expr, ... ;
type PrintStmt struct {
	SpanVal Span
	Args    []Expr
}

func (n *PrintStmt) Span() Span { return n.SpanVal }
func (n *PrintStmt) node()      {}
func (n *PrintStmt) stmt()      {}

// ReturnStmt represents return expr? ;
type ReturnStmt struct {
	SpanVal Span
	Value   Expr
}

func (n *ReturnStmt) Span() Span { return n.SpanVal }
func (n *ReturnStmt) node()      {}
func (n *ReturnStmt) stmt()      {}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	SpanVal Span
	Expr    Expr
}

func (n *ExprStmt) Span() Span { return n.SpanVal }
func (n *ExprStmt) node()      {}
func (n *ExprStmt) stmt()      {}

// DeclStmt is a local variable declaration inside a block.
type DeclStmt struct {
	SpanVal Span
	Decl    *VarDecl
}

func (n *DeclStmt) Span() Span { return n.SpanVal }
func (n *DeclStmt) node()      {}
func (n *DeclStmt) stmt()      {}

// ---------------------------------------------------------------------------
// Declaration nodes
// ---------------------------------------------------------------------------

// Decl is the interface for declaration nodes.
type Decl interface {
	Node
	decl() // marker method
}

// VarDecl represents name: type = value; Value is nil when there is
// no initializer.
type VarDecl struct {
	SpanVal Span
	Name    string
	Type    Type
	Value   Expr
}

func (n *VarDecl) Span() Span { return n.SpanVal }
func (n *VarDecl) node()      {}
func (n *VarDecl) decl()      {}

// FuncDecl represents name: function ret (params) = { ... }. Body is
// nil for a prototype (declaration terminated by a semicolon).
type FuncDecl struct {
	SpanVal Span
	Name    string
	Type    *FuncType
	Body    *BlockStmt
}

func (n *FuncDecl) Span() Span { return n.SpanVal }
func (n *FuncDecl) node()      {}
func (n *FuncDecl) decl()      {}

// ---------------------------------------------------------------------------
// Top-level structure
// ---------------------------------------------------------------------------

// Program is the root of the AST: an ordered sequence of declarations.
type Program struct {
	SpanVal Span
	Decls   []Decl
}

func (n *Program) Span() Span { return n.SpanVal }
func (n *Program) node()      {}
