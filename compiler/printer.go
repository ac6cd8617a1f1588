package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Printer: Deterministic textual serialization of the AST
// ---------------------------------------------------------------------------

// Print serializes a node as a parenthesized tree. The output depends
// only on the tree's structure, so structurally equal trees serialize
// identically and tests can compare by string equality. A Program
// serializes as one declaration per line.
func Print(n Node) string {
	var b strings.Builder
	printNode(&b, n)
	return b.String()
}

func printNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		for i, decl := range n.Decls {
			if i > 0 {
				b.WriteByte('\n')
			}
			printNode(b, decl)
		}

	// Declarations

	case *VarDecl:
		b.WriteString("VarDecl(")
		printVarDeclArgs(b, n)
		b.WriteByte(')')

	case *FuncDecl:
		b.WriteString("FunctionDecl(")
		b.WriteString(n.Name)
		b.WriteString(", ")
		printNode(b, n.Type.Return)
		b.WriteString(", ")
		printParams(b, n.Type.Params)
		if n.Body != nil {
			b.WriteString(", ")
			printNode(b, n.Body)
		}
		b.WriteByte(')')

	// Statements

	case *BlockStmt:
		b.WriteString("Block([")
		for i, stmt := range n.Stmts {
			if i > 0 {
				b.WriteString(", ")
			}
			printNode(b, stmt)
		}
		b.WriteString("])")

	case *IfStmt:
		b.WriteString("If(")
		printNode(b, n.Cond)
		b.WriteString(", ")
		printNode(b, n.Then)
		if n.Else != nil {
			b.WriteString(", ")
			printNode(b, n.Else)
		}
		b.WriteByte(')')

	case *ForStmt:
		b.WriteString("For(")
		printOptExpr(b, n.Init)
		b.WriteString(", ")
		printOptExpr(b, n.Cond)
		b.WriteString(", ")
		printOptExpr(b, n.Post)
		b.WriteString(", ")
		printNode(b, n.Body)
		b.WriteByte(')')

	case *PrintStmt:
		b.WriteString("Print([")
		printExprList(b, n.Args)
		b.WriteString("])")

	case *ReturnStmt:
		b.WriteString("Return(")
		if n.Value != nil {
			printNode(b, n.Value)
		}
		b.WriteByte(')')

	case *ExprStmt:
		b.WriteString("ExprStmt(")
		printNode(b, n.Expr)
		b.WriteByte(')')

	case *DeclStmt:
		b.WriteString("LocalDecl(")
		printVarDeclArgs(b, n.Decl)
		b.WriteByte(')')

	// Expressions

	case *IntLiteral:
		fmt.Fprintf(b, "IntLiteral(%d)", n.Value)

	case *CharLiteral:
		b.WriteString("CharLiteral('")
		b.WriteString(escapeChar(n.Value, '\''))
		b.WriteString("')")

	case *StringLiteral:
		b.WriteString("StringLiteral(\"")
		for _, r := range n.Value {
			b.WriteString(escapeChar(r, '"'))
		}
		b.WriteString("\")")

	case *BoolLiteral:
		fmt.Fprintf(b, "BoolLiteral(%t)", n.Value)

	case *Ident:
		b.WriteString("Ident(")
		b.WriteString(n.Name)
		b.WriteByte(')')

	case *ArrayLiteral:
		b.WriteString("ArrayLiteral([")
		printExprList(b, n.Elems)
		b.WriteString("])")

	case *UnaryExpr:
		b.WriteString("Unary(")
		b.WriteString(tokenNames[n.Op])
		b.WriteString(", ")
		printNode(b, n.Operand)
		b.WriteByte(')')

	case *BinaryExpr:
		b.WriteString("Binary(")
		b.WriteString(tokenNames[n.Op])
		b.WriteString(", ")
		printNode(b, n.Left)
		b.WriteString(", ")
		printNode(b, n.Right)
		b.WriteByte(')')

	case *AssignExpr:
		b.WriteString("Assignment(")
		printNode(b, n.Target)
		b.WriteString(", ")
		printNode(b, n.Value)
		b.WriteByte(')')

	case *CallExpr:
		b.WriteString("Call(")
		b.WriteString(n.Callee)
		b.WriteString(", [")
		printExprList(b, n.Args)
		b.WriteString("])")

	case *IndexExpr:
		b.WriteString("Index(")
		printNode(b, n.Array)
		b.WriteString(", ")
		printNode(b, n.Index)
		b.WriteByte(')')

	case *GroupExpr:
		b.WriteString("Grouping(")
		printNode(b, n.Inner)
		b.WriteByte(')')

	// Types

	case *BasicType:
		b.WriteString(n.Kind.String())

	case *ArrayType:
		b.WriteString("Array(")
		if n.Size != nil {
			b.WriteString(strconv.FormatInt(n.Size.Value, 10))
			b.WriteString(", ")
		}
		printNode(b, n.Elem)
		b.WriteByte(')')

	case *FuncType:
		b.WriteString("Function(")
		printNode(b, n.Return)
		b.WriteString(", ")
		printParams(b, n.Params)
		b.WriteByte(')')

	default:
		fmt.Fprintf(b, "Unknown(%T)", n)
	}
}

func printVarDeclArgs(b *strings.Builder, d *VarDecl) {
	b.WriteString(d.Name)
	b.WriteString(", ")
	printNode(b, d.Type)
	if d.Value != nil {
		b.WriteString(", ")
		printNode(b, d.Value)
	}
}

func printParams(b *strings.Builder, params []*Param) {
	b.WriteByte('[')
	for i, param := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		if param.Name != "" {
			b.WriteString(param.Name)
			b.WriteString(": ")
		}
		printNode(b, param.Type)
	}
	b.WriteByte(']')
}

func printExprList(b *strings.Builder, exprs []Expr) {
	for i, expr := range exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		printNode(b, expr)
	}
}

func printOptExpr(b *strings.Builder, e Expr) {
	if e == nil {
		b.WriteByte('_')
		return
	}
	printNode(b, e)
}

// escapeChar renders r for a quoted literal, escaping the surrounding
// quote and the escapes the language itself defines.
func escapeChar(r rune, quote rune) string {
	switch r {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\\':
		return `\\`
	case 0:
		return `\0`
	case quote:
		return `\` + string(quote)
	}
	return string(r)
}
