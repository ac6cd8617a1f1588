// Package wire provides a canonical CBOR encoding of parsed syntax
// trees. The encoding is deterministic: structurally equal trees
// marshal to identical bytes, so downstream tooling can compare or
// content-address parse results.
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/bminor-lang/bminor/compiler"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Node is the wire form of a syntax tree node. Kind names the variant;
// the remaining fields carry variant-specific payloads and are omitted
// when zero. Positional children live in Kids; an absent optional slot
// that must keep its position (a for clause) is encoded as a node of
// kind "_".
type Node struct {
	Kind string  `cbor:"k"`
	Name string  `cbor:"n,omitempty"`
	Text string  `cbor:"t,omitempty"`
	Int  int64   `cbor:"i,omitempty"`
	Bool bool    `cbor:"b,omitempty"`
	Kids []*Node `cbor:"c,omitempty"`
}

// Marshal serializes a Node to canonical CBOR bytes.
func Marshal(n *Node) ([]byte, error) {
	return cborEncMode.Marshal(n)
}

// Unmarshal deserializes a Node from CBOR bytes.
func Unmarshal(data []byte) (*Node, error) {
	var n Node
	if err := cbor.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("wire: unmarshal node: %w", err)
	}
	return &n, nil
}

// EncodeProgram converts a parsed program and marshals it in one step.
func EncodeProgram(p *compiler.Program) ([]byte, error) {
	return Marshal(FromProgram(p))
}

// FromProgram converts a parsed program to its wire form.
func FromProgram(p *compiler.Program) *Node {
	root := &Node{Kind: "Program"}
	for _, decl := range p.Decls {
		root.Kids = append(root.Kids, fromNode(decl))
	}
	return root
}

// absent marks an optional positional slot with no value.
func absent() *Node {
	return &Node{Kind: "_"}
}

func fromOpt(e compiler.Expr) *Node {
	if e == nil {
		return absent()
	}
	return fromNode(e)
}

func fromNode(n compiler.Node) *Node {
	switch n := n.(type) {

	// Declarations

	case *compiler.VarDecl:
		out := &Node{Kind: "VarDecl", Name: n.Name, Kids: []*Node{fromNode(n.Type)}}
		if n.Value != nil {
			out.Kids = append(out.Kids, fromNode(n.Value))
		}
		return out

	case *compiler.FuncDecl:
		out := &Node{Kind: "FunctionDecl", Name: n.Name, Kids: []*Node{fromNode(n.Type)}}
		if n.Body != nil {
			out.Kids = append(out.Kids, fromNode(n.Body))
		}
		return out

	// Statements

	case *compiler.BlockStmt:
		out := &Node{Kind: "Block"}
		for _, stmt := range n.Stmts {
			out.Kids = append(out.Kids, fromNode(stmt))
		}
		return out

	case *compiler.IfStmt:
		out := &Node{Kind: "If", Kids: []*Node{fromNode(n.Cond), fromNode(n.Then)}}
		if n.Else != nil {
			out.Kids = append(out.Kids, fromNode(n.Else))
		}
		return out

	case *compiler.ForStmt:
		return &Node{Kind: "For", Kids: []*Node{
			fromOpt(n.Init), fromOpt(n.Cond), fromOpt(n.Post), fromNode(n.Body),
		}}

	case *compiler.PrintStmt:
		out := &Node{Kind: "Print"}
		for _, arg := range n.Args {
			out.Kids = append(out.Kids, fromNode(arg))
		}
		return out

	case *compiler.ReturnStmt:
		out := &Node{Kind: "Return"}
		if n.Value != nil {
			out.Kids = append(out.Kids, fromNode(n.Value))
		}
		return out

	case *compiler.ExprStmt:
		return &Node{Kind: "ExprStmt", Kids: []*Node{fromNode(n.Expr)}}

	case *compiler.DeclStmt:
		inner := fromNode(n.Decl)
		return &Node{Kind: "LocalDecl", Name: inner.Name, Kids: inner.Kids}

	// Expressions

	case *compiler.IntLiteral:
		return &Node{Kind: "IntLiteral", Int: n.Value}

	case *compiler.CharLiteral:
		return &Node{Kind: "CharLiteral", Text: string(n.Value)}

	case *compiler.StringLiteral:
		return &Node{Kind: "StringLiteral", Text: n.Value}

	case *compiler.BoolLiteral:
		return &Node{Kind: "BoolLiteral", Bool: n.Value}

	case *compiler.Ident:
		return &Node{Kind: "Ident", Name: n.Name}

	case *compiler.ArrayLiteral:
		out := &Node{Kind: "ArrayLiteral"}
		for _, elem := range n.Elems {
			out.Kids = append(out.Kids, fromNode(elem))
		}
		return out

	case *compiler.UnaryExpr:
		kind := "Unary"
		if n.Postfix {
			kind = "Postfix"
		}
		return &Node{Kind: kind, Name: n.Op.String(), Kids: []*Node{fromNode(n.Operand)}}

	case *compiler.BinaryExpr:
		return &Node{Kind: "Binary", Name: n.Op.String(), Kids: []*Node{
			fromNode(n.Left), fromNode(n.Right),
		}}

	case *compiler.AssignExpr:
		return &Node{Kind: "Assignment", Kids: []*Node{fromNode(n.Target), fromNode(n.Value)}}

	case *compiler.CallExpr:
		out := &Node{Kind: "Call", Name: n.Callee}
		for _, arg := range n.Args {
			out.Kids = append(out.Kids, fromNode(arg))
		}
		return out

	case *compiler.IndexExpr:
		return &Node{Kind: "Index", Kids: []*Node{fromNode(n.Array), fromNode(n.Index)}}

	case *compiler.GroupExpr:
		return &Node{Kind: "Grouping", Kids: []*Node{fromNode(n.Inner)}}

	// Types

	case *compiler.BasicType:
		return &Node{Kind: "BasicType", Name: n.Kind.String()}

	case *compiler.ArrayType:
		out := &Node{Kind: "ArrayType"}
		if n.Size != nil {
			out.Int = n.Size.Value
			out.Bool = true // distinguishes a sized array from an unsized one
		}
		out.Kids = []*Node{fromNode(n.Elem)}
		return out

	case *compiler.FuncType:
		out := &Node{Kind: "FuncType", Kids: []*Node{fromNode(n.Return)}}
		for _, param := range n.Params {
			out.Kids = append(out.Kids, &Node{
				Kind: "Param",
				Name: param.Name,
				Kids: []*Node{fromNode(param.Type)},
			})
		}
		return out
	}

	return &Node{Kind: fmt.Sprintf("Unknown(%T)", n)}
}
