package compiler

import (
	"github.com/google/mangle/ast"

	"ipdlc/internal/ipdl"
)

// CompileDeclaration compiles one named declaration. A dictionary
// flattens recursively, joining inner names to the outer name with a
// dot and yielding one block per inner object; the dictionary level
// itself emits nothing. An object yields a single block of object/prop
// facts in declaration order.
func (c *Compiler) CompileDeclaration(name string, decl ipdl.Declaration) ([]Block, error) {
	switch d := decl.(type) {
	case ipdl.Dictionary:
		var blocks []Block
		for _, entry := range d.Entries {
			inner, err := c.CompileDeclaration(name+"."+entry.Name, entry.Decl)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, inner...)
		}
		return blocks, nil
	case ipdl.Object:
		block, err := compileObject(name, d)
		if err != nil {
			return nil, err
		}
		return []Block{block}, nil
	default:
		return nil, newError(ErrUnknownDeclaration, name, decl)
	}
}

func compileObject(name string, obj ipdl.Object) (Block, error) {
	clauses := []ast.Clause{fact("object", ast.String(name))}
	for _, p := range obj.Properties {
		value, err := objectValue(name, p)
		if err != nil {
			return Block{}, err
		}
		clauses = append(clauses, fact("prop", ast.String(name), ast.String(p.Name), value))
	}
	return Block{Name: name, Clauses: clauses}, nil
}

// objectValue compiles one object property value. Only one level of
// object nesting is supported, so a nested object value is an input
// error rather than a recursion point.
func objectValue(name string, p ipdl.Property) (ast.BaseTerm, error) {
	switch v := p.Value.(type) {
	case ipdl.StringValue:
		return ast.String(v.Value), nil
	case ipdl.ObjectValue:
		return nil, newError(ErrNestedObject, name+"."+p.Name, v)
	default:
		return nil, newError(ErrUnknownValue, name+"."+p.Name, p.Value)
	}
}
