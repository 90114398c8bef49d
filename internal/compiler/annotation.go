package compiler

import (
	"github.com/google/mangle/ast"

	"ipdlc/internal/ipdl"
)

// CompileAnnotation attaches one annotation's facts to target, the
// symbol of a chain or situation. An annotation with no target cannot
// be anchored anywhere and is an input error.
func (c *Compiler) CompileAnnotation(a ipdl.Annotation, target string) ([]ast.Clause, error) {
	if target == "" {
		return nil, newError(ErrOrphanAnnotation, a.Name, a)
	}
	targetConst, err := nameTerm(target)
	if err != nil {
		return nil, err
	}
	annotationConst, err := nameTerm(target + "_annotation_" + a.Name)
	if err != nil {
		return nil, err
	}

	out := []ast.Clause{fact("annotation", targetConst, ast.String(a.Name), annotationConst)}
	for _, p := range a.Properties {
		value, err := annotationValue(a.Name, p)
		if err != nil {
			return nil, err
		}
		out = append(out, fact("prop", annotationConst, ast.String(p.Name), value))
	}
	return out, nil
}

// annotationValue quotes string values; symbol values pass through
// verbatim, reserved for variable references.
func annotationValue(name string, p ipdl.Property) (ast.BaseTerm, error) {
	switch v := p.Value.(type) {
	case ipdl.StringValue:
		return ast.String(v.Value), nil
	case ipdl.SymbolValue:
		return nameTerm(v.Value)
	default:
		return nil, newError(ErrUnknownValue, name+"."+p.Name, p.Value)
	}
}
