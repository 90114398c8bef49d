package compiler

import "github.com/google/mangle/ast"

// Clause-building helpers. All output predicates go through these so
// the fixed vocabulary stays in one place.

// fact wraps an atom in a bodyless clause.
func fact(pred string, args ...ast.BaseTerm) ast.Clause {
	return ast.Clause{Head: ast.NewAtom(pred, args...)}
}

// nameTerm converts a symbol string into a Mangle name constant.
// Synthesized symbols always convert; user-supplied names (chain and
// variable references) can fail.
func nameTerm(symbol string) (ast.Constant, error) {
	name, err := ast.Name(symbol)
	if err != nil {
		return ast.Constant{}, newError(ErrInvalidName, symbol, err)
	}
	return name, nil
}

func situationAtom(v string) ast.Atom {
	return ast.NewAtom("situation", ast.Variable{Symbol: v})
}

// matchesSituation builds matches_situation(<symbol>, arg).
func matchesSituation(symbol string, arg ast.BaseTerm) (ast.Atom, error) {
	name, err := nameTerm(symbol)
	if err != nil {
		return ast.Atom{}, err
	}
	return ast.NewAtom("matches_situation", name, arg), nil
}

// matcherRule builds the standard guarded matcher rule
//
//	matches_situation(<symbol>, V) :- situation(V), <extra...>.
func matcherRule(symbol, v string, extra []ast.Term) (ast.Clause, error) {
	head, err := matchesSituation(symbol, ast.Variable{Symbol: v})
	if err != nil {
		return ast.Clause{}, err
	}
	premises := make([]ast.Term, 0, len(extra)+1)
	premises = append(premises, situationAtom(v))
	premises = append(premises, extra...)
	return ast.Clause{Head: head, Premises: premises}, nil
}
