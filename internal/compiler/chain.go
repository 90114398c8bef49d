package compiler

import (
	"github.com/google/mangle/ast"

	"ipdlc/internal/ipdl"
)

// chainSymbol names the chain's target symbol: /chain_<name>.
func chainSymbol(name string) string {
	return "/chain_" + name
}

// CompileChain compiles a named chain into one block: the chain fact,
// the rules for each child situation, a single matches_chain rule
// requiring every child to match, and the chain's annotation facts.
//
// Every child shares the Situation variable in the rule body, so the
// rule does not order children relative to each other; only the causal
// structure inside each child imposes ordering.
func (c *Compiler) CompileChain(ch ipdl.Chain) (Block, error) {
	symbol := chainSymbol(ch.Name)
	chainConst, err := nameTerm(symbol)
	if err != nil {
		return Block{}, err
	}

	clauses := []ast.Clause{fact("chain", chainConst)}

	var childRules []ast.Clause
	var body []ast.Term
	for _, child := range ch.Situations {
		rules, childSymbol, err := c.CompileSituation(child, situationVar)
		if err != nil {
			return Block{}, err
		}
		childRules = append(childRules, rules...)
		body = append(body, situationAtom(situationVar))
		if childSymbol == "" {
			continue
		}
		match, err := matchesSituation(childSymbol, ast.Variable{Symbol: situationVar})
		if err != nil {
			return Block{}, err
		}
		body = append(body, match)
	}
	if len(body) == 0 {
		body = append(body, situationAtom(situationVar))
	}

	head := ast.NewAtom("matches_chain", chainConst, ast.Variable{Symbol: situationVar})
	clauses = append(clauses, childRules...)
	clauses = append(clauses, ast.Clause{Head: head, Premises: body})

	for _, annotation := range ch.Annotations {
		facts, err := c.CompileAnnotation(annotation, symbol)
		if err != nil {
			return Block{}, err
		}
		clauses = append(clauses, facts...)
	}
	return Block{Name: ch.Name, Clauses: clauses}, nil
}
