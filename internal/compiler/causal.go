package compiler

import (
	"fmt"

	"github.com/google/mangle/ast"

	"ipdlc/internal/ipdl"
)

// compileCausal compiles a causally ordered operand sequence. The final
// operand binds to the situation under test; earlier operands thread
// backward through fresh cause variables. A link is direct_cause when
// nothing separates cause and effect, and indirect_cause when one or
// more wildcards do. Wildcards never get a position of their own, and
// nothing is ever required to precede the first operand: whatever would
// have caused the first event is out of scope.
func (c *Compiler) compileCausal(op ipdl.Operation, v string) ([]ast.Clause, string, error) {
	symbol := c.syms.Next("situation")

	var out []ast.Clause
	symbols := make([]string, len(op.Operands))
	for i, operand := range op.Operands {
		rules, operandSymbol, err := c.CompileSituation(operand, v)
		if err != nil {
			return nil, "", err
		}
		out = append(out, rules...)
		symbols[i] = operandSymbol
	}

	var body []ast.Term
	last := len(op.Operands) - 1
	if last >= 0 && symbols[last] != "" {
		match, err := matchesSituation(symbols[last], ast.Variable{Symbol: v})
		if err != nil {
			return nil, "", err
		}
		body = append(body, match)
	}

	// Thread the chain from the last operand backward. effect is the
	// variable of the nearest non-wildcard successor already placed.
	effect := ast.Variable{Symbol: v}
	minted := 0
	for i := last - 1; i >= 0; i-- {
		if isWildcard(op.Operands[i]) {
			continue
		}
		minted++
		cause := ast.Variable{Symbol: fmt.Sprintf("Cause%d", minted)}
		if symbols[i] != "" {
			match, err := matchesSituation(symbols[i], cause)
			if err != nil {
				return nil, "", err
			}
			body = append(body, match)
		}
		relation := "direct_cause"
		if isWildcard(op.Operands[i+1]) {
			relation = "indirect_cause"
		}
		body = append(body, ast.NewAtom(relation, cause, effect))
		effect = cause
	}

	// A sequence of nothing but inert placeholders still needs a safe
	// rule; fall back to the unconditional guard.
	if len(body) == 0 {
		body = append(body, situationAtom(v))
	}

	head, err := matchesSituation(symbol, ast.Variable{Symbol: v})
	if err != nil {
		return nil, "", err
	}
	out = append(out, ast.Clause{Head: head, Premises: body})
	return out, symbol, nil
}

func isWildcard(s ipdl.Situation) bool {
	_, ok := s.(ipdl.Any)
	return ok
}
