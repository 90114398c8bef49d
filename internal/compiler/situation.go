package compiler

import (
	"github.com/google/mangle/ast"
	"go.uber.org/zap"

	"ipdlc/internal/ipdl"
)

// eventVar names the event sub-situation inside a block rule.
const eventVar = "Event"

// CompileSituation compiles one situation node into a set of clauses
// and the symbol of its freshly minted matcher predicate. v is the
// variable standing for the situation under test.
//
// The returned symbol is empty for the inert logic_block placeholder:
// it contributes no matcher of its own, and consumers never emit a
// matches_situation clause for an empty symbol.
func (c *Compiler) CompileSituation(s ipdl.Situation, v string) ([]ast.Clause, string, error) {
	switch node := s.(type) {
	case ipdl.Any:
		symbol := c.syms.Next("situation")
		rule, err := matcherRule(symbol, v, nil)
		if err != nil {
			return nil, "", err
		}
		return []ast.Clause{rule}, symbol, nil

	case ipdl.Block:
		return c.compileBlock(node, v)

	case ipdl.LogicBlock:
		return nil, "", nil

	case ipdl.Operation:
		switch node.Operator {
		case ipdl.OpCausal:
			return c.compileCausal(node, v)
		case ipdl.OpOr:
			return c.compileDisjunction(node, v)
		default:
			return nil, "", newError(ErrUnparsableSituation, string(node.Operator), node)
		}

	case ipdl.RuleCall:
		symbol := c.syms.Next("situation")
		chainConst, err := nameTerm(chainSymbol(node.Chain))
		if err != nil {
			return nil, "", err
		}
		call := ast.NewAtom("matches_chain", chainConst, ast.Variable{Symbol: v})
		rule, err := matcherRule(symbol, v, []ast.Term{call})
		if err != nil {
			return nil, "", err
		}
		return []ast.Clause{rule}, symbol, nil

	case ipdl.Variable:
		symbol := c.syms.Next("situation")
		head, err := matchesSituation(symbol, ast.Variable{Symbol: v})
		if err != nil {
			return nil, "", err
		}
		external, err := matchesSituation("/matches_situation_"+node.Name, ast.Variable{Symbol: v})
		if err != nil {
			return nil, "", err
		}
		rule := ast.Clause{Head: head, Premises: []ast.Term{external}}
		return []ast.Clause{rule}, symbol, nil

	default:
		return nil, "", newError(ErrUnparsableSituation, "", s)
	}
}

// compileBlock matches situations by property values. Only the event
// property is recognized; other properties are skipped.
func (c *Compiler) compileBlock(b ipdl.Block, v string) ([]ast.Clause, string, error) {
	symbol := c.syms.Next("situation")
	var rules []ast.Clause
	var extra []ast.Term
	for _, p := range b.Properties {
		if p.Name != "event" {
			c.log.Debug("ignoring unrecognized block property", zap.String("property", p.Name))
			continue
		}
		switch value := p.Value.(type) {
		case ipdl.StringValue:
			extra = append(extra,
				ast.NewAtom("prop", ast.Variable{Symbol: v}, ast.String("event"), ast.String(value.Value)))
		case ipdl.ExpressionValue:
			exprRules, exprSymbol, err := c.compileExpression(value, v)
			if err != nil {
				return nil, "", err
			}
			rules = append(rules, exprRules...)
			event := ast.Variable{Symbol: eventVar}
			extra = append(extra,
				ast.NewAtom("prop", ast.Variable{Symbol: v}, ast.String("event"), event))
			match, err := matchesSituation(exprSymbol, event)
			if err != nil {
				return nil, "", err
			}
			extra = append(extra, match)
		default:
			return nil, "", newError(ErrUnknownValue, p.Name, p.Value)
		}
	}
	rule, err := matcherRule(symbol, v, extra)
	if err != nil {
		return nil, "", err
	}
	return append(rules, rule), symbol, nil
}

// compileExpression compiles a block's event expression. Only the
// disjunctive shape is supported; any other operator fails rather than
// miscompiling.
func (c *Compiler) compileExpression(e ipdl.ExpressionValue, v string) ([]ast.Clause, string, error) {
	if e.Operator != ipdl.OpOr {
		return nil, "", newError(ErrUnsupportedExpression, string(e.Operator), e)
	}
	symbol := c.syms.Next("situation")
	var out []ast.Clause
	for _, operand := range e.Operands {
		rules, operandSymbol, err := c.CompileSituation(operand, v)
		if err != nil {
			return nil, "", err
		}
		out = append(out, rules...)
		if operandSymbol == "" {
			continue
		}
		head, err := matchesSituation(symbol, ast.Variable{Symbol: v})
		if err != nil {
			return nil, "", err
		}
		match, err := matchesSituation(operandSymbol, ast.Variable{Symbol: v})
		if err != nil {
			return nil, "", err
		}
		out = append(out, ast.Clause{Head: head, Premises: []ast.Term{match}})
	}
	return out, symbol, nil
}

// compileDisjunction emits one satisfying rule per alternative, all
// sharing one fresh head symbol. Inert operands contribute nothing.
func (c *Compiler) compileDisjunction(op ipdl.Operation, v string) ([]ast.Clause, string, error) {
	symbol := c.syms.Next("situation")
	var out []ast.Clause
	for _, operand := range op.Operands {
		rules, operandSymbol, err := c.CompileSituation(operand, v)
		if err != nil {
			return nil, "", err
		}
		out = append(out, rules...)
		if operandSymbol == "" {
			continue
		}
		match, err := matchesSituation(operandSymbol, ast.Variable{Symbol: v})
		if err != nil {
			return nil, "", err
		}
		alternative, err := matcherRule(symbol, v, []ast.Term{match})
		if err != nil {
			return nil, "", err
		}
		out = append(out, alternative)
	}
	return out, symbol, nil
}
