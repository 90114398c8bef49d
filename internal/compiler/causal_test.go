package compiler

import (
	"testing"

	"github.com/google/mangle/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipdlc/internal/ipdl"
)

func causal(operands ...ipdl.Situation) ipdl.Operation {
	return ipdl.Operation{Operator: ipdl.OpCausal, Operands: operands}
}

// causalRule compiles the operation and returns the overall matching
// rule, which is always the last emitted clause.
func causalRule(t *testing.T, op ipdl.Operation) ast.Clause {
	t.Helper()
	clauses, symbol, err := newTestCompiler().CompileSituation(op, "Situation")
	require.NoError(t, err)
	require.NotEmpty(t, clauses)
	rule := clauses[len(clauses)-1]
	require.Equal(t, testName(t, symbol), rule.Head.Args[0])
	return rule
}

func TestCompileCausal_SingleOperand(t *testing.T) {
	rule := causalRule(t, causal(blockWithEvent("a")))

	assert.Equal(t, []string{"matches_situation"}, premisePreds(t, rule),
		"a length-1 sequence has no causation clauses")
	match := premiseAtoms(t, rule, "matches_situation")[0]
	assert.Equal(t, ast.Variable{Symbol: "Situation"}, match.Args[1],
		"the final operand binds directly to the situation under test")
}

func TestCompileCausal_AdjacentOperandsAreDirect(t *testing.T) {
	rule := causalRule(t, causal(blockWithEvent("a"), blockWithEvent("b")))

	assert.Empty(t, premiseAtoms(t, rule, "indirect_cause"))
	direct := premiseAtoms(t, rule, "direct_cause")
	require.Len(t, direct, 1)
	assert.Equal(t, ast.Variable{Symbol: "Cause1"}, direct[0].Args[0])
	assert.Equal(t, ast.Variable{Symbol: "Situation"}, direct[0].Args[1])

	matches := premiseAtoms(t, rule, "matches_situation")
	require.Len(t, matches, 2)
	// /situation_2 is the first operand; its matcher binds the cause.
	assert.Equal(t, testName(t, "/situation_3"), matches[0].Args[0])
	assert.Equal(t, ast.Variable{Symbol: "Situation"}, matches[0].Args[1])
	assert.Equal(t, testName(t, "/situation_2"), matches[1].Args[0])
	assert.Equal(t, ast.Variable{Symbol: "Cause1"}, matches[1].Args[1])
}

func TestCompileCausal_WildcardBetweenMakesIndirect(t *testing.T) {
	rule := causalRule(t, causal(blockWithEvent("a"), ipdl.Any{}, blockWithEvent("b")))

	assert.Empty(t, premiseAtoms(t, rule, "direct_cause"),
		"a wildcard between operands must never yield direct_cause")
	indirect := premiseAtoms(t, rule, "indirect_cause")
	require.Len(t, indirect, 1)
	assert.Equal(t, ast.Variable{Symbol: "Cause1"}, indirect[0].Args[0])
	assert.Equal(t, ast.Variable{Symbol: "Situation"}, indirect[0].Args[1])

	matches := premiseAtoms(t, rule, "matches_situation")
	require.Len(t, matches, 2, "the wildcard itself contributes no causation clause")
	assert.Equal(t, testName(t, "/situation_2"), matches[1].Args[0],
		"the cause binds to the operand before the wildcard")
}

func TestCompileCausal_ConsecutiveWildcardsStayIndirect(t *testing.T) {
	rule := causalRule(t, causal(blockWithEvent("a"), ipdl.Any{}, ipdl.Any{}, blockWithEvent("b")))

	assert.Empty(t, premiseAtoms(t, rule, "direct_cause"))
	assert.Len(t, premiseAtoms(t, rule, "indirect_cause"), 1)
}

func TestCompileCausal_LeadingWildcardIsSkipped(t *testing.T) {
	rule := causalRule(t, causal(ipdl.Any{}, blockWithEvent("b")))

	assert.Equal(t, []string{"matches_situation"}, premisePreds(t, rule),
		"nothing may be required to precede the first listed operand")
}

func TestCompileCausal_ThreeOperandsThreadBackward(t *testing.T) {
	rule := causalRule(t, causal(blockWithEvent("a"), blockWithEvent("b"), blockWithEvent("c")))

	direct := premiseAtoms(t, rule, "direct_cause")
	require.Len(t, direct, 2)
	assert.Equal(t, ast.Variable{Symbol: "Cause1"}, direct[0].Args[0])
	assert.Equal(t, ast.Variable{Symbol: "Situation"}, direct[0].Args[1])
	assert.Equal(t, ast.Variable{Symbol: "Cause2"}, direct[1].Args[0])
	assert.Equal(t, ast.Variable{Symbol: "Cause1"}, direct[1].Args[1])

	matches := premiseAtoms(t, rule, "matches_situation")
	require.Len(t, matches, 3)
	assert.Equal(t, ast.Variable{Symbol: "Cause1"}, matches[1].Args[1])
	assert.Equal(t, testName(t, "/situation_3"), matches[1].Args[0])
	assert.Equal(t, ast.Variable{Symbol: "Cause2"}, matches[2].Args[1])
	assert.Equal(t, testName(t, "/situation_2"), matches[2].Args[0])
}

func TestCompileCausal_LogicBlockIsOpaquePosition(t *testing.T) {
	rule := causalRule(t, causal(blockWithEvent("a"), ipdl.LogicBlock{}, blockWithEvent("b")))

	// The placeholder holds a position in the causal chain but adds no
	// matcher of its own.
	direct := premiseAtoms(t, rule, "direct_cause")
	require.Len(t, direct, 2)
	matches := premiseAtoms(t, rule, "matches_situation")
	require.Len(t, matches, 2)
	assert.Equal(t, ast.Variable{Symbol: "Cause2"}, matches[1].Args[1],
		"the first operand binds past the placeholder position")
}

func TestCompileCausal_FinalLogicBlockOmitsMatcher(t *testing.T) {
	rule := causalRule(t, causal(blockWithEvent("a"), ipdl.LogicBlock{}))

	matches := premiseAtoms(t, rule, "matches_situation")
	require.Len(t, matches, 1)
	assert.Equal(t, ast.Variable{Symbol: "Cause1"}, matches[0].Args[1])
	assert.Len(t, premiseAtoms(t, rule, "direct_cause"), 1)
}
