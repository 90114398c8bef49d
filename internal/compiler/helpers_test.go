package compiler

import (
	"testing"

	"github.com/google/mangle/ast"
	"github.com/stretchr/testify/require"
)

func newTestCompiler() *Compiler {
	return New(WithSymbols(&SequentialSymbols{}))
}

func testName(t *testing.T, symbol string) ast.Constant {
	t.Helper()
	name, err := ast.Name(symbol)
	require.NoError(t, err)
	return name
}

// premisePreds returns the predicate of every body atom in order.
func premisePreds(t *testing.T, clause ast.Clause) []string {
	t.Helper()
	var preds []string
	for _, premise := range clause.Premises {
		atom, ok := premise.(ast.Atom)
		require.True(t, ok, "premise %v is not an atom", premise)
		preds = append(preds, atom.Predicate.Symbol)
	}
	return preds
}

// premiseAtoms returns the body atoms with the given predicate.
func premiseAtoms(t *testing.T, clause ast.Clause, pred string) []ast.Atom {
	t.Helper()
	var atoms []ast.Atom
	for _, premise := range clause.Premises {
		atom, ok := premise.(ast.Atom)
		require.True(t, ok, "premise %v is not an atom", premise)
		if atom.Predicate.Symbol == pred {
			atoms = append(atoms, atom)
		}
	}
	return atoms
}

// headsWithSymbol counts clauses whose head is matches_situation with
// the given first argument.
func headsWithSymbol(t *testing.T, clauses []ast.Clause, symbol string) int {
	t.Helper()
	want := testName(t, symbol)
	n := 0
	for _, clause := range clauses {
		if clause.Head.Predicate.Symbol == "matches_situation" && clause.Head.Args[0] == want {
			n++
		}
	}
	return n
}

func compileErr(t *testing.T, err error) *Error {
	t.Helper()
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	return cerr
}
