package compiler

import (
	"strings"

	"github.com/google/mangle/ast"
)

// Block is a named group of clauses emitted together. Blocks render
// separated by blank lines.
type Block struct {
	Name    string
	Clauses []ast.Clause
}

// Program is the compiled output: a declarations section followed by a
// chains section. Callers that want structured output work with the
// blocks directly; Render produces the serialized text.
type Program struct {
	Declarations []Block
	Chains       []Block
}

// vocabularyDecls declares the fixed output vocabulary so that the
// rendered program forms a self-contained unit under Mangle analysis.
const vocabularyDecls = `Decl object(Name).
Decl prop(Subject, Key, Value).
Decl situation(S).
Decl chain(C).
Decl matches_situation(Matcher, S).
Decl matches_chain(C, S).
Decl direct_cause(Cause, Effect).
Decl indirect_cause(Cause, Effect).
Decl annotation(Target, Name, Sym).
`

// Render serializes the program: a declarations section and a chains
// section, each under a comment header, blocks joined by blank lines.
func (p *Program) Render() string {
	var sb strings.Builder
	sb.WriteString("# declarations\n")
	renderBlocks(&sb, p.Declarations)
	sb.WriteString("\n# chains\n")
	renderBlocks(&sb, p.Chains)
	return sb.String()
}

// RenderWithDecls prepends the vocabulary declarations, making the
// output acceptable to Mangle semantic analysis without any external
// schema.
func (p *Program) RenderWithDecls() string {
	return vocabularyDecls + "\n" + p.Render()
}

func renderBlocks(sb *strings.Builder, blocks []Block) {
	for i, block := range blocks {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, clause := range block.Clauses {
			sb.WriteString(clause.String())
			sb.WriteString("\n")
		}
	}
}
