// Package compiler translates IPDL documents into logic programs over a
// fixed vocabulary of predicates (object, prop, situation, chain,
// matches_situation, matches_chain, direct_cause, indirect_cause,
// annotation). Output is built as Mangle AST clauses; textual rendering
// is delegated to the Mangle serializer.
package compiler

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ipdlc/internal/ipdl"
)

// situationVar is the conventional variable bound to the situation
// under test in every generated rule.
const situationVar = "Situation"

// Compiler holds the injected capabilities shared by all compile
// operations. It carries no per-document state, so one Compiler may
// compile any number of documents, concurrently if desired; the symbol
// generator is the only shared resource.
type Compiler struct {
	syms     Symbols
	log      *zap.Logger
	parallel int
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithSymbols replaces the default random symbol generator.
func WithSymbols(s Symbols) Option {
	return func(c *Compiler) { c.syms = s }
}

// WithLogger sets the debug logger. The default is a nop logger; the
// compiler never logs above debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Compiler) { c.log = l }
}

// WithParallelism sets how many declarations and chains compile
// concurrently. Values below 2 keep the sequential path.
func WithParallelism(n int) Option {
	return func(c *Compiler) { c.parallel = n }
}

// New returns a Compiler with random symbols and no logging.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		syms:     RandomSymbols{},
		log:      zap.NewNop(),
		parallel: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile translates doc into a complete program: all declarations in
// input order, then all chains in input order. Compilation is
// all-or-nothing; the first error aborts the run with no partial
// result.
func (c *Compiler) Compile(doc *ipdl.Document) (*Program, error) {
	if c.parallel > 1 {
		return c.compileParallel(doc)
	}

	program := &Program{}
	for _, d := range doc.Declarations {
		blocks, err := c.CompileDeclaration(d.Name, d.Decl)
		if err != nil {
			return nil, err
		}
		program.Declarations = append(program.Declarations, blocks...)
	}
	for _, ch := range doc.Chains {
		block, err := c.CompileChain(ch)
		if err != nil {
			return nil, err
		}
		program.Chains = append(program.Chains, block)
	}
	c.log.Debug("compiled document",
		zap.Int("declarations", len(program.Declarations)),
		zap.Int("chains", len(program.Chains)))
	return program, nil
}

// compileParallel fans declarations and chains out over a bounded
// errgroup. Results land in index-addressed slots, so section order is
// identical to the sequential path; only synthesized symbol suffixes
// differ between runs.
func (c *Compiler) compileParallel(doc *ipdl.Document) (*Program, error) {
	declBlocks := make([][]Block, len(doc.Declarations))
	chainBlocks := make([]Block, len(doc.Chains))

	var eg errgroup.Group
	eg.SetLimit(c.parallel)
	for i, d := range doc.Declarations {
		eg.Go(func() error {
			blocks, err := c.CompileDeclaration(d.Name, d.Decl)
			if err != nil {
				return err
			}
			declBlocks[i] = blocks
			return nil
		})
	}
	for i, ch := range doc.Chains {
		eg.Go(func() error {
			block, err := c.CompileChain(ch)
			if err != nil {
				return err
			}
			chainBlocks[i] = block
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	program := &Program{Chains: chainBlocks}
	for _, blocks := range declBlocks {
		program.Declarations = append(program.Declarations, blocks...)
	}
	c.log.Debug("compiled document",
		zap.Int("declarations", len(program.Declarations)),
		zap.Int("chains", len(program.Chains)),
		zap.Int("parallelism", c.parallel))
	return program, nil
}
