// Package main implements the ipdlc command line interface: a thin
// wrapper that reads an IPDL JSON document, compiles it, and prints the
// resulting logic program.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ipdlc/internal/compiler"
	"ipdlc/internal/ipdl"
)

var (
	// Flags
	outputPath    string
	deterministic bool
	parallelism   int
	withDecls     bool
	validate      bool
	verbose       bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ipdlc [input.json]",
	Short: "Compile IPDL process descriptions into Mangle logic programs",
	Long: `ipdlc compiles a structured process-description document (IPDL:
declarations of typed objects, plus chains of causally ordered
situations) into a flat logic program over a fixed predicate
vocabulary, ready for a downstream Datalog evaluator.

Reads the JSON document from the given file, or from standard input
when the argument is omitted or "-".`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	source := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
		source = args[0]
	}

	doc, err := ipdl.DecodeDocument(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", source, err)
	}

	opts := []compiler.Option{compiler.WithLogger(logger)}
	if deterministic {
		opts = append(opts, compiler.WithSymbols(&compiler.SequentialSymbols{}))
	}
	if parallelism > 1 {
		opts = append(opts, compiler.WithParallelism(parallelism))
	}

	program, err := compiler.New(opts...).Compile(doc)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", source, err)
	}

	if validate {
		if err := compiler.Validate(program); err != nil {
			return err
		}
		logger.Debug("compiled program verified", zap.String("source", source))
	}

	text := program.Render()
	if withDecls {
		text = program.RenderWithDecls()
	}

	if outputPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	return os.WriteFile(outputPath, []byte(text), 0o644)
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the program to a file instead of stdout")
	rootCmd.Flags().BoolVar(&deterministic, "deterministic", false, "use counter-based symbols for reproducible output")
	rootCmd.Flags().IntVar(&parallelism, "parallel", 1, "number of concurrent declaration/chain compiles")
	rootCmd.Flags().BoolVar(&withDecls, "decls", false, "prepend vocabulary Decl statements to the output")
	rootCmd.Flags().BoolVar(&validate, "validate", false, "parse and analyze the output with Mangle before printing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
