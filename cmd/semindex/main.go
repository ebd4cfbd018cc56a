// Command semindex is the thin CLI around the single-file indexing
// pipeline: parse one file (or a directory of files) with tree-sitter, run
// the index build, and print the canonical JSON encoding to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "semindex",
		Short: "Per-file semantic indexer for JavaScript, TypeScript, Python, and Rust",
		Long: `semindex builds a queryable semantic index for a single source file:
every declaration, the lexical scope tree it lives in, and every reference
(calls, constructor invocations, type uses, property accesses, reads and
writes), annotated with receivers, property chains, and callback context.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default from SEMINDEX_LOG_LEVEL)")
	root.PersistentFlags().String("log-format", "", "log format: text or json (default from SEMINDEX_LOG_FORMAT)")

	root.AddCommand(newFileCmd())
	root.AddCommand(newDirCmd())
	return root
}
