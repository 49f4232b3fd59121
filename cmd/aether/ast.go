package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aether/internal/diagfmt"
	"aether/internal/driver"
)

var astCmd = &cobra.Command{
	Use:   "ast [flags] file.aeth",
	Short: "Print the parse tree of an aether source file",
	Long:  `Ast parses an aether source file and prints its tree as indented s-expressions`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func runAST(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	res, err := driver.DumpAST(os.Stdout, filePath, maxDiagnostics)
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:   useColor,
			Context: 2,
		})
		os.Exit(1)
	}
	return nil
}
