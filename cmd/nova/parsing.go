package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nova/internal/ast"
	"nova/internal/diagfmt"
	"nova/internal/driver"
	"nova/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.nova",
	Short: "Parse a nova source file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json|yaml)")
	parseCmd.Flags().String("mode", "file", "entry point (file|stmts|expr)")
}

func readParseMode(value string) (driver.ParseMode, error) {
	switch value {
	case "file":
		return driver.ModeFile, nil
	case "stmts":
		return driver.ModeStmts, nil
	case "expr":
		return driver.ModeExpr, nil
	default:
		return 0, fmt.Errorf("invalid --mode value %q (expected file|stmts|expr)", value)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "tree", "json", "yaml":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	modeStr, err := cmd.Flags().GetString("mode")
	if err != nil {
		return err
	}
	mode, err := readParseMode(modeStr)
	if err != nil {
		return err
	}

	opts := driverOptions()
	var result *driver.ParseResult
	if mode == driver.ModeFile {
		result, err = driver.Parse(cmd.Context(), filePath, opts)
	} else {
		var content []byte
		content, err = os.ReadFile(filePath)
		if err == nil {
			result, err = driver.ParseSource(cmd.Context(), source.NewFileSet(), filePath, content, mode, opts)
		}
	}
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if err := reportToStderr(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	// после фатальной ошибки дерева нет
	if result.Fatal != nil {
		return errHasErrors
	}

	root, ok := resultRoot(result, mode)
	if !ok {
		return errHasErrors
	}
	if err := dumpAST(cmd, format, result.Builder, root, result.File); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

// resultRoot выбирает корень дампа по режиму; false, если дерева нет.
func resultRoot(result *driver.ParseResult, mode driver.ParseMode) (ast.Node, bool) {
	if mode == driver.ModeExpr {
		if !result.Expr.IsValid() {
			return ast.Node{}, false
		}
		return result.Builder.ExprNode(result.Expr), true
	}
	if !result.FileID.IsValid() {
		return ast.Node{}, false
	}
	return result.Builder.FileNode(result.FileID), true
}

func dumpAST(cmd *cobra.Command, format string, b *ast.Builder, root ast.Node, f *source.File) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return diagfmt.FormatASTJSON(out, b, root)
	case "yaml":
		return diagfmt.FormatASTYAML(out, b, root)
	default:
		return diagfmt.FormatASTTree(out, b, root, f)
	}
}
