package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"nova/internal/diag"
	"nova/internal/fix"
	"nova/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file.nova|directory]...",
	Short: "Apply suggested fixes",
	Long: `Fix parses the inputs, picks fixes from the diagnostics and shows the
resulting changes as a unified diff. With --write the files are rewritten.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every machine-applicable fix")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply the fix with a specific identifier")
	fixCmd.Flags().Bool("write", false, "write the changes back to disk")
}

func readApplyOptions(cmd *cobra.Command) (fix.ApplyOptions, error) {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fix.ApplyOptions{}, err
	}
	if targetID != "" && (applyAll || applyOnce) {
		return fix.ApplyOptions{}, fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fix.ApplyOptions{}, fmt.Errorf("--all and --once are mutually exclusive")
	}

	opts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, TargetID: targetID}
	switch {
	case targetID != "":
		opts.Mode = fix.ApplyModeID
	case applyAll:
		opts.Mode = fix.ApplyModeAll
	}
	return opts, nil
}

func runFix(cmd *cobra.Command, args []string) error {
	opts, err := readApplyOptions(cmd)
	if err != nil {
		return err
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	files, err := collectInputs(current.config, args)
	if err != nil {
		return err
	}
	fs, results, err := parseInputs(cmd, "fix", files)
	if err != nil {
		return err
	}

	var diagnostics []diag.Diagnostic
	for _, r := range results {
		if r.ParseResult == nil {
			continue
		}
		r.Bag.Sort()
		diagnostics = append(diagnostics, r.Bag.Items()...)
	}

	res, applyErr := fix.Apply(fs, diagnostics, opts)
	out := cmd.OutOrStdout()
	if err := printApplyResult(out, res, applyErr); err != nil {
		return err
	}
	if res == nil || len(res.FileChanges) == 0 {
		return nil
	}
	if write {
		return fix.Write(fs, res.FileChanges)
	}
	return printChanges(out, fs, res.FileChanges)
}

func printApplyResult(out io.Writer, res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}
	if len(res.Applied) > 0 {
		fmt.Fprintf(out, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.Path
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(out, "  %s [%s] at %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(out, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}
	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			_, err := fmt.Fprintln(out, "No applicable fixes found.")
			return err
		}
		return applyErr
	}
	return nil
}

// printChanges показывает unified diff вместо записи на диск.
func printChanges(out io.Writer, fs *source.FileSet, changes []fix.FileChange) error {
	for _, ch := range changes {
		f := fs.Get(ch.File)
		if f == nil {
			continue
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(f.Content)),
			B:        difflib.SplitLines(string(ch.Content)),
			FromFile: ch.Path,
			ToFile:   ch.Path + " (fixed)",
			Context:  3,
		})
		if err != nil {
			return err
		}
		if _, err := io.WriteString(out, text); err != nil {
			return err
		}
	}
	return nil
}
