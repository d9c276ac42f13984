package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nova/internal/diag"
	"nova/internal/diagfmt"
	"nova/internal/driver"
	"nova/internal/source"
	"nova/internal/ui"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file.nova|directory]...",
	Short: "Report lexical and syntax diagnostics",
	Long: `Diag parses every given file (directories are expanded with the [sources]
globs of nova.toml) and prints the diagnostics. It exits with status 1 when
any error is reported.`,
	RunE: runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	diagCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	diagCmd.Flags().Bool("notes", true, "include notes and secondary labels")
	diagCmd.Flags().Bool("fixes", false, "show suggested fixes")
	diagCmd.Flags().Bool("preview", false, "show a before/after preview of fixes (implies --fixes)")
}

type diagFlags struct {
	format   string
	pathMode diagfmt.PathMode
	notes    bool
	fixes    bool
	preview  bool
}

func readDiagFlags(cmd *cobra.Command) (diagFlags, error) {
	var f diagFlags
	var err error
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, err
	}
	switch f.format {
	case "pretty", "short", "json":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	pm, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return f, err
	}
	var ok bool
	if f.pathMode, ok = diagfmt.ParsePathMode(pm); !ok {
		return f, fmt.Errorf("invalid --path-mode value %q", pm)
	}
	if f.notes, err = cmd.Flags().GetBool("notes"); err != nil {
		return f, err
	}
	if f.fixes, err = cmd.Flags().GetBool("fixes"); err != nil {
		return f, err
	}
	if f.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return f, err
	}
	f.fixes = f.fixes || f.preview
	return f, nil
}

func runDiag(cmd *cobra.Command, args []string) error {
	flags, err := readDiagFlags(cmd)
	if err != nil {
		return err
	}
	files, err := collectInputs(current.config, args)
	if err != nil {
		return err
	}
	fs, results, err := parseInputs(cmd, "diag", files)
	if err != nil {
		return err
	}

	bag := driver.Merged(results)
	if err := printDiagnostics(cmd, bag, fs, flags); err != nil {
		return err
	}
	if bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

// parseInputs runs driver.ParseDir, behind the progress view when --ui allows it.
func parseInputs(cmd *cobra.Command, title string, files []string) (*source.FileSet, []driver.ParseDirResult, error) {
	mode, err := uiModeFlag(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts := driverOptions()
	if !shouldUseTUI(mode, len(files)) {
		return driver.ParseDir(cmd.Context(), files, opts)
	}

	var (
		fs      *source.FileSet
		results []driver.ParseDirResult
	)
	err = ui.RunWithProgress(cmd.Context(), cmd.OutOrStdout(), title, files, func(ctx context.Context, sink driver.ProgressSink) error {
		o := opts
		o.Progress = sink
		var perr error
		fs, results, perr = driver.ParseDir(ctx, files, o)
		return perr
	})
	return fs, results, err
}

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, flags diagFlags) error {
	out := cmd.OutOrStdout()
	wd, _ := os.Getwd()
	switch flags.format {
	case "short":
		return diagfmt.Short(out, bag, fs, flags.notes)
	case "json":
		return diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         flags.pathMode,
			BaseDir:          wd,
			IncludeNotes:     flags.notes,
			IncludeFixes:     flags.fixes,
			IncludePreviews:  flags.preview,
		})
	default:
		color, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		return diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:       color,
			PathMode:    flags.pathMode,
			BaseDir:     wd,
			ShowNotes:   flags.notes,
			ShowFixes:   flags.fixes,
			ShowPreview: flags.preview,
		})
	}
}
