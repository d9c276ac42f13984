package main

import (
	"os"

	"github.com/spf13/cobra"

	"nova/internal/diag"
	"nova/internal/diagfmt"
	"nova/internal/source"
)

// reportToStderr печатает диагностики рядом с основным выводом команды.
func reportToStderr(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || (bag.Len() == 0 && bag.Dropped() == 0) {
		return nil
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	return diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     color,
		ShowNotes: true,
	})
}
