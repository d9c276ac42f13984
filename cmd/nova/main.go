package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nova/internal/version"
)

// errHasErrors: команда отработала, но нашла ошибки; выходим с кодом 1 без лишнего текста.
var errHasErrors = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:           "nova",
	Short:         "Nova language front end",
	Long:          `Nova tokenizes and parses nova sources and reports diagnostics`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return startSession(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopSession(cmd)
	},
}

func init() {
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file (0 = unlimited)")
	pf.Bool("timings", false, "show timing information")
	pf.String("trace", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-output", "-", "trace output path (- for stderr, *.ndjson for NDJSON)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "text", "trace event format (text|ndjson)")
	pf.String("config", "", "path to nova.toml (default: search upwards from the working directory)")
	pf.Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
	pf.String("cpuprofile", "", "write CPU profile to file")
	pf.String("memprofile", "", "write heap profile to file")
	pf.String("exectrace", "", "write runtime execution trace to file")
	pf.String("ui", "auto", "progress view for directories (auto|on|off)")
}

// main runs the root command. Any error, including reported diagnostics,
// exits with status 1.
func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errHasErrors) {
			fmt.Fprintf(os.Stderr, "nova: %v\n", err)
		}
		stopSession(rootCmd)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
