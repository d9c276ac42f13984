package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"nova/internal/driver"
	"nova/internal/source"
)

const (
	replHistoryFile = ".nova_history"
	promptMain      = "nova> "
	promptCont      = "  ... "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse statements interactively",
	Long: `Repl reads statements line by line and prints their syntax tree.
Input that stops in the middle of a construct asks for another line; an empty
line forces the parse. Commands: :quit, :mode stmts|expr, :format tree|json|yaml.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

type replState struct {
	mode   driver.ParseMode
	format string
	fs     *source.FileSet
	inputs int
}

func runRepl(cmd *cobra.Command, args []string) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, replHistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	st := &replState{mode: driver.ModeStmts, format: "tree", fs: source.NewFileSet()}
	for {
		code, ok := st.read(cmd, ln)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout())
			break
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if st.command(cmd, trimmed) {
				break
			}
			continue
		}
		if err := st.eval(cmd, code); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// read копит строки, пока парсер считает ввод незаконченным.
func (st *replState) read(cmd *cobra.Command, ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C сбрасывает текущий ввод
			return "", true
		}
		if b.Len() > 0 && strings.TrimSpace(line) == "" {
			return b.String(), true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !st.incomplete(cmd, src) {
			return src, true
		}
	}
}

// incomplete probes src in a scratch FileSet so that half-typed input does
// not leave files behind.
func (st *replState) incomplete(cmd *cobra.Command, src string) bool {
	res, err := driver.ParseSource(cmd.Context(), source.NewFileSet(), "<probe>", []byte(src), st.mode, driverOptions())
	if err != nil || res.Fatal != nil {
		return false
	}
	return res.Incomplete
}

func (st *replState) eval(cmd *cobra.Command, code string) error {
	st.inputs++
	name := fmt.Sprintf("<repl:%d>", st.inputs)
	res, err := driver.ParseSource(cmd.Context(), st.fs, name, []byte(code), st.mode, driverOptions())
	if err != nil {
		return err
	}
	if err := reportToStderr(cmd, res.Bag, res.FileSet); err != nil {
		return err
	}
	if res.Fatal != nil || res.Bag.HasErrors() {
		return nil
	}
	root, ok := resultRoot(res, st.mode)
	if !ok {
		return nil
	}
	return dumpAST(cmd, st.format, res.Builder, root, res.File)
}

// command handles ":" lines; true means exit.
func (st *replState) command(cmd *cobra.Command, line string) bool {
	fields := strings.Fields(line)
	out := cmd.OutOrStdout()
	switch fields[0] {
	case ":q", ":quit", ":exit":
		return true
	case ":mode":
		if len(fields) != 2 {
			fmt.Fprintln(out, "usage: :mode stmts|expr")
			return false
		}
		mode, err := readParseMode(fields[1])
		if err != nil || mode == driver.ModeFile {
			fmt.Fprintln(out, "usage: :mode stmts|expr")
			return false
		}
		st.mode = mode
	case ":format":
		if len(fields) != 2 || (fields[1] != "tree" && fields[1] != "json" && fields[1] != "yaml") {
			fmt.Fprintln(out, "usage: :format tree|json|yaml")
			return false
		}
		st.format = fields[1]
	case ":help":
		fmt.Fprintln(out, ":quit, :mode stmts|expr, :format tree|json|yaml")
	default:
		fmt.Fprintf(out, "unknown command %s (try :help)\n", fields[0])
	}
	return false
}
