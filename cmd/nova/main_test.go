package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"nova/internal/driver"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--color=off", "--ui=off"}, args...))
	err := rootCmd.Execute()
	stopSession(rootCmd)
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiagShortReportsErrors(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "ok.nova", "fn main() { let a = 1; }\n")
	writeSource(t, dir, "sub/bad.nova", "fn main() { let a = 1 let b = 2; }\n")
	writeSource(t, dir, "notes.txt", "ignored")

	out, _, err := execute(t, "diag", "--format=short", "--notes=false", dir)
	require.ErrorIs(t, err, errHasErrors)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "error SYN2012")
	require.Contains(t, lines[0], "bad.nova:1:22")
}

func TestDiagCleanFileSucceeds(t *testing.T) {
	path := writeSource(t, t.TempDir(), "ok.nova", "fn main() { let a = 1; }\n")
	out, _, err := execute(t, "diag", "--format=json", path)
	require.NoError(t, err)

	var payload struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Zero(t, payload.Count)
}

func TestParseDumpsTree(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.nova", "fn main() { x + 1 }")
	out, stderr, err := execute(t, "parse", "--format=tree", "--mode=file", path)
	require.NoError(t, err)
	require.Empty(t, stderr)
	require.True(t, strings.HasPrefix(out, "File 1:1-1:20\n"), out)
	require.Contains(t, out, "Expr Binary +")
}

func TestParseExprMode(t *testing.T) {
	path := writeSource(t, t.TempDir(), "e.nova", "a * (b + c)")
	out, _, err := execute(t, "parse", "--format=tree", "--mode=expr", path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Expr Binary *"), out)
}

func TestParseExprModeReportsBrokenInput(t *testing.T) {
	path := writeSource(t, t.TempDir(), "e.nova", "a * ")
	out, stderr, err := execute(t, "parse", "--format=tree", "--mode=expr", path)
	require.ErrorIs(t, err, errHasErrors)
	require.Empty(t, out)
	require.Contains(t, stderr, "error[")
}

func TestTokenizeJSON(t *testing.T) {
	path := writeSource(t, t.TempDir(), "t.nova", "let x = 42;")
	out, _, err := execute(t, "tokenize", "--format=json", path)
	require.NoError(t, err)

	var toks []struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &toks))
	require.NotEmpty(t, toks)
}

func TestTokenizeFatalPrintsNoTokens(t *testing.T) {
	path := writeSource(t, t.TempDir(), "deep.nova", "let x = 1; "+strings.Repeat("/*", 300))
	for _, format := range []string{"json", "pretty"} {
		out, stderr, err := execute(t, "tokenize", "--format="+format, path)
		require.ErrorIs(t, err, errHasErrors)
		require.Empty(t, out, format)
		require.Contains(t, stderr, "LEX1008")
	}
}

func TestFixShowsDiffWithoutWriting(t *testing.T) {
	src := "fn main() { let a = 1 let b = 2; }\n"
	path := writeSource(t, t.TempDir(), "bad.nova", src)

	out, _, err := execute(t, "fix", "--write=false", path)
	require.NoError(t, err)
	require.Contains(t, out, "Applied 1 fix(es):")
	require.Contains(t, out, "+fn main() { let a = 1; let b = 2; }")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, src, string(data))
}

func TestFixWrite(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.nova", "fn main() { let a = 1 let b = 2; }\n")

	_, _, err := execute(t, "fix", "--write=true", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "fn main() { let a = 1; let b = 2; }\n", string(data))
}

func TestReadModes(t *testing.T) {
	mode, err := readUIMode(" ON ")
	require.NoError(t, err)
	require.Equal(t, uiModeOn, mode)
	_, err = readUIMode("sometimes")
	require.Error(t, err)
	require.False(t, shouldUseTUI(uiModeOff, 10))
	require.True(t, shouldUseTUI(uiModeOn, 1))

	pm, err := readParseMode("stmts")
	require.NoError(t, err)
	require.Equal(t, driver.ModeStmts, pm)
	_, err = readParseMode("items")
	require.Error(t, err)
}
