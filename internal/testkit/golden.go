package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// UpdateGoldenEnv rewrites golden files instead of comparing when set to 1.
const UpdateGoldenEnv = "NOVA_UPDATE_GOLDEN"

// Diff returns a unified diff of want and got, or "" when they are equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return out
}

// Golden compares got with the file at path.
func Golden(t testing.TB, path, got string) {
	t.Helper()
	if os.Getenv(UpdateGoldenEnv) == "1" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o600); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		return
	}
	want, err := os.ReadFile(path) // #nosec G304 -- test data path
	if err != nil {
		t.Fatalf("read golden %s: %v (set %s=1 to create it)", path, err, UpdateGoldenEnv)
	}
	if d := Diff(string(want), got); d != "" {
		t.Fatalf("golden mismatch for %s:\n%s", path, d)
	}
}
