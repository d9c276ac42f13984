package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredKeepsTextWithoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	cases := map[string]string{
		"0.1.0-dev": "0.1.0-dev",
		"1.2.3":     "1.2.3",
		"nightly":   "nightly",
	}
	for in, want := range cases {
		if got := Colored(in); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBanner(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	info := Info{Version: "1.2.3", GitCommit: "abc123def456", BuildDate: "2024-01-15"}
	if got, want := info.Banner(), "nova 1.2.3 (abc123d, 2024-01-15)"; got != want {
		t.Errorf("Banner() = %q, want %q", got, want)
	}
	if got, want := (Info{Version: "1.2.3"}).Banner(), "nova 1.2.3"; got != want {
		t.Errorf("Banner() = %q, want %q", got, want)
	}
}

func TestCurrentUsesOverrides(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = " 9.9.9 "
	GitCommit = "deadbeef"
	info := Current()
	if info.Version != "9.9.9" || info.GitCommit != "deadbeef" {
		t.Errorf("Current() = %+v", info)
	}
}
