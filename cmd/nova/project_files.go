package main

import (
	"fmt"
	"os"

	"nova/internal/project"
)

// collectInputs expands arguments into source files: files are kept as
// given, directories are walked with the [sources] globs of cfg.
func collectInputs(cfg project.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := cfg.Sources.Collect(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no source files found")
	}
	return files, nil
}
