package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nova/internal/driver"
	"nova/internal/observ"
	"nova/internal/project"
)

// session holds what the persistent flags set up for one invocation.
type session struct {
	config  project.Config
	limits  project.Limits
	timer   *observ.Timer
	jobs    int
	cleanup []func()
}

var current *session

func startSession(cmd *cobra.Command) error {
	s := &session{}
	current = s

	traceCleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	s.cleanup = append(s.cleanup, traceCleanup)

	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	s.cleanup = append(s.cleanup, profCleanup)

	flags := cmd.Root().PersistentFlags()
	s.config, err = loadConfig(cmd)
	if err != nil {
		return err
	}
	var override project.Limits
	if flags.Changed("max-diagnostics") || s.config.Limits.MaxDiagnostics == 0 {
		if override.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return err
		}
		if override.MaxDiagnostics < 0 {
			return fmt.Errorf("--max-diagnostics must not be negative")
		}
	}
	s.limits = s.config.Limits.Override(override)

	if s.jobs, err = flags.GetInt("jobs"); err != nil {
		return err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return err
	}
	if timings {
		s.timer = observ.NewTimer()
	}
	return nil
}

// stopSession печатает замеры и закрывает трейсер и профили; повторный вызов ничего не делает.
func stopSession(cmd *cobra.Command) {
	s := current
	if s == nil {
		return
	}
	current = nil
	if s.timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), s.timer.Summary())
	}
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

func loadConfig(cmd *cobra.Command) (project.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, err
	}
	if path != "" {
		return project.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return project.Config{}, err
	}
	return project.Discover(wd)
}

// driverOptions собирает driver.Options из текущей сессии.
func driverOptions() driver.Options {
	if current == nil {
		return driver.Options{}
	}
	return driver.Options{
		Limits: current.limits,
		Timer:  current.timer,
		Jobs:   current.jobs,
	}
}

// useColor resolves --color against the stream the output goes to.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}
