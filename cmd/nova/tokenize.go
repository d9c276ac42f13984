package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nova/internal/diagfmt"
	"nova/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.nova",
	Short: "Tokenize a nova source file",
	Long:  `Tokenize breaks down a nova source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("trivia", false, "keep comments and whitespace (disables the cache)")
	tokenizeCmd.Flags().Bool("cache", false, "reuse token streams from the on-disk cache")
	tokenizeCmd.Flags().Bool("cache-clear", false, "drop the on-disk cache before tokenizing")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	keepTrivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	clearCache, err := cmd.Flags().GetBool("cache-clear")
	if err != nil {
		return err
	}

	opts := driverOptions()
	opts.KeepTrivia = keepTrivia
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("nova")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		defer cache.Close()
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	result, err := driver.Tokenize(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Диагностика идёт в stderr, токены в stdout
	if err := reportToStderr(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	// после нарушения лимита дампить нечего
	if result.Fatal != nil {
		return errHasErrors
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.File)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.File)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}
