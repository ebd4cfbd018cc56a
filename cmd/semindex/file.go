package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/semindex/internal/config"
	"github.com/oxhq/semindex/internal/pipeline"
	"github.com/oxhq/semindex/internal/scanner"
	"github.com/oxhq/semindex/internal/semlang"
)

func newFileCmd() *cobra.Command {
	var langFlag string

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Index a single source file and print its semantic index as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			log := newLogger(cmd, cfg)

			path := args[0]
			lang, err := resolveLanguage(path, langFlag, cfg)
			if err != nil {
				return err
			}

			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			idx, diags, err := pipeline.BuildIndexSingleFile(cmd.Context(), path, source, lang)
			if err != nil {
				return err
			}
			for _, d := range diags {
				log.Debug("diagnostic", "kind", string(d.Kind), "message", d.Message, "line", d.Line)
			}

			out, err := idx.ToJSON()
			if err != nil {
				return fmt.Errorf("encoding index: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "source language (javascript, typescript, python, rust); inferred from extension if omitted")
	return cmd
}

// resolveLanguage picks the language for a file: explicit flag first, then
// extension, then the configured default.
func resolveLanguage(path, flag string, cfg *config.Config) (semlang.Language, error) {
	if flag != "" {
		lang := semlang.Language(flag)
		if !semlang.Valid(lang) {
			return "", fmt.Errorf("unsupported language: %q", flag)
		}
		return lang, nil
	}
	if lang, ok := scanner.LanguageForPath(path); ok {
		return lang, nil
	}
	if cfg.DefaultLanguage != "" {
		lang := semlang.Language(cfg.DefaultLanguage)
		if semlang.Valid(lang) {
			return lang, nil
		}
	}
	return "", fmt.Errorf("cannot infer language for %s; pass --lang", path)
}

// newLogger builds the slog handler from flags and config. Flags win.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if v, err := cmd.Flags().GetString("log-level"); err == nil && v != "" {
		level = v
	}
	format := cfg.LogFormat
	if v, err := cmd.Flags().GetString("log-format"); err == nil && v != "" {
		format = v
	}

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: slogLevel}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
