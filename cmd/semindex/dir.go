package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/semindex/internal/config"
	"github.com/oxhq/semindex/internal/indexcache"
	"github.com/oxhq/semindex/internal/pipeline"
	"github.com/oxhq/semindex/internal/scanner"
	"github.com/oxhq/semindex/internal/semlang"
)

func newDirCmd() *cobra.Command {
	var (
		langFlag     string
		includeGlobs []string
		excludeGlobs []string
		useCache     bool
	)

	cmd := &cobra.Command{
		Use:   "dir <path>...",
		Short: "Index every recognized source file under the given paths",
		Long: `Walks the given directories, indexes each JavaScript, TypeScript,
Python, or Rust file, and prints one canonical JSON index per line.
Files are independent: a fatal error in one is logged and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			log := newLogger(cmd, cfg)

			var forced semlang.Language
			if langFlag != "" {
				forced = semlang.Language(langFlag)
				if !semlang.Valid(forced) {
					return fmt.Errorf("unsupported language: %q", langFlag)
				}
			}

			s := scanner.New(scanner.Config{
				MaxBytes:     cfg.MaxFileBytes,
				IncludeGlobs: includeGlobs,
				ExcludeGlobs: excludeGlobs,
				Language:     forced,
			})
			targets, err := s.ScanTargets(cmd.Context(), args)
			if err != nil {
				return err
			}
			log.Info("scan complete", "files", len(targets))

			var cache *indexcache.Cache
			if useCache || cfg.CacheEnabled {
				cache, err = indexcache.Open(cfg.CachePath, cfg.LogLevel == "debug")
				if err != nil {
					return fmt.Errorf("opening index cache: %w", err)
				}
				defer cache.Close()
			}

			out := cmd.OutOrStdout()
			for _, target := range targets {
				source, err := os.ReadFile(target.Path)
				if err != nil {
					log.Warn("skipping unreadable file", "path", target.Path, "error", err)
					continue
				}

				hash := ""
				if cache != nil {
					hash = indexcache.HashContent(source)
					if blob, hit, err := cache.Get(target.Path, hash); err == nil && hit {
						fmt.Fprintln(out, blob)
						continue
					}
				}

				idx, diags, err := pipeline.BuildIndexSingleFile(cmd.Context(), target.Path, source, target.Language)
				if err != nil {
					log.Warn("skipping file", "path", target.Path, "error", err)
					continue
				}
				for _, d := range diags {
					log.Debug("diagnostic", "path", target.Path, "kind", string(d.Kind), "message", d.Message)
				}

				blob, err := idx.ToJSON()
				if err != nil {
					log.Warn("skipping unencodable index", "path", target.Path, "error", err)
					continue
				}
				if cache != nil {
					if err := cache.Put(target.Path, hash, string(target.Language), string(blob)); err != nil {
						log.Warn("cache write failed", "path", target.Path, "error", err)
					}
				}
				fmt.Fprintln(out, string(blob))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&langFlag, "lang", "l", "", "restrict to one language instead of inferring per file")
	cmd.Flags().StringSliceVar(&includeGlobs, "include", nil, "only index paths matching these globs")
	cmd.Flags().StringSliceVar(&excludeGlobs, "exclude", nil, "skip paths matching these globs")
	cmd.Flags().BoolVar(&useCache, "cache", false, "cache indexes on disk keyed by content hash")
	return cmd
}
