package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/julianshen/chunkmap/internal/store"
)

func cacheCmd() *cobra.Command {
	var (
		cacheFlag string
		clearFlag bool
	)

	cmd := &cobra.Command{
		Use:   "cache [file...]",
		Short: "Inspect or clear the import cache",
		Long: `Report how many files the import cache holds and, for each file
named on the command line, the imports recorded for it. File names are the
project-relative paths used in the chunk registry.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := cfg.Analysis.Cache
			if cmd.Flags().Changed("cache") {
				path = cacheFlag
			}
			if path == "" {
				return errors.New("no cache configured: pass --cache or set analysis.cache")
			}

			s, err := store.NewStore(path)
			if err != nil {
				return fmt.Errorf("opening cache: %w", err)
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			n, err := s.Len()
			if err != nil {
				return err
			}
			if clearFlag {
				if err := s.Clear(); err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "cleared %d cached %s\n", n, fileWord(n))
				return err
			}

			if _, err := fmt.Fprintf(out, "%d cached %s\n", n, fileWord(n)); err != nil {
				return err
			}
			for _, name := range args {
				if err := printEntry(out, s, name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cacheFlag, "cache", "", "SQLite cache file (default from config)")
	cmd.Flags().BoolVar(&clearFlag, "clear", false, "remove every cached entry")

	return cmd
}

func printEntry(w io.Writer, s *store.Store, name string) error {
	e, err := s.Get(name)
	if err != nil {
		return err
	}
	if e == nil {
		_, err = fmt.Fprintf(w, "%s: not cached\n", name)
		return err
	}
	_, err = fmt.Fprintf(w, "%s: [%s] (cached %s)\n", e.Path, strings.Join(e.Imports, " "), e.CachedAt.Format("2006-01-02 15:04:05"))
	return err
}

func fileWord(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
