package main

import (
	"github.com/spf13/cobra"

	"github.com/julianshen/chunkmap/internal/config"
	"github.com/julianshen/chunkmap/internal/output"
	"github.com/julianshen/chunkmap/internal/runner"
)

func depsCmd() *cobra.Command {
	var (
		rootFlag        string
		registryFlag    string
		formatFlag      string
		cacheFlag       string
		concurrencyFlag int
	)

	cmd := &cobra.Command{
		Use:   "deps [chunk-id]",
		Short: "Report the dependencies of a chunk",
		Long: `Extract the imports of every file in a chunk, classify them as
standard-library, internal or external, and report which other chunks the
chunk depends on. Without a chunk id the registry's current chunk is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("registry") {
				cfg.Analysis.Registry = registryFlag
			}
			if flags.Changed("format") {
				cfg.Output.Format = formatFlag
			}
			if flags.Changed("cache") {
				cfg.Analysis.Cache = cacheFlag
			}
			if flags.Changed("concurrency") {
				cfg.Analysis.Concurrency = concurrencyFlag
			}

			req, err := depsRequest(rootFlag, cfg, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			f, err := output.New(cfg.Output.Format, textOptions(out, cfg.Output))
			if err != nil {
				return err
			}
			return runner.NewDepsRunner(f).Run(cmd.Context(), req, out)
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", ".", "project root directory")
	cmd.Flags().StringVar(&registryFlag, "registry", "", "chunk registry file (default from config, .claude/.chunks.json)")
	cmd.Flags().StringVar(&formatFlag, "format", "json", "output format: json, markdown, text")
	cmd.Flags().StringVar(&cacheFlag, "cache", "", "SQLite file caching extracted imports between runs")
	cmd.Flags().IntVar(&concurrencyFlag, "concurrency", 0, "max files parsed in parallel (0 = one per CPU)")

	return cmd
}

// depsRequest assembles the runner request from the merged configuration
// and the project's .chunkmap.yaml.
func depsRequest(root string, cfg *config.Config, args []string) (runner.Request, error) {
	project, err := config.LoadProjectConfig(root)
	if err != nil {
		return runner.Request{}, err
	}

	req := runner.Request{
		Root:           root,
		Registry:       cfg.Analysis.Registry,
		Concurrency:    cfg.Analysis.Concurrency,
		CachePath:      cfg.Analysis.Cache,
		InternalProbes: project.InternalProbes(),
		OwnerProbes:    project.OwnerProbes(),
	}
	if len(args) > 0 {
		req.ChunkID = args[0]
	}
	return req, nil
}
