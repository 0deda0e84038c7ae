package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/julianshen/chunkmap/internal/registry"
	"github.com/julianshen/chunkmap/internal/runner"
)

func chunksCmd() *cobra.Command {
	var (
		rootFlag     string
		registryFlag string
		statusFlag   string
	)

	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "List the chunks in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := registry.Status(statusFlag)
			if status != "" && !status.Valid() {
				return fmt.Errorf("unknown status %q: want %s, %s or %s", statusFlag,
					registry.StatusPending, registry.StatusInProgress, registry.StatusComplete)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := cfg.Analysis.Registry
			if cmd.Flags().Changed("registry") {
				path = registryFlag
			}

			reg, err := runner.LoadRegistry(rootFlag, path)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), chunkTable(reg, status))
			return err
		},
	}

	cmd.Flags().StringVar(&rootFlag, "root", ".", "project root directory")
	cmd.Flags().StringVar(&registryFlag, "registry", "", "chunk registry file (default from config, .claude/.chunks.json)")
	cmd.Flags().StringVar(&statusFlag, "status", "", "only list chunks with this status (pending, in-progress, complete)")

	return cmd
}

// chunkTable renders one row per chunk; the current chunk is starred.
// A non-empty status keeps only chunks in that state.
func chunkTable(reg *registry.Registry, status registry.Status) string {
	current, _ := reg.Current()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "NAME", "STATUS", "FILES")
	for _, c := range reg.Chunks {
		if status != "" && statusOf(c) != status {
			continue
		}
		t.Row(marker(c, current), c.ID, c.Name, string(statusOf(c)), strconv.Itoa(len(c.Files)))
	}
	return t.String()
}

func marker(c registry.Chunk, current string) string {
	if c.ID == current {
		return "*"
	}
	return ""
}

func statusOf(c registry.Chunk) registry.Status {
	if c.Status == "" {
		return registry.StatusPending
	}
	return c.Status
}
