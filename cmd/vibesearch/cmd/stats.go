package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/vhybzOS/vibe-search/internal/ui"
)

func newStatsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics for the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	return cmd
}

func runStats(format string) error {
	project, err := projectRoot()
	if err != nil {
		return err
	}
	reg, err := newRegistry(project)
	if err != nil {
		return err
	}
	ix, err := reg.GetOrInit(project)
	if err != nil {
		return err
	}

	stats := ix.Stats()
	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(stats)
	}
	ui.NewRenderer(os.Stdout, ui.StylesFor()).Stats(project, stats)
	return nil
}
