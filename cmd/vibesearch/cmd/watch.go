package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vhybzOS/vibe-search/internal/config"
	"github.com/vhybzOS/vibe-search/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload the index when its snapshot changes on disk",
		Long: `Watch the project's snapshot file and reload the in-memory index
whenever another process rewrites it. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd)
		},
	}
}

func runWatch(cmd *cobra.Command) error {
	project, err := projectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.Load(project)
	if err != nil {
		return err
	}
	reg, err := newRegistry(project)
	if err != nil {
		return err
	}
	if _, err := reg.GetOrInit(project); err != nil {
		return err
	}

	w, err := watcher.New(
		time.Duration(cfg.Watcher.DebounceMS)*time.Millisecond,
		func(projectPath string) {
			if _, err := reg.Reload(projectPath); err != nil {
				slog.Warn("reload_failed", "project_path", projectPath, "error", err)
			}
		})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch(project, cfg.SnapshotPath(project)); err != nil {
		return err
	}
	w.Start(cmd.Context())

	fmt.Printf("watching %s\n", cfg.SnapshotPath(project))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case <-cmd.Context().Done():
	}
	return nil
}
