package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/atikulmunna/hitcount/internal/analyzer"
	"github.com/atikulmunna/hitcount/internal/log"
	"github.com/atikulmunna/hitcount/internal/source"
	"github.com/atikulmunna/hitcount/internal/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newWatchCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "watch file [file ...]",
		Short: "Re-print a file's report whenever it changes",
		Long: `Print the report for every file once, then print a fresh report for a
file each time it is written to. Every report is computed from scratch.

Examples:
  hitcount watch /var/log/apache2/access.log
  hitcount watch "/var/log/**/access*.log" --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runWatch(ctx, cmd.OutOrStdout(), v, args)
		},
	}
}

func runWatch(ctx context.Context, w io.Writer, v *viper.Viper, args []string) error {
	a, err := newAnalyzer(v)
	if err != nil {
		return err
	}
	paths, err := source.Expand(args)
	if err != nil {
		return err
	}

	// Watch before the first pass so no write in between is missed.
	fw, err := watcher.New(paths)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	log.Infof("watching %d file(s)", len(paths))
	go fw.Start(ctx)

	if err := a.Run(w, paths); err != nil {
		return err
	}

	return watchLoop(ctx, w, a, fw.Events)
}

// watchLoop re-runs the analysis for every changed file until ctx ends or
// the event stream closes.
func watchLoop(ctx context.Context, w io.Writer, a *analyzer.Analyzer, events <-chan watcher.Event) error {
	for {
		select {
		case <-ctx.Done():
			log.Infof("stopped watching")
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			log.Debugf("%s changed (%s)", ev.Path, ev.Op)
			if err := a.Run(w, []string{ev.Path}); err != nil {
				// The file may be mid-rotation; keep watching the others.
				log.Errorf("%v", err)
			}
		}
	}
}
