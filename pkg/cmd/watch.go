package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"

	"github.com/siyuan-infoblox/java-imports-group/pkg/formatter"
	"github.com/siyuan-infoblox/java-imports-group/pkg/utils"
	"github.com/siyuan-infoblox/java-imports-group/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [PATH]",
	Short: "Check imports again whenever Java files change",
	Long: `watch runs check once over PATH (default: the current directory) and
then again for every batch of changed Java files until interrupted. The
project is reloaded before each run so new classes are picked up.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runWatch,
	SilenceUsage: true,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	root := resolveRoot(path)
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := formatter.New(formatter.FormatterConfig{
		ProjectRoot: root,
		Settings:    cfg,
		Out:         cmd.OutOrStdout(),
	})
	rep, checkErr := g.CheckPath(ctx, path)
	if rep == nil {
		return checkErr
	}
	_ = renderReport(cmd, rep, checkErr)

	excludeDirs, err := utils.CompileGlobs(cfg.Exclude.Dirs)
	if err != nil {
		return err
	}
	excludeFiles, err := utils.CompileGlobs(cfg.Exclude.Files)
	if err != nil {
		return err
	}

	w, err := watcher.New(cfg.Watch.Debounce, excludeDirs, excludeFiles, func(ctx context.Context, paths []string) {
		var existing []string
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				existing = append(existing, p)
			}
		}

		// Removed files may have been the only declaration of a class
		g.Reset()
		if len(existing) == 0 {
			return
		}
		rep, err := g.CheckFiles(ctx, existing)
		if err := renderReport(cmd, rep, err); err != nil {
			slogctx.Info(ctx, "check finished", "result", err)
		}
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Close()
	}()

	if err := w.Watch(ctx, []string{path}); err != nil {
		return err
	}
	slogctx.Info(ctx, "watching for changes", "path", path, "debounce", cfg.Watch.Debounce)

	<-ctx.Done()
	return nil
}
