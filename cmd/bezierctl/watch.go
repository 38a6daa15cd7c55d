package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"honnef.co/go/bezier"
)

func newWatchCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run eval whenever the config file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.configPath == "" {
				return errors.New("watch needs --config")
			}
			return a.watch(cmd, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}

// watch watches the directory containing the config file, since editors
// often replace files instead of writing to them.
func (a *app) watch(cmd *cobra.Command, asJSON bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	path := filepath.Clean(a.configPath)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	w := cmd.OutOrStdout()
	run := func() {
		e, _, err := a.engine(cmd)
		if err == nil {
			err = writeEval(w, e, asJSON)
		}
		if err != nil {
			bezier.Logger().Error("evaluation failed", "config", path, "err", err)
			return
		}
		fmt.Fprintln(w)
	}
	run()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				bezier.Logger().Debug("config changed", "config", path, "op", event.Op.String())
				run()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			bezier.Logger().Error("file watcher error", "err", err)
		}
	}
}
