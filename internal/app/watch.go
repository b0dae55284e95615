package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/specialistvlad/wfgraph/internal/config"
)

// watch recompiles a job whenever its workflow file is written or
// recreated. Directories are watched rather than files so editors that
// replace files on save are still noticed.
func (a *App) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	byPath := make(map[string]*config.Job)
	for _, job := range a.jobs {
		path, err := locateWorkflow(job.InputPath)
		if err != nil {
			a.logger.Warn("Cannot watch job.", "job", job.Name, "error", err)
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		byPath[abs] = job
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
		}
	}
	if len(byPath) == 0 {
		return errors.New("no workflow files to watch")
	}
	a.logger.Info("Watching for changes.", "files", len(byPath))

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Watch stopped.")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			job, ok := byPath[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			a.logger.Info("Workflow changed, recompiling.", "job", job.Name)
			a.compileAll(ctx, []*config.Job{job})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("Watcher error.", "error", err)
		}
	}
}
