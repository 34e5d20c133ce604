package pipeline

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch runs the pipeline once, then again whenever either input is written.
// A failed run is logged and the previous output stays in place. Watch
// returns when ctx is cancelled.
func (p *Pipeline) Watch(ctx context.Context, basePath, overridePath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	inputs := map[string]struct{}{
		filepath.Clean(basePath):     {},
		filepath.Clean(overridePath): {},
	}

	for path := range inputs {
		if err := watcher.Add(path); err != nil {
			return err
		}
	}

	log := p.log.WithField("component", "watcher")
	log.WithField("base", basePath).WithField("override", overridePath).Info("Watching inputs for changes")

	p.runOnce(basePath, overridePath)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if _, tracked := inputs[filepath.Clean(event.Name)]; !tracked {
				continue
			}

			// Atomic saves replace the file, so Create counts as a change too
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			log.WithField("file", event.Name).Info("Input changed, re-running merge")
			p.runOnce(basePath, overridePath)

			// Re-add the file in case an atomic save replaced the inode
			_ = watcher.Add(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Error("Watcher error")
		}
	}
}

func (p *Pipeline) runOnce(basePath, overridePath string) {
	result, err := p.Run(basePath, overridePath)
	if err != nil {
		p.log.WithError(err).Error("Merge failed, keeping previous output")
	}

	if p.OnRun != nil {
		p.OnRun(result, err)
	}
}
