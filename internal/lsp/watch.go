package lsp

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ProjectWatcher watches a project root for changes to its compilation
// database (compile_commands.json). clangd has no event of its own for
// "the compile database changed underneath me" — its index simply goes
// stale — so this watches the filesystem directly and debounces bursts
// of writes (editors + build systems often rewrite the file several
// times in quick succession) into a single callback, the same way the
// teacher's indexer batches filesystem events before reindexing.
type ProjectWatcher struct {
	watcher  *fsnotify.Watcher
	root     string
	onChange func()
	stopCh   chan struct{}
}

// WatchCompileCommands starts watching root for changes to
// compile_commands.json (at the root or inside a build/ subdirectory,
// clangd's two conventional locations) and invokes onChange, debounced to
// at most once per 500ms, whenever it changes.
func WatchCompileCommands(root string, onChange func()) (*ProjectWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, newError(KindSpawnError, "watch", root, err)
	}

	for _, dir := range []string{root, filepath.Join(root, "build")} {
		// Best-effort: a missing build/ directory is not an error, it
		// just means there's nothing to watch there yet.
		_ = watcher.Add(dir)
	}

	pw := &ProjectWatcher{watcher: watcher, root: root, onChange: onChange, stopCh: make(chan struct{})}
	go pw.loop()
	return pw, nil
}

func (pw *ProjectWatcher) loop() {
	timer := time.NewTimer(500 * time.Millisecond)
	timer.Stop()
	pending := false

	for {
		select {
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != "compile_commands.json" {
				continue
			}
			pending = true
			timer.Stop()
			timer.Reset(500 * time.Millisecond)

		case <-timer.C:
			if pending {
				pending = false
				pw.onChange()
			}

		case <-pw.watcher.Errors:
			// Transport hiccups from the OS watch are not fatal to the
			// bridge; the next successful event still fires onChange.

		case <-pw.stopCh:
			return
		}
	}
}

// Close stops the watcher.
func (pw *ProjectWatcher) Close() error {
	close(pw.stopCh)
	return pw.watcher.Close()
}
