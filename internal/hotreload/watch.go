package hotreload

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oxidekit/core/internal/logging"
)

// CompileFunc recompiles a changed file and reports the affected
// components and how long it took, or an error if compilation failed.
// The hot-reload server has no compiler of its own; Watcher only
// adapts filesystem events into that call so `oxide serve --watch` is
// runnable without a separate build pipeline driving it.
type CompileFunc func(path string) (components []string, compileTimeMs int64, err error)

// Watcher feeds filesystem change events into a Server's broadcast
// notifications via a caller-supplied CompileFunc, debouncing bursts
// of events from the same file (editors often emit several writes per
// save) into a single recompile.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	server    *Server
	compile   CompileFunc
	debounce  time.Duration
	exts      map[string]bool
}

// NewWatcher returns a watcher that recompiles files with the given
// extensions (e.g. ".oui") and reports through server.
func NewWatcher(server *Server, compile CompileFunc, extensions []string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[e] = true
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		server:    server,
		compile:   compile,
		debounce:  100 * time.Millisecond,
		exts:      exts,
	}, nil
}

// Add registers a directory (recursively, one call per directory the
// caller already knows about — fsnotify itself is not recursive) to be
// watched for changes.
func (w *Watcher) Add(dir string) error {
	return w.fsWatcher.Add(dir)
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

// Run processes filesystem events until done is closed, debouncing
// repeated events for the same path before triggering a recompile.
func (w *Watcher) Run(done <-chan struct{}) {
	pending := make(map[string]*time.Timer)
	log := logging.Get(logging.CategoryHotReload)

	trigger := func(path string) {
		components, compileTimeMs, err := w.compile(path)
		if err != nil {
			w.server.NotifyCompileError(path, []CompileErrorInfo{{Message: err.Error(), Severity: "error"}})
			return
		}
		w.server.NotifyCompileSuccess()
		w.server.NotifyHotReload([]string{path}, components, compileTimeMs)
	}

	for {
		select {
		case <-done:
			for _, t := range pending {
				t.Stop()
			}
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.exts[filepath.Ext(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := event.Name
			if t, exists := pending[path]; exists {
				t.Stop()
			}
			pending[path] = time.AfterFunc(w.debounce, func() { trigger(path) })
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watch error: %v", err)
		}
	}
}
