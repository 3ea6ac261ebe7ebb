package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("dataclass.watch")

// Watcher reruns generation when .java files change. Events are debounced so
// one save producing several filesystem events triggers a single callback.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	exclude  []glob.Glob
	onChange func([]string)

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

func New(debounce time.Duration, exclude []string, onChange func([]string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:       fsw,
		debounce: debounce,
		onChange: onChange,
		pending:  make(map[string]struct{}),
	}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.exclude = append(w.exclude, g)
	}
	return w, nil
}

// Watch registers every directory under the given paths and starts the
// event loop.
func (w *Watcher) Watch(paths ...string) error {
	for _, path := range paths {
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if w.Excluded(p) {
					return filepath.SkipDir
				}
				return w.fs.Add(p)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	go w.run()
	return nil
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Excluded reports whether a path matches one of the exclusion globs.
func (w *Watcher) Excluded(path string) bool {
	for _, g := range w.exclude {
		if g.Match(path) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Errorf("watch error: %s", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if event.Has(fsnotify.Create) {
		// directories created while watching must be registered too
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.Excluded(event.Name) {
				if err := w.fs.Add(event.Name); err != nil {
					log.Errorf("watch %s: %s", event.Name, err)
				}
			}
			return
		}
	}
	if !strings.HasSuffix(event.Name, ".java") || w.Excluded(event.Name) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[event.Name] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	if len(paths) > 0 {
		w.onChange(paths)
	}
}
