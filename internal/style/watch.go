package style

import (
	"context"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives the sheets decoded from a changed file, or the error
// that prevented decoding it.
type ReloadFunc func(path string, sheets []Sheet, err error)

// Watcher reloads sheet files when they change on disk.
type Watcher struct {
	fs    *fsnotify.Watcher
	files map[string]struct{}
}

// NewWatcher starts watching paths. The containing directories are
// watched rather than the files, so editors that save by renaming a
// temporary file over the original are seen too.
func NewWatcher(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create sheet watcher")
	}
	w := &Watcher{fs: fw, files: make(map[string]struct{})}
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fw.Close()
			return nil, errors.Wrapf(err, "watch %s", p)
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, errors.Wrapf(err, "watch %s", dir)
		}
		dirs[dir] = struct{}{}
	}
	return w, nil
}

// Run delivers reloads to fn until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context, fn ReloadFunc) error {
	defer w.fs.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := w.files[abs]; !ok {
				continue
			}
			sheets, err := LoadSheetFile(abs)
			fn(abs, sheets, err)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			fn("", nil, errors.Wrap(err, "sheet watcher"))
		}
	}
}
