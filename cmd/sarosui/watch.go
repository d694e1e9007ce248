package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher is a wrapper for watching file changes in directories.
type Watcher struct {
	watcher   *fsnotify.Watcher
	dirs      map[string]bool
	paths     map[string]bool
	recursive bool

	mu     sync.Mutex // guards dirs, paths and ignore
	ignore map[string]bool
}

// NewWatcher returns a new Watcher.
func NewWatcher(recursive bool) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:   watcher,
		dirs:      map[string]bool{},
		paths:     map[string]bool{},
		recursive: recursive,
		ignore:    map[string]bool{},
	}, nil
}

// Close closes the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// IgnoreNext skips the next change of filename, used for files we write ourselves.
func (w *Watcher) IgnoreNext(filename string) {
	if filename == "" {
		return
	}
	w.mu.Lock()
	w.ignore[filepath.Clean(filename)] = true
	w.mu.Unlock()
}

func (w *Watcher) ignored(filename string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ignore[filename] {
		delete(w.ignore, filename)
		return true
	}
	return false
}

// AddPath adds a new path to watch.
func (w *Watcher) AddPath(root string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	root = filepath.Clean(root)
	w.paths[root] = true

	info, err := os.Lstat(root)
	if err != nil {
		return err
	}

	if info.Mode().IsRegular() {
		root = filepath.Dir(root)
		if w.dirs[root] {
			return nil
		}
		if err := w.watcher.Add(root); err != nil {
			return err
		}
		w.dirs[root] = true
	} else if info.Mode().IsDir() {
		if !w.recursive {
			if w.dirs[root] {
				return nil
			}
			if err := w.watcher.Add(root); err != nil {
				return err
			}
			w.dirs[root] = true
			return nil
		}
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if w.dirs[path] {
					return fs.SkipDir
				}
				if err := w.watcher.Add(path); err != nil {
					return err
				}
				w.dirs[path] = true
			}
			return nil
		})
	}
	return nil
}

// watched returns true if the file was added or lies inside an added directory.
func (w *Watcher) watched(filename string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path := range w.paths {
		if path == filename {
			return true
		} else if rel, err := filepath.Rel(path, filename); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)) && IsDir(path) {
			return true
		}
	}
	return false
}

// Run watches for file changes.
func (w *Watcher) Run() chan string {
	files := make(chan string, 10)
	go func() {
		changetimes := map[string]time.Time{}
		for w.watcher.Events != nil && w.watcher.Errors != nil {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					w.watcher.Events = nil
					break
				}

				filename := filepath.Clean(event.Name)
				if !w.watched(filename) {
					break
				}

				if info, err := os.Lstat(filename); err == nil {
					if info.Mode().IsDir() && w.recursive {
						if event.Op&fsnotify.Create == fsnotify.Create {
							if err := w.AddPath(filename); err != nil {
								Error.Println(err)
							}
						}
					} else if info.Mode().IsRegular() {
						if event.Op&fsnotify.Write == fsnotify.Write {
							if w.ignored(filename) {
								break
							}
							if t, ok := changetimes[filename]; !ok || 100*time.Millisecond < time.Since(t) {
								time.Sleep(100 * time.Millisecond) // wait to make sure write is finished
								files <- filename
								changetimes[filename] = time.Now()
							}
						}
					}
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					w.watcher.Errors = nil
					break
				}
				Error.Println(err)
			}
		}
		close(files)
	}()
	return files
}
