package listener

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Config configures a Listener
type Config struct {
	// Root is the directory batch paths are made relative to
	Root string
	// Dirs are watched recursively, relative to Root unless absolute
	Dirs []string
	// Latency is the quiet period closing a batch
	Latency time.Duration
	// Ignore holds glob patterns of paths to leave out
	Ignore []string
	// SkipHidden leaves out dot files and dot directories
	SkipHidden bool
}

// Listener turns filesystem events under a set of directories into batches
// of changed paths
type Listener struct {
	config  Config
	root    string
	filter  *Filter
	watcher *fsnotify.Watcher
	logger  zerolog.Logger

	mu      sync.Mutex
	running bool
}

// New creates a listener. Nothing is watched until Listen.
func New(config Config) (*Listener, error) {
	if config.Root == "" {
		config.Root = "."
	}
	if len(config.Dirs) == 0 {
		config.Dirs = []string{"."}
	}
	if config.Latency <= 0 {
		config.Latency = 100 * time.Millisecond
	}

	root, err := filepath.Abs(config.Root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrListener, "cannot resolve %s", config.Root)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrListener, "failed to create fsnotify watcher")
	}

	return &Listener{
		config:  config,
		root:    root,
		filter:  NewFilter(config.Ignore, config.SkipHidden),
		watcher: w,
		logger:  logging.GetLogger("listener"),
	}, nil
}

// Root returns the absolute directory batch paths are relative to
func (l *Listener) Root() string {
	return l.root
}

// Listen watches the configured directories and calls onBatch with every
// batch of changed paths, one batch at a time. It blocks until ctx is done.
func (l *Listener) Listen(ctx context.Context, onBatch func([]string)) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return errors.New(errors.ErrListener, "listener already running")
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		_ = l.watcher.Close()
	}()

	for _, dir := range l.config.Dirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(l.root, dir)
		}
		if err := l.addTree(dir); err != nil {
			return err
		}
	}

	batches := make(chan []string, 16)
	batcher := NewBatcher(l.config.Latency, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	defer batcher.Stop()

	l.logger.Info().
		Str("root", l.root).
		Strs("dirs", l.config.Dirs).
		Dur("latency", l.config.Latency).
		Msg("Listener started")

	for {
		select {
		case <-ctx.Done():
			l.logger.Info().Msg("Listener stopped")
			return nil

		case paths := <-batches:
			l.logger.Debug().Strs("paths", paths).Msg("Batch ready")
			onBatch(paths)

		case event, ok := <-l.watcher.Events:
			if !ok {
				return errors.New(errors.ErrListener, "watcher events channel closed")
			}
			if rel, ok := l.handle(event); ok {
				batcher.Add(rel)
			}

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return errors.New(errors.ErrListener, "watcher errors channel closed")
			}
			l.logger.Error().Err(err).Msg("File watcher error")
		}
	}
}

// handle filters an event and returns the relative path it reports
func (l *Listener) handle(event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}

	rel, err := filepath.Rel(l.root, event.Name)
	if err != nil {
		rel = event.Name
	}
	if l.filter.Ignored(rel) {
		return "", false
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := l.addTree(event.Name); err != nil {
				l.logger.Warn().Err(err).Str("path", event.Name).Msg("Cannot watch new directory")
			}
			return "", false
		}
	}

	l.logger.Trace().
		Str("path", rel).
		Str("op", event.Op.String()).
		Msg("File event")
	return filepath.ToSlash(rel), true
}

// addTree watches dir and every directory below it that is not ignored
func (l *Listener) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrListener, "cannot walk %s", path)
		}
		if !d.IsDir() {
			return nil
		}

		if rel, relErr := filepath.Rel(l.root, path); relErr == nil && path != dir && l.filter.Ignored(rel) {
			return filepath.SkipDir
		}

		if err := l.watcher.Add(path); err != nil {
			return errors.Wrapf(err, errors.ErrListener, "failed to watch directory %q", path)
		}
		l.logger.Debug().Str("path", path).Msg("Watching directory")
		return nil
	})
}
