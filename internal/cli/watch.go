package cli

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/romdo/go-debounce/v2"
	"github.com/romdo/go-debounce/v2/memoize"
)

const (
	pathCacheSize = 1024
	pathCacheTTL  = time.Minute
)

// WatchOptions configures Watch.
type WatchOptions struct {
	Paths       []string
	Extensions  []string
	FlushOnExit bool
	Wait        time.Duration
	Debounce    []debounce.Option
	Logger      zerolog.Logger

	// OnReady is called once every path is being watched.
	OnReady func()
}

// Watch watches o.Paths recursively and calls run, debounced, with the
// absolute path of the latest changed file. It returns when ctx is done, with
// the number of times run was called.
func Watch(
	ctx context.Context,
	o WatchOptions,
	run func(path string) int,
) (int64, error) {
	log := o.Logger
	var runs atomic.Int64

	resolve, err := memoize.New(absPath, memoize.WithCache[string, string](
		memoize.NewExpirableCache[string, string](pathCacheSize, pathCacheTTL),
	))
	if err != nil {
		return 0, err
	}

	d, err := debounce.NewDebouncer(func(paths ...string) int {
		runs.Inc()
		log.Info().Str("path", paths[0]).Msg("Running")

		return run(paths[0])
	}, o.Wait, o.Debounce...)
	if err != nil {
		return 0, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return 0, errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	paths := o.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		if err := addRecursive(watcher, p); err != nil {
			return 0, err
		}
	}
	log.Info().Strs("paths", paths).Msg("Watcher started. Monitoring for changes...")
	if o.OnReady != nil {
		o.OnReady()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !relevant(event, o.Extensions) {
					continue
				}

				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := addRecursive(watcher, event.Name); err != nil {
							log.Warn().Err(err).Str("path", event.Name).Msg("Failed to watch new directory")
						}
						continue
					}
				}

				log.Debug().Str("op", event.Op.String()).Str("path", event.Name).Msg("Change")
				d.Call(resolve.Call(event.Name))
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Warn().Err(err).Msg("Watcher error")
			}
		}
	})

	err = g.Wait()

	if o.FlushOnExit {
		d.Flush()
	} else {
		d.Cancel()
	}

	return runs.Load(), err
}

// CommandRunner returns a run function for Watch that executes args with the
// changed path in DEBOUNCE_PATH, and returns its exit code. Failing to start
// the command yields -1.
//
// Commands outlive ctx by grace, so the run flushed when Watch stops still
// completes. Once grace has passed after ctx is done, a running command is
// killed. A non-positive grace kills commands as soon as ctx is done.
func CommandRunner(
	ctx context.Context,
	grace time.Duration,
	log zerolog.Logger,
	stdout, stderr io.Writer,
	args []string,
) func(path string) int {
	runCtx := ctx
	if grace > 0 {
		runCtx = graceContext(ctx, grace)
	}

	return func(path string) int {
		cmd := exec.CommandContext(runCtx, args[0], args[1:]...)
		cmd.Env = append(os.Environ(), "DEBOUNCE_PATH="+path)
		cmd.Stdout = stdout
		cmd.Stderr = stderr

		err := cmd.Run()
		if err == nil {
			return 0
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Warn().Int("code", exitErr.ExitCode()).Msg("Command failed")
			return exitErr.ExitCode()
		}
		log.Error().Err(err).Strs("command", args).Msg("Failed to run command")

		return -1
	}
}

// graceContext returns a context that is done grace after parent is done.
func graceContext(parent context.Context, grace time.Duration) context.Context {
	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	context.AfterFunc(parent, func() {
		time.AfterFunc(grace, cancel)
	})

	return ctx
}

func relevant(event fsnotify.Event, extensions []string) bool {
	if !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) &&
		!event.Has(fsnotify.Remove) {
		return false
	}
	if len(extensions) == 0 {
		return true
	}

	// Directories have no extension but must pass to be watched.
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		return true
	}

	ext := filepath.Ext(event.Name)
	for _, want := range extensions {
		if ext == "."+strings.TrimPrefix(want, ".") {
			return true
		}
	}

	return false
}

// addRecursive watches root and every directory below it, skipping hidden
// directories and vendor.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		name := info.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "vendor") {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})

	return errors.Wrapf(err, "watch %s", root)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}

	return abs
}
