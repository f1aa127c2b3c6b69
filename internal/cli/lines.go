package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/romdo/go-debounce/v2"
)

// Lines reads lines from r and writes to w only the lines a debouncer with
// the given wait and options invokes on. Any pending line is flushed when r
// is exhausted. It returns the number of lines written.
//
// When ctx is done, Lines discards the pending line and returns at once, even
// if a read from r is blocked. Lines read after that are dropped.
func Lines(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
	wait time.Duration,
	opts ...debounce.Option,
) (int64, error) {
	var written atomic.Int64
	var writeErr atomic.Error

	d, err := debounce.NewDebouncer(func(lines ...string) error {
		if len(lines) == 0 {
			return nil
		}
		if _, err := fmt.Fprintln(w, lines[0]); err != nil {
			if writeErr.Load() == nil {
				writeErr.Store(err)
			}
			return err
		}
		written.Inc()

		return nil
	}, wait, opts...)
	if err != nil {
		return 0, err
	}

	// stopped guards against the reader delivering a line after Lines gave up
	// on ctx.
	var mux sync.Mutex
	stopped := false
	call := func(line string) bool {
		mux.Lock()
		defer mux.Unlock()

		if stopped || ctx.Err() != nil {
			return false
		}
		d.Call(line)

		return true
	}

	scanned := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if !call(scanner.Text()) {
				return
			}
		}
		scanned <- scanner.Err()
	}()

	var readErr error
	select {
	case <-ctx.Done():
	case readErr = <-scanned:
	}

	if err := ctx.Err(); err != nil {
		mux.Lock()
		stopped = true
		d.Cancel()
		mux.Unlock()

		return written.Load(), err
	}
	if readErr != nil {
		d.Cancel()
		return written.Load(), errors.Wrap(readErr, "read input")
	}

	d.Flush()

	if err := writeErr.Load(); err != nil {
		return written.Load(), errors.Wrap(err, "write output")
	}

	return written.Load(), nil
}
