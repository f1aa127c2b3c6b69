package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romdo/go-debounce/v2"
	"github.com/romdo/go-debounce/v2/debouncetest"
)

// steppingReader returns one line per Read, advancing the scheduler by the
// matching step before each line.
type steppingReader struct {
	s     *debouncetest.Scheduler
	lines []string
	steps []time.Duration
	i     int
}

func (r *steppingReader) Read(p []byte) (int, error) {
	if r.i >= len(r.lines) {
		return 0, io.EOF
	}
	r.s.Advance(r.steps[r.i])
	n := copy(p, r.lines[r.i]+"\n")
	r.i++

	return n, nil
}

// blockingReader returns line on the first Read, then blocks until release is
// closed.
type blockingReader struct {
	line    string
	sent    bool
	blocked chan struct{}
	release chan struct{}
}

func (r *blockingReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, r.line), nil
	}
	close(r.blocked)
	<-r.release

	return 0, io.EOF
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []debounce.Option
		want  string
		wantN int64
	}{
		{
			name:  "trailing line flushed at EOF",
			input: "a\nb\nc\n",
			want:  "c\n",
			wantN: 1,
		},
		{
			name:  "leading only",
			input: "a\nb\nc\n",
			opts:  []debounce.Option{debounce.Leading(), debounce.WithoutTrailing()},
			want:  "a\n",
			wantN: 1,
		},
		{
			name:  "leading and trailing",
			input: "a\nb\nc\n",
			opts:  []debounce.Option{debounce.Leading()},
			want:  "a\nc\n",
			wantN: 2,
		},
		{
			name:  "single line with leading and trailing",
			input: "a\n",
			opts:  []debounce.Option{debounce.Leading()},
			want:  "a\n",
			wantN: 1,
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
			wantN: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			n, err := Lines(context.Background(),
				strings.NewReader(tt.input), &out, time.Hour, tt.opts...,
			)
			require.NoError(t, err)

			assert.Equal(t, tt.want, out.String())
			assert.Equal(t, tt.wantN, n)
		})
	}
}

func TestLines_quiet_periods(t *testing.T) {
	s := debouncetest.NewScheduler(nil)
	r := &steppingReader{
		s:     s,
		lines: []string{"a", "b", "c", "d"},
		steps: []time.Duration{
			0,
			50 * time.Millisecond,
			300 * time.Millisecond,
			50 * time.Millisecond,
		},
	}
	var out bytes.Buffer

	n, err := Lines(context.Background(), r, &out, 100*time.Millisecond,
		debounce.WithScheduler(s), debounce.WithClock(s.Clock),
	)
	require.NoError(t, err)

	// "b" settles at 150ms, before "c" arrives at 350ms. "d" is flushed.
	assert.Equal(t, "b\nd\n", out.String())
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 0, s.Armed())
}

func TestLines_cancelled_context(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	n, err := Lines(ctx, strings.NewReader("a\nb\n"), &out, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), n)
	assert.Empty(t, out.String())
}

func TestLines_cancel_while_read_blocks(t *testing.T) {
	r := &blockingReader{
		line:    "a\n",
		blocked: make(chan struct{}),
		release: make(chan struct{}),
	}
	defer close(r.release)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		n   int64
		err error
	}
	done := make(chan result, 1)
	var out bytes.Buffer
	go func() {
		n, err := Lines(ctx, r, &out, time.Hour)
		done <- result{n: n, err: err}
	}()

	select {
	case <-r.blocked:
	case <-time.After(5 * time.Second):
		t.Fatal("reader was not read twice")
	}
	cancel()

	select {
	case res := <-done:
		assert.ErrorIs(t, res.err, context.Canceled)
		assert.Equal(t, int64(0), res.n)
		assert.Empty(t, out.String())
	case <-time.After(2 * time.Second):
		t.Fatal("Lines did not return after the context was cancelled")
	}
}

func TestLines_write_error(t *testing.T) {
	n, err := Lines(context.Background(),
		strings.NewReader("a\n"), failingWriter{}, time.Hour,
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write output: disk full")
	assert.Equal(t, int64(0), n)
}
