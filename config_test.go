package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Options(t *testing.T) {
	no := false
	yes := true

	tests := []struct {
		name         string
		config       Config
		wantLeading  bool
		wantTrailing bool
		wantMaxing   bool
		wantMaxWait  time.Duration
	}{
		{
			name:         "zero value",
			wantTrailing: true,
		},
		{
			name:         "leading",
			config:       Config{Leading: true},
			wantLeading:  true,
			wantTrailing: true,
		},
		{
			name:         "trailing explicitly enabled",
			config:       Config{Trailing: &yes},
			wantTrailing: true,
		},
		{
			name:        "trailing disabled",
			config:      Config{Leading: true, Trailing: &no},
			wantLeading: true,
		},
		{
			name:         "max wait",
			config:       Config{MaxWait: time.Second},
			wantTrailing: true,
			wantMaxing:   true,
			wantMaxWait:  time.Second,
		},
		{
			name:         "negative max wait is ignored",
			config:       Config{MaxWait: -time.Second},
			wantTrailing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConfig(tt.config.Options())

			assert.Equal(t, tt.wantLeading, c.leading)
			assert.Equal(t, tt.wantTrailing, c.trailing)
			assert.Equal(t, tt.wantMaxing, c.maxing)
			assert.Equal(t, tt.wantMaxWait, c.maxWait)
			assert.Equal(t, tt.wantTrailing, tt.config.TrailingEnabled())
		})
	}
}

func TestConfig_Set(t *testing.T) {
	c := &Config{Wait: time.Second}

	c.Set(Leading(), WithoutTrailing(), MaxWait(5*time.Second))

	assert.Equal(t, time.Second, c.Wait)
	assert.True(t, c.Leading)
	assert.False(t, c.TrailingEnabled())
	assert.Equal(t, 5*time.Second, c.MaxWait)

	c.Set(Trailing(), WithScheduler(NewTimerScheduler()))

	assert.True(t, c.Leading)
	assert.True(t, c.TrailingEnabled())
	assert.Equal(t, 5*time.Second, c.MaxWait)
}

func TestConfig_New(t *testing.T) {
	t.Parallel()

	got := make(chan struct{}, 2)
	c := &Config{Wait: 50 * time.Millisecond, Leading: true}

	debounced, _ := c.New(func() { got <- struct{}{} })
	debounced()

	select {
	case <-got:
	default:
		t.Fatal("leading edge did not invoke synchronously")
	}

	var nilConfig *Config
	debounced, _ = nilConfig.New(func() { got <- struct{}{} })
	debounced()

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("trailing edge did not invoke")
	}

	time.Sleep(100 * time.Millisecond)
	assert.Len(t, got, 0)
}
