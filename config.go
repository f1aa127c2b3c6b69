package debounce

import (
	"time"
)

// Config is a typed debounce configuration, suitable for loading from config
// files. The zero value debounces on the trailing edge only, with no wait and
// no max wait.
type Config struct {
	Wait    time.Duration `koanf:"wait" json:"wait"`
	MaxWait time.Duration `koanf:"max_wait" json:"max_wait"`
	Leading bool          `koanf:"leading" json:"leading"`

	// Trailing defaults to true when nil.
	Trailing *bool `koanf:"trailing" json:"trailing"`
}

// Options returns the options described by c. A MaxWait of zero or less
// disables the max wait.
func (c Config) Options() []Option {
	var opts []Option
	if c.Leading {
		opts = append(opts, Leading())
	}
	if c.Trailing != nil && !*c.Trailing {
		opts = append(opts, WithoutTrailing())
	}
	if c.MaxWait > 0 {
		opts = append(opts, MaxWait(c.MaxWait))
	}

	return opts
}

// Set applies the given options to c. Options that do not map onto a Config
// field, such as WithScheduler, are ignored.
func (c *Config) Set(o ...Option) {
	conf := newConfig(append(c.Options(), o...))

	c.Leading = conf.leading
	trailing := conf.trailing
	c.Trailing = &trailing
	c.MaxWait = 0
	if conf.maxing {
		c.MaxWait = conf.maxWait
	}
}

// TrailingEnabled reports whether c enables the trailing edge.
func (c Config) TrailingEnabled() bool {
	return c.Trailing == nil || *c.Trailing
}

// New returns a debounced function and its cancel function like New does,
// configured by c. A nil Config uses the defaults.
func (c *Config) New(
	f func(),
	opts ...Option,
) (debounced func(), cancel func()) {
	if c == nil {
		c = &Config{}
	}

	return New(c.Wait, f, append(c.Options(), opts...)...)
}
