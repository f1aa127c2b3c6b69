package cli

import (
	_ "embed"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/romdo/go-debounce/v2"
)

//go:embed defaults.yaml
var defaultConfig []byte

// Config is the configuration of the debounce command.
type Config struct {
	Verbose  bool            `koanf:"verbose"`
	Debounce debounce.Config `koanf:"debounce"`
	Watch    WatchConfig     `koanf:"watch"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Paths       []string `koanf:"paths"`
	Extensions  []string `koanf:"extensions"`
	FlushOnExit bool     `koanf:"flush_on_exit"`

	// ShutdownTimeout bounds how long a command started by the watcher may
	// keep running once shutdown begins, including one run by FlushOnExit.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoadConfig layers the built-in defaults, the config file at path if not
// empty, and overrides keyed by dotted koanf paths.
func LoadConfig(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, "load default config")
	}

	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, errors.Errorf("unsupported config file type: %s", path)
		}

		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, "load config file %s", path)
		}
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, errors.Wrapf(err, "set %s", key)
		}
	}

	var c Config
	err := k.UnmarshalWithConf("", &c, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &c,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	return &c, nil
}
