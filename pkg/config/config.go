package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

const (
	// EnvPrefix prefixes environment overrides
	EnvPrefix = "GUARD_"
	// ProjectConfigName is the per-project settings file
	ProjectConfigName = ".guard.toml"
)

// Config holds guard's settings
type Config struct {
	Guardfile string        `koanf:"guardfile"`
	Listen    ListenConfig  `koanf:"listen"`
	Output    OutputConfig  `koanf:"output"`
	Metrics   MetricsConfig `koanf:"metrics"`
	Notify    NotifyConfig  `koanf:"notify"`
}

// ListenConfig configures the filesystem listener
type ListenConfig struct {
	Dirs       []string      `koanf:"dirs"`
	Latency    time.Duration `koanf:"latency"`
	Ignore     []string      `koanf:"ignore"`
	SkipHidden bool          `koanf:"skip_hidden"`
}

// OutputConfig configures user-facing output
type OutputConfig struct {
	Format string `koanf:"format"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// NotifyConfig configures diagnostic notices
type NotifyConfig struct {
	Deprecations bool `koanf:"deprecations"`
}

// Options selects the files Load reads
type Options struct {
	// UserConfig overrides the user config path (--config)
	UserConfig string
	// ProjectDir is where .guard.toml is looked up, the working directory if empty
	ProjectDir string
	// Overrides are flag values keyed by setting path, e.g. "output.format"
	Overrides map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// UserConfigPath returns the default location of the user config
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "guard", "config.toml")
}

// Load builds the settings from every layer
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	userPath := opts.UserConfig
	explicit := userPath != ""
	if !explicit {
		userPath = UserConfigPath()
	}
	if err := loadFile(k, userPath, explicit); err != nil {
		return nil, err
	}

	// 3. Project config
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	if err := loadFile(k, filepath.Join(projectDir, ProjectConfigName), false); err != nil {
		return nil, err
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if cfg.Listen.Latency <= 0 {
		return nil, errors.Newf(errors.ErrConfigParse, "listen.latency must be positive, got %s", cfg.Listen.Latency)
	}
	if len(cfg.Listen.Dirs) == 0 {
		cfg.Listen.Dirs = []string{"."}
	}

	logger.Debug().
		Str("guardfile", cfg.Guardfile).
		Strs("dirs", cfg.Listen.Dirs).
		Dur("latency", cfg.Listen.Latency).
		Str("format", cfg.Output.Format).
		Msg("Configuration loaded")
	return &cfg, nil
}

// envKey maps GUARD_LISTEN_SKIP_HIDDEN to listen.skip_hidden. The first
// underscore separates the section, the rest belong to the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func loadFile(k *koanf.Koanf, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config %s", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
	}
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loaded config file")
	return nil
}

// DefaultContent returns the embedded defaults, used as a template for
// new config files
func DefaultContent() string {
	return string(defaultConfig)
}
