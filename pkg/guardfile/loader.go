package guardfile

import (
	stderrors "errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/guard"
	"github.com/arthur-debert/guard/pkg/logging"
	"github.com/arthur-debert/guard/pkg/ui"
	"github.com/arthur-debert/guard/pkg/watcher"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Names lists the Guardfile names looked up in a directory, in order
var Names = []string{"Guardfile", "Guardfile.toml", "Guardfile.yaml", "Guardfile.yml"}

// Loader reads Guardfiles and remembers which one is active
type Loader struct {
	fs       afero.Fs
	reporter ui.Reporter
	logger   zerolog.Logger
	path     string
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithReporter sets where deprecation notices for legacy patterns go
func WithReporter(r ui.Reporter) LoaderOption {
	return func(l *Loader) {
		l.reporter = r
	}
}

// NewLoader creates a loader reading from fs
func NewLoader(fs afero.Fs, opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:     fs,
		logger: logging.GetLogger("guardfile"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Find returns the first Guardfile present in dir
func (l *Loader) Find(dir string) (string, error) {
	for _, name := range Names {
		path := filepath.Join(dir, name)
		exists, err := afero.Exists(l.fs, path)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrGuardfileNotFound, "cannot check %s", path)
		}
		if exists {
			return path, nil
		}
	}
	return "", errors.Newf(errors.ErrGuardfileNotFound, "no Guardfile found in %s", dir).
		WithDetail("candidates", Names)
}

// GuardfilePath returns the absolute path of the last loaded Guardfile
func (l *Loader) GuardfilePath() (string, error) {
	if l.path == "" {
		return "", errors.New(errors.ErrGuardfileNotFound, "no Guardfile loaded")
	}
	return l.path, nil
}

// Load parses the Guardfile at path and builds its guards. On success path
// becomes the active Guardfile.
func (l *Loader) Load(path string) ([]*guard.Guard, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGuardfileNotFound, "cannot resolve %s", path)
	}

	data, err := afero.ReadFile(l.fs, abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGuardfileNotFound, "cannot read %s", abs)
	}

	file, err := Parse(data, formatFor(abs))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGuardfileParse, "cannot parse %s", abs)
	}

	guards, err := l.Build(file)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGuardfileInvalid, "invalid Guardfile %s", abs).
			WithDetail("path", abs)
	}

	l.path = abs
	l.logger.Info().
		Str("path", abs).
		Int("guards", len(guards)).
		Msg("Loaded Guardfile")
	return guards, nil
}

// Reload loads the active Guardfile again
func (l *Loader) Reload() ([]*guard.Guard, error) {
	path, err := l.GuardfilePath()
	if err != nil {
		return nil, err
	}
	return l.Load(path)
}

// Format is the serialization of a Guardfile
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Parse decodes Guardfile content
func Parse(data []byte, format Format) (*File, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	default:
		parser = toml.Parser()
	}

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, parser); err != nil {
		return nil, err
	}

	var file File
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &file,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			TagName:          "koanf",
		},
	}
	if err := k.UnmarshalWithConf("", &file, unmarshalConf); err != nil {
		return nil, err
	}
	return &file, nil
}

// Build turns decoded guard declarations into guards, in file order.
// Guard names must be unique within a file.
func (l *Loader) Build(file *File) ([]*guard.Guard, error) {
	guards := make([]*guard.Guard, 0, len(file.Guards))
	seen := make(map[string]int, len(file.Guards))
	for i, gc := range file.Guards {
		if gc.Name == "" {
			return nil, errors.Newf(errors.ErrGuardfileInvalid, "guard %d has no name", i)
		}
		if first, ok := seen[gc.Name]; ok {
			return nil, errors.Newf(errors.ErrGuardfileInvalid,
				"guard %d is named %q like guard %d, guard names must be unique", i, gc.Name, first).
				WithDetail("guard", gc.Name)
		}
		seen[gc.Name] = i

		g := guard.New(gc.Name)
		if gc.Group != "" {
			g.Group = gc.Group
		}
		g.Run = gc.Run
		g.Options = gc.Options

		for j, wc := range gc.Watch {
			w, err := l.buildWatcher(wc)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrGuardfileInvalid,
					"guard %q watch %d", gc.Name, j).
					WithDetail("guard", gc.Name).
					WithDetail("index", j)
			}
			g.AddWatcher(w)
		}

		l.logger.Debug().
			Str("guard", g.Name).
			Str("group", g.Group).
			Int("watchers", len(g.Watchers())).
			Msg("Built guard")
		guards = append(guards, g)
	}
	return guards, nil
}

func (l *Loader) buildWatcher(wc WatchConfig) (*watcher.Watcher, error) {
	var pattern interface{}
	switch {
	case wc.Pattern == "":
		pattern = nil
	case wc.Regexp:
		re, err := regexp.Compile(wc.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern, "pattern %q does not compile", wc.Pattern)
		}
		pattern = re
	default:
		pattern = wc.Pattern
	}

	action, err := buildAction(wc)
	if err != nil {
		return nil, err
	}

	opts := []watcher.Option{watcher.WithAction(action)}
	if l.reporter != nil {
		opts = append(opts, watcher.WithReporter(l.reporter))
	}
	return watcher.New(pattern, opts...)
}

func buildAction(wc WatchConfig) (watcher.Action, error) {
	declared := 0
	for _, set := range []bool{wc.Action != "", len(wc.Paths) > 0, len(wc.Command) > 0} {
		if set {
			declared++
		}
	}
	if declared > 1 {
		return watcher.NoAction, errors.Newf(errors.ErrGuardfileInvalid,
			"watch %q declares more than one of action, paths and command", wc.Pattern)
	}

	switch {
	case wc.Action != "":
		return Template(wc.Action), nil
	case len(wc.Paths) > 0:
		return StaticPaths(wc.Paths), nil
	case len(wc.Command) > 0:
		if wc.Command[0] == "" {
			return watcher.NoAction, errors.Newf(errors.ErrGuardfileInvalid, "watch %q has an empty command", wc.Pattern)
		}
		return Command(wc.Command), nil
	default:
		return watcher.NoAction, nil
	}
}
