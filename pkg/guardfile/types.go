package guardfile

// File is the decoded content of a Guardfile
type File struct {
	Guards []GuardConfig `koanf:"guard" toml:"guard" yaml:"guard"`
}

// GuardConfig declares one guard
type GuardConfig struct {
	Name    string                 `koanf:"name" toml:"name" yaml:"name"`
	Group   string                 `koanf:"group" toml:"group,omitempty" yaml:"group,omitempty"`
	Run     []string               `koanf:"run" toml:"run,omitempty" yaml:"run,omitempty"`
	Options map[string]interface{} `koanf:"options" toml:"options,omitempty" yaml:"options,omitempty"`
	Watch   []WatchConfig          `koanf:"watch" toml:"watch" yaml:"watch"`
}

// WatchConfig declares one watch rule
type WatchConfig struct {
	Pattern string   `koanf:"pattern" toml:"pattern" yaml:"pattern"`
	Regexp  bool     `koanf:"regexp" toml:"regexp,omitempty" yaml:"regexp,omitempty"`
	Action  string   `koanf:"action" toml:"action,omitempty" yaml:"action,omitempty"`
	Paths   []string `koanf:"paths" toml:"paths,omitempty" yaml:"paths,omitempty"`
	Command []string `koanf:"command" toml:"command,omitempty" yaml:"command,omitempty"`
}
