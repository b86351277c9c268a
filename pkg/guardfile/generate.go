package guardfile

import (
	"bytes"

	"github.com/arthur-debert/guard/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

const generateHeader = `# Guardfile
#
# Each [[guard]] runs its "run" command with the paths derived from changed
# files. Patterns are literal paths unless regexp = true.
#
`

// Starter is the Guardfile written by "guard init"
func Starter() File {
	return File{
		Guards: []GuardConfig{
			{
				Name:  "tests",
				Group: "default",
				Run:   []string{"go", "test"},
				Watch: []WatchConfig{
					{Pattern: `^(.+)_test\.go$`, Regexp: true},
					{Pattern: `^(.+)\.go$`, Regexp: true, Action: "./{1}"},
					{Pattern: "go.mod", Paths: []string{"./..."}},
				},
			},
		},
	}
}

// Generate returns the starter Guardfile as TOML
func Generate() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generateHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(Starter()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode starter Guardfile")
	}
	return buf.Bytes(), nil
}
