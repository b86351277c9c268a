package guardfile

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlGuardfile = `
[[guard]]
name = "rspec"
group = "specs"
run = ["bundle", "exec", "rspec"]

  [[guard.watch]]
  pattern = "spec/spec_helper.rb"
  paths = ["spec"]

  [[guard.watch]]
  pattern = 'lib/(.+)\.rb'
  regexp = true
  action = "spec/{1}_spec.rb"

[[guard]]
name = "docs"

  [[guard.watch]]
  pattern = "README.md"
`

const yamlGuardfile = `
guard:
  - name: rspec
    run: [rspec]
    watch:
      - pattern: 'lib/(?P<name>.+)\.rb'
        regexp: true
        action: "spec/{name}_spec.rb"
`

func TestLoader_TOML(t *testing.T) {
	fs := testutil.MemFS(t, map[string]string{"/project/Guardfile": tomlGuardfile})
	reporter := &testutil.RecordingReporter{}
	loader := NewLoader(fs, WithReporter(reporter))

	path, err := loader.Find("/project")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/project", "Guardfile"), path)

	guards, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, guards, 2)

	rspec := guards[0]
	assert.Equal(t, "rspec", rspec.Name)
	assert.Equal(t, "specs", rspec.Group)
	assert.Equal(t, []string{"bundle", "exec", "rspec"}, rspec.Run)
	require.Len(t, rspec.Watchers(), 2)

	helper := rspec.Watchers()[0]
	assert.False(t, helper.Pattern().IsRegexp())
	m, ok := helper.Match("spec/spec_helper.rb")
	require.True(t, ok)
	result, err := helper.Call(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"spec"}, result.Paths())

	lib := rspec.Watchers()[1]
	assert.True(t, lib.Pattern().IsRegexp())
	m, ok = lib.Match("lib/guard/watcher.rb")
	require.True(t, ok)
	result, err = lib.Call(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"spec/guard/watcher_spec.rb"}, result.Paths())

	docs := guards[1]
	assert.Equal(t, "default", docs.Group)
	require.Len(t, docs.Watchers(), 1)
	m, ok = docs.Watchers()[0].Match("README.md")
	require.True(t, ok)
	result, err = docs.Watchers()[0].Call(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, result.Paths())

	assert.Empty(t, reporter.Infos, "explicit regexps carry no deprecation notice")

	active, err := loader.GuardfilePath()
	require.NoError(t, err)
	assert.Equal(t, path, active)
}

func TestLoader_YAML(t *testing.T) {
	fs := testutil.MemFS(t, map[string]string{"/project/Guardfile.yaml": yamlGuardfile})
	loader := NewLoader(fs)

	path, err := loader.Find("/project")
	require.NoError(t, err)
	assert.Equal(t, "Guardfile.yaml", filepath.Base(path))

	guards, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, guards, 1)
	assert.Equal(t, []string{"rspec"}, guards[0].Run)

	w := guards[0].Watchers()[0]
	m, ok := w.Match("lib/runner.rb")
	require.True(t, ok)
	result, err := w.Call(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"spec/runner_spec.rb"}, result.Paths())
}

func TestLoader_LegacyPatternIsReported(t *testing.T) {
	fs := testutil.MemFS(t, map[string]string{"/p/Guardfile": `
[[guard]]
name = "legacy"
  [[guard.watch]]
  pattern = '^lib/.+\.rb$'
`})
	reporter := &testutil.RecordingReporter{}
	guards, err := NewLoader(fs, WithReporter(reporter)).Load("/p/Guardfile")
	require.NoError(t, err)

	assert.True(t, guards[0].Watchers()[0].Pattern().IsRegexp())
	require.Len(t, reporter.Infos, 1)
	assert.Contains(t, reporter.Infos[0], "DEPRECATION")
}

func TestLoader_FindNothing(t *testing.T) {
	fs := testutil.MemFS(t, map[string]string{"/project/README.md": "hi"})
	_, err := NewLoader(fs).Find("/project")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGuardfileNotFound))
}

func TestLoader_GuardfilePathBeforeLoad(t *testing.T) {
	_, err := NewLoader(testutil.MemFS(t, nil)).GuardfilePath()
	assert.True(t, errors.IsErrorCode(err, errors.ErrGuardfileNotFound))
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{
			name:    "syntax error",
			content: "[[guard]\nname = ",
			code:    errors.ErrGuardfileParse,
		},
		{
			name:    "unknown key",
			content: "[[guard]]\nname = \"x\"\nwatches = 1\n",
			code:    errors.ErrGuardfileParse,
		},
		{
			name:    "missing name",
			content: "[[guard]]\n  [[guard.watch]]\n  pattern = \"a\"\n",
			code:    errors.ErrGuardfileInvalid,
		},
		{
			name:    "duplicate name",
			content: "[[guard]]\nname = \"x\"\n[[guard]]\nname = \"x\"\nrun = [\"make\"]\n",
			code:    errors.ErrGuardfileInvalid,
		},
		{
			name:    "missing pattern",
			content: "[[guard]]\nname = \"x\"\n  [[guard.watch]]\n  action = \"a\"\n",
			code:    errors.ErrGuardfileInvalid,
		},
		{
			name:    "two actions",
			content: "[[guard]]\nname = \"x\"\n  [[guard.watch]]\n  pattern = \"a\"\n  action = \"b\"\n  paths = [\"c\"]\n",
			code:    errors.ErrGuardfileInvalid,
		},
		{
			name:    "bad regexp",
			content: "[[guard]]\nname = \"x\"\n  [[guard.watch]]\n  pattern = \"(\"\n  regexp = true\n",
			code:    errors.ErrGuardfileInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.MemFS(t, map[string]string{"/p/Guardfile": tt.content})
			loader := NewLoader(fs)

			_, err := loader.Load("/p/Guardfile")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)

			_, err = loader.GuardfilePath()
			assert.Error(t, err, "failed loads do not become active")
		})
	}
}

func TestLoader_ReloadKeepsPath(t *testing.T) {
	fs := testutil.MemFS(t, map[string]string{"/p/Guardfile": tomlGuardfile})
	loader := NewLoader(fs)

	_, err := loader.Load("/p/Guardfile")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "/p/Guardfile", []byte("[[guard]]\nname = \"only\"\n"), 0644))
	guards, err := loader.Reload()
	require.NoError(t, err)
	require.Len(t, guards, 1)
	assert.Equal(t, "only", guards[0].Name)
}

func TestGenerate_LoadsBack(t *testing.T) {
	data, err := Generate()
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[guard]]")

	fs := testutil.MemFS(t, map[string]string{"/p/Guardfile": string(data)})
	guards, err := NewLoader(fs).Load("/p/Guardfile")
	require.NoError(t, err)
	require.Len(t, guards, 1)
	assert.Equal(t, "tests", guards[0].Name)
	assert.Len(t, guards[0].Watchers(), 3)
}
