package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/guard/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sampleReports = []ui.MatchReport{
	{Guard: "rspec", Group: "specs", Paths: []string{"spec/foo_spec.rb", "spec/bar_spec.rb"}},
	{Guard: "bundler", Paths: nil},
}

func TestPrinterMatchesText(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatText)
	require.NoError(t, p.Matches(sampleReports))

	out := buf.String()
	assert.Contains(t, out, "rspec (specs)")
	assert.Contains(t, out, "  spec/foo_spec.rb\n")
	assert.Contains(t, out, "  spec/bar_spec.rb\n")
	assert.NotContains(t, out, "bundler", "guards without paths are skipped")
}

func TestPrinterMatchesJSON(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatJSON)
	require.NoError(t, p.Matches(sampleReports))

	var decoded []ui.MatchReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, []string{"spec/foo_spec.rb", "spec/bar_spec.rb"}, decoded[0].Paths)
}

func TestPrinterMatchesYAML(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatYAML)
	require.NoError(t, p.Matches(sampleReports[:1]))

	var decoded []ui.MatchReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "rspec", decoded[0].Guard)
	assert.Equal(t, "specs", decoded[0].Group)
}

func TestPrinterGuardsText(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewPrinter(&buf, ui.FormatText)
	assert.Equal(t, ui.FormatText, p.Format())

	err := p.Guards([]ui.GuardSummary{{
		Name: "rspec",
		Run:  []string{"rspec"},
		Watchers: []ui.WatcherSummary{
			{Pattern: "spec_helper.rb"},
			{Pattern: `lib/(.*)\.rb`, Regexp: true, Action: "spec/{1}_spec.rb"},
		},
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "rspec")
	assert.Contains(t, out, "runs rspec")
	assert.Contains(t, out, "literal spec_helper.rb")
	assert.Contains(t, out, `regexp lib/(.*)\.rb -> spec/{1}_spec.rb`)
}
