package ui_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/guard/pkg/ui"
	"github.com/stretchr/testify/assert"
)

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	r := ui.NewConsoleReporter(&buf, ui.FormatText)

	r.Info("watch pattern is deprecated")
	r.Error("Problem with watch action!")

	out := buf.String()
	assert.Contains(t, out, "INFO: watch pattern is deprecated\n")
	assert.Contains(t, out, "ERROR: Problem with watch action!\n")
}

func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer
	replacement := ui.NewConsoleReporter(&buf, ui.FormatText)

	restore := ui.SetDefault(replacement)
	assert.Same(t, replacement, ui.Default())

	ui.Default().Info("hello")
	assert.Contains(t, buf.String(), "hello")

	restore()
	assert.NotSame(t, replacement, ui.Default())
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		ui.Discard.Info("x")
		ui.Discard.Error("y")
	})
}
