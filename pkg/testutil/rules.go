package testutil

import (
	"testing"

	"github.com/arthur-debert/guard/pkg/ui"
	"github.com/arthur-debert/guard/pkg/watcher"
	"github.com/stretchr/testify/require"
)

// Watch builds a watcher and fails the test on error. Deprecation notices
// are discarded.
func Watch(t *testing.T, pattern interface{}, action watcher.Action) *watcher.Watcher {
	t.Helper()

	w, err := watcher.New(pattern, watcher.WithAction(action), watcher.WithReporter(ui.Discard))
	require.NoError(t, err)
	return w
}

// Returns builds a NoArg action returning v
func Returns(v interface{}) watcher.Action {
	return watcher.NoArg(func() (interface{}, error) {
		return v, nil
	})
}

// Fails builds a NoArg action returning err
func Fails(err error) watcher.Action {
	return watcher.NoArg(func() (interface{}, error) {
		return nil, err
	})
}
