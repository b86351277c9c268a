package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	m := New()

	m.RecordBatch(3, 20*time.Millisecond)
	m.RecordBatch(1, 5*time.Millisecond)
	m.RecordDerived("rspec", 2)
	m.RecordDerived("rspec", 1)
	m.RecordDerived("docs", 4)
	m.RecordReload(true)
	m.RecordReload(false)
	m.RecordRun("rspec", false)
	m.RecordActionFailure()

	assert.Equal(t, 2.0, prom.ToFloat64(m.batches))
	assert.Equal(t, 4.0, prom.ToFloat64(m.changedPaths))
	assert.Equal(t, 3.0, prom.ToFloat64(m.derivedPaths.WithLabelValues("rspec")))
	assert.Equal(t, 4.0, prom.ToFloat64(m.derivedPaths.WithLabelValues("docs")))
	assert.Equal(t, 1.0, prom.ToFloat64(m.reloads.WithLabelValues("success")))
	assert.Equal(t, 1.0, prom.ToFloat64(m.reloads.WithLabelValues("failure")))
	assert.Equal(t, 1.0, prom.ToFloat64(m.runs.WithLabelValues("rspec", "failure")))
	assert.Equal(t, 1.0, prom.ToFloat64(m.actionFailures))

	count, err := prom.GatherAndCount(m.Registry(), "guard_batch_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordBatch(1, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body strings.Builder
	_, err = io.Copy(&body, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "guard_batches_total 1")
}
