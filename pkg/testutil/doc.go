// Package testutil provides helpers shared by guard's tests.
//
// Key components:
//   - MockReporter: testify mock of ui.Reporter for asserting exact notices
//   - RecordingReporter: captures notices in memory
//   - MemFS: in-memory afero filesystem pre-populated with files
//   - Rule helpers: terse constructors for watchers used in table tests
package testutil
