package listener

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	f := NewFilter([]string{".git", "node_modules", "*.swp", "tmp/*.log"}, true)

	tests := []struct {
		path    string
		ignored bool
	}{
		{".", false},
		{"lib/guard.rb", false},
		{".git/HEAD", true},
		{"web/node_modules/x/index.js", true},
		{"lib/.guard.rb.swp", true},
		{"lib/guard.rb.swp", true},
		{"tmp/test.log", true},
		{"log/test.log", false},
		{".env", true},
		{"config/.hidden/app.yml", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.ignored, f.Ignored(tt.path))
		})
	}
}

func TestFilter_HiddenAllowed(t *testing.T) {
	f := NewFilter(nil, false)
	assert.False(t, f.Ignored(".rspec"))
	assert.False(t, f.Ignored("../outside"))
}
