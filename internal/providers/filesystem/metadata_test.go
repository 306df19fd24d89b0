package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHumanSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00 B"},
		{1, "1.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
		{1024 * 1024 * 1024 * 1024, "1.00 TB"},
		{1024 * 1024 * 1024 * 1024 * 1024, "1.00 PB"},
		{2048 * 1024 * 1024 * 1024 * 1024, "2048.00 PB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatHumanSize(tt.bytes))
		})
	}
}
