package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lms-packages/internal/types"
)

func TestParseCreatedAt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "RFC3339",
			input:    "2025-06-15T10:30:00Z",
			expected: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339 with offset",
			input:    "2025-06-15T12:30:00+02:00",
			expected: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339Nano",
			input:    "2025-06-15T10:30:00.123456789Z",
			expected: time.Date(2025, 6, 15, 10, 30, 0, 123456789, time.UTC),
		},
		{
			name:     "datetime without timezone",
			input:    "2025-06-15 10:30:00",
			expected: time.Time{},
		},
		{
			name:     "empty string",
			input:    "",
			expected: time.Time{},
		},
		{
			name:     "garbage",
			input:    "yesterday",
			expected: time.Time{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.expected.Equal(parseCreatedAt(tt.input)), "got %v", parseCreatedAt(tt.input))
		})
	}
}

func TestNewestRecordComparesTimesNotStrings(t *testing.T) {
	records := []types.PackageRecord{
		{PackageID: "b", CreatedAt: "2026-01-01T00:00:00.5Z"},
		{PackageID: "a", CreatedAt: "2026-01-01T00:00:00Z"},
		{PackageID: "c", CreatedAt: "2026-01-01T00:00:00.5Z"},
	}
	assert.Equal(t, "b", newestRecord(records).PackageID)
}
