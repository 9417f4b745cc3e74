package adapters

import (
	"strings"
	"time"

	"lms-packages/internal/types"
)

// parseCreatedAt reads the RFC 3339 timestamp Register stores. Values that
// do not parse sort as the zero time.
func parseCreatedAt(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}

// newestRecord picks the most recently created record; ties go to the
// lowest package id.
func newestRecord(records []types.PackageRecord) types.PackageRecord {
	best := records[0]
	bestAt := parseCreatedAt(best.CreatedAt)
	for _, record := range records[1:] {
		at := parseCreatedAt(record.CreatedAt)
		switch {
		case at.After(bestAt):
			best, bestAt = record, at
		case at.Equal(bestAt) && record.PackageID < best.PackageID:
			best = record
		}
	}
	return best
}
