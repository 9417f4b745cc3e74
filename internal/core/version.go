package core

import (
	"fmt"
	"strings"

	debversion "github.com/knqyf263/go-deb-version"
)

// ValidateVersion checks that value is a pinned version. The Debian
// upstream-version grammar accepts the dotted numeric versions packages
// are published with (1.0, 2.0, 1.7.0) as well as suffixes like 1.0~rc1.
func ValidateVersion(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("version must not be empty")
	}
	if _, err := debversion.NewVersion(trimmed); err != nil {
		return fmt.Errorf("invalid version %q: %w", value, err)
	}
	return nil
}

// CompareVersions returns -1, 0 or 1. Unparseable versions fall back to a
// lexical comparison so ordering stays total.
func CompareVersions(a string, b string) int {
	v1, err1 := debversion.NewVersion(a)
	v2, err2 := debversion.NewVersion(b)
	if err1 != nil || err2 != nil {
		return strings.Compare(a, b)
	}
	return v1.Compare(v2)
}
