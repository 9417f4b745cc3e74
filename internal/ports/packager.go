package ports

import "lms-packages/internal/types"

// PackagerPort applies copy rules from a source tree into a destination
// tree and reports what was copied.
type PackagerPort interface {
	CopyTree(srcDir string, destDir string, rules []types.CopyRule, skip ...string) ([]types.PackagedFile, error)
	WriteMetadata(metadataDir string, manifest types.PackageManifest, info string) error
}
