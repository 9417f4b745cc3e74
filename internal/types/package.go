package types

type PackagedFile struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Digest string `json:"sha256"`
}

type PackageManifest struct {
	PackageID string         `json:"package_id"`
	Files     []PackagedFile `json:"files"`
}

// PackageRecord is a registry entry for a package produced locally.
type PackageRecord struct {
	Reference      Requirement `json:"reference"`
	PackageID      string      `json:"package_id"`
	Settings       Settings    `json:"settings"`
	PackageDir     string      `json:"package_dir"`
	ManifestDigest string      `json:"manifest_digest"`
	CreatedAt      string      `json:"created_at"`
}
