package core

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"lms-packages/internal/types"
)

// PackageInfo renders the declared settings and requirements in the
// canonical form used for conaninfo.txt and the package id.
func PackageInfo(descriptor types.Descriptor, settings types.Settings, requirements []types.Requirement) string {
	var settingLines []string
	for _, key := range descriptor.Settings {
		settingLines = append(settingLines, string(key)+"="+settings.Value(key))
		if key == types.SettingCompiler && settings.CompilerVersion != "" {
			settingLines = append(settingLines, "compiler.version="+settings.CompilerVersion)
		}
	}
	sort.Strings(settingLines)

	requireLines := make([]string, 0, len(requirements))
	for _, req := range requirements {
		requireLines = append(requireLines, req.String())
	}
	sort.Strings(requireLines)

	var builder strings.Builder
	builder.WriteString("[settings]\n")
	for _, line := range settingLines {
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	builder.WriteString("\n[requires]\n")
	for _, line := range requireLines {
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}

// PackageID is the hex sha1 of the canonical package info.
func PackageID(info string) string {
	sum := sha1.Sum([]byte(info))
	return hex.EncodeToString(sum[:])
}

// RenderManifest lists packaged files as "path size sha256" lines sorted by
// path.
func RenderManifest(manifest types.PackageManifest) string {
	files := append([]types.PackagedFile(nil), manifest.Files...)
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	var builder strings.Builder
	for _, file := range files {
		fmt.Fprintf(&builder, "%s %d %s\n", file.Path, file.Size, file.Digest)
	}
	return builder.String()
}

// ManifestDigest is the hex sha256 of the rendered manifest.
func ManifestDigest(manifest types.PackageManifest) string {
	sum := sha256.Sum256([]byte(RenderManifest(manifest)))
	return hex.EncodeToString(sum[:])
}
