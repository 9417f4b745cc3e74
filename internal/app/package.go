package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"lms-packages/internal/adapters"
	"lms-packages/internal/core"
	"lms-packages/internal/types"
)

const (
	PackageDirName  = "package"
	MetadataDirName = "metadata"
	ExportDirName   = "export"
	BuildDirName    = "build"
)

func (s Service) Package(ctx context.Context, req PackageRequest) (PackageResult, error) {
	buildDir, err := absDir(req.BuildDir, "build directory")
	if err != nil {
		return PackageResult{}, err
	}
	outputDir, err := absDir(req.OutputDir, "output directory")
	if err != nil {
		return PackageResult{}, err
	}
	descriptor, requirements, err := s.loadDescriptor(ctx, req.DescriptorPath)
	if err != nil {
		return PackageResult{}, err
	}
	return s.pack(ctx, descriptor, requirements, req.Settings, buildDir, outputDir)
}

// pack copies the artifacts selected by the descriptor's copy rules from
// buildDir into <outputDir>/package and writes the manifest and package
// info into <outputDir>/metadata.
func (s Service) pack(ctx context.Context, descriptor types.Descriptor, requirements []types.Requirement, settings types.Settings, buildDir string, outputDir string) (PackageResult, error) {
	if err := s.Compiler.ValidateSettings(ctx, descriptor, settings); err != nil {
		return PackageResult{}, err
	}
	info, err := os.Stat(buildDir)
	if err != nil || !info.IsDir() {
		return PackageResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("build directory does not exist: " + buildDir).
			WithCause(err)
	}
	packageDir := filepath.Join(outputDir, PackageDirName)
	metadataDir := filepath.Join(outputDir, MetadataDirName)

	files, err := s.Packager.CopyTree(buildDir, packageDir, descriptor.Package.Copy, adapters.NestedDir(buildDir, metadataDir))
	if err != nil {
		return PackageResult{}, err
	}
	packageInfo := core.PackageInfo(descriptor, settings, requirements)
	manifest := types.PackageManifest{
		PackageID: core.PackageID(packageInfo),
		Files:     files,
	}
	if err := s.Packager.WriteMetadata(metadataDir, manifest, packageInfo); err != nil {
		return PackageResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("descriptor", descriptor.Name).
		Str("step", "package").
		Str("package_id", manifest.PackageID).
		Int("files", len(files)).
		Msg("package assembled")
	return PackageResult{
		PackageID:      manifest.PackageID,
		PackageDir:     packageDir,
		MetadataDir:    metadataDir,
		ManifestDigest: core.ManifestDigest(manifest),
		Files:          files,
	}, nil
}
