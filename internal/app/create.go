package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"lms-packages/internal/core"
	"lms-packages/internal/types"
)

// Create runs export, build and package for one descriptor and registers the
// result under name/version@user/channel. The exported sources are staged
// into the build directory and configured there, so copy rules see both the
// recipe's sources and the build artifacts. Without an output directory the
// package lands in the cache data directory under its package id.
func (s Service) Create(ctx context.Context, req CreateRequest) (CreateResult, error) {
	user, channel, err := core.ParseUserChannel(req.UserChannel)
	if err != nil {
		return CreateResult{}, err
	}
	descriptor, requirements, err := s.loadDescriptor(ctx, req.DescriptorPath)
	if err != nil {
		return CreateResult{}, err
	}
	if err := s.Compiler.ValidateSettings(ctx, descriptor, req.Settings); err != nil {
		return CreateResult{}, err
	}
	outputDir := req.OutputDir
	if strings.TrimSpace(outputDir) == "" && s.DataDir != "" {
		packageID := core.PackageID(core.PackageInfo(descriptor, req.Settings, requirements))
		outputDir = filepath.Join(s.DataDir, descriptor.Name, descriptor.Version, user, channel, packageID)
	}
	outputDir, err = absDir(outputDir, "output directory")
	if err != nil {
		return CreateResult{}, err
	}
	reference := types.Requirement{
		Name:    descriptor.Name,
		Version: descriptor.Version,
		User:    user,
		Channel: channel,
	}

	exported, err := s.export(ctx, descriptor, outputDir)
	if err != nil {
		return CreateResult{}, err
	}
	buildDir := filepath.Join(outputDir, BuildDirName)
	if _, err := s.Packager.CopyTree(exported.ExportDir, buildDir, []types.CopyRule{{Pattern: "*"}}); err != nil {
		return CreateResult{}, err
	}
	log.Ctx(ctx).Debug().
		Str("descriptor", descriptor.Name).
		Str("build_dir", buildDir).
		Msg("exported sources staged")
	if _, err := s.build(ctx, descriptor, requirements, req.Settings, buildDir, buildDir); err != nil {
		return CreateResult{}, err
	}
	packaged, err := s.pack(ctx, descriptor, requirements, req.Settings, buildDir, outputDir)
	if err != nil {
		return CreateResult{}, err
	}
	if s.Registry != nil {
		record := types.PackageRecord{
			Reference:      reference,
			PackageID:      packaged.PackageID,
			Settings:       req.Settings,
			PackageDir:     packaged.PackageDir,
			ManifestDigest: packaged.ManifestDigest,
			CreatedAt:      s.now().UTC().Format(time.RFC3339Nano),
		}
		if err := s.Registry.Register(ctx, record); err != nil {
			return CreateResult{}, err
		}
	}
	log.Ctx(ctx).Info().
		Str("reference", reference.String()).
		Str("package_id", packaged.PackageID).
		Msg("package created")
	return CreateResult{
		Reference: reference,
		ExportDir: exported.ExportDir,
		BuildDir:  buildDir,
		Package:   packaged,
	}, nil
}
