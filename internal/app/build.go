package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"lms-packages/internal/types"
)

func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	buildDir, err := absDir(req.BuildDir, "build directory")
	if err != nil {
		return BuildResult{}, err
	}
	descriptor, requirements, err := s.loadDescriptor(ctx, req.DescriptorPath)
	if err != nil {
		return BuildResult{}, err
	}
	sourceDir := filepath.Dir(descriptor.Path)
	if strings.TrimSpace(req.SourceDir) != "" {
		sourceDir, err = absDir(req.SourceDir, "source directory")
		if err != nil {
			return BuildResult{}, err
		}
	}
	return s.build(ctx, descriptor, requirements, req.Settings, sourceDir, buildDir)
}

// build writes the generator files into buildDir and runs the configure and
// build commands in order. The first failing command aborts the step.
func (s Service) build(ctx context.Context, descriptor types.Descriptor, requirements []types.Requirement, settings types.Settings, sourceDir string, buildDir string) (BuildResult, error) {
	logger := log.Ctx(ctx).With().
		Str("descriptor", descriptor.Name).
		Str("step", "build").
		Logger()
	if err := s.Compiler.ValidateSettings(ctx, descriptor, settings); err != nil {
		return BuildResult{}, err
	}
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("source directory does not exist: " + sourceDir).
			WithCause(err)
	}
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create build directory").
			WithCause(err)
	}
	deps, err := s.requirementDirs(ctx, requirements)
	if err != nil {
		return BuildResult{}, err
	}
	files, err := s.Generator.Generate(descriptor.Generators, settings, deps)
	if err != nil {
		return BuildResult{}, err
	}
	plan, err := s.Planner.Plan(ctx, descriptor, settings, sourceDir, buildDir, files)
	if err != nil {
		return BuildResult{}, err
	}

	var generated []string
	for _, file := range plan.Files {
		target := filepath.Join(plan.BuildDir, file.Name)
		if err := os.WriteFile(target, file.Content, 0o644); err != nil {
			return BuildResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write " + file.Name).
				WithCause(err)
		}
		generated = append(generated, target)
	}
	logger.Info().Strs("files", generated).Msg("generator files written")

	for _, cmd := range plan.Commands {
		logger.Info().Str("command", cmd.String()).Msg("running " + cmd.Name)
		if _, err := s.Runner.Run(ctx, cmd); err != nil {
			return BuildResult{}, err
		}
	}
	return BuildResult{
		BuildDir:     plan.BuildDir,
		Generated:    generated,
		Commands:     plan.Commands,
		Requirements: deps,
	}, nil
}

// requirementDirs looks up every requirement in the local registry. Unknown
// requirements keep empty directories; fetching them is not our job.
func (s Service) requirementDirs(ctx context.Context, requirements []types.Requirement) ([]types.RequirementDirs, error) {
	deps := make([]types.RequirementDirs, 0, len(requirements))
	for _, req := range requirements {
		dirs := types.RequirementDirs{Requirement: req}
		if s.Registry != nil {
			record, found, err := s.Registry.Lookup(ctx, req)
			if err != nil {
				return nil, err
			}
			if found {
				dirs.RootDir = record.PackageDir
				dirs.IncludeDirs = []string{filepath.Join(record.PackageDir, "include")}
				dirs.LibDirs = []string{filepath.Join(record.PackageDir, "lib")}
			}
		}
		if dirs.RootDir == "" {
			log.Ctx(ctx).Warn().
				Str("requirement", req.String()).
				Msg("requirement not found in local registry")
		}
		deps = append(deps, dirs)
	}
	return deps, nil
}
