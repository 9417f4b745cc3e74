package app

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"lms-packages/internal/adapters"
	"lms-packages/internal/types"
)

func (s Service) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	outputDir, err := absDir(req.OutputDir, "output directory")
	if err != nil {
		return ExportResult{}, err
	}
	descriptor, _, err := s.loadDescriptor(ctx, req.DescriptorPath)
	if err != nil {
		return ExportResult{}, err
	}
	return s.export(ctx, descriptor, outputDir)
}

// export copies the descriptor and the files matched by exports and
// exports_sources into <outputDir>/export, keeping their relative paths.
func (s Service) export(ctx context.Context, descriptor types.Descriptor, outputDir string) (ExportResult, error) {
	recipeDir := filepath.Dir(descriptor.Path)
	exportDir := filepath.Join(outputDir, ExportDirName)
	rules := exportRules(descriptor)
	files, err := s.Packager.CopyTree(recipeDir, exportDir, rules, adapters.NestedDir(recipeDir, outputDir))
	if err != nil {
		return ExportResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("descriptor", descriptor.Name).
		Str("step", "export").
		Int("files", len(files)).
		Msg("recipe exported")
	return ExportResult{ExportDir: exportDir, Files: files}, nil
}

func exportRules(descriptor types.Descriptor) []types.CopyRule {
	rules := []types.CopyRule{{Pattern: filepath.Base(descriptor.Path)}}
	for _, pattern := range descriptor.Exports {
		rules = append(rules, types.CopyRule{Pattern: pattern})
	}
	for _, pattern := range descriptor.ExportsSources {
		rules = append(rules, types.CopyRule{Pattern: pattern})
	}
	return rules
}
