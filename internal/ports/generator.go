package ports

import "lms-packages/internal/types"

// GeneratorPort renders build-system input files for the declared
// generators.
type GeneratorPort interface {
	Generate(generators []types.Generator, settings types.Settings, deps []types.RequirementDirs) ([]types.GeneratedFile, error)
}
