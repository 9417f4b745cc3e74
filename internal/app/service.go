package app

import (
	"path/filepath"
	"time"

	"lms-packages/internal/adapters"
	"lms-packages/internal/core"
	"lms-packages/internal/ports"
)

type Service struct {
	Descriptors ports.DescriptorPort
	Compiler    core.DescriptorCompiler
	Planner     core.BuildPlanner
	Generator   ports.GeneratorPort
	Runner      ports.CommandRunnerPort
	Packager    ports.PackagerPort
	Registry    ports.RegistryPort
	Query       ports.QueryPort
	Clock       func() time.Time
	// DataDir holds created packages when no output directory is given.
	DataDir string
}

// NewService wires the default adapters against a cache directory. The
// registry database inside it is only opened when a step needs it.
func NewService(cacheDir string) Service {
	return Service{
		Descriptors: adapters.NewDescriptorFileAdapter(),
		Compiler:    core.NewDescriptorCompiler(),
		Planner:     core.NewBuildPlanner(),
		Generator:   adapters.NewGeneratorAdapter(),
		Runner:      adapters.NewExecRunnerAdapter(),
		Packager:    adapters.NewPackagerAdapter(),
		Registry:    adapters.NewSQLiteRegistryAdapter(filepath.Join(cacheDir, adapters.RegistryFile)),
		Query:       adapters.NewJSONQueryAdapter(),
		Clock:       time.Now,
		DataDir:     filepath.Join(cacheDir, "data"),
	}
}

func (s Service) Close() error {
	if s.Registry == nil {
		return nil
	}
	return s.Registry.Close()
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
