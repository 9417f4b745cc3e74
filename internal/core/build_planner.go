package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"lms-packages/internal/types"
)

const (
	CommandConfigure = "configure"
	CommandBuild     = "build"

	cmakeBinary = "cmake"
)

type BuildPlanner struct {
	CMake string
}

func NewBuildPlanner() BuildPlanner {
	return BuildPlanner{CMake: cmakeBinary}
}

// Plan orders the generator outputs and the configure and build commands
// for one descriptor. The descriptor and settings must already be validated.
func (p BuildPlanner) Plan(ctx context.Context, descriptor types.Descriptor, settings types.Settings, sourceDir string, buildDir string, files []types.GeneratedFile) (types.BuildPlan, error) {
	assert.NotEmpty(ctx, descriptor.Name, "descriptor name must be set")
	assert.NotEmpty(ctx, descriptor.Version, "descriptor version must be set")
	if strings.TrimSpace(sourceDir) == "" {
		return types.BuildPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source directory is required")
	}
	if strings.TrimSpace(buildDir) == "" {
		return types.BuildPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build directory is required")
	}
	binary := p.CMake
	if strings.TrimSpace(binary) == "" {
		binary = cmakeBinary
	}
	configureArgs := append([]string{sourceDir}, CMakeCommandLine(settings)...)
	buildArgs := append([]string{"--build", "."}, CMakeBuildConfig(settings)...)
	plan := types.BuildPlan{
		SourceDir: sourceDir,
		BuildDir:  buildDir,
		Files:     files,
		Commands: []types.Command{
			{Name: CommandConfigure, Path: binary, Args: configureArgs, Dir: buildDir},
			{Name: CommandBuild, Path: binary, Args: buildArgs, Dir: buildDir},
		},
	}
	log.Ctx(ctx).Debug().
		Str("descriptor", descriptor.Name).
		Str("generator", CMakeGenerator(settings)).
		Int("files", len(files)).
		Msg("build planned")
	return plan, nil
}

// CMakeGenerator picks the CMake generator matching the settings tuple.
func CMakeGenerator(settings types.Settings) string {
	switch {
	case settings.Compiler == "Visual Studio":
		generator := "Visual Studio 15 2017"
		if settings.Arch == "x86_64" {
			generator += " Win64"
		}
		return generator
	case settings.OS == "Windows" && settings.Compiler == "gcc":
		return "MinGW Makefiles"
	default:
		return "Unix Makefiles"
	}
}

func isMultiConfig(settings types.Settings) bool {
	return strings.HasPrefix(CMakeGenerator(settings), "Visual Studio")
}

// CMakeCommandLine returns the configure arguments derived from settings.
// Empty settings produce no definition rather than a default.
func CMakeCommandLine(settings types.Settings) []string {
	args := []string{"-G", CMakeGenerator(settings)}
	if !isMultiConfig(settings) && settings.BuildType != "" {
		args = append(args, fmt.Sprintf("-DCMAKE_BUILD_TYPE=%s", settings.BuildType))
	}
	args = append(args, "-DCONAN_EXPORTED=1")
	if settings.Compiler != "" {
		args = append(args, fmt.Sprintf("-DCONAN_COMPILER=%s", settings.Compiler))
	}
	if settings.CompilerVersion != "" {
		args = append(args, fmt.Sprintf("-DCONAN_COMPILER_VERSION=%s", settings.CompilerVersion))
	}
	if flag := archFlag(settings); flag != "" {
		args = append(args,
			fmt.Sprintf("-DCONAN_CXX_FLAGS=%s", flag),
			fmt.Sprintf("-DCONAN_SHARED_LINKER_FLAGS=%s", flag),
			fmt.Sprintf("-DCONAN_C_FLAGS=%s", flag),
		)
	}
	return args
}

// CMakeBuildConfig returns the extra arguments for cmake --build.
func CMakeBuildConfig(settings types.Settings) []string {
	if isMultiConfig(settings) && settings.BuildType != "" {
		return []string{"--config", settings.BuildType}
	}
	return nil
}

func archFlag(settings types.Settings) string {
	if settings.Compiler == "Visual Studio" {
		return ""
	}
	switch settings.Arch {
	case "x86":
		return "-m32"
	case "x86_64":
		return "-m64"
	default:
		return ""
	}
}
