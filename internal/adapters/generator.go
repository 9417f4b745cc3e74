package adapters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lms-packages/internal/ports"
	"lms-packages/internal/shared"
	"lms-packages/internal/types"
)

const (
	CMakeBuildInfoFile = "conanbuildinfo.cmake"
	TxtBuildInfoFile   = "conanbuildinfo.txt"
)

type GeneratorAdapter struct{}

func NewGeneratorAdapter() GeneratorAdapter {
	return GeneratorAdapter{}
}

// Generate renders one file per generator. Requirements keep their
// declaration order so the output is stable between runs.
func (a GeneratorAdapter) Generate(generators []types.Generator, settings types.Settings, deps []types.RequirementDirs) ([]types.GeneratedFile, error) {
	var files []types.GeneratedFile
	seen := map[types.Generator]struct{}{}
	for _, generator := range generators {
		if _, ok := seen[generator]; ok {
			continue
		}
		seen[generator] = struct{}{}
		switch generator {
		case types.GeneratorCMake:
			files = append(files, types.GeneratedFile{Name: CMakeBuildInfoFile, Content: []byte(renderCMake(settings, deps))})
		case types.GeneratorTxt:
			files = append(files, types.GeneratedFile{Name: TxtBuildInfoFile, Content: []byte(renderTxt(settings, deps))})
		default:
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unsupported generator: %s", generator))
		}
	}
	return files, nil
}

func renderCMake(settings types.Settings, deps []types.RequirementDirs) string {
	var b strings.Builder
	names := make([]string, 0, len(deps))
	for _, dep := range deps {
		names = append(names, dep.Requirement.Name)
	}
	fmt.Fprintf(&b, "set(CONAN_DEPENDENCIES %s)\n", strings.Join(names, " "))

	var includeDirs []string
	var libDirs []string
	for _, dep := range deps {
		id := shared.CMakeIdentifier(dep.Requirement.Name)
		fmt.Fprintf(&b, "\n# %s\n", dep.Requirement.String())
		fmt.Fprintf(&b, "set(CONAN_%s_ROOT %s)\n", id, cmakeQuote(dep.RootDir))
		fmt.Fprintf(&b, "set(CONAN_INCLUDE_DIRS_%s%s)\n", id, cmakeList(dep.IncludeDirs))
		fmt.Fprintf(&b, "set(CONAN_LIB_DIRS_%s%s)\n", id, cmakeList(dep.LibDirs))
		includeDirs = append(includeDirs, dep.IncludeDirs...)
		libDirs = append(libDirs, dep.LibDirs...)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "set(CONAN_INCLUDE_DIRS%s ${CONAN_INCLUDE_DIRS})\n", cmakeList(shared.UniqueStrings(includeDirs)))
	fmt.Fprintf(&b, "set(CONAN_LIB_DIRS%s ${CONAN_LIB_DIRS})\n", cmakeList(shared.UniqueStrings(libDirs)))

	b.WriteString("\n")
	fmt.Fprintf(&b, "set(CONAN_SETTINGS_OS %s)\n", cmakeQuote(settings.OS))
	fmt.Fprintf(&b, "set(CONAN_SETTINGS_COMPILER %s)\n", cmakeQuote(settings.Compiler))
	if settings.CompilerVersion != "" {
		fmt.Fprintf(&b, "set(CONAN_SETTINGS_COMPILER_VERSION %s)\n", cmakeQuote(settings.CompilerVersion))
	}
	fmt.Fprintf(&b, "set(CONAN_SETTINGS_BUILD_TYPE %s)\n", cmakeQuote(settings.BuildType))
	fmt.Fprintf(&b, "set(CONAN_SETTINGS_ARCH %s)\n", cmakeQuote(settings.Arch))

	b.WriteString(`
macro(conan_basic_setup)
    include_directories(${CONAN_INCLUDE_DIRS})
    link_directories(${CONAN_LIB_DIRS})
    set(CMAKE_C_FLAGS "${CONAN_C_FLAGS} ${CMAKE_C_FLAGS}")
    set(CMAKE_CXX_FLAGS "${CONAN_CXX_FLAGS} ${CMAKE_CXX_FLAGS}")
    set(CMAKE_SHARED_LINKER_FLAGS "${CONAN_SHARED_LINKER_FLAGS} ${CMAKE_SHARED_LINKER_FLAGS}")
endmacro()
`)
	return b.String()
}

func renderTxt(settings types.Settings, deps []types.RequirementDirs) string {
	var includeDirs []string
	var libDirs []string
	for _, dep := range deps {
		includeDirs = append(includeDirs, dep.IncludeDirs...)
		libDirs = append(libDirs, dep.LibDirs...)
	}
	var b strings.Builder
	b.WriteString("[includedirs]\n")
	for _, dir := range shared.UniqueStrings(includeDirs) {
		b.WriteString(filepath.ToSlash(dir) + "\n")
	}
	b.WriteString("\n[libdirs]\n")
	for _, dir := range shared.UniqueStrings(libDirs) {
		b.WriteString(filepath.ToSlash(dir) + "\n")
	}
	b.WriteString("\n[dependencies]\n")
	for _, dep := range deps {
		b.WriteString(dep.Requirement.String() + "\n")
	}
	b.WriteString("\n[settings]\n")
	fmt.Fprintf(&b, "arch=%s\n", settings.Arch)
	fmt.Fprintf(&b, "build_type=%s\n", settings.BuildType)
	fmt.Fprintf(&b, "compiler=%s\n", settings.Compiler)
	if settings.CompilerVersion != "" {
		fmt.Fprintf(&b, "compiler.version=%s\n", settings.CompilerVersion)
	}
	fmt.Fprintf(&b, "os=%s\n", settings.OS)
	return b.String()
}

func cmakeQuote(value string) string {
	escaped := strings.ReplaceAll(filepath.ToSlash(value), `"`, `\"`)
	return `"` + escaped + `"`
}

func cmakeList(values []string) string {
	var b strings.Builder
	for _, value := range values {
		b.WriteString(" ")
		b.WriteString(cmakeQuote(value))
	}
	return b.String()
}

var _ ports.GeneratorPort = GeneratorAdapter{}
