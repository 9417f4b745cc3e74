package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms-packages/internal/types"
)

func TestPlanOrdersConfigureBeforeBuild(t *testing.T) {
	planner := NewBuildPlanner()
	files := []types.GeneratedFile{{Name: "conanbuildinfo.cmake", Content: []byte("x")}}
	plan, err := planner.Plan(t.Context(), imagingDescriptor(), linuxRelease(), "/src/imaging", "/work/build", files)
	require.NoError(t, err)

	require.Len(t, plan.Commands, 2)
	configure := plan.Commands[0]
	build := plan.Commands[1]
	assert.Equal(t, CommandConfigure, configure.Name)
	assert.Equal(t, CommandBuild, build.Name)
	assert.Equal(t, "cmake", configure.Path)
	assert.Equal(t, "/work/build", configure.Dir)
	assert.Equal(t, "/work/build", build.Dir)

	wantConfigure := []string{
		"/src/imaging",
		"-G", "Unix Makefiles",
		"-DCMAKE_BUILD_TYPE=Release",
		"-DCONAN_EXPORTED=1",
		"-DCONAN_COMPILER=gcc",
		"-DCONAN_CXX_FLAGS=-m64",
		"-DCONAN_SHARED_LINKER_FLAGS=-m64",
		"-DCONAN_C_FLAGS=-m64",
	}
	if diff := cmp.Diff(wantConfigure, configure.Args); diff != "" {
		t.Fatalf("unexpected configure args (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"--build", "."}, build.Args); diff != "" {
		t.Fatalf("unexpected build args (-want +got):\n%s", diff)
	}
	assert.Equal(t, files, plan.Files)
}

func TestPlanRequiresDirectories(t *testing.T) {
	planner := NewBuildPlanner()
	_, err := planner.Plan(t.Context(), imagingDescriptor(), linuxRelease(), "", "/work/build", nil)
	assert.Error(t, err)
	_, err = planner.Plan(t.Context(), imagingDescriptor(), linuxRelease(), "/src", " ", nil)
	assert.Error(t, err)
}

func TestCMakeCommandLineVisualStudio(t *testing.T) {
	settings := types.Settings{OS: "Windows", Compiler: "Visual Studio", CompilerVersion: "15", BuildType: "Debug", Arch: "x86_64"}
	want := []string{
		"-G", "Visual Studio 15 2017 Win64",
		"-DCONAN_EXPORTED=1",
		"-DCONAN_COMPILER=Visual Studio",
		"-DCONAN_COMPILER_VERSION=15",
	}
	if diff := cmp.Diff(want, CMakeCommandLine(settings)); diff != "" {
		t.Fatalf("unexpected command line (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"--config", "Debug"}, CMakeBuildConfig(settings)); diff != "" {
		t.Fatalf("unexpected build config (-want +got):\n%s", diff)
	}
}

func TestCMakeGenerator(t *testing.T) {
	tests := []struct {
		settings types.Settings
		want     string
	}{
		{types.Settings{OS: "Linux", Compiler: "gcc", Arch: "x86_64"}, "Unix Makefiles"},
		{types.Settings{OS: "Macos", Compiler: "apple-clang", Arch: "armv8"}, "Unix Makefiles"},
		{types.Settings{OS: "Windows", Compiler: "gcc", Arch: "x86_64"}, "MinGW Makefiles"},
		{types.Settings{OS: "Windows", Compiler: "Visual Studio", Arch: "x86"}, "Visual Studio 15 2017"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CMakeGenerator(tt.settings))
	}
}

func TestCMakeCommandLineArmHasNoArchFlags(t *testing.T) {
	args := CMakeCommandLine(types.Settings{OS: "Linux", Compiler: "gcc", BuildType: "Release", Arch: "armv7"})
	for _, arg := range args {
		assert.NotContains(t, arg, "-m32")
		assert.NotContains(t, arg, "-m64")
	}
	assert.Nil(t, CMakeBuildConfig(types.Settings{OS: "Linux", Compiler: "gcc", BuildType: "Release"}))
}
