package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms-packages/internal/types"
)

func imagingDescriptor() types.Descriptor {
	return types.Descriptor{
		Name:    "imaging",
		Version: "1.0",
		Settings: []types.SettingKey{
			types.SettingOS, types.SettingCompiler, types.SettingBuildType, types.SettingArch,
		},
		Exports:    []string{"*"},
		Requires:   []string{"lms_imaging/1.0@lms/stable", "lms/2.0@lms/stable"},
		Generators: []types.Generator{types.GeneratorCMake},
		Package: types.PackageRules{Copy: []types.CopyRule{
			{Pattern: "*.h", Src: "include", Dst: "include"},
			{Pattern: "*.lib", Src: "lib", Dst: "lib"},
			{Pattern: "*.a", Src: "lib", Dst: "lib"},
		}},
	}
}

func linuxRelease() types.Settings {
	return types.Settings{OS: "Linux", Compiler: "gcc", BuildType: "Release", Arch: "x86_64"}
}

func TestValidateDescriptorReturnsRequirementsInOrder(t *testing.T) {
	compiler := NewDescriptorCompiler()
	reqs, err := compiler.ValidateDescriptor(t.Context(), imagingDescriptor())
	require.NoError(t, err)
	want := []types.Requirement{
		{Name: "lms_imaging", Version: "1.0", User: "lms", Channel: "stable"},
		{Name: "lms", Version: "2.0", User: "lms", Channel: "stable"},
	}
	if diff := cmp.Diff(want, reqs); diff != "" {
		t.Fatalf("unexpected requirements (-want +got):\n%s", diff)
	}
}

func TestValidateDescriptorRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *types.Descriptor)
	}{
		{"empty name", func(d *types.Descriptor) { d.Name = "" }},
		{"invalid name", func(d *types.Descriptor) { d.Name = "bad name" }},
		{"empty version", func(d *types.Descriptor) { d.Version = "" }},
		{"invalid version", func(d *types.Descriptor) { d.Version = "latest" }},
		{"unknown setting", func(d *types.Descriptor) { d.Settings = append(d.Settings, "cppstd") }},
		{"duplicate setting", func(d *types.Descriptor) { d.Settings = append(d.Settings, types.SettingOS) }},
		{"missing requirement", func(d *types.Descriptor) { d.Requires = append(d.Requires, "") }},
		{"malformed requirement", func(d *types.Descriptor) { d.Requires = append(d.Requires, "lms/2.0") }},
		{"duplicate requirement", func(d *types.Descriptor) { d.Requires = append(d.Requires, "lms/2.1@lms/testing") }},
		{"unknown generator", func(d *types.Descriptor) { d.Generators = append(d.Generators, "premake") }},
		{"bad export pattern", func(d *types.Descriptor) { d.Exports = []string{"[z-a].h"} }},
		{"empty copy pattern", func(d *types.Descriptor) { d.Package.Copy[0].Pattern = "" }},
		{"escaping dst", func(d *types.Descriptor) { d.Package.Copy[0].Dst = "../include" }},
		{"absolute src", func(d *types.Descriptor) { d.Package.Copy[0].Src = "/usr/include" }},
	}
	compiler := NewDescriptorCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptor := imagingDescriptor()
			tt.mutate(&descriptor)
			_, err := compiler.ValidateDescriptor(t.Context(), descriptor)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestValidateDescriptorUsesCopyPatternGrammar(t *testing.T) {
	compiler := NewDescriptorCompiler()
	for _, pattern := range []string{`*.h\`, "[^a]*.h", "[a-", "[]a]*"} {
		t.Run(pattern, func(t *testing.T) {
			descriptor := imagingDescriptor()
			descriptor.ExportsSources = []string{pattern}
			descriptor.Package.Copy[0].Pattern = pattern
			_, err := compiler.ValidateDescriptor(t.Context(), descriptor)
			require.NoError(t, err)
		})
	}
}

func TestValidateSettingsAcceptsFullTuple(t *testing.T) {
	compiler := NewDescriptorCompiler()
	require.NoError(t, compiler.ValidateSettings(t.Context(), imagingDescriptor(), linuxRelease()))
}

func TestValidateSettingsRejectsIncompleteOrUnknown(t *testing.T) {
	tests := []struct {
		name     string
		settings types.Settings
	}{
		{"missing os", types.Settings{Compiler: "gcc", BuildType: "Release", Arch: "x86_64"}},
		{"missing compiler", types.Settings{OS: "Linux", BuildType: "Release", Arch: "x86_64"}},
		{"missing build type", types.Settings{OS: "Linux", Compiler: "gcc", Arch: "x86_64"}},
		{"missing arch", types.Settings{OS: "Linux", Compiler: "gcc", BuildType: "Release"}},
		{"unknown os", types.Settings{OS: "Plan9", Compiler: "gcc", BuildType: "Release", Arch: "x86_64"}},
		{"lowercase build type", types.Settings{OS: "Linux", Compiler: "gcc", BuildType: "release", Arch: "x86_64"}},
	}
	compiler := NewDescriptorCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compiler.ValidateSettings(t.Context(), imagingDescriptor(), tt.settings)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestValidateSettingsOnlyChecksDeclaredKeys(t *testing.T) {
	descriptor := imagingDescriptor()
	descriptor.Settings = []types.SettingKey{types.SettingOS}
	compiler := NewDescriptorCompiler()
	assert.NoError(t, compiler.ValidateSettings(t.Context(), descriptor, types.Settings{OS: "Linux"}))
}
