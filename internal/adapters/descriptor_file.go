package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v3"

	"lms-packages/internal/ports"
	"lms-packages/internal/types"
)

type DescriptorFileAdapter struct{}

func NewDescriptorFileAdapter() DescriptorFileAdapter {
	return DescriptorFileAdapter{}
}

// LoadDescriptor reads a descriptor from a .yaml, .yml or .hcl file.
func (a DescriptorFileAdapter) LoadDescriptor(path string) (types.Descriptor, error) {
	if strings.TrimSpace(path) == "" {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("descriptor path is required")
	}
	format, err := DescriptorFormatOf(path)
	if err != nil {
		return types.Descriptor{}, err
	}
	if _, err := os.Stat(path); err != nil {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("descriptor file not found").
			WithCause(err)
	}
	var descriptor types.Descriptor
	switch format {
	case types.DescriptorFormatHCL:
		descriptor, err = loadHCLDescriptor(path)
	default:
		descriptor, err = loadYAMLDescriptor(path)
	}
	if err != nil {
		return types.Descriptor{}, err
	}
	descriptor.Path = path
	return descriptor, nil
}

// DescriptorFormatOf infers the descriptor format from the file extension.
func DescriptorFormatOf(path string) (types.DescriptorFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return types.DescriptorFormatYAML, nil
	case ".hcl":
		return types.DescriptorFormatHCL, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported descriptor format: %s", path))
	}
}

func loadYAMLDescriptor(path string) (types.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("descriptor file not found").
			WithCause(err)
	}
	var descriptor types.Descriptor
	if err := yaml.Unmarshal(data, &descriptor); err != nil {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse descriptor yaml").
			WithCause(err)
	}
	return descriptor, nil
}

type hclCopyRule struct {
	Pattern  string `hcl:"pattern"`
	Src      string `hcl:"src,optional"`
	Dst      string `hcl:"dst,optional"`
	KeepPath *bool  `hcl:"keep_path,optional"`
	Disabled bool   `hcl:"disabled,optional"`
}

type hclDescriptor struct {
	Name           string        `hcl:"name"`
	Version        string        `hcl:"version"`
	Description    string        `hcl:"description,optional"`
	License        string        `hcl:"license,optional"`
	URL            string        `hcl:"url,optional"`
	Settings       []string      `hcl:"settings,optional"`
	Exports        []string      `hcl:"exports,optional"`
	ExportsSources []string      `hcl:"exports_sources,optional"`
	Requires       []string      `hcl:"requires,optional"`
	Generators     []string      `hcl:"generators,optional"`
	Copy           []hclCopyRule `hcl:"copy,block"`
}

func loadHCLDescriptor(path string) (types.Descriptor, error) {
	var raw hclDescriptor
	if err := hclsimple.DecodeFile(path, nil, &raw); err != nil {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse descriptor hcl").
			WithCause(err)
	}
	descriptor := types.Descriptor{
		Name:           raw.Name,
		Version:        raw.Version,
		Description:    raw.Description,
		License:        raw.License,
		URL:            raw.URL,
		Exports:        raw.Exports,
		ExportsSources: raw.ExportsSources,
		Requires:       raw.Requires,
	}
	for _, key := range raw.Settings {
		descriptor.Settings = append(descriptor.Settings, types.SettingKey(key))
	}
	for _, generator := range raw.Generators {
		descriptor.Generators = append(descriptor.Generators, types.Generator(generator))
	}
	for _, rule := range raw.Copy {
		descriptor.Package.Copy = append(descriptor.Package.Copy, types.CopyRule{
			Pattern:  rule.Pattern,
			Src:      rule.Src,
			Dst:      rule.Dst,
			KeepPath: rule.KeepPath,
			Disabled: rule.Disabled,
		})
	}
	return descriptor, nil
}

var _ ports.DescriptorPort = DescriptorFileAdapter{}
