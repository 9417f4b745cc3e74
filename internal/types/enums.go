package types

type SettingKey string

const (
	SettingOS        SettingKey = "os"
	SettingCompiler  SettingKey = "compiler"
	SettingBuildType SettingKey = "build_type"
	SettingArch      SettingKey = "arch"
)

type Generator string

const (
	GeneratorCMake Generator = "cmake"
	GeneratorTxt   Generator = "txt"
)

type DescriptorFormat string

const (
	DescriptorFormatYAML DescriptorFormat = "yaml"
	DescriptorFormatHCL  DescriptorFormat = "hcl"
)
