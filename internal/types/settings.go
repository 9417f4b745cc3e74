package types

// Settings is the build axis tuple a descriptor is configured for.
type Settings struct {
	OS              string `yaml:"os" json:"os" mapstructure:"os"`
	Compiler        string `yaml:"compiler" json:"compiler" mapstructure:"compiler"`
	CompilerVersion string `yaml:"compiler_version,omitempty" json:"compiler_version,omitempty" mapstructure:"compiler_version"`
	BuildType       string `yaml:"build_type" json:"build_type" mapstructure:"build_type"`
	Arch            string `yaml:"arch" json:"arch" mapstructure:"arch"`
}

// Value returns the setting for key, or "" when the key is unknown.
func (s Settings) Value(key SettingKey) string {
	switch key {
	case SettingOS:
		return s.OS
	case SettingCompiler:
		return s.Compiler
	case SettingBuildType:
		return s.BuildType
	case SettingArch:
		return s.Arch
	default:
		return ""
	}
}
