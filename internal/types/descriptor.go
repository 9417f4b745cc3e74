package types

// CopyRule copies files matching Pattern below Src (relative to the build
// directory) into Dst (relative to the package directory).
type CopyRule struct {
	Pattern  string `yaml:"pattern" json:"pattern"`
	Src      string `yaml:"src,omitempty" json:"src,omitempty"`
	Dst      string `yaml:"dst,omitempty" json:"dst,omitempty"`
	KeepPath *bool  `yaml:"keep_path,omitempty" json:"keep_path,omitempty"`

	// Disabled keeps a rule in the descriptor without applying it.
	Disabled bool `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// KeepsPath reports whether the path below Src is preserved under Dst.
// Rules keep paths unless keep_path is explicitly false.
func (r CopyRule) KeepsPath() bool {
	return r.KeepPath == nil || *r.KeepPath
}

type PackageRules struct {
	Copy []CopyRule `yaml:"copy" json:"copy"`
}

type Descriptor struct {
	Name           string       `yaml:"name" json:"name"`
	Version        string       `yaml:"version" json:"version"`
	Description    string       `yaml:"description,omitempty" json:"description,omitempty"`
	License        string       `yaml:"license,omitempty" json:"license,omitempty"`
	URL            string       `yaml:"url,omitempty" json:"url,omitempty"`
	Settings       []SettingKey `yaml:"settings" json:"settings"`
	Exports        []string     `yaml:"exports,omitempty" json:"exports,omitempty"`
	ExportsSources []string     `yaml:"exports_sources,omitempty" json:"exports_sources,omitempty"`
	Requires       []string     `yaml:"requires" json:"requires"`
	Generators     []Generator  `yaml:"generators" json:"generators"`
	Package        PackageRules `yaml:"package" json:"package"`

	// Path is the file the descriptor was loaded from.
	Path string `yaml:"-" json:"-"`
}
