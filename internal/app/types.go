package app

import "lms-packages/internal/types"

type ValidateRequest struct {
	DescriptorPath string
	// Settings are checked against the descriptor only when set.
	Settings types.Settings
}

type ValidateResult struct {
	Name         string
	Version      string
	Requirements []types.Requirement
}

type BuildRequest struct {
	DescriptorPath string
	// SourceDir defaults to the directory holding the descriptor.
	SourceDir string
	BuildDir  string
	Settings  types.Settings
}

type BuildResult struct {
	BuildDir     string
	Generated    []string
	Commands     []types.Command
	Requirements []types.RequirementDirs
}

type PackageRequest struct {
	DescriptorPath string
	BuildDir       string
	OutputDir      string
	Settings       types.Settings
}

type PackageResult struct {
	PackageID      string
	PackageDir     string
	MetadataDir    string
	ManifestDigest string
	Files          []types.PackagedFile
}

type ExportRequest struct {
	DescriptorPath string
	OutputDir      string
}

type ExportResult struct {
	ExportDir string
	Files     []types.PackagedFile
}

type CreateRequest struct {
	DescriptorPath string
	OutputDir      string
	// UserChannel is the "user/channel" half of the package reference.
	UserChannel string
	Settings    types.Settings
}

type CreateResult struct {
	Reference types.Requirement
	ExportDir string
	BuildDir  string
	Package   PackageResult
}

type InfoRequest struct {
	DescriptorPath string
	Query          string
}

type InfoResult struct {
	Descriptor types.Descriptor
	Matches    []any
}

type InspectRequest struct {
	Name string
}

type InspectResult struct {
	Records []types.PackageRecord
}

type RemoveRequest struct {
	Reference string
}

type RemoveResult struct {
	Reference types.Requirement
	Removed   int
}
