package types

import "fmt"

// Requirement is a pinned upstream package reference.
type Requirement struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	User    string `json:"user"`
	Channel string `json:"channel"`
}

// String renders the reference as name/version@user/channel.
func (r Requirement) String() string {
	return fmt.Sprintf("%s/%s@%s/%s", r.Name, r.Version, r.User, r.Channel)
}

// RequirementDirs are the include and library directories of a requirement
// that was packaged locally. Both are empty when the package is unknown.
type RequirementDirs struct {
	Requirement Requirement
	RootDir     string
	IncludeDirs []string
	LibDirs     []string
}
