package core

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"lms-packages/internal/policies"
	"lms-packages/internal/types"
)

type DescriptorCompiler struct{}

var settingDomains = map[types.SettingKey]map[string]struct{}{
	types.SettingOS: {
		"Linux":   {},
		"Windows": {},
		"Macos":   {},
		"FreeBSD": {},
	},
	types.SettingCompiler: {
		"gcc":           {},
		"clang":         {},
		"apple-clang":   {},
		"Visual Studio": {},
	},
	types.SettingBuildType: {
		"Debug":          {},
		"Release":        {},
		"RelWithDebInfo": {},
		"MinSizeRel":     {},
	},
	types.SettingArch: {
		"x86":    {},
		"x86_64": {},
		"armv7":  {},
		"armv8":  {},
	},
}

var validGenerators = map[types.Generator]struct{}{
	types.GeneratorCMake: {},
	types.GeneratorTxt:   {},
}

func NewDescriptorCompiler() DescriptorCompiler {
	return DescriptorCompiler{}
}

// ValidateDescriptor checks the declarative fields of a descriptor and
// returns its parsed requirements in declaration order.
func (c DescriptorCompiler) ValidateDescriptor(ctx context.Context, descriptor types.Descriptor) ([]types.Requirement, error) {
	name := strings.TrimSpace(descriptor.Name)
	if name == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("descriptor name must be set")
	}
	if !referenceNamePattern.MatchString(name) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("descriptor name is invalid: %s", descriptor.Name))
	}
	if err := ValidateVersion(descriptor.Version); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("descriptor %s: %s", name, err.Error()))
	}
	if err := validateSettingKeys(descriptor.Settings); err != nil {
		return nil, err
	}
	requirements, err := parseRequirements(descriptor.Requires)
	if err != nil {
		return nil, err
	}
	if err := validateGenerators(descriptor.Generators); err != nil {
		return nil, err
	}
	if err := validatePatterns("exports", descriptor.Exports); err != nil {
		return nil, err
	}
	if err := validatePatterns("exports_sources", descriptor.ExportsSources); err != nil {
		return nil, err
	}
	for idx, rule := range descriptor.Package.Copy {
		if err := validateCopyRule(idx, rule); err != nil {
			return nil, err
		}
	}
	log.Ctx(ctx).Debug().
		Str("descriptor", name).
		Int("requires", len(requirements)).
		Msg("descriptor validated")
	return requirements, nil
}

// ValidateSettings checks that every setting the descriptor declares has a
// value from the known domain. Undeclared settings are ignored.
func (c DescriptorCompiler) ValidateSettings(ctx context.Context, descriptor types.Descriptor, settings types.Settings) error {
	for _, key := range descriptor.Settings {
		value := strings.TrimSpace(settings.Value(key))
		if value == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("setting %s is required by %s", key, descriptor.Name))
		}
		if _, ok := settingDomains[key][value]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid value %q for setting %s", value, key))
		}
	}
	log.Ctx(ctx).Debug().
		Str("descriptor", descriptor.Name).
		Str("os", settings.OS).
		Str("compiler", settings.Compiler).
		Str("build_type", settings.BuildType).
		Str("arch", settings.Arch).
		Msg("settings validated")
	return nil
}

func validateSettingKeys(keys []types.SettingKey) error {
	seen := map[types.SettingKey]struct{}{}
	for _, key := range keys {
		if _, ok := settingDomains[key]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown setting: %s", key))
		}
		if _, ok := seen[key]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("setting declared twice: %s", key))
		}
		seen[key] = struct{}{}
	}
	return nil
}

func parseRequirements(raw []string) ([]types.Requirement, error) {
	requirements := make([]types.Requirement, 0, len(raw))
	seen := map[string]struct{}{}
	for _, entry := range raw {
		req, err := ParseRequirement(entry)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[req.Name]; ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("requirement %s declared twice", req.Name))
		}
		seen[req.Name] = struct{}{}
		requirements = append(requirements, req)
	}
	return requirements, nil
}

func validateGenerators(generators []types.Generator) error {
	for _, generator := range generators {
		if _, ok := validGenerators[generator]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unsupported generator: %s", generator))
		}
	}
	return nil
}

func validatePatterns(field string, patterns []string) error {
	for _, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s contains an empty pattern", field))
		}
		if err := policies.ValidatePattern(pattern); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s pattern %q is invalid", field, pattern)).
				WithCause(err)
		}
	}
	return nil
}

func validateCopyRule(idx int, rule types.CopyRule) error {
	if err := validatePatterns(fmt.Sprintf("package.copy[%d]", idx), []string{rule.Pattern}); err != nil {
		return err
	}
	for _, dir := range []string{rule.Src, rule.Dst} {
		if escapesRoot(dir) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package.copy[%d] path %q must stay inside its root", idx, dir))
		}
	}
	return nil
}

func escapesRoot(dir string) bool {
	if strings.TrimSpace(dir) == "" {
		return false
	}
	if filepath.IsAbs(dir) || path.IsAbs(dir) {
		return true
	}
	cleaned := path.Clean(filepath.ToSlash(dir))
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}
