package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lms-packages/internal/types"
)

var referenceNamePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.+-]*$`)

// ParseRequirement parses a pinned reference of the form
// name/version@user/channel. Every part is required.
func ParseRequirement(raw string) (types.Requirement, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return types.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("requirement must not be empty")
	}
	head, tail, ok := strings.Cut(value, "@")
	if !ok || strings.Contains(tail, "@") {
		return types.Requirement{}, invalidRequirement(value, "expected name/version@user/channel")
	}
	name, version, ok := strings.Cut(head, "/")
	if !ok || strings.Contains(version, "/") {
		return types.Requirement{}, invalidRequirement(value, "expected name/version before @")
	}
	user, channel, ok := strings.Cut(tail, "/")
	if !ok || strings.Contains(channel, "/") {
		return types.Requirement{}, invalidRequirement(value, "expected user/channel after @")
	}
	req := types.Requirement{
		Name:    strings.TrimSpace(name),
		Version: strings.TrimSpace(version),
		User:    strings.TrimSpace(user),
		Channel: strings.TrimSpace(channel),
	}
	parts := []struct {
		label string
		value string
	}{
		{"name", req.Name},
		{"user", req.User},
		{"channel", req.Channel},
	}
	for _, part := range parts {
		if !referenceNamePattern.MatchString(part.value) {
			return types.Requirement{}, invalidRequirement(value, fmt.Sprintf("invalid %s %q", part.label, part.value))
		}
	}
	if strings.ContainsAny(req.Version, "[]<>=~ ") {
		return types.Requirement{}, invalidRequirement(value, "version ranges are not supported")
	}
	if err := ValidateVersion(req.Version); err != nil {
		return types.Requirement{}, invalidRequirement(value, err.Error())
	}
	return req, nil
}

// ParseUserChannel parses the user/channel qualifier used when a package is
// created and registered.
func ParseUserChannel(raw string) (string, string, error) {
	user, channel, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok || !referenceNamePattern.MatchString(user) || !referenceNamePattern.MatchString(channel) {
		return "", "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid user/channel: %q", raw))
	}
	return user, channel, nil
}

func invalidRequirement(raw string, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid requirement %q: %s", raw, reason))
}
